package i

import "errors"

// Lookup failures shared by infrastructure implementations.
var (
	ErrMazeNotFound     = errors.New("maze not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
