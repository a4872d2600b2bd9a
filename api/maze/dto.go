// Package mazeapi exposes maze sessions over HTTP and websocket.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// CreateMazeRequest represents a request to create a new maze.
type CreateMazeRequest struct {
	Size int    `json:"size" binding:"required"`
	Seed *int64 `json:"seed"`
}

// CreateMazeResponse carries the new maze and the token that may mutate it.
type CreateMazeResponse struct {
	ID       uuid.UUID     `json:"id"`
	Size     int           `json:"size"`
	Seed     int64         `json:"seed"`
	Token    string        `json:"token"`
	Snapshot maze.Snapshot `json:"snapshot"`
}

// ArchivedMazeResponse summarizes a completed maze.
type ArchivedMazeResponse struct {
	ID          uuid.UUID `json:"id"`
	Size        int       `json:"size"`
	Seed        int64     `json:"seed"`
	Run         int       `json:"run"`
	Steps       int       `json:"steps"`
	CompletedAt int64     `json:"completed_at"`
}

// Watch events.
const (
	EventSnapshot = "snapshot"
	EventComplete = "complete"
	EventError    = "error"
)

// WatchMessage is one websocket frame of the watch stream.
type WatchMessage struct {
	Event    string         `json:"event"`
	Snapshot *maze.Snapshot `json:"snapshot,omitempty"`
	Error    string         `json:"error,omitempty"`
}
