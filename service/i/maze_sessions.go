package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// MazeSessions manages live maze generators and serializes access to them.
type MazeSessions interface {
	// Create builds an idle maze. A nil seed picks one at random. The returned
	// token authorizes mutations of this maze only.
	Create(ctx context.Context, size int, seed *int64) (dmn.MazeSession, string, error)

	Start(ctx context.Context, id uuid.UUID) (maze.Snapshot, error)
	Step(ctx context.Context, id uuid.UUID) (maze.Snapshot, error)
	Run(ctx context.Context, id uuid.UUID) (maze.Snapshot, error)
	Reset(ctx context.Context, id uuid.UUID) (maze.Snapshot, error)

	// Snapshot reads the current state, falling back to the cache and the
	// archive for mazes not held by this instance.
	Snapshot(ctx context.Context, id uuid.UUID) (maze.Snapshot, error)

	// Delete drops the live maze and its cached and archived copies.
	Delete(ctx context.Context, id uuid.UUID) error

	// Archived lists recently completed mazes.
	Archived(ctx context.Context, limit int64) ([]*dmn.MazeRecord, error)
}
