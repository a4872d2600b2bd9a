package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the archive of completed mazes.
type MazeRepo interface {
	// Save inserts or replaces the record with the same ID.
	Save(ctx context.Context, record *dmn.MazeRecord) error

	// ByID retrieves an archived maze.
	// Returns an error if the maze is not found or in case of an unexpected error.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// Delete removes an archived maze. Deleting a missing maze is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Recent lists up to limit records, most recently completed first.
	Recent(ctx context.Context, limit int64) ([]*dmn.MazeRecord, error)
}
