package i

import (
	"context"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

// SnapshotStore caches the latest snapshot of each live maze so that readers
// can observe it without touching the generator.
type SnapshotStore interface {
	// Save stores s as the state of the given run. It keeps whichever of the
	// cached and the new snapshot is further along: a later run wins, and
	// within one run the snapshot with more steps wins.
	Save(ctx context.Context, id uuid.UUID, run int, s maze.Snapshot) error

	// Load returns the cached snapshot.
	Load(ctx context.Context, id uuid.UUID) (maze.Snapshot, error)

	// Delete removes the cached snapshot.
	Delete(ctx context.Context, id uuid.UUID) error
}
