package repo

import (
	"context"
	"os"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestMazeRepo runs against a real server when MONGO_TEST_URI is set.
func TestMazeRepo(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := NewMazeRepo(client, "mazegen_test", "mazes")

	g, err := maze.NewGenerator(6, maze.WithSeed(12))
	require.NoError(t, err)
	s, err := g.Generate()
	require.NoError(t, err)

	record, err := dmn.NewMazeRecord(uuid.New(), 12, 0, s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), record.ID) })

	require.NoError(t, repo.Save(ctx, record))
	require.NoError(t, repo.Save(ctx, record), "saving twice upserts")

	got, err := repo.ByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Walls, got.Walls)
	assert.Equal(t, s.String(), got.Snapshot().String())

	recent, err := repo.Recent(ctx, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, recent)

	require.NoError(t, repo.Delete(ctx, record.ID))
	_, err = repo.ByID(ctx, record.ID)
	assert.ErrorIs(t, err, i.ErrMazeNotFound)
}
