package domain

import (
	"testing"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMazeRecord(t *testing.T) {
	g, err := maze.NewGenerator(5, maze.WithSeed(17))
	require.NoError(t, err)

	t.Run("rejects incomplete", func(t *testing.T) {
		_, err := NewMazeRecord(uuid.New(), 17, 0, g.Snapshot())
		assert.ErrorIs(t, err, ErrMazeIncomplete)
	})

	t.Run("restores walls", func(t *testing.T) {
		s, err := g.Generate()
		require.NoError(t, err)

		id := uuid.New()
		r, err := NewMazeRecord(id, 17, 0, s)
		require.NoError(t, err)
		assert.Equal(t, id, r.ID)
		assert.Equal(t, 5, r.Size)
		assert.Equal(t, s.Steps, r.Steps)

		restored := r.Snapshot()
		assert.Equal(t, s.String(), restored.String())
		assert.Equal(t, 24, restored.CarvedEdges())
		assert.Equal(t, 25, restored.VisitedCount())
		assert.True(t, restored.Complete())
	})
}
