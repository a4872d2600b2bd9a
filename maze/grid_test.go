package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection(t *testing.T) {
	t.Run("opposite pairs", func(t *testing.T) {
		assert.Equal(t, South, North.Opposite())
		assert.Equal(t, West, East.Opposite())
		assert.Equal(t, North, South.Opposite())
		assert.Equal(t, East, West.Opposite())
		for _, d := range Directions {
			assert.Equal(t, d, d.Opposite().Opposite())
		}
	})

	t.Run("deltas", func(t *testing.T) {
		tests := []struct {
			dir    Direction
			dx, dy int
		}{
			{North, 0, -1},
			{East, 1, 0},
			{South, 0, 1},
			{West, -1, 0},
		}
		for _, tt := range tests {
			dx, dy := tt.dir.Delta()
			assert.Equal(t, tt.dx, dx, tt.dir.String())
			assert.Equal(t, tt.dy, dy, tt.dir.String())
		}
	})

	t.Run("wall bit layout", func(t *testing.T) {
		assert.Equal(t, Walls(15), AllWalls)
		assert.Equal(t, Walls(14), AllWalls.Without(North))
		assert.Equal(t, Walls(13), AllWalls.Without(East))
		assert.Equal(t, Walls(11), AllWalls.Without(South))
		assert.Equal(t, Walls(7), AllWalls.Without(West))
		assert.Equal(t, 2, AllWalls.Without(North).Without(West).Count())
	})
}

func TestNewGrid(t *testing.T) {
	t.Run("rejects sizes below one", func(t *testing.T) {
		for _, size := range []int{0, -1, -20} {
			g, err := NewGrid(size)
			assert.ErrorIs(t, err, ErrInvalidDimension)
			assert.Nil(t, g)
		}
	})

	t.Run("fully populated and walled", func(t *testing.T) {
		g, err := NewGrid(4)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Size())

		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				c, ok := g.Cell(x, y)
				require.True(t, ok)
				assert.Equal(t, x, c.X())
				assert.Equal(t, y, c.Y())
				assert.Equal(t, AllWalls, c.Walls())
				assert.False(t, c.Visited())
			}
		}

		c, _ := g.Cell(3, 1)
		assert.Equal(t, "1_3", c.ID())
	})
}

func TestGridNeighbor(t *testing.T) {
	g, err := NewGrid(3)
	require.NoError(t, err)

	t.Run("corners have no outside neighbours", func(t *testing.T) {
		_, ok := g.Neighbor(0, 0, North)
		assert.False(t, ok)
		_, ok = g.Neighbor(0, 0, West)
		assert.False(t, ok)
		_, ok = g.Neighbor(2, 2, South)
		assert.False(t, ok)
		_, ok = g.Neighbor(2, 2, East)
		assert.False(t, ok)
	})

	t.Run("centre has four", func(t *testing.T) {
		want := map[Direction]Position{
			North: {1, 0},
			East:  {2, 1},
			South: {1, 2},
			West:  {0, 1},
		}
		for d, pos := range want {
			n, ok := g.Neighbor(1, 1, d)
			require.True(t, ok, d.String())
			assert.Equal(t, pos, n.Position(), d.String())
		}
	})

	t.Run("off-grid origin", func(t *testing.T) {
		_, ok := g.Neighbor(5, 5, North)
		assert.False(t, ok)
	})
}

func TestGridRemoveWallAndReset(t *testing.T) {
	g, err := NewGrid(2)
	require.NoError(t, err)
	c, _ := g.Cell(0, 0)

	g.RemoveWall(c, East)
	assert.False(t, c.HasWall(East))
	assert.True(t, c.HasWall(North))

	g.RemoveWall(c, East)
	assert.Equal(t, AllWalls.Without(East), c.Walls())

	c.visited = true
	g.Reset()
	assert.Equal(t, AllWalls, c.Walls())
	assert.False(t, c.Visited())
}

func TestGridString(t *testing.T) {
	g, err := NewGrid(2)
	require.NoError(t, err)
	a, _ := g.Cell(0, 0)
	b, _ := g.Cell(1, 0)
	g.RemoveWall(a, East)
	g.RemoveWall(b, West)

	want := "" +
		"+---+---+\n" +
		"|       |\n" +
		"+---+---+\n" +
		"|   |   |\n" +
		"+---+---+\n"
	assert.Equal(t, want, g.String())
}
