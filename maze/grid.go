/*
Package maze provides a square grid of walled cells and a recursive
backtracker that carves a perfect maze through it one step at a time.

The Grid owns the cells and answers adjacency queries. The Generator keeps
the depth-first traversal stack and exposes Start, Step, RunToCompletion and
Reset so that a driver (an HTTP handler, a websocket ticker, a terminal
animation) decides when each step happens. Every completed run yields a
spanning tree of the grid: connected, acyclic, one path between any two cells.

Neither type is safe for concurrent use; callers serialize access.
*/
package maze

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("maze dimension must be at least 1")
)

// Grid is a size x size matrix of cells stored row-major as [y][x].
type Grid struct {
	size  int
	cells [][]*Cell
}

// NewGrid allocates a fully walled, unvisited grid of the given size.
func NewGrid(size int) (*Grid, error) {
	if size < 1 {
		return nil, ErrInvalidDimension
	}

	cells := make([][]*Cell, size)
	for y := range cells {
		cells[y] = make([]*Cell, size)
		for x := range cells[y] {
			cells[y][x] = newCell(x, y)
		}
	}

	return &Grid{size: size, cells: cells}, nil
}

// Size returns the number of cells along one side.
func (g *Grid) Size() int {
	return g.size
}

// InBound reports whether (x, y) lies on the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Cell returns the cell at (x, y), or false when the position is off the grid.
func (g *Grid) Cell(x, y int) (*Cell, bool) {
	if !g.InBound(x, y) {
		return nil, false
	}
	return g.cells[y][x], true
}

// Neighbor returns the cell adjacent to (x, y) in direction d. The boolean is
// false when that direction leaves the grid, which is expected at the edges.
func (g *Grid) Neighbor(x, y int, d Direction) (*Cell, bool) {
	dx, dy := d.Delta()
	return g.Cell(x+dx, y+dy)
}

// RemoveWall clears the wall on side d of c. Clearing an open side is a no-op.
func (g *Grid) RemoveWall(c *Cell, d Direction) {
	c.walls = c.walls.Without(d)
}

// Reset restores every cell to fully walled and unvisited.
func (g *Grid) Reset() {
	for _, row := range g.cells {
		for _, c := range row {
			c.reset()
		}
	}
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return render(g.size, func(x, y int) Walls { return g.cells[y][x].walls })
}

// render draws a maze as ASCII given a wall lookup. Only the east and south
// sides of each cell are drawn; the outer north and west borders are implied.
func render(size int, wallsAt func(x, y int) Walls) string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", size) + "\n")

	for y := 0; y < size; y++ {
		sb.WriteString("|")
		for x := 0; x < size; x++ {
			if wallsAt(x, y).Has(East) {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n+")
		for x := 0; x < size; x++ {
			if wallsAt(x, y).Has(South) {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
