package maze

import "fmt"

// Cell is a single square of the grid. Its coordinates never change after
// construction; walls and visitation are mutated by the generator.
type Cell struct {
	x       int
	y       int
	walls   Walls
	visited bool
}

func newCell(x, y int) *Cell {
	return &Cell{x: x, y: y, walls: AllWalls}
}

// X returns the column of the cell.
func (c *Cell) X() int {
	return c.x
}

// Y returns the row of the cell.
func (c *Cell) Y() int {
	return c.y
}

// Walls returns the current wall set.
func (c *Cell) Walls() Walls {
	return c.walls
}

// HasWall reports whether the wall on side d is present.
func (c *Cell) HasWall(d Direction) bool {
	return c.walls.Has(d)
}

// Visited reports whether the traversal has reached the cell.
func (c *Cell) Visited() bool {
	return c.visited
}

// ID returns the lookup key of the cell in "{y}_{x}" form.
func (c *Cell) ID() string {
	return fmt.Sprintf("%d_%d", c.y, c.x)
}

// Position returns the coordinates of the cell.
func (c *Cell) Position() Position {
	return Position{X: c.x, Y: c.y}
}

func (c *Cell) reset() {
	c.walls = AllWalls
	c.visited = false
}

// Position is an (x, y) coordinate on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}
