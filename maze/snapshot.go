package maze

// CellView is a read-only copy of a cell.
type CellView struct {
	X       int   `json:"x"`
	Y       int   `json:"y"`
	Walls   Walls `json:"walls"`
	Visited bool  `json:"visited"`
}

// HasWall reports whether the wall on side d is present.
func (c CellView) HasWall(d Direction) bool {
	return c.Walls.Has(d)
}

// Snapshot is a deep copy of a Generator's observable state between steps.
// Changing it has no effect on the Generator.
type Snapshot struct {
	Size  int          `json:"size"`
	State State        `json:"state"`
	Steps int          `json:"steps"`
	Cells [][]CellView `json:"cells"`
	Stack []Position   `json:"stack"`
	Last  *Move        `json:"last,omitempty"`
}

// Snapshot copies the current grid, stack and last move.
func (g *Generator) Snapshot() Snapshot {
	size := g.grid.Size()
	cells := make([][]CellView, size)
	for y := range cells {
		cells[y] = make([]CellView, size)
		for x, c := range g.grid.cells[y] {
			cells[y][x] = CellView{X: c.x, Y: c.y, Walls: c.walls, Visited: c.visited}
		}
	}

	stack := make([]Position, len(g.stack))
	for i, c := range g.stack {
		stack[i] = c.Position()
	}

	s := Snapshot{
		Size:  size,
		State: g.State(),
		Steps: g.steps,
		Cells: cells,
		Stack: stack,
	}
	if g.last != nil {
		last := *g.last
		s.Last = &last
	}
	return s
}

// Complete reports whether the snapshot was taken after the traversal ended.
func (s Snapshot) Complete() bool {
	return s.State == Complete
}

// Cell returns the view at (x, y).
func (s Snapshot) Cell(x, y int) (CellView, bool) {
	if x < 0 || y < 0 || y >= len(s.Cells) || x >= len(s.Cells[y]) {
		return CellView{}, false
	}
	return s.Cells[y][x], true
}

// CarvedEdges counts passages, each open east or south side joined to an
// in-bound neighbour. A perfect maze of n x n cells has n*n-1.
func (s Snapshot) CarvedEdges() int {
	edges := 0
	for y, row := range s.Cells {
		for x, c := range row {
			if x+1 < len(row) && !c.HasWall(East) {
				edges++
			}
			if y+1 < len(s.Cells) && !c.HasWall(South) {
				edges++
			}
		}
	}
	return edges
}

// VisitedCount returns how many cells have been reached.
func (s Snapshot) VisitedCount() int {
	n := 0
	for _, row := range s.Cells {
		for _, c := range row {
			if c.Visited {
				n++
			}
		}
	}
	return n
}

// OnStack reports whether (x, y) is on the current traversal path.
func (s Snapshot) OnStack(x, y int) bool {
	for _, p := range s.Stack {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}

// String provides a textual representation of the snapshot.
func (s Snapshot) String() string {
	return render(s.Size, func(x, y int) Walls { return s.Cells[y][x].Walls })
}
