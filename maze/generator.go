package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrNotStarted     = errors.New("generator not started")
	ErrAlreadyStarted = errors.New("generator already started")
	ErrInvalidChoice  = errors.New("chooser returned an index out of range")
)

// State is the lifecycle stage of a Generator.
type State uint8

const (
	Idle State = iota
	Running
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for _, v := range []State{Idle, Running, Complete} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// MoveKind tells what a single step did.
type MoveKind uint8

const (
	Carve MoveKind = iota + 1
	Backtrack
)

func (k MoveKind) String() string {
	switch k {
	case Carve:
		return "carve"
	case Backtrack:
		return "backtrack"
	}
	return fmt.Sprintf("MoveKind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *MoveKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "carve":
		*k = Carve
	case "backtrack":
		*k = Backtrack
	default:
		return fmt.Errorf("unknown move kind %q", b)
	}
	return nil
}

// Move describes the effect of one step. For a carve, From and To are the
// cells joined and Direction points from From to To. For a backtrack, From is
// the cell left behind and To is the new top of the stack (equal to From when
// the stack emptied).
type Move struct {
	Kind      MoveKind  `json:"kind"`
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Direction Direction `json:"direction"`
}

// Chooser returns an index in [0, n) for n > 0. Implementations must be
// uniform for the generated maze to be unbiased.
type Chooser func(n int) int

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithChooser sets the function that picks among candidate neighbours.
func WithChooser(c Chooser) GeneratorOption {
	return func(g *Generator) {
		if c != nil {
			g.choose = c
		}
	}
}

// WithRand draws choices from r.
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.choose = r.Intn
		}
	}
}

// WithSeed draws choices from a source seeded with seed, making runs
// reproducible.
func WithSeed(seed int64) GeneratorOption {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// Generator carves a perfect maze with the recursive backtracker, one atomic
// step at a time.
//
// Step before Start fails with ErrNotStarted, a second Start fails with
// ErrAlreadyStarted, and Step after completion is a no-op.
type Generator struct {
	grid    *Grid
	stack   []*Cell
	started bool
	steps   int
	last    *Move
	choose  Chooser
}

// NewGenerator creates a Generator bound to a new grid of the given size.
func NewGenerator(size int, opts ...GeneratorOption) (*Generator, error) {
	grid, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	return NewGeneratorForGrid(grid, opts...)
}

// NewGeneratorForGrid creates a Generator over an existing grid. The grid is
// reset so the traversal begins from a clean state.
func NewGeneratorForGrid(grid *Grid, opts ...GeneratorOption) (*Generator, error) {
	if grid == nil || grid.Size() < 1 {
		return nil, ErrInvalidDimension
	}

	g := &Generator{
		grid:   grid,
		choose: rand.New(rand.NewSource(time.Now().UnixNano())).Intn,
	}
	for _, opt := range opts {
		opt(g)
	}
	grid.Reset()
	return g, nil
}

// Grid returns the grid being carved. It must not be mutated by the caller
// while the Generator is in use.
func (g *Generator) Grid() *Grid {
	return g.grid
}

// State reports the lifecycle stage.
func (g *Generator) State() State {
	switch {
	case !g.started:
		return Idle
	case len(g.stack) == 0:
		return Complete
	default:
		return Running
	}
}

// IsComplete reports whether the traversal has started and the stack is empty.
func (g *Generator) IsComplete() bool {
	return g.started && len(g.stack) == 0
}

// Steps returns the number of steps that carved or backtracked.
func (g *Generator) Steps() int {
	return g.steps
}

// LastMove returns the effect of the most recent working step.
func (g *Generator) LastMove() (Move, bool) {
	if g.last == nil {
		return Move{}, false
	}
	return *g.last, true
}

// Start marks the cell at (0, 0) visited and pushes it onto the stack. A grid
// with a single cell has nothing left to carve, so it completes immediately.
func (g *Generator) Start() error {
	if g.started {
		return ErrAlreadyStarted
	}

	origin := g.grid.cells[0][0]
	origin.visited = true
	g.started = true
	if len(g.candidates(origin)) > 0 {
		g.stack = append(g.stack, origin)
	}
	return nil
}

// Step performs one unit of work and returns the resulting snapshot.
func (g *Generator) Step() (Snapshot, error) {
	if !g.started {
		return Snapshot{}, ErrNotStarted
	}
	if _, err := g.advance(); err != nil {
		return Snapshot{}, err
	}
	return g.Snapshot(), nil
}

// RunToCompletion steps until the stack is empty and returns the final
// snapshot.
func (g *Generator) RunToCompletion() (Snapshot, error) {
	if !g.started {
		return Snapshot{}, ErrNotStarted
	}
	for {
		worked, err := g.advance()
		if err != nil {
			return Snapshot{}, err
		}
		if !worked {
			return g.Snapshot(), nil
		}
	}
}

// Generate starts the traversal when idle and runs it to completion.
func (g *Generator) Generate() (Snapshot, error) {
	if !g.started {
		if err := g.Start(); err != nil {
			return Snapshot{}, err
		}
	}
	return g.RunToCompletion()
}

// Reset returns the grid and the traversal to their initial state.
func (g *Generator) Reset() {
	g.grid.Reset()
	g.stack = g.stack[:0]
	g.started = false
	g.steps = 0
	g.last = nil
}

// advance carves toward one random unvisited neighbour of the top cell, or
// pops the top cell when it has none. It reports false when there was nothing
// left to do. The random choice is validated before anything is mutated.
func (g *Generator) advance() (bool, error) {
	if len(g.stack) == 0 {
		return false, nil
	}

	top := len(g.stack) - 1
	c := g.stack[top]
	candidates := g.candidates(c)

	if len(candidates) == 0 {
		g.stack = g.stack[:top]
		move := Move{Kind: Backtrack, From: c.Position(), To: c.Position()}
		if top > 0 {
			move.To = g.stack[top-1].Position()
		}
		g.record(move)
		return true, nil
	}

	idx := g.choose(len(candidates))
	if idx < 0 || idx >= len(candidates) {
		return false, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, idx, len(candidates))
	}

	d := candidates[idx]
	n, _ := g.grid.Neighbor(c.x, c.y, d)
	g.grid.RemoveWall(c, d)
	g.grid.RemoveWall(n, d.Opposite())
	n.visited = true
	g.stack = append(g.stack, n)
	g.record(Move{Kind: Carve, From: c.Position(), To: n.Position(), Direction: d})
	return true, nil
}

// candidates lists the directions from c to in-bound, unvisited neighbours
// in North, East, South, West order.
func (g *Generator) candidates(c *Cell) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if n, ok := g.grid.Neighbor(c.x, c.y, d); ok && !n.visited {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (g *Generator) record(m Move) {
	g.steps++
	g.last = &m
}
