// Package domain holds the persisted form of generated mazes.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/google/uuid"
)

var ErrMazeIncomplete = errors.New("maze generation is not complete")

// MazeRecord is a completed maze as stored in the archive.
type MazeRecord struct {
	ID          uuid.UUID `bson:"_id"`
	Size        int       `bson:"size"`
	Seed        int64     `bson:"seed"`
	Run         int       `bson:"run"` // resets since creation; replaying Run+1 runs from Seed reproduces Walls
	Steps       int       `bson:"steps"`
	Walls       [][]uint8 `bson:"walls"` // [y][x], bit0=N bit1=E bit2=S bit3=W
	CompletedAt time.Time `bson:"completedAt"`
}

// NewMazeRecord captures a completed snapshot for archiving.
func NewMazeRecord(id uuid.UUID, seed int64, run int, s maze.Snapshot) (*MazeRecord, error) {
	if !s.Complete() {
		return nil, ErrMazeIncomplete
	}

	walls := make([][]uint8, len(s.Cells))
	for y, row := range s.Cells {
		walls[y] = make([]uint8, len(row))
		for x, c := range row {
			walls[y][x] = uint8(c.Walls)
		}
	}

	return &MazeRecord{
		ID:          id,
		Size:        s.Size,
		Seed:        seed,
		Run:         run,
		Steps:       s.Steps,
		Walls:       walls,
		CompletedAt: time.Now().UTC(),
	}, nil
}

// Snapshot rebuilds the read-only view of an archived maze.
func (r *MazeRecord) Snapshot() maze.Snapshot {
	cells := make([][]maze.CellView, len(r.Walls))
	for y, row := range r.Walls {
		cells[y] = make([]maze.CellView, len(row))
		for x, w := range row {
			cells[y][x] = maze.CellView{X: x, Y: y, Walls: maze.Walls(w), Visited: true}
		}
	}

	return maze.Snapshot{
		Size:  r.Size,
		State: maze.Complete,
		Steps: r.Steps,
		Cells: cells,
		Stack: []maze.Position{},
	}
}

// MazeSession describes a live maze held by the session manager.
type MazeSession struct {
	ID        uuid.UUID `json:"id"`
	Size      int       `json:"size"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}
