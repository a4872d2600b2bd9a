package maze

import "fmt"

// Direction is a compass direction. The numeric value doubles as the wall bit
// index, so the order is fixed: North, East, South, West.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every compass direction in bit order.
var Directions = [4]Direction{North, East, South, West}

var deltas = [4]struct{ dx, dy int }{
	North: {0, -1},
	East:  {1, 0},
	South: {0, 1},
	West:  {-1, 0},
}

// Opposite returns the direction facing back, (d+2) mod 4.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Delta returns the coordinate offset of one move in direction d.
func (d Direction) Delta() (dx, dy int) {
	delta := deltas[d%4]
	return delta.dx, delta.dy
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Walls is a 4-bit set of walls: bit0=N, bit1=E, bit2=S, bit3=W.
// A set bit means the wall is present.
type Walls uint8

// AllWalls is the state of a freshly built cell.
const AllWalls Walls = 1<<North | 1<<East | 1<<South | 1<<West

// Has reports whether the wall on side d is present.
func (w Walls) Has(d Direction) bool {
	return w&(1<<d) != 0
}

// Without returns w with the wall on side d cleared.
func (w Walls) Without(d Direction) Walls {
	return w &^ (1 << d)
}

// Count returns the number of walls still standing.
func (w Walls) Count() int {
	n := 0
	for _, d := range Directions {
		if w.Has(d) {
			n++
		}
	}
	return n
}
