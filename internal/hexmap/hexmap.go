// Package hexmap provides axial hex coordinates and the spatial math the
// campaign map is built on. The third cube coordinate s is always derived:
// s = -q - r.
package hexmap

import "fmt"

// Coord represents a position on the hex grid using axial coordinates.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// String renders the coordinate as "(q, r)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Q, c.R)
}

// NeighborDirections defines the six neighbor offsets in axial coordinates,
// starting east and winding counterclockwise.
var NeighborDirections = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range NeighborDirections {
		result[i] = Coord{Q: c.Q + dir.Q, R: c.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates: the maximum of
// the three absolute differences in cube coordinates.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := a.S() - b.S()
	if dq < 0 {
		dq = -dq
	}
	if dr < 0 {
		dr = -dr
	}
	if ds < 0 {
		ds = -ds
	}
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// InRange returns every coordinate within radius hexes of center, the center
// itself included. A radius of n yields 3n²+3n+1 coordinates. Negative radii
// are rejected.
func InRange(center Coord, radius int) ([]Coord, error) {
	if radius < 0 {
		return nil, fmt.Errorf("hex range radius must be non-negative, got %d", radius)
	}
	coords := make([]Coord, 0, 3*radius*radius+3*radius+1)
	for dq := -radius; dq <= radius; dq++ {
		lo := -radius
		if -dq-radius > lo {
			lo = -dq - radius
		}
		hi := radius
		if -dq+radius < hi {
			hi = -dq + radius
		}
		for dr := lo; dr <= hi; dr++ {
			coords = append(coords, Coord{Q: center.Q + dq, R: center.R + dr})
		}
	}
	return coords, nil
}
