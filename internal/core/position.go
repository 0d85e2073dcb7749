package core

// Pos is an integer (column, row) grid coordinate.
type Pos struct {
	X, Y int
}

// Add returns the position offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

// Offset sets for neighbor enumeration. Order matters: it is the
// tie-break source for BFS, so downstream results stay deterministic.
var (
	// Cardinal4 enumerates down, right, left, up.
	Cardinal4 = []Pos{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}

	// Compass8 adds the four diagonals after Cardinal4.
	Compass8 = []Pos{{0, 1}, {1, 0}, {-1, 0}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Neighbors returns the in-bounds cells adjacent to p under the given
// offset set, preserving offset order. The slice is freshly allocated
// on every call.
func (g *Grid) Neighbors(p Pos, offsets []Pos) []Pos {
	out := make([]Pos, 0, len(offsets))
	for _, d := range offsets {
		n := p.Add(d)
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}
