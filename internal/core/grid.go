package core

import "strings"

// Grid is an immutable rectangular map of terrain classes, addressed
// by (column, row). Construct it once with NewGrid; it is read-only
// afterward and safe to share with strategies and renderers.
type Grid struct {
	cells  [][]Terrain // row-major: cells[y][x]
	width  int
	height int
}

// NewGrid parses a textual map description. Each non-empty line is one
// row; recognized glyphs are ' ' (Empty), '#' (Wall), '^' (SpawnPoint)
// and '$' (Destination). Width is the longest line; shorter lines are
// right-padded with Empty so the grid is rectangular.
func NewGrid(desc string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(desc, "\n") {
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	cells := make([][]Terrain, len(rows))
	for y, row := range rows {
		cells[y] = make([]Terrain, width)
		for x, c := range []rune(row) {
			t, ok := ParseTerrain(c)
			if !ok {
				return nil, &InvalidMapCharacterError{Char: c, Pos: Pos{X: x, Y: y}}
			}
			cells[y][x] = t
		}
		// Cells past the end of a short row stay Empty.
	}

	return &Grid{cells: cells, width: width, height: len(rows)}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies within [0,w) x [0,h).
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// TerrainAt returns the terrain class at p, or an OutOfBoundsError.
func (g *Grid) TerrainAt(p Pos) (Terrain, error) {
	if !g.InBounds(p) {
		return Empty, &OutOfBoundsError{Pos: p}
	}
	return g.cells[p.Y][p.X], nil
}

// SpawnPoints returns the positions of all SpawnPoint cells in row-major
// order.
func (g *Grid) SpawnPoints() []Pos {
	return g.cellsOf(SpawnPoint)
}

// Destinations returns the positions of all Destination cells in
// row-major order.
func (g *Grid) Destinations() []Pos {
	return g.cellsOf(Destination)
}

func (g *Grid) cellsOf(t Terrain) []Pos {
	var out []Pos
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == t {
				out = append(out, Pos{X: x, Y: y})
			}
		}
	}
	return out
}
