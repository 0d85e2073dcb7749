// Package core defines the grid world model: terrain, positions, agents.
package core

// Terrain classifies a grid cell.
type Terrain int

const (
	Empty       Terrain = iota // Open floor, traversable
	Wall                       // Blocking
	SpawnPoint                 // Traversable, marks an agent origin
	Destination                // Traversable, goal for pathfinding
)

func (t Terrain) String() string {
	return [...]string{"Empty", "Wall", "SpawnPoint", "Destination"}[t]
}

// Symbol returns the map-text glyph for a terrain class.
func (t Terrain) Symbol() rune {
	return [...]rune{' ', '#', '^', '$'}[t]
}

// Traversable reports whether an agent may occupy a cell of this class.
func (t Terrain) Traversable() bool {
	return t != Wall
}

// ParseTerrain maps a map-text glyph to its terrain class.
func ParseTerrain(c rune) (Terrain, bool) {
	switch c {
	case ' ':
		return Empty, true
	case '#':
		return Wall, true
	case '^':
		return SpawnPoint, true
	case '$':
		return Destination, true
	default:
		return Empty, false
	}
}
