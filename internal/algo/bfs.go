package algo

import "github.com/elektrokombinacija/grid-patrol-sim/internal/core"

// ShortestPath moves one hop per tick along the breadth-first shortest
// path to the nearest Destination cell. The search is recomputed from
// the agent's current cell every tick; nothing is cached across ticks.
type ShortestPath struct{}

// NewShortestPath creates a shortest-path strategy.
func NewShortestPath() *ShortestPath { return &ShortestPath{} }

// Name returns the strategy name.
func (s *ShortestPath) Name() string { return "ShortestPath" }

// Step returns the next cell toward the nearest destination, or a
// NoReachableDestinationError when walls cut pos off from every
// Destination cell.
func (s *ShortestPath) Step(g *core.Grid, pos core.Pos) (core.Pos, error) {
	return NextStepTowardDestination(g, pos)
}

// NextStepTowardDestination runs a breadth-first search rooted at pos
// over Empty and Destination cells (4-directional adjacency) and
// returns the first cell on the path to the nearest Destination. If
// pos is itself a Destination it is returned unchanged.
//
// Ties between equally-near destinations are broken by the Cardinal4
// enumeration order (down, right, left, up) and FIFO discovery order,
// so the result is deterministic for a given grid and start.
func NextStepTowardDestination(g *core.Grid, pos core.Pos) (core.Pos, error) {
	// prev maps each discovered cell to its predecessor; the start has
	// no entry, which terminates path reconstruction.
	prev := make(map[core.Pos]core.Pos)
	seen := map[core.Pos]bool{pos: true}
	queue := []core.Pos{pos}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		t, err := g.TerrainAt(cur)
		if err != nil {
			return core.Pos{}, err
		}
		if t == core.Destination {
			return firstHop(prev, pos, cur), nil
		}

		for _, n := range g.Neighbors(cur, core.Cardinal4) {
			nt, err := g.TerrainAt(n)
			if err != nil {
				return core.Pos{}, err
			}
			if nt != core.Empty && nt != core.Destination {
				continue
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			prev[n] = cur
			queue = append(queue, n)
		}
	}

	return core.Pos{}, &core.NoReachableDestinationError{From: pos}
}

// firstHop walks the predecessor chain back from found until it
// reaches start, returning the cell one hop out from start. When the
// start is itself the found destination the start is returned.
func firstHop(prev map[core.Pos]core.Pos, start, found core.Pos) core.Pos {
	step := found
	for {
		p, ok := prev[step]
		if !ok {
			// step == start: the search began on a destination.
			return step
		}
		if p == start {
			return step
		}
		step = p
	}
}
