// Package algo implements agent movement strategies over the grid.
package algo

import "github.com/elektrokombinacija/grid-patrol-sim/internal/core"

// Strategy is the interface for movement policies.
type Strategy interface {
	// Step proposes the agent's next position from pos. The returned
	// position is always in-bounds and traversable; on error the agent
	// should be treated as staying at pos for this tick.
	Step(g *core.Grid, pos core.Pos) (core.Pos, error)

	// Name returns the strategy name.
	Name() string
}
