package algo

import (
	"math/rand"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
)

// RandomWalk picks a uniformly random Empty 4-neighbor each tick, or
// stays put when none exists. Destination and SpawnPoint cells are not
// candidates: a pure random walker only wanders open floor. The policy
// is memoryless; each tick's choice is independent of all previous
// ticks.
type RandomWalk struct {
	rng *rand.Rand
}

// NewRandomWalk creates a random-walk strategy driven by rng. Passing
// the generator in keeps test runs reproducible with a seeded source.
func NewRandomWalk(rng *rand.Rand) *RandomWalk {
	return &RandomWalk{rng: rng}
}

// Name returns the strategy name.
func (s *RandomWalk) Name() string { return "RandomWalk" }

// Step returns a uniformly random open neighbor of pos, or pos itself
// when the candidate set is empty. It never fails.
func (s *RandomWalk) Step(g *core.Grid, pos core.Pos) (core.Pos, error) {
	var candidates []core.Pos
	for _, n := range g.Neighbors(pos, core.Cardinal4) {
		t, err := g.TerrainAt(n)
		if err != nil {
			continue
		}
		if t == core.Empty {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return pos, nil
	}
	return candidates[s.rng.Intn(len(candidates))], nil
}
