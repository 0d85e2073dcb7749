// Package sim advances a set of independent agents across a grid, one
// strategy application per agent per tick. Tick scheduling and
// termination are supplied by the caller; the simulator performs no
// I/O of its own.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/algo"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
)

// Config configures a simulation run.
type Config struct {
	// Grid to simulate on. Required.
	Grid *core.Grid

	// Strategy applied to every agent each tick. Required.
	Strategy algo.Strategy

	// Starts are the initial agent positions. When empty, one agent is
	// placed on every SpawnPoint cell of the grid.
	Starts []core.Pos

	// FallbackRandomWalk makes an agent take a random-walk step on the
	// tick its strategy fails (no destination reachable) instead of
	// holding position.
	FallbackRandomWalk bool

	// Seed for the random source used by fallback steps.
	Seed int64

	// Verbose enables per-tick logging of strategy failures.
	Verbose bool
}

// DefaultConfig returns the default simulation configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 42,
	}
}

// Metrics collects counters over a simulation run.
type Metrics struct {
	Ticks            int `json:"ticks"`
	Moves            int `json:"moves"`
	Holds            int `json:"holds"`
	StrategyFailures int `json:"strategy_failures"`
	Fallbacks        int `json:"fallbacks"`
	AgentsAtGoal     int `json:"agents_at_goal"`
}

// Simulator owns the grid and the ordered agent set. Agent order is
// stable across ticks. The grid is read-only for the whole run; agent
// positions mutate only inside Advance.
type Simulator struct {
	mu sync.Mutex

	grid     *core.Grid
	strategy algo.Strategy
	fallback *algo.RandomWalk
	agents   []*core.Agent
	metrics  Metrics
	verbose  bool

	onTick func(tick int)
}

// NewSimulator creates a simulator from cfg, placing one agent per
// start position in order.
func NewSimulator(cfg Config) (*Simulator, error) {
	if cfg.Grid == nil {
		return nil, errors.New("sim: config has no grid")
	}
	if cfg.Strategy == nil {
		return nil, errors.New("sim: config has no strategy")
	}

	starts := cfg.Starts
	if len(starts) == 0 {
		starts = cfg.Grid.SpawnPoints()
	}
	if len(starts) == 0 {
		return nil, errors.New("sim: no agent start positions and no spawn points on grid")
	}

	agents := make([]*core.Agent, len(starts))
	for i, p := range starts {
		t, err := cfg.Grid.TerrainAt(p)
		if err != nil {
			return nil, fmt.Errorf("sim: agent %d start: %w", i, err)
		}
		if !t.Traversable() {
			return nil, fmt.Errorf("sim: agent %d start (%d,%d) is a wall", i, p.X, p.Y)
		}
		agents[i] = &core.Agent{ID: core.AgentID(i), Pos: p}
	}

	s := &Simulator{
		grid:     cfg.Grid,
		strategy: cfg.Strategy,
		agents:   agents,
		verbose:  cfg.Verbose,
	}
	if cfg.FallbackRandomWalk {
		s.fallback = algo.NewRandomWalk(rand.New(rand.NewSource(cfg.Seed)))
	}
	return s, nil
}

// SetTickCallback registers fn to be invoked after every Advance,
// outside the simulator lock. Renderers hook in here.
func (s *Simulator) SetTickCallback(fn func(tick int)) {
	s.onTick = fn
}

// Advance moves every agent by one tick in fixed iteration order.
// Strategy failures are isolated per agent: the affected agent holds
// position (or takes a fallback random-walk step) and the tick
// continues for the rest.
func (s *Simulator) Advance() {
	s.mu.Lock()
	s.metrics.Ticks++

	for _, a := range s.agents {
		next, err := s.strategy.Step(s.grid, a.Pos)
		if err != nil {
			s.metrics.StrategyFailures++
			if s.verbose {
				log.Printf("tick %d agent %d: %v", s.metrics.Ticks, a.ID, err)
			}
			if s.fallback != nil {
				next, _ = s.fallback.Step(s.grid, a.Pos)
				s.metrics.Fallbacks++
			} else {
				next = a.Pos
			}
		}
		if next == a.Pos {
			s.metrics.Holds++
		} else {
			s.metrics.Moves++
		}
		a.Pos = next
	}

	s.metrics.AgentsAtGoal = s.countAtGoal()
	tick := s.metrics.Ticks
	s.mu.Unlock()

	if s.onTick != nil {
		s.onTick(tick)
	}
}

// countAtGoal counts agents standing on Destination cells. Caller
// holds s.mu.
func (s *Simulator) countAtGoal() int {
	n := 0
	for _, a := range s.agents {
		if t, err := s.grid.TerrainAt(a.Pos); err == nil && t == core.Destination {
			n++
		}
	}
	return n
}

// Run consumes external tick events until the context is cancelled or
// the tick channel closes. Exactly one Advance executes per tick.
func (s *Simulator) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Advance()
		}
	}
}

// Grid returns the simulated grid. It is immutable and safe to read
// concurrently.
func (s *Simulator) Grid() *core.Grid {
	return s.grid
}

// Agents returns a snapshot of the agent set in iteration order.
func (s *Simulator) Agents() []core.Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Agent, len(s.agents))
	for i, a := range s.agents {
		out[i] = *a
	}
	return out
}

// Metrics returns current run metrics.
func (s *Simulator) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// ExportMetrics writes run metrics to a JSON file.
func (s *Simulator) ExportMetrics(path string) error {
	m := s.Metrics()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
