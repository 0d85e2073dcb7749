package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/algo"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
)

func mustGrid(t *testing.T, desc string) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(desc)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func newShortestPathSim(t *testing.T, desc string) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Grid = mustGrid(t, desc)
	cfg.Strategy = algo.NewShortestPath()
	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

func TestAdvanceReachesDestination(t *testing.T) {
	// Spawn at (0,0), destination at (2,1); the only route is
	// (1,0) -> (1,1) -> (2,1).
	s := newShortestPathSim(t, "^ #\n# $")

	grid := s.Grid()
	dest := core.Pos{X: 2, Y: 1}

	for tick := 1; tick <= 3; tick++ {
		s.Advance()
		pos := s.Agents()[0].Pos
		tr, err := grid.TerrainAt(pos)
		if err != nil {
			t.Fatalf("tick %d: agent out of bounds at %v", tick, pos)
		}
		if tr == core.Wall {
			t.Fatalf("tick %d: agent on a wall at %v", tick, pos)
		}
	}

	if pos := s.Agents()[0].Pos; pos != dest {
		t.Fatalf("after 3 ticks agent at %v, want %v", pos, dest)
	}

	// Further ticks leave the arrived agent in place.
	for tick := 0; tick < 5; tick++ {
		s.Advance()
		if pos := s.Agents()[0].Pos; pos != dest {
			t.Fatalf("agent left destination, now at %v", pos)
		}
	}

	m := s.Metrics()
	if m.AgentsAtGoal != 1 {
		t.Errorf("AgentsAtGoal = %d, want 1", m.AgentsAtGoal)
	}
	if m.Moves != 3 {
		t.Errorf("Moves = %d, want 3", m.Moves)
	}
}

func TestAdvanceIsolatesStuckAgents(t *testing.T) {
	// Agent 0 is walled in; agent 1 has a clear 3-hop run to the
	// destination. The stuck agent must not halt the tick.
	s := newShortestPathSim(t, `####
#^##
####
^  $`)

	for tick := 0; tick < 5; tick++ {
		s.Advance()
	}

	agents := s.Agents()
	if (agents[0].Pos != core.Pos{X: 1, Y: 1}) {
		t.Errorf("stuck agent moved to %v", agents[0].Pos)
	}
	if (agents[1].Pos != core.Pos{X: 3, Y: 3}) {
		t.Errorf("free agent at %v, want (3,3)", agents[1].Pos)
	}

	m := s.Metrics()
	if m.StrategyFailures != 5 {
		t.Errorf("StrategyFailures = %d, want 5", m.StrategyFailures)
	}
	if m.AgentsAtGoal != 1 {
		t.Errorf("AgentsAtGoal = %d, want 1", m.AgentsAtGoal)
	}
}

func TestAdvanceFallbackRandomWalk(t *testing.T) {
	// No destination is reachable, but the agent has exactly one open
	// neighbor; with the fallback enabled it must take it.
	cfg := DefaultConfig()
	cfg.Grid = mustGrid(t, `#####
#^ #$
#####`)
	cfg.Strategy = algo.NewShortestPath()
	cfg.FallbackRandomWalk = true

	s, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}

	s.Advance()

	if pos := s.Agents()[0].Pos; (pos != core.Pos{X: 2, Y: 1}) {
		t.Errorf("agent at %v, want fallback step to (2,1)", pos)
	}
	m := s.Metrics()
	if m.StrategyFailures != 1 || m.Fallbacks != 1 {
		t.Errorf("failures=%d fallbacks=%d, want 1 and 1", m.StrategyFailures, m.Fallbacks)
	}
}

func TestNewSimulatorValidation(t *testing.T) {
	grid := mustGrid(t, "^ $")

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no grid", Config{Strategy: algo.NewShortestPath()}},
		{"no strategy", Config{Grid: grid}},
		{"no starts or spawns", Config{Grid: mustGrid(t, "  $"), Strategy: algo.NewShortestPath()}},
		{"start on wall", Config{
			Grid:     mustGrid(t, "# $"),
			Strategy: algo.NewShortestPath(),
			Starts:   []core.Pos{{X: 0, Y: 0}},
		}},
		{"start out of bounds", Config{
			Grid:     grid,
			Strategy: algo.NewShortestPath(),
			Starts:   []core.Pos{{X: 9, Y: 9}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSimulator(tt.cfg); err == nil {
				t.Error("NewSimulator accepted an invalid config")
			}
		})
	}
}

func TestAgentsSpawnInRowMajorOrder(t *testing.T) {
	s := newShortestPathSim(t, "^ ^\n $ \n^  ")

	agents := s.Agents()
	want := []core.Pos{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	if len(agents) != len(want) {
		t.Fatalf("got %d agents, want %d", len(agents), len(want))
	}
	for i, w := range want {
		if agents[i].ID != core.AgentID(i) {
			t.Errorf("agent %d has ID %d", i, agents[i].ID)
		}
		if agents[i].Pos != w {
			t.Errorf("agent %d at %v, want %v", i, agents[i].Pos, w)
		}
	}
}

func TestRunConsumesTicksUntilChannelCloses(t *testing.T) {
	s := newShortestPathSim(t, "^ $")

	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background(), ticks)
	}()

	for i := 0; i < 4; i++ {
		ticks <- time.Now()
	}
	close(ticks)

	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := s.Metrics().Ticks; got != 4 {
		t.Errorf("Ticks = %d, want 4", got)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := newShortestPathSim(t, "^ $")

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, ticks)
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestTickCallback(t *testing.T) {
	s := newShortestPathSim(t, "^ $")

	var got []int
	s.SetTickCallback(func(tick int) {
		got = append(got, tick)
	})

	s.Advance()
	s.Advance()
	s.Advance()

	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("callback ticks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback tick[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
