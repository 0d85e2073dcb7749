package algo

import (
	"errors"
	"testing"

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

func TestNextStepTowardDestination(t *testing.T) {
	g := mustGrid(t, "^ #\n# $")

	// The only open route from (0,0) is right to (1,0).
	got, err := NextStepTowardDestination(g, core.Pos{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("NextStepTowardDestination: %v", err)
	}
	if (got != core.Pos{X: 1, Y: 0}) {
		t.Errorf("next step = %v, want (1,0)", got)
	}
}

func TestNextStepOptimality(t *testing.T) {
	// The destination is exactly 7 hops from the spawn through the
	// corridor; every intermediate cell must be open floor.
	g := mustGrid(t, `#^####
# ####
#    #
#### #
####$#`)

	pos := core.Pos{X: 1, Y: 0}
	const hops = 7

	for i := 0; i < hops; i++ {
		tr, err := g.TerrainAt(pos)
		if err != nil {
			t.Fatalf("hop %d: %v", i, err)
		}
		if tr == core.Wall {
			t.Fatalf("hop %d landed on a wall at %v", i, pos)
		}
		if tr == core.Destination {
			t.Fatalf("reached destination after %d hops, want %d", i, hops)
		}

		next, err := NextStepTowardDestination(g, pos)
		if err != nil {
			t.Fatalf("hop %d: %v", i, err)
		}
		pos = next
	}

	tr, err := g.TerrainAt(pos)
	if err != nil {
		t.Fatal(err)
	}
	if tr != core.Destination {
		t.Errorf("after %d hops at %v (%v), want Destination", hops, pos, tr)
	}
}

func TestNextStepAtDestination(t *testing.T) {
	g := mustGrid(t, "$ ")

	start := core.Pos{X: 0, Y: 0}
	got, err := NextStepTowardDestination(g, start)
	if err != nil {
		t.Fatalf("NextStepTowardDestination: %v", err)
	}
	if got != start {
		t.Errorf("step from destination = %v, want %v (stay)", got, start)
	}
}

func TestNextStepNoReachableDestination(t *testing.T) {
	g := mustGrid(t, `###$
#^##
####`)

	start := core.Pos{X: 1, Y: 1}
	_, err := NextStepTowardDestination(g, start)

	var nrErr *core.NoReachableDestinationError
	if !errors.As(err, &nrErr) {
		t.Fatalf("error = %v, want NoReachableDestinationError", err)
	}
	if nrErr.From != start {
		t.Errorf("From = %v, want %v", nrErr.From, start)
	}
}

func TestNextStepTieBreakDeterministic(t *testing.T) {
	// Two destinations one hop away. The right neighbor is enumerated
	// before the left one, so it must win on every invocation.
	g := mustGrid(t, "$ $")
	start := core.Pos{X: 1, Y: 0}

	want := core.Pos{X: 2, Y: 0}
	for i := 0; i < 50; i++ {
		got, err := NextStepTowardDestination(g, start)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("run %d: next step = %v, want %v", i, got, want)
		}
	}
}

func TestSearchDoesNotCrossSpawnPoints(t *testing.T) {
	// The search expands only Empty and Destination cells, so a spawn
	// cell blocks the sole route to the destination.
	g := mustGrid(t, "^^$")

	_, err := NextStepTowardDestination(g, core.Pos{X: 0, Y: 0})
	var nrErr *core.NoReachableDestinationError
	if !errors.As(err, &nrErr) {
		t.Fatalf("error = %v, want NoReachableDestinationError", err)
	}
}

func TestShortestPathStrategy(t *testing.T) {
	s := NewShortestPath()
	if s.Name() != "ShortestPath" {
		t.Errorf("Name = %q", s.Name())
	}

	g := mustGrid(t, "^ $")
	got, err := s.Step(g, core.Pos{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if (got != core.Pos{X: 1, Y: 0}) {
		t.Errorf("Step = %v, want (1,0)", got)
	}
}
