// Command gridpatrol runs a headless grid simulation, printing one
// ASCII frame per tick.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/algo"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/sim"
)

// demoMap is used when no map file is given. Glyphs: ' ' floor,
// '#' wall, '^' spawn, '$' destination.
const demoMap = `###^###################
### ###################
### ###################
###    ################
###### ################
###### #######$########
######         ########`

func main() {
	var (
		mapPath     = flag.String("map", "", "map file (default: built-in demo map)")
		strategy    = flag.String("strategy", "bfs", "movement strategy: bfs or random")
		ticks       = flag.Int("ticks", 20, "number of ticks to simulate")
		rate        = flag.Duration("rate", 250*time.Millisecond, "tick interval")
		seed        = flag.Int64("seed", 42, "random seed")
		fallback    = flag.Bool("fallback", false, "random-walk fallback when no destination is reachable")
		metricsPath = flag.String("metrics", "", "write run metrics JSON to this file")
	)
	flag.Parse()

	desc := demoMap
	if *mapPath != "" {
		data, err := os.ReadFile(*mapPath)
		if err != nil {
			log.Fatalf("read map: %v", err)
		}
		desc = string(data)
	}

	grid, err := core.NewGrid(desc)
	if err != nil {
		log.Fatalf("parse map: %v", err)
	}

	cfg := sim.DefaultConfig()
	cfg.Grid = grid
	cfg.Seed = *seed
	cfg.FallbackRandomWalk = *fallback

	switch *strategy {
	case "bfs":
		cfg.Strategy = algo.NewShortestPath()
	case "random":
		cfg.Strategy = algo.NewRandomWalk(rand.New(rand.NewSource(*seed)))
	default:
		log.Fatalf("unknown strategy %q (want bfs or random)", *strategy)
	}

	s, err := sim.NewSimulator(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("%s on %dx%d grid, %d agents, %d ticks\n",
		cfg.Strategy.Name(), grid.Width(), grid.Height(), len(s.Agents()), *ticks)
	fmt.Print(renderFrame(s, 0))

	s.SetTickCallback(func(tick int) {
		fmt.Print(renderFrame(s, tick))
		if tick >= *ticks {
			cancel()
		}
	})

	ticker := time.NewTicker(*rate)
	defer ticker.Stop()

	if err := s.Run(ctx, ticker.C); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}

	m := s.Metrics()
	fmt.Printf("ticks=%d moves=%d holds=%d failures=%d fallbacks=%d at-goal=%d\n",
		m.Ticks, m.Moves, m.Holds, m.StrategyFailures, m.Fallbacks, m.AgentsAtGoal)

	if *metricsPath != "" {
		if err := s.ExportMetrics(*metricsPath); err != nil {
			log.Fatalf("export metrics: %v", err)
		}
	}
}

// renderFrame draws the grid with '*' agent markers over the terrain
// glyphs.
func renderFrame(s *sim.Simulator, tick int) string {
	g := s.Grid()

	occupied := make(map[core.Pos]bool)
	for _, a := range s.Agents() {
		occupied[a.Pos] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- tick %d --\n", tick)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := core.Pos{X: x, Y: y}
			if occupied[p] {
				b.WriteRune('*')
				continue
			}
			t, _ := g.TerrainAt(p)
			b.WriteRune(t.Symbol())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
