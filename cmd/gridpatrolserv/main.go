// Command gridpatrolserv runs the grid simulation behind a websocket
// state-broadcast server. Viewers connect to /ws and receive one JSON
// frame per tick; /state serves a one-shot snapshot.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/algo"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/sim"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/stream"
)

const demoMap = `###^###################
### ###################
### ###################
###    ################
###### ################
###### #######$########
######         ########`

func main() {
	var (
		addr     = flag.String("addr", ":8080", "listen address")
		mapPath  = flag.String("map", "", "map file (default: built-in demo map)")
		strategy = flag.String("strategy", "bfs", "movement strategy: bfs or random")
		rate     = flag.Duration("rate", time.Second, "tick interval")
		seed     = flag.Int64("seed", 42, "random seed")
		fallback = flag.Bool("fallback", false, "random-walk fallback when no destination is reachable")
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

	srv := stream.NewServer(s)
	httpSrv := &http.Server{Addr: *addr, Handler: srv.Handler()}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(*rate)
	defer ticker.Stop()

	go func() {
		if err := s.Run(ctx, ticker.C); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("simulation stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("serving %s strategy on %dx%d grid at %s", cfg.Strategy.Name(),
		grid.Width(), grid.Height(), *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
