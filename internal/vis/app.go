// Package vis implements a Gio-based viewer for the grid simulation.
// It is a renderer collaborator: it reads grid and agent state between
// ticks and owns the play/pause/step timing itself.
package vis

import (
	"image"
	"image/color"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/algo"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/core"
	"github.com/elektrokombinacija/grid-patrol-sim/internal/sim"
)

var (
	colBackground  = color.NRGBA{R: 30, G: 30, B: 35, A: 255}
	colEmpty       = color.NRGBA{R: 45, G: 45, B: 52, A: 255}
	colWall        = color.NRGBA{R: 95, G: 95, B: 105, A: 255}
	colSpawn       = color.NRGBA{R: 70, G: 130, B: 90, A: 255}
	colDestination = color.NRGBA{R: 205, G: 160, B: 60, A: 255}
	colAgent       = color.NRGBA{R: 220, G: 80, B: 80, A: 255}
)

// App is the viewer application.
type App struct {
	sim      *sim.Simulator
	playing  bool
	interval time.Duration
	lastTick time.Time
}

// NewApp creates a viewer over a default demo grid with shortest-path
// agents.
func NewApp() (*App, error) {
	g, err := createDefaultGrid()
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(sim.Config{
		Grid:     g,
		Strategy: algo.NewShortestPath(),
	})
	if err != nil {
		return nil, err
	}
	return NewAppWithSimulator(s), nil
}

// NewAppWithSimulator creates a viewer over an existing simulator.
func NewAppWithSimulator(s *sim.Simulator) *App {
	return &App{
		sim:      s,
		interval: 500 * time.Millisecond,
	}
}

// Run starts the application event loop.
// Space toggles playback, right arrow single-steps.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			if a.playing && time.Since(a.lastTick) >= a.interval {
				a.sim.Advance()
				a.lastTick = time.Now()
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.playing {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.playing = !a.playing
		a.lastTick = time.Now()
	case key.NameRightArrow:
		a.sim.Advance()
	}
}

func (a *App) layout(gtx layout.Context) {
	paint.Fill(gtx.Ops, colBackground)

	g := a.sim.Grid()
	w, h := g.Width(), g.Height()

	// Largest square cell that fits the window, grid centered.
	cell := gtx.Constraints.Max.X / w
	if c := gtx.Constraints.Max.Y / h; c < cell {
		cell = c
	}
	if cell < 1 {
		return
	}
	ox := (gtx.Constraints.Max.X - cell*w) / 2
	oy := (gtx.Constraints.Max.Y - cell*h) / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t, _ := g.TerrainAt(core.Pos{X: x, Y: y})
			rect := image.Rect(ox+x*cell+1, oy+y*cell+1, ox+(x+1)*cell-1, oy+(y+1)*cell-1)
			paint.FillShape(gtx.Ops, cellColor(t), clip.Rect(rect).Op())
		}
	}

	inset := cell / 4
	for _, ag := range a.sim.Agents() {
		rect := image.Rect(
			ox+ag.Pos.X*cell+inset, oy+ag.Pos.Y*cell+inset,
			ox+(ag.Pos.X+1)*cell-inset, oy+(ag.Pos.Y+1)*cell-inset,
		)
		paint.FillShape(gtx.Ops, colAgent, clip.Ellipse(rect).Op(gtx.Ops))
	}
}

func cellColor(t core.Terrain) color.NRGBA {
	switch t {
	case core.Wall:
		return colWall
	case core.SpawnPoint:
		return colSpawn
	case core.Destination:
		return colDestination
	default:
		return colEmpty
	}
}

// createDefaultGrid builds the demo corridor map for viewing without a
// map file.
func createDefaultGrid() (*core.Grid, error) {
	return core.NewGrid(`###^###################
### ###################
### ###################
###    ################
###### ################
###### #######$########
######         ########`)
}
