// Command gridpatrolvis provides a GUI viewer for the grid simulation.
package main

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/grid-patrol-sim/internal/vis"
)

func main() {
	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("Grid Patrol"),
			app.Size(unit.Dp(960), unit.Dp(640)),
		)

		application, err := vis.NewApp()
		if err != nil {
			log.Fatal(err)
		}
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
