package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	rows := flag.Int("rows", 0, "maze rows (0 uses prefabs/maze.yaml)")
	columns := flag.Int("columns", 0, "maze columns (0 uses prefabs/maze.yaml)")
	seed := flag.Uint64("seed", 0, "seed for the first maze (0 picks one from the clock)")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		Rows:    *rows,
		Columns: *columns,
		Seed:    *seed,
		Debug:   *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(game.width), int(game.height))
	ebiten.SetWindowTitle("mazeball")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
