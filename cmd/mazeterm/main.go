// Command mazeterm plays a generated maze in the terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/mazeball/audio"
	"github.com/milk9111/mazeball/maze"
	"github.com/milk9111/mazeball/prefabs"
)

func main() {
	rows := flag.Int("rows", 0, "maze rows (0 uses prefabs/maze.yaml)")
	columns := flag.Int("columns", 0, "maze columns (0 uses prefabs/maze.yaml)")
	seed := flag.Uint64("seed", 0, "seed for the first maze (0 picks one from the clock)")
	mute := flag.Bool("mute", false, "disable the win chime")
	flag.Parse()

	spec, err := prefabs.LoadMazeSpec()
	if err != nil {
		log.Fatal(err)
	}
	if *rows > 0 {
		spec.Rows = *rows
	}
	if *columns > 0 {
		spec.Columns = *columns
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	next := *seed
	t, err := newTerminal(screen, spec.Rows, spec.Columns, func() (maze.RandomSource, uint64) {
		s := next
		if s == 0 {
			s = uint64(time.Now().UnixNano())
		}
		next = 0
		return maze.NewRandSource(s), s
	})
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}

	if !*mute {
		player := audio.NewPlayer(0.6)
		defer player.Close()
		t.onWin = player.PlayChime
	}

	for {
		t.draw()
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		keepGoing, err := t.handle(ev)
		if err != nil {
			screen.Fini()
			log.Fatal(err)
		}
		if !keepGoing {
			return
		}
	}
}
