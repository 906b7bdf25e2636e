package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/mazeball/maze"
)

func newTestTerminal(t *testing.T) (*terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	term, err := newTerminal(screen, 2, 2, func() (maze.RandomSource, uint64) {
		return maze.ConstantSource(0), 7
	})
	if err != nil {
		t.Fatalf("new terminal: %v", err)
	}
	return term, screen
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want action
	}{
		{"arrow_up", tcell.KeyUp, 0, actionMoveUp},
		{"arrow_left", tcell.KeyLeft, 0, actionMoveLeft},
		{"w", tcell.KeyRune, 'w', actionMoveUp},
		{"D", tcell.KeyRune, 'D', actionMoveRight},
		{"s", tcell.KeyRune, 's', actionMoveDown},
		{"a", tcell.KeyRune, 'a', actionMoveLeft},
		{"hint", tcell.KeyRune, 'h', actionHint},
		{"regenerate", tcell.KeyRune, 'r', actionRegenerate},
		{"q", tcell.KeyRune, 'q', actionQuit},
		{"escape", tcell.KeyEscape, 0, actionQuit},
		{"other", tcell.KeyRune, 'x', actionNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := actionFor(tc.key, tc.r); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTerminalReachesGoal(t *testing.T) {
	term, _ := newTestTerminal(t)
	wins := 0
	term.onWin = func() { wins++ }

	// Down from (0,0) is walled off in this maze.
	steps := []struct {
		a    action
		want maze.Cell
	}{
		{actionMoveDown, maze.Cell{Row: 0, Column: 0}},
		{actionMoveLeft, maze.Cell{Row: 0, Column: 0}},
		{actionMoveRight, maze.Cell{Row: 0, Column: 1}},
		{actionMoveDown, maze.Cell{Row: 1, Column: 1}},
		{actionMoveLeft, maze.Cell{Row: 1, Column: 1}},
	}
	for i, step := range steps {
		keepGoing, err := term.apply(step.a)
		if err != nil || !keepGoing {
			t.Fatalf("step %d: unexpected stop %v %v", i, keepGoing, err)
		}
		if term.ball != step.want {
			t.Fatalf("step %d: expected ball at %v, got %v", i, step.want, term.ball)
		}
	}
	if !term.won || wins != 1 {
		t.Fatalf("expected a single win, won=%v wins=%d", term.won, wins)
	}

	if _, err := term.apply(actionRegenerate); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if term.won || term.ball != (maze.Cell{}) {
		t.Fatalf("regenerate should reset the game")
	}

	keepGoing, err := term.apply(actionQuit)
	if err != nil || keepGoing {
		t.Fatalf("quit should stop the loop")
	}
}

func TestTerminalDraw(t *testing.T) {
	term, screen := newTestTerminal(t)
	term.draw()

	readRune := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}
	if got := readRune(cellX(maze.Cell{}), cellY(maze.Cell{})); got != 'o' {
		t.Fatalf("expected ball at the start cell, got %q", got)
	}
	goal := maze.Cell{Row: 1, Column: 1}
	if got := readRune(cellX(goal), cellY(goal)); got != '#' {
		t.Fatalf("expected goal marker, got %q", got)
	}
	if got := readRune(0, 0); got != '+' {
		t.Fatalf("expected maze corner, got %q", got)
	}

	var status strings.Builder
	for x := 0; x < 10; x++ {
		status.WriteRune(readRune(x, 6))
	}
	if !strings.HasPrefix(status.String(), "seed 7") {
		t.Fatalf("expected status line, got %q", status.String())
	}

	term.hint = true
	term.draw()
	if got := readRune(cellX(maze.Cell{Row: 0, Column: 1}), cellY(maze.Cell{Row: 0, Column: 1})); got != '.' {
		t.Fatalf("expected hint marker on the path, got %q", got)
	}
}
