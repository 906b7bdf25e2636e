package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/mazeball/maze"
)

type action int

const (
	actionNone action = iota
	actionMoveUp
	actionMoveRight
	actionMoveDown
	actionMoveLeft
	actionHint
	actionRegenerate
	actionQuit
)

var (
	wallStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	ballStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	goalStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	pathStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	textStyle = tcell.StyleDefault
)

// terminal plays a maze one cell per key press.
type terminal struct {
	screen  tcell.Screen
	rows    int
	columns int

	newSource func() (maze.RandomSource, uint64)
	onWin     func()

	topo *maze.Topology
	seed uint64
	ball maze.Cell
	hint bool
	won  bool
}

func newTerminal(screen tcell.Screen, rows, columns int, newSource func() (maze.RandomSource, uint64)) (*terminal, error) {
	t := &terminal{
		screen:    screen,
		rows:      rows,
		columns:   columns,
		newSource: newSource,
	}
	if err := t.regenerate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *terminal) regenerate() error {
	src, seed := t.newSource()
	topo, err := maze.Generate(t.rows, t.columns, src)
	if err != nil {
		return err
	}
	t.topo = topo
	t.seed = seed
	t.ball = maze.Cell{}
	t.won = false
	return nil
}

func (t *terminal) goal() maze.Cell {
	return maze.Cell{Row: t.rows - 1, Column: t.columns - 1}
}

func actionFor(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyUp:
		return actionMoveUp
	case tcell.KeyRight:
		return actionMoveRight
	case tcell.KeyDown:
		return actionMoveDown
	case tcell.KeyLeft:
		return actionMoveLeft
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return actionMoveUp
		case 'd', 'D':
			return actionMoveRight
		case 's', 'S':
			return actionMoveDown
		case 'a', 'A':
			return actionMoveLeft
		case 'h', 'H':
			return actionHint
		case 'r', 'R':
			return actionRegenerate
		case 'q', 'Q':
			return actionQuit
		}
	}
	return actionNone
}

// apply runs a and reports whether the program should keep going.
func (t *terminal) apply(a action) (bool, error) {
	switch a {
	case actionMoveUp:
		t.move(maze.Up)
	case actionMoveRight:
		t.move(maze.Right)
	case actionMoveDown:
		t.move(maze.Down)
	case actionMoveLeft:
		t.move(maze.Left)
	case actionHint:
		t.hint = !t.hint
	case actionRegenerate:
		if err := t.regenerate(); err != nil {
			return false, err
		}
	case actionQuit:
		return false, nil
	}
	return true, nil
}

func (t *terminal) move(d maze.Direction) {
	if t.won || !t.topo.Open(t.ball, d) {
		return
	}
	t.ball = t.ball.Step(d)
	if t.ball == t.goal() {
		t.won = true
		if t.onWin != nil {
			t.onWin()
		}
	}
}

func (t *terminal) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.apply(actionFor(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true, nil
}

// cellX and cellY map a maze cell to the screen position of its interior in
// the Topology.String drawing.
func cellX(c maze.Cell) int { return 3*c.Column + 1 }
func cellY(c maze.Cell) int { return 2*c.Row + 1 }

func (t *terminal) draw() {
	t.screen.Clear()

	lines := strings.Split(strings.TrimRight(t.topo.String(), "\n"), "\n")
	for y, line := range lines {
		for x, r := range []rune(line) {
			if r != ' ' {
				t.screen.SetContent(x, y, r, nil, wallStyle)
			}
		}
	}

	if t.hint {
		for _, c := range t.topo.Path(t.ball, t.goal()) {
			t.screen.SetContent(cellX(c), cellY(c), '.', nil, pathStyle)
		}
	}
	goal := t.goal()
	t.screen.SetContent(cellX(goal), cellY(goal), '#', nil, goalStyle)
	t.screen.SetContent(cellX(t.ball), cellY(t.ball), 'o', nil, ballStyle)

	status := fmt.Sprintf("seed %d  arrows/wasd move  h hint  r new maze  q quit", t.seed)
	if t.won {
		status = fmt.Sprintf("You won! seed %d  r next maze  q quit", t.seed)
	}
	t.drawText(0, len(lines)+1, status)
	t.screen.Show()
}

func (t *terminal) drawText(x, y int, s string) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, textStyle)
	}
}
