package maze

import (
	"strconv"
	"strings"
)

// Cell addresses one grid unit.
type Cell struct {
	Row    int
	Column int
}

func (c Cell) String() string {
	return strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Column)
}

// Direction is one of the four axis-aligned moves.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Step returns the neighbour of c in direction d. The result may be outside
// the grid.
func (c Cell) Step(d Direction) Cell {
	switch d {
	case Up:
		return Cell{Row: c.Row - 1, Column: c.Column}
	case Right:
		return Cell{Row: c.Row, Column: c.Column + 1}
	case Down:
		return Cell{Row: c.Row + 1, Column: c.Column}
	case Left:
		return Cell{Row: c.Row, Column: c.Column - 1}
	}
	return c
}

// Topology records which passages between adjacent cells are open. It is
// never modified after Generate returns it.
type Topology struct {
	rows    int
	columns int

	// vertical[r][c]: passage between (r,c) and (r,c+1).
	vertical [][]bool
	// horizontal[r][c]: passage between (r,c) and (r+1,c).
	horizontal [][]bool
}

func newTopology(rows, columns int) *Topology {
	t := &Topology{
		rows:       rows,
		columns:    columns,
		vertical:   make([][]bool, rows),
		horizontal: make([][]bool, rows-1),
	}
	for r := range t.vertical {
		t.vertical[r] = make([]bool, columns-1)
	}
	for r := range t.horizontal {
		t.horizontal[r] = make([]bool, columns)
	}
	return t
}

func (t *Topology) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

func (t *Topology) Columns() int {
	if t == nil {
		return 0
	}
	return t.columns
}

// Contains reports whether c lies inside the grid.
func (t *Topology) Contains(c Cell) bool {
	return t != nil && c.Row >= 0 && c.Row < t.rows && c.Column >= 0 && c.Column < t.columns
}

// VerticalOpen reports whether there is no wall between (r,c) and (r,c+1).
func (t *Topology) VerticalOpen(r, c int) bool {
	if t == nil || r < 0 || r >= len(t.vertical) || c < 0 || c >= len(t.vertical[r]) {
		return false
	}
	return t.vertical[r][c]
}

// HorizontalOpen reports whether there is no wall between (r,c) and (r+1,c).
func (t *Topology) HorizontalOpen(r, c int) bool {
	if t == nil || r < 0 || r >= len(t.horizontal) || c < 0 || c >= len(t.horizontal[r]) {
		return false
	}
	return t.horizontal[r][c]
}

// Open reports whether a move from c in direction d is passable.
func (t *Topology) Open(c Cell, d Direction) bool {
	if !t.Contains(c) {
		return false
	}
	switch d {
	case Up:
		return t.HorizontalOpen(c.Row-1, c.Column)
	case Right:
		return t.VerticalOpen(c.Row, c.Column)
	case Down:
		return t.HorizontalOpen(c.Row, c.Column)
	case Left:
		return t.VerticalOpen(c.Row, c.Column-1)
	}
	return false
}

func (t *Topology) OpenVertical() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, row := range t.vertical {
		for _, open := range row {
			if open {
				n++
			}
		}
	}
	return n
}

func (t *Topology) OpenHorizontal() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, row := range t.horizontal {
		for _, open := range row {
			if open {
				n++
			}
		}
	}
	return n
}

// OpenPassages is the total number of open passages. For a perfect maze it is
// rows*columns-1.
func (t *Topology) OpenPassages() int {
	return t.OpenVertical() + t.OpenHorizontal()
}

// Reachable counts the cells reachable from start through open passages.
func (t *Topology) Reachable(start Cell) int {
	if !t.Contains(start) {
		return 0
	}
	seen := make([]bool, t.rows*t.columns)
	stack := []Cell{start}
	seen[start.Row*t.columns+start.Column] = true
	count := 0
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for d := Up; d <= Left; d++ {
			if !t.Open(c, d) {
				continue
			}
			n := c.Step(d)
			idx := n.Row*t.columns + n.Column
			if seen[idx] {
				continue
			}
			seen[idx] = true
			stack = append(stack, n)
		}
	}
	return count
}

// Path returns the cells from `from` to `to` inclusive, or nil if either
// cell is outside the grid or no route exists.
func (t *Topology) Path(from, to Cell) []Cell {
	if !t.Contains(from) || !t.Contains(to) {
		return nil
	}
	index := func(c Cell) int { return c.Row*t.columns + c.Column }

	cameFrom := make([]int, t.rows*t.columns)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	cameFrom[index(from)] = index(from)

	queue := []Cell{from}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == to {
			break
		}
		for d := Up; d <= Left; d++ {
			if !t.Open(c, d) {
				continue
			}
			n := c.Step(d)
			if cameFrom[index(n)] >= 0 {
				continue
			}
			cameFrom[index(n)] = index(c)
			queue = append(queue, n)
		}
	}
	if cameFrom[index(to)] < 0 {
		return nil
	}

	var path []Cell
	for i := index(to); ; i = cameFrom[i] {
		path = append(path, Cell{Row: i / t.columns, Column: i % t.columns})
		if i == index(from) {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// String draws the maze with ASCII box characters.
func (t *Topology) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("+")
	for c := 0; c < t.columns; c++ {
		b.WriteString("--+")
	}
	b.WriteString("\n")
	for r := 0; r < t.rows; r++ {
		b.WriteString("|")
		for c := 0; c < t.columns; c++ {
			b.WriteString("  ")
			if c < t.columns-1 && t.vertical[r][c] {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n+")
		for c := 0; c < t.columns; c++ {
			if r < t.rows-1 && t.horizontal[r][c] {
				b.WriteString("  +")
			} else {
				b.WriteString("--+")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
