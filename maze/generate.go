// Package maze generates perfect mazes and projects them to wall geometry.
package maze

import (
	"errors"
	"fmt"
)

var ErrInvalidDimensions = errors.New("maze: rows and columns must be positive")

type candidate struct {
	cell Cell
	dir  Direction
}

// frame is one level of the depth-first walk: the cell being expanded, its
// shuffled neighbours and the index of the next neighbour to try.
type frame struct {
	cell       Cell
	candidates [4]candidate
	next       int
}

// generator bundles the state owned by a single Generate call.
type generator struct {
	src     RandomSource
	topo    *Topology
	visited []bool
	stack   []frame
}

// Generate builds a perfect maze over a rows x columns grid using a
// randomized depth-first traversal. The result is a spanning tree of the grid:
// exactly rows*columns-1 passages are open and every cell is reachable.
func Generate(rows, columns int, src RandomSource) (*Topology, error) {
	if rows < 1 || columns < 1 {
		return nil, fmt.Errorf("maze: generate %dx%d: %w", rows, columns, ErrInvalidDimensions)
	}
	if src == nil {
		return nil, fmt.Errorf("maze: generate: nil source: %w", ErrRandomSourceInvalid)
	}

	g := &generator{
		src:     src,
		topo:    newTopology(rows, columns),
		visited: make([]bool, rows*columns),
	}

	startRow, err := g.draw(rows)
	if err != nil {
		return nil, fmt.Errorf("maze: generate: start row: %w", err)
	}
	startColumn, err := g.draw(columns)
	if err != nil {
		return nil, fmt.Errorf("maze: generate: start column: %w", err)
	}

	if err := g.walk(Cell{Row: startRow, Column: startColumn}); err != nil {
		return nil, fmt.Errorf("maze: generate: %w", err)
	}
	return g.topo, nil
}

func (g *generator) draw(n int) (int, error) {
	v, err := g.src.IntN(n)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= n {
		return 0, fmt.Errorf("got %d for n=%d: %w", v, n, ErrRandomSourceInvalid)
	}
	return v, nil
}

func (g *generator) walk(start Cell) error {
	if err := g.enter(start); err != nil {
		return err
	}

	for len(g.stack) > 0 {
		top := &g.stack[len(g.stack)-1]
		if top.next >= len(top.candidates) {
			g.stack = g.stack[:len(g.stack)-1]
			continue
		}
		cand := top.candidates[top.next]
		top.next++

		if !g.topo.Contains(cand.cell) || g.isVisited(cand.cell) {
			continue
		}
		g.open(top.cell, cand.dir)
		// top is invalid once enter appends to the stack.
		if err := g.enter(cand.cell); err != nil {
			return err
		}
	}
	return nil
}

// enter marks c visited, shuffles its neighbours and pushes a frame for it.
func (g *generator) enter(c Cell) error {
	if g.isVisited(c) {
		return nil
	}
	g.visited[c.Row*g.topo.columns+c.Column] = true

	f := frame{cell: c}
	for d := Up; d <= Left; d++ {
		f.candidates[d] = candidate{cell: c.Step(d), dir: d}
	}
	if err := g.shuffle(f.candidates[:]); err != nil {
		return err
	}
	g.stack = append(g.stack, f)
	return nil
}

// shuffle is an in-place Fisher-Yates: walk the tail from the last index down
// to 1, swapping in a uniformly drawn index from the untouched prefix.
func (g *generator) shuffle(cands []candidate) error {
	for tail := len(cands) - 1; tail > 0; tail-- {
		j, err := g.draw(tail + 1)
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		cands[tail], cands[j] = cands[j], cands[tail]
	}
	return nil
}

func (g *generator) isVisited(c Cell) bool {
	return g.visited[c.Row*g.topo.columns+c.Column]
}

func (g *generator) open(from Cell, d Direction) {
	switch d {
	case Left:
		g.topo.vertical[from.Row][from.Column-1] = true
	case Right:
		g.topo.vertical[from.Row][from.Column] = true
	case Up:
		g.topo.horizontal[from.Row-1][from.Column] = true
	case Down:
		g.topo.horizontal[from.Row][from.Column] = true
	}
}
