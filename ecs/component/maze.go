package component

import "github.com/milk9111/mazeball/maze"

// Maze keeps the generated topology around for overlays and hints.
type Maze struct {
	Topology *maze.Topology
	Layout   *maze.Layout
	Seed     uint64
}

var MazeComponent = NewComponent[Maze]("maze")
