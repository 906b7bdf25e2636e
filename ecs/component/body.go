package component

import "github.com/milk9111/mazeball/maze"

// Body tags an entity with the maze element it was built from.
type Body struct {
	Kind maze.Kind
}

var BodyComponent = NewComponent[Body]("body")
