package component

import "image/color"

type Shape struct {
	Color color.Color
}

var ShapeComponent = NewComponent[Shape]("shape")
