package component

// Input stores the velocity change requested this frame.
type Input struct {
	DX float64
	DY float64
}

var InputComponent = NewComponent[Input]("input")
