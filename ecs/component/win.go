package component

type WinState struct {
	Won bool
	// Frame is the frame count at which the goal was reached.
	Frame int
	// Released is the number of bodies the win script unfroze.
	Released int
}

var WinStateComponent = NewComponent[WinState]("win_state")
