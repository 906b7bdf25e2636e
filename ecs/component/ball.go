package component

type BallControl struct {
	SpeedStep float64
}

var BallControlComponent = NewComponent[BallControl]("ball_control")
