package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
)

// BallControlSystem applies the frame's Input to the ball's velocity.
type BallControlSystem struct{}

func NewBallControlSystem() *BallControlSystem {
	return &BallControlSystem{}
}

func (s *BallControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		input, _ := ecs.Get(w, e, component.InputComponent)
		if input.DX == 0 && input.DY == 0 {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if bodyComp.Body == nil {
			continue
		}
		v := bodyComp.Body.Velocity()
		bodyComp.Body.SetVelocityVector(cp.Vector{X: v.X + input.DX, Y: v.Y + input.DY})
		bodyComp.Body.Activate()
	}
}
