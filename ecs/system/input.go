package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
)

// Key repeat timing in ticks, close to a desktop keyboard's auto-repeat.
const (
	repeatDelay    = 30
	repeatInterval = 2
)

var (
	upKeys    = []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}
	rightKeys = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	downKeys  = []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}
	leftKeys  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
)

// InputSystem turns key presses into velocity changes. Each press, and each
// auto-repeat while a key is held, is one step.
type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	up := keyTriggered(upKeys)
	right := keyTriggered(rightKeys)
	down := keyTriggered(downKeys)
	left := keyTriggered(leftKeys)

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		step := 1.0
		if ctrl, ok := ecs.Get(w, e, component.BallControlComponent); ok {
			step = ctrl.SpeedStep
		}
		input.DX, input.DY = VelocityDelta(up, right, down, left, step)
	})
}

// VelocityDelta adds step per direction pressed. Screen y grows downward, so
// up is negative.
func VelocityDelta(up, right, down, left bool, step float64) (float64, float64) {
	dx, dy := 0.0, 0.0
	if up {
		dy -= step
	}
	if down {
		dy += step
	}
	if left {
		dx -= step
	}
	if right {
		dx += step
	}
	return dx, dy
}

func keyTriggered(keys []ebiten.Key) bool {
	for _, k := range keys {
		if RepeatTriggered(inpututil.KeyPressDuration(k)) {
			return true
		}
	}
	return false
}

// RepeatTriggered reports whether a key held for d ticks fires this tick.
func RepeatTriggered(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}
