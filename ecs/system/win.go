package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
	"github.com/milk9111/mazeball/maze"
	"github.com/milk9111/mazeball/prefabs"
)

// WinEngine is the part of the physics world a win script may touch.
type WinEngine interface {
	SetGravity(x, y float64)
	Release(w *ecs.World, kind maze.Kind) int
}

const winDispatchScript = `
on_win(__engine)
`

// WinSystem reacts to the first goal event: it records the win and runs the
// win script, which usually turns gravity on and drops the walls.
type WinSystem struct {
	engine     WinEngine
	scriptPath string
	gravityY   float64

	compiled *tengo.Compiled
	frame    int

	// OnWin is called once, after the script has run.
	OnWin func(state component.WinState)
}

func NewWinSystem(engine WinEngine, scriptPath string, gravityY float64) *WinSystem {
	return &WinSystem{
		engine:     engine,
		scriptPath: strings.TrimSpace(scriptPath),
		gravityY:   gravityY,
	}
}

func (s *WinSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.frame++

	if len(w.Events().Take(ecs.EventGoalReached)) == 0 {
		return
	}
	stateEntity, ok := w.First(component.WinStateComponent.Kind())
	if !ok {
		return
	}
	state, _ := ecs.Get(w, stateEntity, component.WinStateComponent)
	if state.Won {
		return
	}
	state.Won = true
	state.Frame = s.frame

	released := 0
	if s.scriptPath == "" || s.engine == nil {
		released = s.applyDefault(w)
	} else {
		var err error
		released, err = s.runScript(w)
		if err != nil {
			log.Printf("WinSystem: script %s failed, using default: %v", s.scriptPath, err)
			released = s.applyDefault(w)
		}
	}
	state.Released = released

	if err := ecs.Add(w, stateEntity, component.WinStateComponent, state); err != nil {
		panic("win system: update win state: " + err.Error())
	}
	log.Printf("WinSystem: goal reached at frame %d", state.Frame)

	if s.OnWin != nil {
		s.OnWin(state)
	}
}

func (s *WinSystem) applyDefault(w *ecs.World) int {
	if s.engine == nil {
		return 0
	}
	s.engine.SetGravity(0, s.gravityY)
	return s.engine.Release(w, maze.KindWall)
}

func (s *WinSystem) runScript(w *ecs.World) (int, error) {
	if err := s.compile(); err != nil {
		return 0, err
	}

	released := 0
	engine := buildWinScriptEngine(w, s.engine, s.gravityY, &released)
	if err := s.compiled.Set("__engine", engine); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	return released, nil
}

func (s *WinSystem) compile() error {
	if s.compiled != nil {
		return nil
	}
	src, err := prefabs.LoadScript(s.scriptPath)
	if err != nil {
		return err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + winDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return err
	}
	s.compiled = compiled
	return nil
}

func buildWinScriptEngine(w *ecs.World, engine WinEngine, gravityY float64, released *int) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["gravity_y"] = &tengo.Float{Value: gravityY}

	values["set_gravity"] = &tengo.UserFunction{Name: "set_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		engine.SetGravity(x, y)
		return tengo.TrueValue, nil
	}}

	values["release"] = &tengo.UserFunction{Name: "release", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		label, ok := tengo.ToString(args[0])
		if !ok {
			return &tengo.Int{Value: 0}, nil
		}
		kind, err := maze.ParseKind(label)
		if err != nil {
			return nil, fmt.Errorf("release: %w", err)
		}
		n := engine.Release(w, kind)
		*released += n
		return &tengo.Int{Value: int64(n)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
