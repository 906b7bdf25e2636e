package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
	"github.com/milk9111/mazeball/maze"
	"github.com/milk9111/mazeball/prefabs"
)

var (
	defaultWallColor     = color.NRGBA{R: 0xff, A: 0xff}
	defaultBoundaryColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	defaultGoalColor     = color.NRGBA{G: 0xff, A: 0xff}
	defaultBallColor     = color.NRGBA{B: 0xff, A: 0xff}
)

// BuildMaze loads a projected layout into the world: one entity per boundary,
// inner wall, goal and ball, plus a singleton holding the maze, its bounds and
// the win state.
func BuildMaze(w *ecs.World, topo *maze.Topology, layout *maze.Layout, spec *prefabs.MazeSpec, seed uint64) error {
	if w == nil || topo == nil || layout == nil || spec == nil {
		return fmt.Errorf("entity: build maze: missing world, topology, layout or spec")
	}

	level := w.CreateEntity()
	if err := ecs.Add(w, level, component.LevelBoundsComponent, component.LevelBounds{
		Width:  layout.Width,
		Height: layout.Height,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, level, component.MazeComponent, component.Maze{
		Topology: topo,
		Layout:   layout,
		Seed:     seed,
	}); err != nil {
		return err
	}
	if err := ecs.Add(w, level, component.WinStateComponent, component.WinState{}); err != nil {
		return err
	}

	boundaryColor := prefabs.ColorOr(spec.Colors.Boundary, defaultBoundaryColor)
	for _, b := range layout.Boundaries {
		if _, err := buildRect(w, b.Center, b.Width, b.Height, b.Kind, b.Static, spec.Walls.Friction, spec.Walls.Mass, boundaryColor); err != nil {
			return err
		}
	}

	wallColor := prefabs.ColorOr(spec.Colors.Wall, defaultWallColor)
	for _, wall := range layout.Walls {
		if _, err := buildRect(w, wall.Center, wall.Width, wall.Height, wall.Kind, wall.Static, spec.Walls.Friction, spec.Walls.Mass, wallColor); err != nil {
			return err
		}
	}

	goal := layout.Goal
	if _, err := buildRect(w, goal.Center, goal.Width, goal.Height, goal.Kind, goal.Static, 0, spec.Walls.Mass, prefabs.ColorOr(spec.Colors.Goal, defaultGoalColor)); err != nil {
		return err
	}

	_, err := buildBall(w, layout.Ball, spec)
	return err
}

func buildRect(w *ecs.World, center maze.Point, width, height float64, kind maze.Kind, static bool, friction, mass float64, fill color.Color) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: center.X, Y: center.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.BodyComponent, component.Body{Kind: kind}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Width:    width,
		Height:   height,
		Mass:     mass,
		Friction: friction,
		Static:   static,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ShapeComponent, component.Shape{Color: fill}); err != nil {
		return 0, err
	}
	return e, nil
}

func buildBall(w *ecs.World, ball maze.BallSpec, spec *prefabs.MazeSpec) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: ball.Center.X, Y: ball.Center.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.BodyComponent, component.Body{Kind: ball.Kind}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius:     ball.Radius,
		Mass:       spec.Ball.Mass,
		Friction:   spec.Ball.Friction,
		Elasticity: spec.Ball.Elasticity,
		Static:     ball.Static,
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.ShapeComponent, component.Shape{Color: prefabs.ColorOr(spec.Colors.Ball, defaultBallColor)}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent, component.Input{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.BallControlComponent, component.BallControl{SpeedStep: spec.Ball.SpeedStep}); err != nil {
		return 0, err
	}
	return e, nil
}
