package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
	"github.com/milk9111/mazeball/ecs/entity"
	"github.com/milk9111/mazeball/maze"
	"github.com/milk9111/mazeball/prefabs"
)

func testSpec() *prefabs.MazeSpec {
	return &prefabs.MazeSpec{
		Rows:    3,
		Columns: 4,
		Ball:    prefabs.BallSpec{SpeedStep: 3, Mass: 1, Friction: 0.1, Damping: 0.99},
		Walls:   prefabs.WallsSpec{Mass: 1, Friction: 0.1},
		Win:     prefabs.WinSpec{GravityY: 0.3, Script: "win.tengo"},
	}
}

func buildTestMaze(t *testing.T, rows, columns int) (*ecs.World, *maze.Layout) {
	t.Helper()
	topo, err := maze.Generate(rows, columns, maze.NewRandSource(5))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	uw, uh, err := maze.UnitScale(float64(columns*50), float64(rows*50), rows, columns)
	if err != nil {
		t.Fatalf("unit scale: %v", err)
	}
	layout, err := maze.Project(topo, uw, uh, float64(columns*50), float64(rows*50))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	w := ecs.NewWorld()
	if err := entity.BuildMaze(w, topo, layout, testSpec(), 5); err != nil {
		t.Fatalf("build maze: %v", err)
	}
	return w, layout
}

func bodiesOfKind(w *ecs.World, kind maze.Kind) []component.PhysicsBody {
	var out []component.PhysicsBody
	for _, e := range w.Query(component.BodyComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		tag, _ := ecs.Get(w, e, component.BodyComponent)
		if tag.Kind != kind {
			continue
		}
		b, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		out = append(out, b)
	}
	return out
}

func TestPhysicsSystemCreatesBodies(t *testing.T) {
	w, layout := buildTestMaze(t, 3, 4)
	ps := NewPhysicsSystem(0.99)
	ps.Update(w)

	cases := []struct {
		kind   maze.Kind
		count  int
		static bool
		cpType int
	}{
		{maze.KindBoundary, 4, true, cp.BODY_STATIC},
		{maze.KindWall, len(layout.Walls), true, cp.BODY_STATIC},
		{maze.KindGoal, 1, true, cp.BODY_STATIC},
		{maze.KindBall, 1, false, cp.BODY_DYNAMIC},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			bodies := bodiesOfKind(w, tc.kind)
			if len(bodies) != tc.count {
				t.Fatalf("expected %d bodies, got %d", tc.count, len(bodies))
			}
			for _, b := range bodies {
				if b.Body == nil || b.Shape == nil {
					t.Fatalf("expected cp handles to be stored")
				}
				if b.Static != tc.static || b.Body.GetType() != tc.cpType {
					t.Fatalf("unexpected body type static=%v cp=%d", b.Static, b.Body.GetType())
				}
			}
		})
	}

	if got := ps.Space().Gravity(); got != (cp.Vector{}) {
		t.Fatalf("expected zero gravity before the win, got %v", got)
	}
}

func TestPhysicsSystemRelease(t *testing.T) {
	w, layout := buildTestMaze(t, 4, 4)
	ps := NewPhysicsSystem(0)
	ps.Update(w)

	if n := ps.Release(w, maze.KindWall); n != len(layout.Walls) {
		t.Fatalf("expected %d released walls, got %d", len(layout.Walls), n)
	}
	for _, b := range bodiesOfKind(w, maze.KindWall) {
		if b.Static || b.Body.GetType() != cp.BODY_DYNAMIC {
			t.Fatalf("wall should be dynamic after release")
		}
	}
	for _, b := range bodiesOfKind(w, maze.KindBoundary) {
		if !b.Static || b.Body.GetType() != cp.BODY_STATIC {
			t.Fatalf("boundary should stay static")
		}
	}
	if n := ps.Release(w, maze.KindWall); n != 0 {
		t.Fatalf("second release should be a no-op, got %d", n)
	}

	ps.SetGravity(0, 0.3)
	if got := ps.Space().Gravity(); got != (cp.Vector{X: 0, Y: 0.3}) {
		t.Fatalf("unexpected gravity %v", got)
	}
}

func TestPhysicsSystemReleasedWallsFall(t *testing.T) {
	w := ecs.NewWorld()
	wall := w.CreateEntity()
	_ = ecs.Add(w, wall, component.TransformComponent, component.Transform{X: 40, Y: 40})
	_ = ecs.Add(w, wall, component.BodyComponent, component.Body{Kind: maze.KindWall})
	_ = ecs.Add(w, wall, component.PhysicsBodyComponent, component.PhysicsBody{Width: 30, Height: 5, Mass: 1, Static: true})

	ps := NewPhysicsSystem(0)
	ps.Update(w)
	ps.SetGravity(0, 0.3)
	if n := ps.Release(w, maze.KindWall); n != 1 {
		t.Fatalf("expected one released wall, got %d", n)
	}

	for i := 0; i < 10; i++ {
		ps.Update(w)
	}
	after, _ := ecs.Get(w, wall, component.TransformComponent)
	if after.Y <= 40 {
		t.Fatalf("expected released wall to fall, got y=%v", after.Y)
	}
}

func TestPhysicsSystemGoalEvent(t *testing.T) {
	w := ecs.NewWorld()
	add := func(kind maze.Kind, body component.PhysicsBody) ecs.Entity {
		e := w.CreateEntity()
		_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: 50, Y: 50})
		_ = ecs.Add(w, e, component.BodyComponent, component.Body{Kind: kind})
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, body)
		return e
	}
	goal := add(maze.KindGoal, component.PhysicsBody{Width: 20, Height: 20, Static: true})
	add(maze.KindBall, component.PhysicsBody{Radius: 5, Mass: 1})

	ps := NewPhysicsSystem(0)
	ps.Update(w)
	evts := w.Events().Take(ecs.EventGoalReached)
	if len(evts) != 1 {
		t.Fatalf("expected one goal event, got %d", len(evts))
	}
	if got, _ := evts[0].Data.(ecs.Entity); got != goal {
		t.Fatalf("expected goal entity %v in event, got %v", goal, evts[0].Data)
	}
}

func TestPhysicsSystemCullsFallenBodies(t *testing.T) {
	w := ecs.NewWorld()
	level := w.CreateEntity()
	_ = ecs.Add(w, level, component.LevelBoundsComponent, component.LevelBounds{Width: 100, Height: 100})

	wall := w.CreateEntity()
	_ = ecs.Add(w, wall, component.TransformComponent, component.Transform{X: 50, Y: 50})
	_ = ecs.Add(w, wall, component.BodyComponent, component.Body{Kind: maze.KindWall})
	_ = ecs.Add(w, wall, component.PhysicsBodyComponent, component.PhysicsBody{Width: 30, Height: 5, Mass: 1, Static: true})

	ps := NewPhysicsSystem(0)
	ps.Update(w)
	ps.SetGravity(0, 5)
	ps.Release(w, maze.KindWall)

	for i := 0; i < 60 && w.IsAlive(wall); i++ {
		ps.Update(w)
	}
	if w.IsAlive(wall) {
		t.Fatalf("expected wall below the level to be destroyed")
	}
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Fatalf("expected culled wall to leave the space, %d bodies tracked", len(ps.entities))
	}
}

func TestPhysicsSystemNoGoalEventWithoutContact(t *testing.T) {
	w, _ := buildTestMaze(t, 3, 3)
	ps := NewPhysicsSystem(0)
	ps.Update(w)
	if evts := w.Events().Take(ecs.EventGoalReached); len(evts) != 0 {
		t.Fatalf("ball starts away from the goal, got %d events", len(evts))
	}
}

func TestPhysicsSystemRemovesDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: 10, Y: 10})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{Radius: 2, Mass: 1})

	ps := NewPhysicsSystem(0)
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one tracked body, got %d", len(ps.entities))
	}
	w.DestroyEntity(e)
	ps.Update(w)
	if len(ps.entities) != 0 || len(ps.shapes) != 0 {
		t.Fatalf("expected destroyed entity to be removed from the space")
	}
}

func TestBallControlAddsVelocity(t *testing.T) {
	w, _ := buildTestMaze(t, 2, 2)
	ps := NewPhysicsSystem(0)
	ps.Update(w)

	ball, ok := w.First(component.BallControlComponent.Kind())
	if !ok {
		t.Fatalf("expected a ball")
	}
	body, _ := ecs.Get(w, ball, component.PhysicsBodyComponent)
	body.Body.SetVelocity(0, 0)

	_ = ecs.Add(w, ball, component.InputComponent, component.Input{DX: 3, DY: -3})
	bc := NewBallControlSystem()
	bc.Update(w)
	bc.Update(w)
	if got := body.Body.Velocity(); got != (cp.Vector{X: 6, Y: -6}) {
		t.Fatalf("expected velocity (6,-6), got %v", got)
	}
}
