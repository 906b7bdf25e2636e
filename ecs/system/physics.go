package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
	"github.com/milk9111/mazeball/maze"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeBoundary
	collisionTypeGoal
	collisionTypeBall
)

// physicsStep is one frame; velocities are in world units per frame.
const physicsStep = 1.0

// fallMargin is how far below the level a released body may drop before it
// is destroyed.
const fallMargin = 200.0

func collisionTypeFor(k maze.Kind) cp.CollisionType {
	switch k {
	case maze.KindBoundary:
		return collisionTypeBoundary
	case maze.KindGoal:
		return collisionTypeGoal
	case maze.KindBall:
		return collisionTypeBall
	default:
		return collisionTypeWall
	}
}

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space. Every
// rectangle gets its own static body so it can later be made dynamic.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	goal     ecs.Entity

	goalReached bool
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem(damping float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	if damping > 0 {
		space.SetDamping(damping)
	}
	return &PhysicsSystem{
		space:    space,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)

	ps.space.Step(physicsStep)

	ps.syncTransforms(w)
	ps.cullFallen(w)
	if ps.goalReached {
		ps.goalReached = false
		w.Events().Push(ecs.Event{Type: ecs.EventGoalReached, Data: ps.goal})
	}
}

// SetGravity changes the space's gravity.
func (ps *PhysicsSystem) SetGravity(x, y float64) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.space.SetGravity(cp.Vector{X: x, Y: y})
	log.Printf("PhysicsSystem: gravity set to (%.2f, %.2f)", x, y)
}

// Release turns every static body tagged with kind into a dynamic body and
// returns how many were released.
func (ps *PhysicsSystem) Release(w *ecs.World, kind maze.Kind) int {
	if ps == nil || ps.space == nil || w == nil {
		return 0
	}
	released := 0
	for _, e := range w.Query(component.BodyComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		tag, _ := ecs.Get(w, e, component.BodyComponent)
		if tag.Kind != kind {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !bodyComp.Static || bodyComp.Body == nil {
			continue
		}
		bodyComp.Body.SetType(cp.BODY_DYNAMIC)
		bodyComp.Body.Activate()
		bodyComp.Static = false
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp); err != nil {
			panic("physics system: release body: " + err.Error())
		}
		released++
	}
	log.Printf("PhysicsSystem: released %d %s bodies", released, kind)
	return released
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	goalHandler := ps.space.NewCollisionHandler(collisionTypeBall, collisionTypeGoal)
	goalHandler.UserData = ps
	goalHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		_, goal := arb.Shapes()
		if e, ok := sys.shapes[goal]; ok {
			sys.goal = e
		}
		sys.goalReached = true
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		kind := maze.KindWall
		if tag, ok := ecs.Get(w, e, component.BodyComponent); ok {
			kind = tag.Kind
		}

		info := ps.createBodyInfo(transform, bodyComp, kind)
		ps.entities[e] = info
		ps.shapes[info.shape] = e

		bodyComp.Body = info.body
		bodyComp.Shape = info.shape
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, bodyComp); err != nil {
			panic("physics system: store body: " + err.Error())
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, kind maze.Kind) *bodyInfo {
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	var body *cp.Body
	if bodyComp.Static {
		body = cp.NewStaticBody()
	} else {
		var moment float64
		if bodyComp.Radius > 0 {
			moment = cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, bodyComp.Width, bodyComp.Height)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	ps.space.AddBody(body)

	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, bodyComp.Width, bodyComp.Height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionTypeFor(kind))
	if bodyComp.Static {
		// Ignored while static; used once the body is released.
		shape.SetMass(mass)
	}
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach(w, component.TransformComponent, func(e ecs.Entity, transform *component.Transform) {
		info := ps.entities[e]
		if info == nil || info.body == nil || info.body.GetType() == cp.BODY_STATIC {
			return
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	})
}

// cullFallen destroys released bodies that dropped below the level.
func (ps *PhysicsSystem) cullFallen(w *ecs.World) {
	level, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent)
	limit := bounds.Height + fallMargin
	for e, info := range ps.entities {
		if info.body == nil || info.body.GetType() == cp.BODY_STATIC {
			continue
		}
		if ecs.Has(w, e, component.BallControlComponent) {
			continue
		}
		if info.body.Position().Y > limit {
			w.DestroyEntity(e)
		}
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.shapes, info.shape)
		}
		if info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
