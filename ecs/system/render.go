package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/mazeball/ecs"
	"github.com/milk9111/mazeball/ecs/component"
	"github.com/milk9111/mazeball/maze"
)

// RenderSystem draws every shaped entity: boxes as rotated rectangles, the
// ball as a filled circle.
type RenderSystem struct {
	pixel *ebiten.Image
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}

	entities := w.Query(component.TransformComponent.Kind(), component.ShapeComponent.Kind(), component.PhysicsBodyComponent.Kind())
	// Ball last so it stays on top of tumbling walls.
	var ball []ecs.Entity
	for _, e := range entities {
		if tag, ok := ecs.Get(w, e, component.BodyComponent); ok && tag.Kind == maze.KindBall {
			ball = append(ball, e)
			continue
		}
		r.drawEntity(w, e, screen)
	}
	for _, e := range ball {
		r.drawEntity(w, e, screen)
	}
}

func (r *RenderSystem) drawEntity(w *ecs.World, e ecs.Entity, screen *ebiten.Image) {
	transform, _ := ecs.Get(w, e, component.TransformComponent)
	shape, _ := ecs.Get(w, e, component.ShapeComponent)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	fill := shape.Color
	if fill == nil {
		fill = color.White
	}

	if body.Radius > 0 {
		vector.FillCircle(screen, float32(transform.X), float32(transform.Y), float32(body.Radius), fill, true)
		return
	}
	if body.Width <= 0 || body.Height <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(body.Width, body.Height)
	op.GeoM.Rotate(transform.Rotation)
	op.GeoM.Translate(transform.X, transform.Y)
	op.ColorScale.ScaleWithColor(fill)
	screen.DrawImage(r.pixel, op)
}
