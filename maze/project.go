package maze

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidGeometry = errors.New("maze: unit and viewport dimensions must be positive")

const (
	// WallThickness is the thickness of every wall and boundary, independent
	// of grid size.
	WallThickness = 5.0

	goalScale = 0.6
)

// Point is a world-space position.
type Point struct {
	X float64
	Y float64
}

// WallSpec is an axis-aligned rectangle described by its centre.
type WallSpec struct {
	Center Point
	Width  float64
	Height float64
	Static bool
	Kind   Kind
}

type GoalSpec struct {
	Center Point
	Width  float64
	Height float64
	Static bool
	Kind   Kind
}

type BallSpec struct {
	Center Point
	Radius float64
	Static bool
	Kind   Kind
}

// Layout is everything a physics world needs to instantiate a maze.
type Layout struct {
	Width      float64
	Height     float64
	UnitWidth  float64
	UnitHeight float64

	Boundaries []WallSpec
	Walls      []WallSpec
	Goal       GoalSpec
	Ball       BallSpec
}

// UnitScale returns the size of one cell when a rows x columns grid fills a
// totalWidth x totalHeight viewport.
func UnitScale(totalWidth, totalHeight float64, rows, columns int) (float64, float64, error) {
	if rows < 1 || columns < 1 {
		return 0, 0, fmt.Errorf("maze: unit scale %dx%d: %w", rows, columns, ErrInvalidDimensions)
	}
	if !(totalWidth > 0) || !(totalHeight > 0) {
		return 0, 0, fmt.Errorf("maze: unit scale %gx%g: %w", totalWidth, totalHeight, ErrInvalidGeometry)
	}
	return totalWidth / float64(columns), totalHeight / float64(rows), nil
}

// Project derives the wall geometry of t. Closed passages become walls, open
// passages emit nothing. The same inputs always produce the same layout.
func Project(t *Topology, unitWidth, unitHeight, totalWidth, totalHeight float64) (*Layout, error) {
	if t == nil {
		return nil, fmt.Errorf("maze: project: nil topology: %w", ErrInvalidGeometry)
	}
	for _, v := range []float64{unitWidth, unitHeight, totalWidth, totalHeight} {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("maze: project unit=%gx%g total=%gx%g: %w",
				unitWidth, unitHeight, totalWidth, totalHeight, ErrInvalidGeometry)
		}
	}

	l := &Layout{
		Width:      totalWidth,
		Height:     totalHeight,
		UnitWidth:  unitWidth,
		UnitHeight: unitHeight,
	}

	w, h := totalWidth, totalHeight
	l.Boundaries = []WallSpec{
		{Center: Point{X: w / 2, Y: 0}, Width: w, Height: WallThickness},
		{Center: Point{X: 0, Y: h / 2}, Width: WallThickness, Height: h},
		{Center: Point{X: w / 2, Y: h}, Width: w, Height: WallThickness},
		{Center: Point{X: w, Y: h / 2}, Width: WallThickness, Height: h},
	}
	for i := range l.Boundaries {
		l.Boundaries[i].Static = true
		l.Boundaries[i].Kind = KindBoundary
	}

	closed := t.rows*(t.columns-1) - t.OpenVertical() + (t.rows-1)*t.columns - t.OpenHorizontal()
	l.Walls = make([]WallSpec, 0, closed)
	for r, row := range t.horizontal {
		for c, open := range row {
			if open {
				continue
			}
			l.Walls = append(l.Walls, WallSpec{
				Center: Point{X: float64(c)*unitWidth + unitWidth/2, Y: float64(r)*unitHeight + unitHeight},
				Width:  unitWidth,
				Height: WallThickness,
				Static: true,
				Kind:   KindWall,
			})
		}
	}
	for r, row := range t.vertical {
		for c, open := range row {
			if open {
				continue
			}
			l.Walls = append(l.Walls, WallSpec{
				Center: Point{X: float64(c)*unitWidth + unitWidth, Y: float64(r)*unitHeight + unitHeight/2},
				Width:  WallThickness,
				Height: unitHeight,
				Static: true,
				Kind:   KindWall,
			})
		}
	}

	l.Goal = GoalSpec{
		Center: l.CellCenter(Cell{Row: t.rows - 1, Column: t.columns - 1}),
		Width:  unitWidth * goalScale,
		Height: unitHeight * goalScale,
		Static: true,
		Kind:   KindGoal,
	}
	l.Ball = BallSpec{
		Center: l.CellCenter(Cell{}),
		Radius: math.Min(unitWidth, unitHeight) / 3,
		Static: false,
		Kind:   KindBall,
	}
	return l, nil
}

// CellCenter returns the world-space centre of c.
func (l *Layout) CellCenter(c Cell) Point {
	if l == nil {
		return Point{}
	}
	return Point{
		X: float64(c.Column)*l.UnitWidth + l.UnitWidth/2,
		Y: float64(c.Row)*l.UnitHeight + l.UnitHeight/2,
	}
}

// CellAt returns the cell containing p.
func (l *Layout) CellAt(p Point) Cell {
	if l == nil || l.UnitWidth <= 0 || l.UnitHeight <= 0 {
		return Cell{}
	}
	return Cell{
		Row:    int(math.Floor(p.Y / l.UnitHeight)),
		Column: int(math.Floor(p.X / l.UnitWidth)),
	}
}
