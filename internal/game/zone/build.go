package zone

import (
	"fmt"

	"github.com/udisondev/frontline/internal/geom"
)

// Options tune shape construction.
type Options struct {
	// PerimeterSpacing is the target distance between perimeter samples.
	PerimeterSpacing float64
}

// New validates m and builds its shape. An invalid model is an error, never coerced.
func New(m Model, opts Options) (*Zone, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	height := m.HeightClamp()
	var (
		shape Shape
		err   error
	)
	switch m.Kind() {
	case KindCircle:
		shape, err = NewCircle(m.Center, m.Circle.Radius, height, opts.PerimeterSpacing)
	case KindRectangle:
		size := m.Rectangle
		shape, err = NewRectangle(m.Center, geom.Vec2{X: size.SizeX, Y: size.SizeY}, height, opts.PerimeterSpacing)
	case KindPolygon:
		shape, err = NewPolygon(m.Center, m.Polygon.Points, height, opts.PerimeterSpacing)
	}
	if err != nil {
		return nil, fmt.Errorf("building zone %d (%s): %w", m.ID, m.Name, err)
	}

	return &Zone{model: m.Clone(), shape: shape}, nil
}
