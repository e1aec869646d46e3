package zone

import (
	"fmt"
	"math"

	"github.com/udisondev/frontline/internal/geom"
)

// Rectangle is an axis-aligned box around a center.
type Rectangle struct {
	shapeBase
	half geom.Vec2
}

// NewRectangle creates a rectangle shape of the given full size.
func NewRectangle(center, size geom.Vec2, height HeightClamp, spacing float64) (*Rectangle, error) {
	if !(size.X > 0) || !(size.Y > 0) || math.IsInf(size.X, 0) || math.IsInf(size.Y, 0) {
		return nil, fmt.Errorf("%w: rectangle size %gx%g", ErrDegenerateShape, size.X, size.Y)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: rectangle center is not finite", ErrDegenerateShape)
	}
	r := &Rectangle{half: size.Scale(0.5)}
	r.init(center, height, geom.RectAround(center, size), spacing)
	return r, nil
}

func (r *Rectangle) Kind() Kind { return KindRectangle }

// Size returns the full width and depth.
func (r *Rectangle) Size() geom.Vec2 { return r.half.Scale(2) }

func (r *Rectangle) Contains(p geom.Vec2) bool { return r.contains(p, r.inside) }

func (r *Rectangle) Contains3D(p geom.Vec3) bool { return r.contains3D(p, r.inside) }

func (r *Rectangle) inside(p geom.Vec2) bool {
	return math.Abs(p.X-r.center.X) <= r.half.X && math.Abs(p.Y-r.center.Y) <= r.half.Y
}

func (r *Rectangle) PerimeterPoints() []geom.Vec2 {
	return r.perimeterPoints(func(spacing float64) []geom.Vec2 {
		b := r.bounds
		corners := [4]geom.Vec2{
			b.Min,
			{X: b.Max.X, Y: b.Min.Y},
			b.Max,
			{X: b.Min.X, Y: b.Max.Y},
		}
		var points []geom.Vec2
		for i := range corners {
			points = sampleEdge(points, corners[i], corners[(i+1)%4], spacing)
		}
		return points
	})
}
