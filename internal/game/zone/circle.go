package zone

import (
	"fmt"
	"math"

	"github.com/udisondev/frontline/internal/geom"
)

// Circle is a disc around a center.
type Circle struct {
	shapeBase
	radius   float64
	radiusSq float64
}

// NewCircle creates a circle shape. Radius must be positive and finite.
func NewCircle(center geom.Vec2, radius float64, height HeightClamp, spacing float64) (*Circle, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: circle radius %g", ErrDegenerateShape, radius)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: circle center is not finite", ErrDegenerateShape)
	}
	bounds := geom.RectAround(center, geom.Vec2{X: 2 * radius, Y: 2 * radius})
	c := &Circle{radius: radius, radiusSq: radius * radius}
	c.init(center, height, bounds, spacing)
	return c, nil
}

func (c *Circle) Kind() Kind { return KindCircle }

// Radius returns the circle radius.
func (c *Circle) Radius() float64 { return c.radius }

// Contains checks squared distance to the center against radius², boundary included.
func (c *Circle) Contains(p geom.Vec2) bool { return c.contains(p, c.inside) }

func (c *Circle) Contains3D(p geom.Vec3) bool { return c.contains3D(p, c.inside) }

func (c *Circle) inside(p geom.Vec2) bool {
	return p.DistanceSquared(c.center) <= c.radiusSq
}

func (c *Circle) PerimeterPoints() []geom.Vec2 {
	return c.perimeterPoints(func(spacing float64) []geom.Vec2 {
		n := max(3, segmentCount(2*math.Pi*c.radius, spacing))
		step := 2 * math.Pi / float64(n)
		points := make([]geom.Vec2, n)
		for i := range n {
			a := step * float64(i)
			points[i] = geom.Vec2{
				X: c.center.X + c.radius*math.Cos(a),
				Y: c.center.Y + c.radius*math.Sin(a),
			}
		}
		return points
	})
}
