package zone

import (
	"fmt"
	"math"
	"slices"

	"github.com/udisondev/frontline/internal/geom"
)

// Polygon is a simple polygon given by its outline. The outline closes
// implicitly from the last point back to the first.
type Polygon struct {
	shapeBase
	points []geom.Vec2
	lines  []line
}

// NewPolygon creates a polygon shape. It needs at least three points, no
// zero-length edges and a non-zero area.
func NewPolygon(center geom.Vec2, points []geom.Vec2, height HeightClamp, spacing float64) (*Polygon, error) {
	n := len(points)
	if n < MinPolygonPoints {
		return nil, fmt.Errorf("%w: polygon has %d points, need %d", ErrDegenerateShape, n, MinPolygonPoints)
	}
	if !center.IsFinite() {
		return nil, fmt.Errorf("%w: polygon center is not finite", ErrDegenerateShape)
	}

	lines := make([]line, n)
	for i := range n {
		a, b := points[i], points[(i+1)%n]
		if !a.IsFinite() {
			return nil, fmt.Errorf("%w: polygon point %d is not finite", ErrDegenerateShape, i)
		}
		if a == b {
			return nil, fmt.Errorf("%w: polygon points %d and %d coincide at (%g, %g)",
				ErrDegenerateShape, i, (i+1)%n, a.X, a.Y)
		}
		lines[i] = newLine(a, b)
	}

	if area := signedArea(points); math.Abs(area) < edgeEpsilon {
		return nil, fmt.Errorf("%w: polygon has zero area", ErrDegenerateShape)
	}

	p := &Polygon{
		points: slices.Clone(points),
		lines:  lines,
	}
	p.init(center, height, geom.RectOf(points), spacing)
	return p, nil
}

func (p *Polygon) Kind() Kind { return KindPolygon }

// Points returns the outline vertices. Callers must not modify the slice.
func (p *Polygon) Points() []geom.Vec2 { return p.points }

func (p *Polygon) Contains(pt geom.Vec2) bool { return p.contains(pt, p.inside) }

func (p *Polygon) Contains3D(pt geom.Vec3) bool { return p.contains3D(pt, p.inside) }

// inside applies the even-odd rule. Points on an edge are inside.
func (p *Polygon) inside(pt geom.Vec2) bool {
	crossings := 0
	for i := range p.lines {
		l := &p.lines[i]
		if l.touches(pt) {
			return true
		}
		if l.crossesRay(pt) {
			crossings++
		}
	}
	return crossings%2 == 1
}

func (p *Polygon) PerimeterPoints() []geom.Vec2 {
	return p.perimeterPoints(func(spacing float64) []geom.Vec2 {
		var points []geom.Vec2
		for i := range p.lines {
			points = sampleEdge(points, p.lines[i].a, p.lines[i].b, spacing)
		}
		return points
	})
}

// signedArea is the shoelace formula; positive for counter-clockwise outlines.
func signedArea(points []geom.Vec2) float64 {
	var sum float64
	n := len(points)
	for i := range n {
		a, b := points[i], points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}
