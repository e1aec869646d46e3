package zone

import (
	"math"

	"github.com/udisondev/frontline/internal/geom"
)

// edgeEpsilon is the distance under which a point counts as lying on an edge.
const edgeEpsilon = 1e-9

// line is a polygon edge with the values the ray cast needs precomputed.
type line struct {
	a, b       geom.Vec2
	minX, maxX float64
	minY, maxY float64
	length     float64
	horizontal bool
	// x = y*invSlope + intercept; undefined for horizontal edges.
	invSlope  float64
	intercept float64
}

func newLine(a, b geom.Vec2) line {
	l := line{
		a:      a,
		b:      b,
		minX:   min(a.X, b.X),
		maxX:   max(a.X, b.X),
		minY:   min(a.Y, b.Y),
		maxY:   max(a.Y, b.Y),
		length: b.Sub(a).Length(),
	}
	dy := b.Y - a.Y
	if dy == 0 {
		l.horizontal = true
		return l
	}
	l.invSlope = (b.X - a.X) / dy
	l.intercept = a.X - a.Y*l.invSlope
	return l
}

// crossesRay reports whether the ray from p towards +X crosses the edge.
// The lower endpoint is included and the upper one excluded, so a ray through
// a shared vertex is counted exactly once.
func (l *line) crossesRay(p geom.Vec2) bool {
	if l.horizontal || p.Y < l.minY || p.Y >= l.maxY {
		return false
	}
	return p.X < p.Y*l.invSlope+l.intercept
}

// touches reports whether p lies on the edge segment.
func (l *line) touches(p geom.Vec2) bool {
	if p.X < l.minX-edgeEpsilon || p.X > l.maxX+edgeEpsilon ||
		p.Y < l.minY-edgeEpsilon || p.Y > l.maxY+edgeEpsilon {
		return false
	}
	d := l.b.Sub(l.a)
	v := p.Sub(l.a)
	cross := d.X*v.Y - d.Y*v.X
	return math.Abs(cross) <= edgeEpsilon*l.length
}
