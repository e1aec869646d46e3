package zone

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/udisondev/frontline/internal/geom"
)

// DefaultPerimeterSpacing is the target distance between perimeter sample points.
const DefaultPerimeterSpacing = 10.0

// shapeBase holds the parts every shape caches at construction.
type shapeBase struct {
	center  geom.Vec2
	height  HeightClamp
	bounds  geom.Rect
	area    float64
	spacing float64

	perimeterOnce sync.Once
	perimeter     []geom.Vec2

	// preciseChecks counts containment tests that passed the bounds pre-check.
	preciseChecks atomic.Uint64
}

func (b *shapeBase) init(center geom.Vec2, height HeightClamp, bounds geom.Rect, spacing float64) {
	if !(spacing > 0) {
		spacing = DefaultPerimeterSpacing
	}
	b.center = center
	b.height = height
	b.bounds = bounds
	b.area = bounds.Area()
	b.spacing = spacing
}

func (b *shapeBase) Center() geom.Vec2   { return b.center }
func (b *shapeBase) Height() HeightClamp { return b.height }
func (b *shapeBase) Bounds() geom.Rect   { return b.bounds }
func (b *shapeBase) BoundsArea() float64 { return b.area }

// contains runs the bounds short-circuit before the precise test.
func (b *shapeBase) contains(p geom.Vec2, precise func(geom.Vec2) bool) bool {
	if !b.bounds.Contains(p) {
		return false
	}
	b.preciseChecks.Add(1)
	return precise(p)
}

func (b *shapeBase) contains3D(p geom.Vec3, precise func(geom.Vec2) bool) bool {
	if !b.height.Allows(p.Z) {
		return false
	}
	return b.contains(p.XY(), precise)
}

func (b *shapeBase) perimeterPoints(build func(spacing float64) []geom.Vec2) []geom.Vec2 {
	b.perimeterOnce.Do(func() {
		b.perimeter = build(b.spacing)
	})
	return b.perimeter
}

// segmentCount returns how many equal steps of roughly spacing fit into length.
// Rounding instead of truncating keeps the last step the same size as the others.
func segmentCount(length, spacing float64) int {
	return max(1, int(math.Round(length/spacing)))
}

// sampleEdge appends points from a (inclusive) to b (exclusive) at even spacing.
func sampleEdge(dst []geom.Vec2, a, b geom.Vec2, spacing float64) []geom.Vec2 {
	d := b.Sub(a)
	n := segmentCount(d.Length(), spacing)
	step := d.Scale(1 / float64(n))
	for i := range n {
		dst = append(dst, a.Add(step.Scale(float64(i))))
	}
	return dst
}
