// Package zone implements map zones: immutable geometric shapes (circle,
// rectangle, polygon) with height clamps and cached bounds, the validated
// zone models they are built from, and a spatial manager for lookups.
package zone

import (
	"github.com/udisondev/frontline/internal/geom"
)

// Kind identifies the geometry of a Shape.
type Kind uint8

const (
	KindCircle Kind = iota + 1
	KindRectangle
	KindPolygon
)

// String returns the lowercase shape name.
func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is an immutable zone geometry.
//
// Contains checks the cached bounds first; a point outside Bounds is
// never inside the shape.
type Shape interface {
	Kind() Kind
	Center() geom.Vec2
	Height() HeightClamp
	Contains(p geom.Vec2) bool
	// Contains3D additionally rejects points outside the height clamp.
	Contains3D(p geom.Vec3) bool
	Bounds() geom.Rect
	BoundsArea() float64
	// PerimeterPoints returns evenly spaced points along the outline.
	// Computed once on first call; callers must not modify the slice.
	PerimeterPoints() []geom.Vec2
}

// Zone is a validated model together with the shape built from it.
type Zone struct {
	model Model
	shape Shape
}

// ID returns the zone identifier.
func (z *Zone) ID() int { return z.model.ID }

// Name returns the display name.
func (z *Zone) Name() string { return z.model.Name }

// ShortName returns the short name, falling back to Name.
func (z *Zone) ShortName() string {
	if z.model.ShortName != "" {
		return z.model.ShortName
	}
	return z.model.Name
}

// UseCase returns the zone's role on the map.
func (z *Zone) UseCase() UseCase { return z.model.UseCase }

// Shape returns the zone geometry.
func (z *Zone) Shape() Shape { return z.shape }

// Spawn returns the spawn point.
func (z *Zone) Spawn() geom.Vec3 { return z.model.Spawn }

// Adjacencies returns the weighted links to other zones.
func (z *Zone) Adjacencies() []Adjacency { return z.model.Adjacencies }

// Model returns a copy of the model the zone was built from.
func (z *Zone) Model() Model { return z.model.Clone() }

// Contains checks if a world-space point is inside the zone, height clamp included.
func (z *Zone) Contains(p geom.Vec3) bool { return z.shape.Contains3D(p) }
