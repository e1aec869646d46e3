package zone

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/udisondev/frontline/internal/geom"
)

const (
	MaxNameLength      = 48
	MaxShortNameLength = 24
	MinPolygonPoints   = 3
)

// Main base pseudo-node identifiers usable as adjacency targets.
const (
	MainBaseTeam1 = -1
	MainBaseTeam2 = -2
)

// Model is the raw, serializable description of a zone.
// Exactly one of Circle, Rectangle and Polygon must be set.
type Model struct {
	ID          int            `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	ShortName   string         `yaml:"short_name,omitempty" json:"short_name,omitempty"`
	UseCase     UseCase        `yaml:"use_case" json:"use_case"`
	Center      geom.Vec2      `yaml:"center" json:"center"`
	Spawn       geom.Vec3      `yaml:"spawn" json:"spawn"`
	MinHeight   *float64       `yaml:"min_height,omitempty" json:"min_height,omitempty"`
	MaxHeight   *float64       `yaml:"max_height,omitempty" json:"max_height,omitempty"`
	Circle      *CircleData    `yaml:"circle,omitempty" json:"circle,omitempty"`
	Rectangle   *RectangleData `yaml:"rectangle,omitempty" json:"rectangle,omitempty"`
	Polygon     *PolygonData   `yaml:"polygon,omitempty" json:"polygon,omitempty"`
	Adjacencies []Adjacency    `yaml:"adjacencies,omitempty" json:"adjacencies,omitempty"`
}

// CircleData is the circle-specific part of a Model.
type CircleData struct {
	Radius float64 `yaml:"radius" json:"radius"`
}

// RectangleData is the rectangle-specific part of a Model, centered on Model.Center.
type RectangleData struct {
	SizeX float64 `yaml:"size_x" json:"size_x"`
	SizeY float64 `yaml:"size_y" json:"size_y"`
}

// PolygonData holds polygon vertices in world coordinates, in outline order.
type PolygonData struct {
	Points []geom.Vec2 `yaml:"points" json:"points"`
}

// Adjacency is a weighted link from one zone to another, used by rotation pathing.
// TargetID may be MainBaseTeam1 or MainBaseTeam2.
type Adjacency struct {
	TargetID int     `yaml:"target" json:"target"`
	Weight   float64 `yaml:"weight" json:"weight"`
}

// Kind returns the kind of the populated shape group, or 0 if none or several are set.
func (m *Model) Kind() Kind {
	var kind Kind
	n := 0
	if m.Circle != nil {
		kind = KindCircle
		n++
	}
	if m.Rectangle != nil {
		kind = KindRectangle
		n++
	}
	if m.Polygon != nil {
		kind = KindPolygon
		n++
	}
	if n != 1 {
		return 0
	}
	return kind
}

// HeightClamp returns the model's height range.
func (m *Model) HeightClamp() HeightClamp {
	var h HeightClamp
	if m.MinHeight != nil {
		h.Min, h.HasMin = *m.MinHeight, true
	}
	if m.MaxHeight != nil {
		h.Max, h.HasMax = *m.MaxHeight, true
	}
	return h
}

// Validate checks every model invariant. Shape degeneracy beyond simple
// field checks (coincident points, zero area) is reported by New.
func (m *Model) Validate() error {
	if m.Name == "" {
		return m.errorf("name is empty")
	}
	if n := utf8.RuneCountInString(m.Name); n > MaxNameLength {
		return m.errorf("name %q is %d characters, max %d", m.Name, n, MaxNameLength)
	}
	if n := utf8.RuneCountInString(m.ShortName); n > MaxShortNameLength {
		return m.errorf("short name %q is %d characters, max %d", m.ShortName, n, MaxShortNameLength)
	}
	if !m.UseCase.Valid() {
		return m.errorf("unknown use case %d", uint8(m.UseCase))
	}
	if !m.Center.IsFinite() {
		return m.errorf("center is not finite")
	}
	if h := m.HeightClamp(); h.HasMin && h.HasMax && h.Min > h.Max {
		return m.errorf("min height %g is above max height %g", h.Min, h.Max)
	}

	switch m.Kind() {
	case KindCircle:
		if !(m.Circle.Radius > 0) || math.IsInf(m.Circle.Radius, 0) {
			return m.errorf("circle radius %g must be positive", m.Circle.Radius)
		}
	case KindRectangle:
		if !(m.Rectangle.SizeX > 0) || !(m.Rectangle.SizeY > 0) {
			return m.errorf("rectangle size %gx%g must be positive", m.Rectangle.SizeX, m.Rectangle.SizeY)
		}
	case KindPolygon:
		if len(m.Polygon.Points) < MinPolygonPoints {
			return m.errorf("polygon has %d points, need at least %d", len(m.Polygon.Points), MinPolygonPoints)
		}
	default:
		return m.errorf("exactly one of circle, rectangle or polygon must be set")
	}

	seen := make(map[int]struct{}, len(m.Adjacencies))
	for _, adj := range m.Adjacencies {
		if adj.TargetID == m.ID {
			return m.errorf("adjacent to itself")
		}
		if adj.TargetID < 0 && adj.TargetID != MainBaseTeam1 && adj.TargetID != MainBaseTeam2 {
			return m.errorf("adjacency target %d is not a zone or main base", adj.TargetID)
		}
		if !(adj.Weight > 0) || math.IsInf(adj.Weight, 0) {
			return m.errorf("adjacency to %d has weight %g, must be positive", adj.TargetID, adj.Weight)
		}
		if _, dup := seen[adj.TargetID]; dup {
			return m.errorf("duplicate adjacency to %d", adj.TargetID)
		}
		seen[adj.TargetID] = struct{}{}
	}

	return nil
}

// Clone returns a deep copy of m.
func (m Model) Clone() Model {
	if m.MinHeight != nil {
		v := *m.MinHeight
		m.MinHeight = &v
	}
	if m.MaxHeight != nil {
		v := *m.MaxHeight
		m.MaxHeight = &v
	}
	if m.Circle != nil {
		c := *m.Circle
		m.Circle = &c
	}
	if m.Rectangle != nil {
		r := *m.Rectangle
		m.Rectangle = &r
	}
	if m.Polygon != nil {
		m.Polygon = &PolygonData{Points: slices.Clone(m.Polygon.Points)}
	}
	m.Adjacencies = slices.Clone(m.Adjacencies)
	return m
}

func (m *Model) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: zone %d: %s", ErrInvalidModel, m.ID, fmt.Sprintf(format, args...))
}
