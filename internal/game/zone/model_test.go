package zone

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/frontline/internal/geom"
)

func ptr(v float64) *float64 { return &v }

func circleModel(id int, name string, center geom.Vec2, radius float64) Model {
	return Model{
		ID:      id,
		Name:    name,
		UseCase: UseCaseFlag,
		Center:  center,
		Circle:  &CircleData{Radius: radius},
	}
}

func TestModelValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Model)
		errMsg string
	}{
		{"valid", func(m *Model) {}, ""},
		{"empty name", func(m *Model) { m.Name = "" }, "name is empty"},
		{"long name", func(m *Model) { m.Name = strings.Repeat("x", 49) }, "max 48"},
		{"name at limit", func(m *Model) { m.Name = strings.Repeat("ж", 48) }, ""},
		{"long short name", func(m *Model) { m.ShortName = strings.Repeat("x", 25) }, "max 24"},
		{"unknown use case", func(m *Model) { m.UseCase = useCaseCount }, "unknown use case"},
		{"no shape", func(m *Model) { m.Circle = nil }, "exactly one"},
		{"two shapes", func(m *Model) { m.Rectangle = &RectangleData{SizeX: 1, SizeY: 1} }, "exactly one"},
		{"zero radius", func(m *Model) { m.Circle.Radius = 0 }, "must be positive"},
		{"inverted heights", func(m *Model) { m.MinHeight, m.MaxHeight = ptr(10), ptr(5) }, "above max height"},
		{"equal heights", func(m *Model) { m.MinHeight, m.MaxHeight = ptr(5), ptr(5) }, ""},
		{"self adjacency", func(m *Model) { m.Adjacencies = []Adjacency{{TargetID: 7, Weight: 1}} }, "itself"},
		{"zero weight", func(m *Model) { m.Adjacencies = []Adjacency{{TargetID: 2, Weight: 0}} }, "weight"},
		{"bad negative target", func(m *Model) { m.Adjacencies = []Adjacency{{TargetID: -3, Weight: 1}} }, "not a zone"},
		{"main base target", func(m *Model) { m.Adjacencies = []Adjacency{{TargetID: MainBaseTeam2, Weight: 1}} }, ""},
		{"duplicate target", func(m *Model) {
			m.Adjacencies = []Adjacency{{TargetID: 2, Weight: 1}, {TargetID: 2, Weight: 3}}
		}, "duplicate"},
		{"polygon too small", func(m *Model) {
			m.Circle = nil
			m.Polygon = &PolygonData{Points: []geom.Vec2{{X: 0}, {X: 1}}}
		}, "at least 3"},
		{"rectangle zero size", func(m *Model) {
			m.Circle = nil
			m.Rectangle = &RectangleData{SizeX: 10}
		}, "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := circleModel(7, "Lumber Mill", geom.Vec2{}, 30)
			tt.mutate(&m)
			err := m.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidModel)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewRoundTrip(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		z, err := New(circleModel(1, "Depot", geom.Vec2{X: 120, Y: -40}, 25), Options{})
		require.NoError(t, err)
		s := z.Shape()
		assert.Equal(t, KindCircle, s.Kind())
		assert.True(t, s.Center().ApproxEqual(geom.Vec2{X: 120, Y: -40}, 1e-9))
		assert.True(t, s.Bounds().Min.ApproxEqual(geom.Vec2{X: 95, Y: -65}, 1e-9))
		assert.True(t, s.Bounds().Max.ApproxEqual(geom.Vec2{X: 145, Y: -15}, 1e-9))
		assert.InDelta(t, 2500, s.BoundsArea(), 1e-9)
	})

	t.Run("rectangle", func(t *testing.T) {
		m := Model{
			ID: 2, Name: "Airfield", UseCase: UseCaseFlag,
			Center:    geom.Vec2{X: 10, Y: 20},
			Rectangle: &RectangleData{SizeX: 40, SizeY: 8},
			MinHeight: ptr(-5),
		}
		z, err := New(m, Options{})
		require.NoError(t, err)
		s := z.Shape()
		assert.True(t, s.Bounds().Size().ApproxEqual(geom.Vec2{X: 40, Y: 8}, 1e-9))
		assert.True(t, s.Bounds().Center().ApproxEqual(m.Center, 1e-9))
		h := s.Height()
		assert.True(t, h.HasMin)
		assert.False(t, h.HasMax)
		assert.Equal(t, -5.0, h.Min)
	})

	t.Run("polygon", func(t *testing.T) {
		points := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
		m := Model{
			ID: 3, Name: "Hill", UseCase: UseCaseFlag,
			Center:  geom.Vec2{X: 5, Y: 5},
			Polygon: &PolygonData{Points: points},
		}
		z, err := New(m, Options{})
		require.NoError(t, err)
		assert.Equal(t, geom.Rect{Min: geom.Vec2{}, Max: geom.Vec2{X: 10, Y: 10}}, z.Shape().Bounds())
		assert.Equal(t, m.Center, z.Shape().Center())

		// Модель копируется: изменение исходных точек не влияет на зону.
		points[0] = geom.Vec2{X: -100, Y: -100}
		assert.Equal(t, geom.Vec2{}, z.Model().Polygon.Points[0])
	})
}

func TestNewRejectsDegeneratePolygon(t *testing.T) {
	m := Model{
		ID: 4, Name: "Broken", UseCase: UseCaseFlag,
		Polygon: &PolygonData{Points: []geom.Vec2{{X: 0}, {X: 0}, {X: 5, Y: 5}}},
	}
	_, err := New(m, Options{})
	require.ErrorIs(t, err, ErrDegenerateShape)
	assert.Contains(t, err.Error(), "zone 4")
}

func TestZoneShortNameFallback(t *testing.T) {
	z, err := New(circleModel(1, "Lumber Mill", geom.Vec2{}, 5), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Lumber Mill", z.ShortName())

	m := circleModel(2, "Lumber Mill", geom.Vec2{}, 5)
	m.ShortName = "Mill"
	z, err = New(m, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Mill", z.ShortName())
}

func TestModelYAML(t *testing.T) {
	src := `
id: 12
name: Radio Tower
short_name: Tower
use_case: team1_main
center: {x: 1, y: 2}
spawn: {x: 1, y: 2, z: 30}
max_height: 80
polygon:
  points:
    - {x: 0, y: 0}
    - {x: 4, y: 0}
    - {x: 0, y: 3}
adjacencies:
  - {target: 3, weight: 2.5}
  - {target: -2, weight: 1}
`
	var m Model
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))
	require.NoError(t, m.Validate())

	assert.Equal(t, UseCaseTeam1Main, m.UseCase)
	assert.Equal(t, KindPolygon, m.Kind())
	assert.Nil(t, m.MinHeight)
	require.NotNil(t, m.MaxHeight)
	assert.Equal(t, 80.0, *m.MaxHeight)
	assert.Equal(t, []Adjacency{{TargetID: 3, Weight: 2.5}, {TargetID: MainBaseTeam2, Weight: 1}}, m.Adjacencies)

	var bad Model
	err := yaml.Unmarshal([]byte("use_case: bunker\n"), &bad)
	assert.ErrorIs(t, err, ErrInvalidModel)
}
