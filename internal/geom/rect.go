package geom

// Rect is an axis-aligned rectangle. Min is the lower-left corner, Max the upper-right.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// RectAround builds a Rect from a center and full size.
func RectAround(center, size Vec2) Rect {
	half := size.Scale(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// RectOf returns the smallest Rect containing all points.
// Returns the zero Rect for an empty slice.
func RectOf(points []Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r = r.Expand(p)
	}
	return r
}

// Expand grows r to include p.
func (r Rect) Expand(p Vec2) Rect {
	r.Min.X = min(r.Min.X, p.X)
	r.Min.Y = min(r.Min.Y, p.Y)
	r.Max.X = max(r.Max.X, p.X)
	r.Max.Y = max(r.Max.Y, p.Y)
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Size returns the width and height of r.
func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 { return r.Min.Add(r.Max).Scale(0.5) }

// Area returns width*height, never negative.
func (r Rect) Area() float64 {
	s := r.Size()
	if s.X <= 0 || s.Y <= 0 {
		return 0
	}
	return s.X * s.Y
}
