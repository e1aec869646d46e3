package zone

// HeightClamp bounds a zone vertically. Unset sides do not restrict.
type HeightClamp struct {
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Allows reports whether world height z is within the clamp, edges included.
func (h HeightClamp) Allows(z float64) bool {
	if h.HasMin && z < h.Min {
		return false
	}
	if h.HasMax && z > h.Max {
		return false
	}
	return true
}
