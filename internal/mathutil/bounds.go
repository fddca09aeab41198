package mathutil

import "math"

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// EmptyBounds returns a box ready for Extend: Min at +inf, Max at -inf.
func EmptyBounds() Bounds {
	return Bounds{
		Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// BoundsOf computes the bounding box of a point set.
// An empty set yields a zero box at the origin.
func BoundsOf(points []Vec3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := EmptyBounds()
	for _, p := range points {
		b.Extend(p)
	}
	return b
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p Vec3) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Volume is the product of the box extents. Flat boxes legitimately
// report zero; callers that divide by a volume floor it themselves.
func (b Bounds) Volume() float64 {
	s := b.Size()
	return s[0] * s[1] * s[2]
}
