package geom

import "math"

// Bounds is an axis-aligned world rectangle. Top > Bottom because world y grows up.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// BoundsAround returns the rectangle center ± (halfX, halfY).
func BoundsAround(center Vec2, halfX, halfY float64) Bounds {
	return Bounds{
		Left:   center.X - halfX,
		Top:    center.Y + halfY,
		Right:  center.X + halfX,
		Bottom: center.Y - halfY,
	}
}

// Contains checks if a point is inside the rect, edges included.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Bottom && p.Y <= b.Top
}

func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

func (b Bounds) Height() float64 {
	return b.Top - b.Bottom
}

// Clamp moves p to the nearest point inside b.
func (b Bounds) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(p.X, b.Left), b.Right),
		Y: math.Min(math.Max(p.Y, b.Bottom), b.Top),
	}
}
