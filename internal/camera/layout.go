package camera

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/inamate/planar/internal/geom"
)

// Label is a grid coordinate placed in world space. Pos is the left end of the
// text baseline.
type Label struct {
	Text  string
	Value float64
	Pos   geom.Vec2
}

// Layout is where the grid annotations land for one frame.
type Layout struct {
	X      []Label   // values along the x axis, one per labeled vertical line
	Y      []Label   // values along the y axis, one per labeled horizontal line
	XStep  float64   // spacing between labeled vertical lines
	YStep  float64   // spacing between labeled horizontal lines
	Origin geom.Vec2 // center of the origin marker
}

// Layout computes label placement from the current bounds and glyph metrics.
func (c *Camera) Layout() Layout {
	b := c.Bounds()
	off := c.opts.LabelOffset

	l := Layout{
		XStep:  c.labelStep(c.widestLabel(b.Left, b.Right) + off),
		YStep:  c.labelStep(c.glyphH + off),
		Origin: c.originMarker(b),
	}

	baseline := c.xLabelBaseline(b)
	forEachGridValue(b.Left, b.Right, l.XStep, func(x float64) {
		text := label(x)
		l.X = append(l.X, Label{
			Text:  text,
			Value: x,
			Pos:   geom.V(x-float64(utf8.RuneCountInString(text))*c.glyphW/2, baseline),
		})
	})

	widestY := c.widestLabel(b.Bottom, b.Top)
	forEachGridValue(b.Bottom, b.Top, l.YStep, func(y float64) {
		text := label(y)
		w := float64(utf8.RuneCountInString(text)) * c.glyphW
		l.Y = append(l.Y, Label{
			Text:  text,
			Value: y,
			Pos:   geom.V(c.yLabelLeft(b, w, widestY), y+off),
		})
	})

	return l
}

// xLabelBaseline picks the row for x-axis labels: just under the axis when it
// fits, otherwise against the bottom edge when the axis is above it, otherwise
// against the top edge.
func (c *Camera) xLabelBaseline(b geom.Bounds) float64 {
	off := c.opts.LabelOffset
	if b.Top > 0 {
		if 0-c.glyphH-off > b.Bottom {
			return 0 - off - c.glyphH
		}
		// Too close to the bottom edge for the row under the axis. This
		// replaces the plain Bottom+offset row, which would run the labels
		// through the axis while it is still on screen: lift them above it.
		return math.Max(b.Bottom+off, math.Min(off, b.Top-c.glyphH-off))
	}
	return b.Top - c.glyphH - off
}

// yLabelLeft mirrors xLabelBaseline for y-axis labels, which are right-aligned
// against the y axis. widest is used for the fit test so the whole column moves
// together.
func (c *Camera) yLabelLeft(b geom.Bounds, w, widest float64) float64 {
	off := c.opts.LabelOffset
	if 0-widest-off > b.Left {
		if 0 < b.Right {
			return 0 - w - off
		}
		return b.Right - w - off
	}
	// Left+offset alone would draw through an axis hugging the left edge, so
	// the column moves right of the axis instead.
	return math.Min(math.Max(b.Left+off, off), b.Right-w-off)
}

// originMarker keeps the origin square inside the viewport, sliding it to the
// nearest edge when the origin is off screen.
func (c *Camera) originMarker(b geom.Bounds) geom.Vec2 {
	half := c.opts.OriginMarkerSize / 2
	inner := geom.Bounds{
		Left:   b.Left + half,
		Top:    b.Top - half,
		Right:  b.Right - half,
		Bottom: b.Bottom + half,
	}
	return inner.Clamp(geom.Vec2{})
}

// widestLabel returns the world width of the longest label in [lo, hi).
func (c *Camera) widestLabel(lo, hi float64) float64 {
	n := max(len(label(math.Floor(lo))), len(label(math.Ceil(hi)-1)))
	return float64(n) * c.glyphW
}

// labelStep returns the smallest value in the 1, 2, 5, 10, 20, ... series that
// is at least minSpacing.
func (c *Camera) labelStep(minSpacing float64) float64 {
	if minSpacing <= 1 || math.IsNaN(minSpacing) || math.IsInf(minSpacing, 0) {
		return 1
	}
	for mag := 1.0; ; mag *= 10 {
		for _, m := range [...]float64{1, 2, 5} {
			if s := m * mag; s >= minSpacing {
				return s
			}
		}
	}
}

// forEachGridValue calls fn for each nonzero integer multiple of step in
// [floor(lo), hi).
func forEachGridValue(lo, hi, step float64, fn func(v float64)) {
	start, n := gridRange(lo, hi)
	for i := range n {
		v := start + float64(i)
		if v == 0 || math.Mod(v, step) != 0 {
			continue
		}
		fn(v)
	}
}

// gridRange returns floor(lo) and the number of unit steps from it that stay
// below hi. The count is fixed up front: past 2^53, v+1 rounds back to v.
func gridRange(lo, hi float64) (start float64, n int) {
	start = math.Floor(lo)
	span := hi - start
	if !(span > 0) || math.IsInf(span, 0) {
		return start, 0
	}
	return start, int(math.Ceil(span))
}

func label(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}
