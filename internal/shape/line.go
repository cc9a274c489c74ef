package shape

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/typeid"
)

// LineColor is the stroke used for every line.
var LineColor = color.RGBA{R: 0xFF, A: 0xFF}

// Line is the infinite line through two distinct points. It renders across the
// whole viewport rather than only between its defining points.
type Line struct {
	id    string
	start geom.Vec2
	end   geom.Vec2
}

// NewLine returns a committed line through start and end.
func NewLine(start, end geom.Vec2) (Line, error) {
	if start == end {
		return Line{}, fmt.Errorf("line %v-%v: %w", start, end, ErrInvalid)
	}
	return Line{id: typeid.NewLineID(), start: start, end: end}, nil
}

func (l Line) ID() string       { return l.id }
func (l Line) Kind() Kind       { return KindLine }
func (l Line) Valid() bool      { return l.start != l.end }
func (l Line) Start() geom.Vec2 { return l.start }
func (l Line) End() geom.Vec2   { return l.end }

// Vertical reports whether the line is parallel to the y axis.
func (l Line) Vertical() bool {
	return l.start.X == l.end.X
}

// Slope returns dy/dx. ok is false for vertical lines.
func (l Line) Slope() (m float64, ok bool) {
	if l.Vertical() {
		return 0, false
	}
	return (l.end.Y - l.start.Y) / (l.end.X - l.start.X), true
}

func (l Line) Render(p Pen, visible geom.Bounds) {
	renderLine(p, visible, l.start, l.end)
}

// Clip returns the segment of the line that spans the visible rectangle: the
// full width for non-vertical lines, the full height for vertical ones.
func (l Line) Clip(visible geom.Bounds) (geom.Vec2, geom.Vec2) {
	return clipLine(visible, l.start, l.end)
}

func (l Line) Describe() Description {
	slope := "undefined"
	if m, ok := l.Slope(); ok {
		slope = strconv.FormatFloat(float64(float32(m)), 'g', -1, 32)
	}
	return Description{
		ID:    l.id,
		Kind:  KindLine,
		Title: "Line",
		Color: hexColor(LineColor),
		Details: []string{
			"SLOPE = " + slope,
			"(x1,y1)=" + formatPoint(l.start),
			"(x2,y2)=" + formatPoint(l.end),
		},
	}
}

func renderLine(p Pen, visible geom.Bounds, start, end geom.Vec2) {
	a, b := clipLine(visible, start, end)
	p.SetColor(LineColor)
	p.SetStrokeWidth(1)
	p.DrawLine(a, b)
}

func clipLine(visible geom.Bounds, start, end geom.Vec2) (geom.Vec2, geom.Vec2) {
	// The vertical branch is required: the slope below is only defined for
	// start.X != end.X.
	if start.X == end.X {
		return geom.V(start.X, visible.Bottom), geom.V(start.X, visible.Top)
	}

	// y = m*x + c through both points.
	m := (end.Y - start.Y) / (end.X - start.X)
	c := start.Y - m*start.X
	return geom.V(visible.Left, m*visible.Left+c), geom.V(visible.Right, m*visible.Right+c)
}

func formatPoint(v geom.Vec2) string {
	return "(" + strconv.FormatFloat(v.X, 'f', -1, 64) + "," + strconv.FormatFloat(v.Y, 'f', -1, 64) + ")"
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
