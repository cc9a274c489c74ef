package camera

import (
	"image/color"

	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/scene"
	"github.com/inamate/planar/internal/shape"
	"github.com/inamate/planar/internal/surface"
)

var (
	GridColor  = color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF}
	AxisColor  = color.RGBA{A: 0xFF}
	LabelColor = color.RGBA{A: 0xFF}
	SnapColor  = color.RGBA{G: 0xAA, A: 0xFF}
)

const (
	gridStroke = 1
	axisStroke = 3
)

// Render draws one full frame: grid, scene, then the snap marker if snap is
// non-nil.
func (c *Camera) Render(s surface.Surface, sc *scene.Scene, snap *geom.Vec2) {
	c.RenderGrid(s)
	c.RenderScene(s, sc)
	if snap != nil {
		c.RenderSnap(s, *snap)
	}
}

// RenderGrid draws the integer grid, the axes, the coordinate labels and the
// origin marker.
func (c *Camera) RenderGrid(s surface.Surface) {
	defer c.enter(s)()
	w := c.pen(s)
	b := c.Bounds()

	w.SetColor(GridColor)
	w.SetStrokeWidth(gridStroke)
	x0, nx := gridRange(b.Left, b.Right)
	for i := range nx {
		x := x0 + float64(i)
		w.DrawLine(geom.V(x, b.Bottom), geom.V(x, b.Top))
	}
	y0, ny := gridRange(b.Bottom, b.Top)
	for i := range ny {
		y := y0 + float64(i)
		w.DrawLine(geom.V(b.Left, y), geom.V(b.Right, y))
	}

	// Axes go last so grid lines never cover them.
	w.SetColor(AxisColor)
	w.SetStrokeWidth(axisStroke)
	w.DrawLine(geom.V(0, b.Bottom), geom.V(0, b.Top))
	w.DrawLine(geom.V(b.Left, 0), geom.V(b.Right, 0))
	w.SetStrokeWidth(gridStroke)

	l := c.Layout()
	w.SetColor(LabelColor)
	s.SetFontSize(c.FontSizePx())
	for _, lb := range l.X {
		w.DrawString(lb.Text, lb.Pos)
	}
	for _, lb := range l.Y {
		w.DrawString(lb.Text, lb.Pos)
	}

	size := c.opts.OriginMarkerSize
	w.SetColor(AxisColor)
	w.FillRect(l.Origin.Sub(geom.V(size/2, size/2)), size, size)
}

// RenderScene draws every valid shape in insertion order.
func (c *Camera) RenderScene(s surface.Surface, sc *scene.Scene) {
	defer c.enter(s)()
	w := c.pen(s)
	b := c.Bounds()

	sc.Each(func(sh shape.Shape) {
		if !sh.Valid() {
			return
		}
		sh.Render(w, b)
	})
}

// RenderSnap draws the snap-target square centered on p.
func (c *Camera) RenderSnap(s surface.Surface, p geom.Vec2) {
	defer c.enter(s)()
	w := c.pen(s)

	size := c.opts.SnapMarkerSize
	corner := p.Sub(geom.V(size/2, size/2))
	w.SetColor(SnapColor)
	w.FillRect(corner, size, size)
	w.SetColor(AxisColor)
	w.SetStrokeWidth(gridStroke)
	w.DrawRect(corner, size, size)
}

// enter moves the surface origin so world points can be drawn as world*ppu. The
// returned func undoes exactly that shift and is meant to be deferred.
func (c *Camera) enter(s surface.Surface) func() {
	dx, dy := -c.position.X*c.ppu, -c.position.Y*c.ppu
	s.Translate(dx, dy)
	return func() { s.Translate(-dx, -dy) }
}

func (c *Camera) pen(s surface.Surface) worldPen {
	return worldPen{s: s, ppu: c.ppu}
}

// worldPen converts world coordinates to device pixels by scaling with ppu and
// truncating. It implements shape.Pen.
type worldPen struct {
	s   surface.Surface
	ppu float64
}

func (w worldPen) px(v float64) int {
	return geom.Truncate(v * w.ppu)
}

func (w worldPen) SetColor(c color.Color)    { w.s.SetColor(c) }
func (w worldPen) SetStrokeWidth(px float64) { w.s.SetStrokeWidth(px) }

func (w worldPen) DrawLine(a, b geom.Vec2) {
	w.s.DrawLine(w.px(a.X), w.px(a.Y), w.px(b.X), w.px(b.Y))
}

func (w worldPen) DrawRect(corner geom.Vec2, width, height float64) {
	w.s.DrawRect(w.px(corner.X), w.px(corner.Y), w.px(width), w.px(height))
}

func (w worldPen) FillRect(corner geom.Vec2, width, height float64) {
	w.s.FillRect(w.px(corner.X), w.px(corner.Y), w.px(width), w.px(height))
}

func (w worldPen) DrawString(text string, baseline geom.Vec2) {
	w.s.DrawString(text, w.px(baseline.X), w.px(baseline.Y))
}

var _ shape.Pen = worldPen{}
