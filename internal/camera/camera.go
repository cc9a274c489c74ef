// Package camera implements the viewport over the plane: the pixel/world
// transform, zoom and pan, and rendering of the grid, its labels, the scene and
// the snap marker onto a surface.
package camera

import (
	"math"

	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/surface"
)

// Options holds the camera's fixed calibration. Sizes are in world units.
type Options struct {
	MinPPU   float64
	MaxPPU   float64
	ZoomStep float64

	FontHeight       float64 // label font size
	LabelOffset      float64 // gap between a label and its line or the viewport edge
	SnapMarkerSize   float64 // side of the snap-target square
	OriginMarkerSize float64 // side of the origin square
}

// DefaultOptions returns the stock calibration.
func DefaultOptions() Options {
	return Options{
		MinPPU:           8,
		MaxPPU:           100,
		ZoomStep:         5,
		FontHeight:       0.4,
		LabelOffset:      0.1,
		SnapMarkerSize:   0.4,
		OriginMarkerSize: 0.15,
	}
}

// Camera is a square-pixel viewport centered on a world point.
//
// A Camera is not safe for concurrent use.
type Camera struct {
	opts     Options
	measurer surface.Measurer

	position geom.Vec2
	ppu      float64
	width    int
	height   int
	halfX    float64
	halfY    float64

	glyphW     float64
	glyphH     float64
	metricsPPU float64
}

// New creates an uncalibrated camera. Text metrics are taken from m; a nil m
// falls back to surface.DefaultMonospace.
func New(opts Options, m surface.Measurer) *Camera {
	if m == nil {
		m = surface.DefaultMonospace
	}
	return &Camera{opts: opts, measurer: m}
}

// Calibrate sets the viewport pixel size and the zoom so the camera fills it.
func (c *Camera) Calibrate(width, height int, ppu float64) {
	c.width, c.height = width, height
	c.SetPPU(ppu)
}

// Resize changes the viewport pixel size, keeping position and zoom.
func (c *Camera) Resize(width, height int) {
	c.width, c.height = width, height
	c.recalibrate()
}

func (c *Camera) Options() Options    { return c.opts }
func (c *Camera) PPU() float64        { return c.ppu }
func (c *Camera) Position() geom.Vec2 { return c.position }
func (c *Camera) Width() int          { return c.width }
func (c *Camera) Height() int         { return c.height }

// SetPosition pans the camera so p is at the viewport center.
func (c *Camera) SetPosition(p geom.Vec2) {
	c.position = p
}

// HalfExtents returns the world distance from the center to the vertical and
// horizontal viewport edges.
func (c *Camera) HalfExtents() (x, y float64) {
	return c.halfX, c.halfY
}

// SetPPU sets the zoom, clamped to [MinPPU, MaxPPU], and reports whether it
// changed.
func (c *Camera) SetPPU(ppu float64) bool {
	ppu = math.Min(math.Max(ppu, c.opts.MinPPU), c.opts.MaxPPU)
	changed := ppu != c.ppu
	c.ppu = ppu
	c.recalibrate()
	return changed
}

// ZoomIn increases ppu by one step.
func (c *Camera) ZoomIn() bool {
	return c.SetPPU(c.ppu + c.opts.ZoomStep)
}

// ZoomOut decreases ppu by one step.
func (c *Camera) ZoomOut() bool {
	return c.SetPPU(c.ppu - c.opts.ZoomStep)
}

// Bounds returns the visible world rectangle.
func (c *Camera) Bounds() geom.Bounds {
	return geom.BoundsAround(c.position, c.halfX, c.halfY)
}

// AbsoluteLocation converts a center-relative, y-up pixel offset to a world
// point.
func (c *Camera) AbsoluteLocation(pixel geom.Vec2) geom.Vec2 {
	return geom.ToWorld(pixel, c.position, c.ppu)
}

// PixelOf is the inverse of AbsoluteLocation.
func (c *Camera) PixelOf(world geom.Vec2) geom.Vec2 {
	return geom.ToPixel(world, c.position, c.ppu)
}

// CenterRelative converts host device pixels (origin top-left, y down) to the
// center-relative, y-up offsets the camera works in.
func (c *Camera) CenterRelative(deviceX, deviceY float64) geom.Vec2 {
	return geom.V(deviceX-float64(c.width)/2, float64(c.height)/2-deviceY)
}

// FontSizePx is the pixel size labels are drawn at.
func (c *Camera) FontSizePx() float64 {
	return c.opts.FontHeight * c.ppu
}

// GlyphSize returns the width and height of one label glyph in world units at
// the current zoom.
func (c *Camera) GlyphSize() (w, h float64) {
	return c.glyphW, c.glyphH
}

func (c *Camera) recalibrate() {
	if c.ppu <= 0 {
		return
	}
	c.halfX = float64(c.width) / 2 / c.ppu
	c.halfY = float64(c.height) / 2 / c.ppu

	if c.ppu != c.metricsPPU {
		w, h := c.measurer.MeasureString("A", c.FontSizePx())
		c.glyphW = w / c.ppu
		c.glyphH = h / c.ppu
		c.metricsPPU = c.ppu
	}
}
