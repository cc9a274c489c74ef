package surface

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/inamate/planar/internal/geom"
)

// Raster is a Surface backed by a gg software context. Labels are set in Go Mono.
type Raster struct {
	dc     *gg.Context
	font   *text.FontSource
	faces  map[float64]text.Face
	size   float64
	color  color.Color
	offset geom.Vec2
	cx, cy float64
}

// NewRaster creates a raster surface of the given device size, cleared to white.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster size %dx%d: dimensions must be positive", width, height)
	}
	src, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	r := &Raster{
		dc:    gg.NewContext(width, height),
		font:  src,
		faces: make(map[float64]text.Face),
		size:  12,
		color: color.Black,
		cx:    float64(width / 2),
		cy:    float64(height / 2),
	}
	r.Clear(color.White)
	return r, nil
}

// Clear fills the whole image with c and resets the origin shift.
func (r *Raster) Clear(c color.Color) {
	r.offset = geom.Vec2{}
	r.dc.SetColor(c)
	r.dc.DrawRectangle(0, 0, float64(r.dc.Width()), float64(r.dc.Height()))
	_ = r.dc.Fill()
	r.dc.SetColor(r.color)
}

func (r *Raster) Width() int  { return r.dc.Width() }
func (r *Raster) Height() int { return r.dc.Height() }

func (r *Raster) MeasureString(s string, sizePx float64) (w, h float64) {
	return text.Measure(s, r.face(sizePx))
}

func (r *Raster) SetColor(c color.Color) {
	r.color = c
	r.dc.SetColor(c)
}

func (r *Raster) SetStrokeWidth(px float64) { r.dc.SetLineWidth(px) }
func (r *Raster) SetFontSize(px float64)    { r.size = px }

func (r *Raster) Translate(dx, dy float64) {
	r.offset = r.offset.Add(geom.V(dx, dy))
}

// Offset returns the current origin shift.
func (r *Raster) Offset() geom.Vec2 {
	return r.offset
}

func (r *Raster) DrawLine(x1, y1, x2, y2 int) {
	ax, ay := r.device(x1, y1)
	bx, by := r.device(x2, y2)
	r.dc.DrawLine(ax, ay, bx, by)
	_ = r.dc.Stroke()
}

func (r *Raster) DrawRect(x, y, w, h int) {
	r.rect(x, y, w, h)
	_ = r.dc.Stroke()
}

func (r *Raster) FillRect(x, y, w, h int) {
	r.rect(x, y, w, h)
	_ = r.dc.Fill()
}

func (r *Raster) DrawOval(x, y, w, h int) {
	r.oval(x, y, w, h)
	_ = r.dc.Stroke()
}

func (r *Raster) FillOval(x, y, w, h int) {
	r.oval(x, y, w, h)
	_ = r.dc.Fill()
}

func (r *Raster) DrawString(s string, x, y int) {
	dx, dy := r.device(x, y)
	r.dc.SetFont(r.face(r.size))
	r.dc.DrawString(s, dx, dy)
}

// Image returns the rendered image.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// SavePNG writes the image to path.
func (r *Raster) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// EncodePNG writes the image to w.
func (r *Raster) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Close releases the context.
func (r *Raster) Close() error {
	return r.dc.Close()
}

// device maps center-relative y-up pixels to image coordinates.
func (r *Raster) device(x, y int) (float64, float64) {
	return r.cx + float64(x) + r.offset.X, r.cy - (float64(y) + r.offset.Y)
}

func (r *Raster) rect(x, y, w, h int) {
	// (x, y) is the lower-left corner; the image wants the upper-left.
	dx, dy := r.device(x, y+h)
	r.dc.DrawRectangle(dx, dy, float64(w), float64(h))
}

func (r *Raster) oval(x, y, w, h int) {
	dx, dy := r.device(x, y+h)
	rx, ry := float64(w)/2, float64(h)/2
	r.dc.DrawEllipse(dx+rx, dy+ry, rx, ry)
}

func (r *Raster) face(sizePx float64) text.Face {
	if f, ok := r.faces[sizePx]; ok {
		return f
	}
	f := r.font.Face(sizePx)
	r.faces[sizePx] = f
	return f
}
