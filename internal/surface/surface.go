// Package surface defines the drawing surface the camera renders onto and
// provides two implementations: Recorder, which builds a draw-command buffer for
// a canvas host, and Raster, which paints into an image.
//
// All coordinates are device pixels measured from the viewport center with y
// pointing up. Surfaces flip to their native row order themselves. Rectangles
// and ovals are given by their lower-left corner plus width and height; text is
// placed by the left end of its baseline.
package surface

import (
	"fmt"
	"image/color"
)

// Measurer reports the extent of text rendered at a pixel size.
type Measurer interface {
	MeasureString(s string, sizePx float64) (w, h float64)
}

// Surface is an immediate-mode 2D drawing target.
type Surface interface {
	Measurer

	SetColor(c color.Color)
	SetStrokeWidth(px float64)
	SetFontSize(px float64)

	DrawLine(x1, y1, x2, y2 int)
	DrawRect(x, y, w, h int)
	FillRect(x, y, w, h int)
	DrawOval(x, y, w, h int)
	FillOval(x, y, w, h int)
	DrawString(s string, x, y int)

	// Translate shifts the origin of every subsequent draw call.
	Translate(dx, dy float64)
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}
