package surface

import "unicode/utf8"

// Monospace approximates text extents for a fixed-pitch font.
type Monospace struct {
	AdvanceRatio float64 // glyph advance / pixel size
	LineRatio    float64 // line height / pixel size
}

// DefaultMonospace matches the Consolas-like faces canvas hosts use for labels.
var DefaultMonospace = Monospace{AdvanceRatio: DefaultAdvanceRatio, LineRatio: DefaultLineRatio}

func (m Monospace) MeasureString(s string, sizePx float64) (w, h float64) {
	return float64(utf8.RuneCountInString(s)) * sizePx * m.AdvanceRatio, sizePx * m.LineRatio
}
