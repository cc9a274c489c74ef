package surface

import (
	"encoding/json"
	"image/color"

	"github.com/inamate/planar/internal/geom"
)

// Monospace metrics used by Recorder, as fractions of the font pixel size.
const (
	DefaultAdvanceRatio = 0.6
	DefaultLineRatio    = 1.2
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// Coordinates already include the surface translation.
type DrawCommand struct {
	Op          string    `json:"op"`                    // "line", "rect", "fillRect", "oval", "fillOval", "text"
	Coords      []float64 `json:"coords"`                // line: x1,y1,x2,y2; boxes: x,y,w,h; text: x,y
	Text        string    `json:"text,omitempty"`        // for "text"
	Fill        string    `json:"fill,omitempty"`        // for filled boxes and text
	Stroke      string    `json:"stroke,omitempty"`      // for lines and outlines
	StrokeWidth float64   `json:"strokeWidth,omitempty"` // stroke width in pixels
	FontSize    float64   `json:"fontSize,omitempty"`    // for "text"
}

// Recorder is a Surface that appends DrawCommands to a buffer.
type Recorder struct {
	commands    []DrawCommand
	transform   geom.Matrix2D
	color       color.Color
	strokeWidth float64
	fontSize    float64
	metrics     Monospace
}

// NewRecorder creates an empty recorder with black 1px strokes.
func NewRecorder() *Recorder {
	return &Recorder{
		transform:   geom.Identity(),
		color:       color.Black,
		strokeWidth: 1,
		fontSize:    12,
		metrics:     DefaultMonospace,
	}
}

// SetMetrics overrides the monospace advance and line-height ratios.
func (r *Recorder) SetMetrics(advanceRatio, lineRatio float64) {
	r.metrics = Monospace{AdvanceRatio: advanceRatio, LineRatio: lineRatio}
}

func (r *Recorder) MeasureString(s string, sizePx float64) (w, h float64) {
	return r.metrics.MeasureString(s, sizePx)
}

func (r *Recorder) SetColor(c color.Color)    { r.color = c }
func (r *Recorder) SetStrokeWidth(px float64) { r.strokeWidth = px }
func (r *Recorder) SetFontSize(px float64)    { r.fontSize = px }

func (r *Recorder) Translate(dx, dy float64) {
	r.transform = r.transform.Multiply(geom.Translate(dx, dy))
}

// Offset returns the current origin shift.
func (r *Recorder) Offset() geom.Vec2 {
	x, y := r.transform.TransformPoint(0, 0)
	return geom.V(x, y)
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 int) {
	ax, ay := r.point(x1, y1)
	bx, by := r.point(x2, y2)
	r.stroke("line", []float64{ax, ay, bx, by})
}

func (r *Recorder) DrawRect(x, y, w, h int) { r.box("rect", x, y, w, h, false) }
func (r *Recorder) FillRect(x, y, w, h int) { r.box("fillRect", x, y, w, h, true) }
func (r *Recorder) DrawOval(x, y, w, h int) { r.box("oval", x, y, w, h, false) }
func (r *Recorder) FillOval(x, y, w, h int) { r.box("fillOval", x, y, w, h, true) }

func (r *Recorder) DrawString(s string, x, y int) {
	px, py := r.point(x, y)
	r.commands = append(r.commands, DrawCommand{
		Op:       "text",
		Coords:   []float64{px, py},
		Text:     s,
		Fill:     Hex(r.color),
		FontSize: r.fontSize,
	})
}

// Commands returns the recorded buffer in painter's order.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Reset drops all recorded commands and the translation, keeping style state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.transform = geom.Identity()
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	return DrawCommandsToJSON(r.commands)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

func (r *Recorder) point(x, y int) (float64, float64) {
	return r.transform.TransformPoint(float64(x), float64(y))
}

func (r *Recorder) stroke(op string, coords []float64) {
	r.commands = append(r.commands, DrawCommand{
		Op:          op,
		Coords:      coords,
		Stroke:      Hex(r.color),
		StrokeWidth: r.strokeWidth,
	})
}

func (r *Recorder) box(op string, x, y, w, h int, filled bool) {
	px, py := r.point(x, y)
	coords := []float64{px, py, float64(w), float64(h)}
	if filled {
		r.commands = append(r.commands, DrawCommand{Op: op, Coords: coords, Fill: Hex(r.color)})
		return
	}
	r.stroke(op, coords)
}
