// Package engine bundles a camera, scene, shape list and editor behind a
// host-facing facade. Hosts send device-pixel input and pull back draw
// commands and the shape list as JSON.
package engine

import (
	"log/slog"

	"github.com/inamate/planar/internal/camera"
	"github.com/inamate/planar/internal/config"
	"github.com/inamate/planar/internal/editor"
	"github.com/inamate/planar/internal/scene"
	"github.com/inamate/planar/internal/script"
	"github.com/inamate/planar/internal/shapelist"
	"github.com/inamate/planar/internal/surface"
)

// Engine owns the editing session for one viewport.
type Engine struct {
	camera   *camera.Camera
	scene    *scene.Scene
	panel    *shapelist.Panel
	editor   *editor.Editor
	recorder *surface.Recorder
	log      *slog.Logger

	// Last serialized frame, reused until something changes.
	frame string
	dirty bool
}

type options struct {
	measurer surface.Measurer
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*options)

// WithMeasurer sets the text metrics used for label layout. It should match the
// surface frames will be drawn on.
func WithMeasurer(m surface.Measurer) Option {
	return func(o *options) { o.measurer = m }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates an engine calibrated from cfg.
func New(cfg *config.Config, opts ...Option) *Engine {
	rec := surface.NewRecorder()
	o := options{measurer: rec, log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	cam := camera.New(cfg.Camera(), o.measurer)
	cam.Calibrate(cfg.Width, cfg.Height, cfg.PPU)
	sc := scene.New(scene.WithSnapRadius(cfg.SnapRadius), scene.WithLogger(o.log))
	panel := shapelist.New()

	return &Engine{
		camera:   cam,
		scene:    sc,
		panel:    panel,
		editor:   editor.New(cam, sc, panel, editor.WithLogger(o.log)),
		recorder: rec,
		log:      o.log,
		dirty:    true,
	}
}

// --- Commands (host → engine) ---
//
// Coordinates are device pixels, origin top-left. Each command reports whether
// the host should render again.

func (e *Engine) PointerDown(b editor.Button, x, y float64) bool {
	return e.mark(e.editor.PointerDown(b, e.camera.CenterRelative(x, y)))
}

func (e *Engine) PointerUp(x, y float64) bool {
	return e.mark(e.editor.PointerUp(e.camera.CenterRelative(x, y)))
}

func (e *Engine) PointerMove(x, y float64) bool {
	return e.mark(e.editor.PointerMove(e.camera.CenterRelative(x, y)))
}

func (e *Engine) PointerDrag(x, y float64) bool {
	return e.mark(e.editor.PointerDrag(e.camera.CenterRelative(x, y)))
}

func (e *Engine) Wheel(delta, x, y float64) bool {
	return e.mark(e.editor.Wheel(delta, e.camera.CenterRelative(x, y)))
}

func (e *Engine) KeyDown(k editor.Key) bool { return e.mark(e.editor.KeyDown(k)) }
func (e *Engine) KeyUp(k editor.Key) bool   { return e.mark(e.editor.KeyUp(k)) }
func (e *Engine) Undo() bool                { return e.mark(e.editor.Undo()) }

func (e *Engine) Resize(width, height int) bool {
	return e.mark(e.editor.Resize(width, height))
}

// Replay recalibrates the camera for s and feeds it its events.
func (e *Engine) Replay(s *script.Script) (script.Stats, error) {
	v := s.Calibrate(e.editor, script.Viewport{
		Width:  e.camera.Width(),
		Height: e.camera.Height(),
		PPU:    e.camera.PPU(),
	})
	e.dirty = true
	e.log.Debug("engine: replaying script", "events", len(s.Events), "width", v.Width, "height", v.Height, "ppu", v.PPU)
	return script.Replay(e.editor, s)
}

// --- Queries (engine → host) ---

// Render returns the current frame as JSON draw commands.
func (e *Engine) Render() string {
	if !e.dirty {
		return e.frame
	}
	e.recorder.Reset()
	e.editor.Render(e.recorder)

	frame, err := e.recorder.JSON()
	if err != nil {
		e.log.Error("engine: encode frame", "error", err)
	}
	e.frame = frame
	e.dirty = false
	return frame
}

// RenderTo draws the current frame onto s.
func (e *Engine) RenderTo(s surface.Surface) {
	e.editor.Render(s)
}

// Shapes returns the shape list as JSON.
func (e *Engine) Shapes() string {
	out, err := e.panel.JSON()
	if err != nil {
		e.log.Error("engine: encode shape list", "error", err)
	}
	return out
}

func (e *Engine) ShapeLines() []string    { return e.panel.Lines() }
func (e *Engine) Closed() bool            { return e.editor.Closed() }
func (e *Engine) Camera() *camera.Camera  { return e.camera }
func (e *Engine) Scene() *scene.Scene     { return e.scene }
func (e *Engine) Panel() *shapelist.Panel { return e.panel }
func (e *Engine) Editor() *editor.Editor  { return e.editor }

func (e *Engine) mark(changed bool) bool {
	if changed {
		e.dirty = true
	}
	return changed
}
