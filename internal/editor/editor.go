// Package editor turns host input events into camera and scene changes.
package editor

import (
	"log/slog"

	"github.com/inamate/planar/internal/camera"
	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/scene"
	"github.com/inamate/planar/internal/shape"
	"github.com/inamate/planar/internal/surface"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Key identifies the keys the editor reacts to.
type Key int

const (
	KeyShift Key = iota + 1
	KeyEscape
	KeyUndo
)

// Action is what a pointer drag currently does.
type Action int

const (
	ActionIdle Action = iota
	ActionDrawing
	ActionPanning
)

func (a Action) String() string {
	switch a {
	case ActionDrawing:
		return "drawing"
	case ActionPanning:
		return "panning"
	default:
		return "idle"
	}
}

// ShapeList is notified as shapes are committed and rolled back.
type ShapeList interface {
	Add(d shape.Description)
	Remove(id string)
}

type nopList struct{}

func (nopList) Add(shape.Description) {}
func (nopList) Remove(string)         {}

// Editor owns the interaction state for one camera and scene. Pointer positions
// are center-relative, y-up pixels (see camera.CenterRelative).
//
// Every event method reports whether the view needs to be rendered again.
// An Editor is not safe for concurrent use.
type Editor struct {
	camera   *camera.Camera
	scene    *scene.Scene
	list     ShapeList
	newShape shape.Factory
	log      *slog.Logger

	action  Action
	builder shape.Builder
	pointer geom.Vec2

	snap    geom.Vec2
	hasSnap bool
	shift   bool
	closed  bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger for interaction events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithFactory sets the builder started by a primary press. Lines by default.
func WithFactory(f shape.Factory) Option {
	return func(e *Editor) { e.newShape = f }
}

// New creates an editor over cam and sc. list may be nil.
func New(cam *camera.Camera, sc *scene.Scene, list ShapeList, opts ...Option) *Editor {
	if list == nil {
		list = nopList{}
	}
	e := &Editor{
		camera:   cam,
		scene:    sc,
		list:     list,
		newShape: shape.NewLineBuilder,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Events ---

// PointerDown starts a shape on the primary button and a pan on the others.
func (e *Editor) PointerDown(b Button, px geom.Vec2) bool {
	e.pointer = px
	if e.action != ActionIdle {
		return false
	}

	switch b {
	case ButtonPrimary:
		e.builder = e.newShape()
		e.builder.StartAt(e.resolve(px))
		e.scene.Push(e.builder)
		e.action = ActionDrawing
	case ButtonSecondary, ButtonMiddle:
		e.action = ActionPanning
	default:
		return false
	}
	e.log.Debug("editor: pointer down", "button", int(b), "action", e.action.String())
	return true
}

// PointerDrag moves the in-progress shape's end or pans the camera so the world
// point under the pointer follows it.
func (e *Editor) PointerDrag(px geom.Vec2) bool {
	changed := false
	switch e.action {
	case ActionDrawing:
		e.builder.EndAt(e.resolve(px))
		changed = true
	case ActionPanning:
		delta := e.camera.AbsoluteLocation(px).Sub(e.camera.AbsoluteLocation(e.pointer))
		if delta != (geom.Vec2{}) {
			e.camera.SetPosition(e.camera.Position().Sub(delta))
			changed = true
		}
	}
	e.pointer = px
	return e.updateSnap() || changed
}

// PointerUp ends the current drag. A shape still degenerate at this point is
// discarded; a valid one is committed and listed.
func (e *Editor) PointerUp(px geom.Vec2) bool {
	e.pointer = px
	action := e.action
	e.action = ActionIdle
	if action != ActionDrawing {
		return false
	}

	b := e.builder
	e.builder = nil
	if top, ok := e.scene.Top(); !ok || top != shape.Shape(b) {
		e.log.Warn("editor: in-progress shape is not on top of the scene")
		return true
	}
	e.scene.Pop()

	committed, err := b.Build()
	if err != nil {
		e.log.Debug("editor: discarded shape", "kind", string(b.Kind()), "error", err)
		return true
	}
	e.scene.Push(committed)
	e.list.Add(committed.Describe())
	e.log.Info("editor: committed shape", "id", committed.ID(), "kind", string(committed.Kind()))
	return true
}

// PointerMove tracks the pointer without a button held.
func (e *Editor) PointerMove(px geom.Vec2) bool {
	e.pointer = px
	return e.updateSnap()
}

// Wheel zooms in for negative deltas and out otherwise, keeping the world point
// under px in place.
func (e *Editor) Wheel(delta float64, px geom.Vec2) bool {
	e.pointer = px
	before := e.camera.AbsoluteLocation(px)

	var zoomed bool
	if delta < 0 {
		zoomed = e.camera.ZoomIn()
	} else {
		zoomed = e.camera.ZoomOut()
	}
	if !zoomed {
		return false
	}

	after := e.camera.AbsoluteLocation(px)
	e.camera.SetPosition(e.camera.Position().Add(before.Sub(after)))
	e.updateSnap()
	return true
}

// KeyDown handles a key press.
func (e *Editor) KeyDown(k Key) bool {
	switch k {
	case KeyShift:
		if e.shift {
			return false
		}
		e.shift = true
		return e.updateSnap()
	case KeyEscape:
		e.closed = true
		e.log.Info("editor: closed")
		return false
	case KeyUndo:
		return e.Undo()
	}
	return false
}

// KeyUp handles a key release.
func (e *Editor) KeyUp(k Key) bool {
	if k != KeyShift || !e.shift {
		return false
	}
	e.shift = false
	return e.updateSnap()
}

// Undo removes the most recently committed shape. It does nothing while a shape
// is being drawn.
func (e *Editor) Undo() bool {
	if e.action == ActionDrawing || e.scene.Len() == 0 {
		return false
	}
	sh, _ := e.scene.Pop()
	e.list.Remove(sh.ID())
	e.log.Info("editor: undo", "id", sh.ID())
	return true
}

// Resize recalibrates the camera for a new viewport size.
func (e *Editor) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	e.camera.Resize(width, height)
	e.updateSnap()
	return true
}

// --- Queries ---

// Render draws the grid, the scene and the snap target.
func (e *Editor) Render(s surface.Surface) {
	var snap *geom.Vec2
	if e.hasSnap {
		p := e.snap
		snap = &p
	}
	e.camera.Render(s, e.scene, snap)
}

// SnapTarget returns the lattice point the pointer would snap to.
func (e *Editor) SnapTarget() (geom.Vec2, bool) {
	return e.snap, e.hasSnap
}

func (e *Editor) Action() Action         { return e.action }
func (e *Editor) Closed() bool           { return e.closed }
func (e *Editor) Camera() *camera.Camera { return e.camera }
func (e *Editor) Scene() *scene.Scene    { return e.scene }

// resolve converts px to a world point, snapped unless shift is held.
func (e *Editor) resolve(px geom.Vec2) geom.Vec2 {
	p := e.camera.AbsoluteLocation(px)
	if e.shift {
		return p
	}
	return e.scene.SnapFrom(p)
}

// updateSnap recomputes the snap target at the last pointer position and
// reports whether it changed.
func (e *Editor) updateSnap() bool {
	prev, had := e.snap, e.hasSnap
	e.snap, e.hasSnap = geom.Vec2{}, false
	if !e.shift {
		e.snap, e.hasSnap = e.scene.Snap(e.camera.AbsoluteLocation(e.pointer))
		if !e.hasSnap {
			e.snap = geom.Vec2{}
		}
	}
	return had != e.hasSnap || prev != e.snap
}
