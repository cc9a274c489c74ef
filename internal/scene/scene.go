// Package scene holds the shapes placed on the plane and resolves grid snapping.
package scene

import (
	"log/slog"

	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/shape"
)

// DefaultSnapRadius is the world distance within which points snap to the
// integer lattice.
const DefaultSnapRadius = 0.3

// Scene is an insertion-ordered stack of shapes. Only the top can be removed,
// since at most one shape is in progress at a time.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	shapes     []shape.Shape
	snapRadius float64
	log        *slog.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithSnapRadius sets the snap radius. A radius <= 0 disables snapping.
func WithSnapRadius(r float64) Option {
	return func(s *Scene) { s.snapRadius = r }
}

// WithLogger sets the logger used for contract violations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		snapRadius: DefaultSnapRadius,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push appends a shape. Nil shapes are dropped.
func (s *Scene) Push(sh shape.Shape) {
	if sh == nil {
		s.log.Warn("scene: push of nil shape ignored")
		return
	}
	s.shapes = append(s.shapes, sh)
}

// Pop removes and returns the most recently pushed shape. Popping an empty scene
// is a caller bug; it is logged and ignored.
func (s *Scene) Pop() (shape.Shape, bool) {
	n := len(s.shapes)
	if n == 0 {
		s.log.Warn("scene: pop on empty scene")
		return nil, false
	}
	top := s.shapes[n-1]
	s.shapes[n-1] = nil
	s.shapes = s.shapes[:n-1]
	return top, true
}

// Top returns the most recently pushed shape without removing it.
func (s *Scene) Top() (shape.Shape, bool) {
	if len(s.shapes) == 0 {
		return nil, false
	}
	return s.shapes[len(s.shapes)-1], true
}

func (s *Scene) Len() int {
	return len(s.shapes)
}

// Shapes returns the shapes in insertion order. The slice is a copy.
func (s *Scene) Shapes() []shape.Shape {
	out := make([]shape.Shape, len(s.shapes))
	copy(out, s.shapes)
	return out
}

// Each calls fn for every shape in insertion order.
func (s *Scene) Each(fn func(shape.Shape)) {
	for _, sh := range s.shapes {
		fn(sh)
	}
}

func (s *Scene) SnapRadius() float64 {
	return s.snapRadius
}

// SnapFrom returns the nearest integer lattice point if it lies strictly within
// the snap radius of p, and p unchanged otherwise. Coordinates exactly halfway
// between two integers round away from zero.
func (s *Scene) SnapFrom(p geom.Vec2) geom.Vec2 {
	snapped, _ := s.Snap(p)
	return snapped
}

// Snap is SnapFrom that also reports whether p moved to a lattice point.
func (s *Scene) Snap(p geom.Vec2) (geom.Vec2, bool) {
	candidate := p.Round()
	if candidate.DistanceTo(p) < s.snapRadius {
		return candidate, true
	}
	return p, false
}
