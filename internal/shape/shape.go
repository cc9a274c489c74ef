// Package shape defines the drawable primitives placed on the plane.
//
// A primitive goes through two states. While the user is still dragging it is a
// Builder, which can be moved with StartAt/EndAt and rendered as a preview once
// valid. Build turns a valid Builder into an immutable Shape.
package shape

import (
	"errors"
	"image/color"

	"github.com/inamate/planar/internal/geom"
)

// ErrInvalid is returned by Build when the in-progress shape is degenerate or
// missing an endpoint.
var ErrInvalid = errors.New("shape: invalid geometry")

// Kind names a shape variant.
type Kind string

const (
	KindLine Kind = "line"
)

// Pen draws in world coordinates. The camera implements it; shapes never see
// pixels.
type Pen interface {
	SetColor(c color.Color)
	SetStrokeWidth(px float64)
	DrawLine(a, b geom.Vec2)
}

// Shape is anything the scene can hold and the camera can draw.
type Shape interface {
	// ID is empty until the shape has been committed.
	ID() string
	Kind() Kind
	Valid() bool
	// Render draws the shape clipped to the visible world rectangle. It is only
	// called on valid shapes.
	Render(p Pen, visible geom.Bounds)
	Describe() Description
}

// Builder is a shape under construction.
type Builder interface {
	Shape
	StartAt(p geom.Vec2)
	EndAt(p geom.Vec2)
	Build() (Shape, error)
}

// Factory creates a fresh, empty builder.
type Factory func() Builder

// Description is what a shape list shows for a committed shape.
type Description struct {
	ID      string   `json:"id"`
	Kind    Kind     `json:"kind"`
	Title   string   `json:"title"`
	Color   string   `json:"color"`
	Details []string `json:"details"`
}
