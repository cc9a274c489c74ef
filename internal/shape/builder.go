package shape

import (
	"github.com/inamate/planar/internal/geom"
)

// LineBuilder collects the two endpoints of a line while it is being dragged.
type LineBuilder struct {
	start *geom.Vec2
	end   *geom.Vec2
}

// NewLineBuilder is a Factory for lines.
func NewLineBuilder() Builder {
	return &LineBuilder{}
}

func (b *LineBuilder) StartAt(p geom.Vec2) {
	b.start = &p
}

// EndAt may be called any number of times while dragging; the last call wins.
func (b *LineBuilder) EndAt(p geom.Vec2) {
	b.end = &p
}

func (b *LineBuilder) ID() string { return "" }
func (b *LineBuilder) Kind() Kind { return KindLine }

// Valid is false until both endpoints are set and distinct.
func (b *LineBuilder) Valid() bool {
	if b.start == nil || b.end == nil {
		return false
	}
	return *b.start != *b.end
}

func (b *LineBuilder) Render(p Pen, visible geom.Bounds) {
	if !b.Valid() {
		return
	}
	renderLine(p, visible, *b.start, *b.end)
}

func (b *LineBuilder) Describe() Description {
	return Description{Kind: KindLine, Title: "Line", Color: hexColor(LineColor)}
}

// Build returns the committed line, or ErrInvalid.
func (b *LineBuilder) Build() (Shape, error) {
	if !b.Valid() {
		return nil, ErrInvalid
	}
	l, err := NewLine(*b.start, *b.end)
	if err != nil {
		return nil, err
	}
	return l, nil
}
