package scene

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/shape"
)

func mustLine(t *testing.T, a, b geom.Vec2) shape.Shape {
	t.Helper()
	l, err := shape.NewLine(a, b)
	require.NoError(t, err)
	return l
}

func TestPushPopStackOrder(t *testing.T) {
	s := New()
	first := mustLine(t, geom.V(0, 0), geom.V(1, 0))
	second := mustLine(t, geom.V(0, 0), geom.V(0, 1))
	s.Push(first)
	s.Push(second)
	require.Equal(t, 2, s.Len())

	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, second.ID(), top.ID())

	got, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, second.ID(), got.ID())

	shapes := s.Shapes()
	require.Len(t, shapes, 1)
	assert.Equal(t, first.ID(), shapes[0].ID())
}

func TestPopEmptyLogsAndNoops(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	got, ok := s.Pop()
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, buf.String(), "pop on empty scene")
}

func TestPushNilIgnored(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	s.Push(nil)
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, buf.String(), "nil shape")
}

func TestShapesReturnsCopy(t *testing.T) {
	s := New()
	s.Push(mustLine(t, geom.V(0, 0), geom.V(1, 0)))
	shapes := s.Shapes()
	shapes[0] = nil

	var seen int
	s.Each(func(sh shape.Shape) {
		assert.NotNil(t, sh)
		seen++
	})
	assert.Equal(t, 1, seen)
}

func TestSnapFrom(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		in     geom.Vec2
		want   geom.Vec2
	}{
		{"near lattice point", 0.4, geom.V(0.92, -0.1), geom.V(1, 0)},
		{"far from lattice", 0.3, geom.V(0.5, 0.5), geom.V(0.5, 0.5)},
		{"already on lattice", 0.3, geom.V(-4, 7), geom.V(-4, 7)},
		{"negative coordinates", 0.3, geom.V(-2.1, -2.9), geom.V(-2, -3)},
		{"disabled", 0, geom.V(1, 1), geom.V(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithSnapRadius(tt.radius))
			assert.Equal(t, tt.want, s.SnapFrom(tt.in))
		})
	}
}

func TestSnapBoundaryIsStrict(t *testing.T) {
	const radius = 0.25
	s := New(WithSnapRadius(radius))

	onRadius := geom.V(3, 4+radius)
	got, snapped := s.Snap(onRadius)
	assert.False(t, snapped)
	assert.Equal(t, onRadius, got)

	inside := geom.V(3, 4+radius-1e-9)
	got, snapped = s.Snap(inside)
	assert.True(t, snapped)
	assert.Equal(t, geom.V(3, 4), got)
}

func TestSnapIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := New(WithSnapRadius(0.4))
	for i := 0; i < 1000; i++ {
		p := geom.V(rng.Float64()*200-100, rng.Float64()*200-100)
		once := s.SnapFrom(p)
		assert.Equal(t, once, s.SnapFrom(once))
	}
}

func TestSnapScenarioDistance(t *testing.T) {
	p := geom.V(0.92, -0.1)
	d := p.Round().DistanceTo(p)
	assert.InDelta(t, math.Hypot(0.08, 0.1), d, 1e-12)
	assert.Less(t, d, 0.4)
}
