package geom

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWorldToPixelRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		pixel := V(rng.Float64()*2000-1000, rng.Float64()*2000-1000)
		position := V(rng.Float64()*1e4-5e3, rng.Float64()*1e4-5e3)
		ppu := 8 + rng.Float64()*92

		got := ToPixel(ToWorld(pixel, position, ppu), position, ppu)
		assert.InDelta(t, pixel.X, got.X, 1e-6)
		assert.InDelta(t, pixel.Y, got.Y, 1e-6)
	}
}

func TestToWorld(t *testing.T) {
	tests := []struct {
		name     string
		pixel    Vec2
		position Vec2
		ppu      float64
		want     Vec2
	}{
		{"center maps to position", V(0, 0), V(3, -2), 50, V(3, -2)},
		{"right and up", V(100, 50), V(0, 0), 50, V(2, 1)},
		{"offset camera", V(-25, 25), V(1, 1), 25, V(0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToWorld(tt.pixel, tt.position, tt.ppu)
			assert.True(t, got.ApproxEqual(tt.want, 1e-12), "got %v want %v", got, tt.want)
		})
	}
}

func TestTruncateDropsFractionTowardZero(t *testing.T) {
	assert.Equal(t, 2, Truncate(2.9))
	assert.Equal(t, -2, Truncate(-2.9))
	assert.Equal(t, 0, Truncate(-0.5))
}

func TestVec2Round(t *testing.T) {
	assert.Equal(t, V(1, 0), V(0.92, -0.1).Round())
	assert.Equal(t, V(1, -1), V(0.5, -0.5).Round())
	assert.Equal(t, V(3, -4), V(3, -4).Round())
}

func TestBoundsAround(t *testing.T) {
	b := BoundsAround(V(0, 0), 8, 6)
	assert.Equal(t, Bounds{Left: -8, Top: 6, Right: 8, Bottom: -6}, b)
	assert.Equal(t, 16.0, b.Width())
	assert.Equal(t, 12.0, b.Height())
	assert.True(t, b.Contains(V(8, -6)))
	assert.False(t, b.Contains(V(8.1, 0)))
	assert.Equal(t, V(8, -6), b.Clamp(V(20, -20)))
}

func TestMatrixTranslateComposes(t *testing.T) {
	m := Identity().Multiply(Translate(10, -4)).Multiply(Translate(-3, 1))
	x, y := m.TransformPoint(1, 1)
	assert.Equal(t, 8.0, x)
	assert.Equal(t, -2.0, y)

	back := m.Multiply(Translate(-7, 3))
	assert.Equal(t, Identity(), back)
}
