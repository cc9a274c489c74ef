package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/planar/internal/geom"
)

func TestNewRasterRejectsEmptySize(t *testing.T) {
	_, err := NewRaster(0, 10)
	require.Error(t, err)
}

func TestRasterTranslate(t *testing.T) {
	r, err := NewRaster(80, 60)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	r.Translate(-10, 5)
	assert.Equal(t, geom.V(-10, 5), r.Offset())
	r.Translate(10, -5)
	assert.Equal(t, geom.Vec2{}, r.Offset())
}

func TestRasterMeasureStringScalesWithSize(t *testing.T) {
	r, err := NewRaster(10, 10)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	w10, h10 := r.MeasureString("A", 10)
	w20, h20 := r.MeasureString("A", 20)
	assert.Greater(t, w10, 0.0)
	assert.Greater(t, h10, 0.0)
	assert.Greater(t, w20, w10)
	assert.Greater(t, h20, h10)

	wide, _ := r.MeasureString("AAAA", 10)
	assert.InDelta(t, 4*w10, wide, 0.01)
}

func TestRasterEncodePNG(t *testing.T) {
	r, err := NewRaster(40, 30)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	r.SetColor(color.Black)
	r.SetStrokeWidth(3)
	r.DrawLine(-20, 0, 20, 0)
	r.FillRect(-2, -2, 4, 4)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	// The filled square sits on the device center.
	cr, cg, cb, _ := img.At(20, 15).RGBA()
	assert.Less(t, cr+cg+cb, uint32(3*0x8000))

	// A corner far from every stroke stays white.
	wr, _, _, _ := img.At(1, 1).RGBA()
	assert.Greater(t, wr, uint32(0xF000))
}
