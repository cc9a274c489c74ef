package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/planar/internal/config"
	"github.com/inamate/planar/internal/editor"
	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/script"
	"github.com/inamate/planar/internal/shape"
	"github.com/inamate/planar/internal/surface"
)

func TestNewCalibratesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.PPU = 400, 200, 20
	e := New(cfg)

	hx, hy := e.Camera().HalfExtents()
	assert.InDelta(t, 10, hx, 1e-9)
	assert.InDelta(t, 5, hy, 1e-9)
	assert.Equal(t, 0.3, e.Scene().SnapRadius())
}

func TestDrawInDevicePixels(t *testing.T) {
	e := New(config.Default())

	// Device (450, 250) is world (1, 1) on an 800x600 viewport at 50 ppu.
	assert.True(t, e.PointerDown(editor.ButtonPrimary, 450, 250))
	assert.True(t, e.PointerDrag(550, 200))
	assert.True(t, e.PointerUp(550, 200))

	top, ok := e.Scene().Top()
	require.True(t, ok)
	line := top.(shape.Line)
	assert.Equal(t, geom.V(1, 1), line.Start())
	assert.Equal(t, geom.V(3, 2), line.End())

	var items []shape.Description
	require.NoError(t, json.Unmarshal([]byte(e.Shapes()), &items))
	require.Len(t, items, 1)
	assert.Equal(t, line.ID(), items[0].ID)
	assert.Contains(t, e.ShapeLines(), "   SLOPE = 0.5")

	assert.True(t, e.Undo())
	assert.Equal(t, "[]", e.Shapes())
}

func TestRenderCachesUntilChange(t *testing.T) {
	e := New(config.Default())

	first := e.Render()
	var cmds []surface.DrawCommand
	require.NoError(t, json.Unmarshal([]byte(first), &cmds))
	require.NotEmpty(t, cmds)
	assert.Equal(t, first, e.Render())

	// Moving onto a lattice point adds the snap marker.
	require.True(t, e.PointerMove(400, 300))
	second := e.Render()
	assert.NotEqual(t, first, second)

	var again []surface.DrawCommand
	require.NoError(t, json.Unmarshal([]byte(second), &again))
	assert.Len(t, again, len(cmds)+2)

	// Same target, nothing to redraw.
	assert.False(t, e.PointerMove(402, 301))
	assert.Equal(t, second, e.Render())
}

func TestRenderToSurface(t *testing.T) {
	e := New(config.Default())
	r := surface.NewRecorder()
	e.RenderTo(r)
	assert.NotEmpty(t, r.Commands())
}

func TestReplay(t *testing.T) {
	e := New(config.Default())
	s, err := script.Load(strings.NewReader(`
width: 400
events:
  - {type: down, x: 250, y: 250}
  - {type: drag, x: 300, y: 200}
  - {type: up, x: 300, y: 200}
  - {type: wheel, x: 200, y: 300, delta: -1}
`))
	require.NoError(t, err)

	st, err := e.Replay(s)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Events)

	assert.Equal(t, 400, e.Camera().Width())
	assert.Equal(t, 600, e.Camera().Height())
	assert.Equal(t, 55.0, e.Camera().PPU())
	assert.Equal(t, 1, e.Scene().Len())
	assert.Equal(t, 1, e.Panel().Len())
}

func TestEscapeClosesEngine(t *testing.T) {
	e := New(config.Default())
	e.KeyDown(editor.KeyEscape)
	assert.True(t, e.Closed())
}

func TestResize(t *testing.T) {
	e := New(config.Default())
	e.Render()
	assert.True(t, e.Resize(1024, 768))
	assert.Equal(t, 1024, e.Camera().Width())
	assert.False(t, e.Resize(-1, 768))
}
