package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/planar/internal/camera"
	"github.com/inamate/planar/internal/editor"
	"github.com/inamate/planar/internal/geom"
	"github.com/inamate/planar/internal/scene"
	"github.com/inamate/planar/internal/shape"
)

const drawTwo = `
width: 800
height: 600
ppu: 50
events:
  - {type: move, x: 450, y: 250}
  - {type: down, x: 450, y: 250}
  - {type: drag, x: 550, y: 200}
  - {type: up, x: 550, y: 200}
  - {type: down, x: 400, y: 300}
  - {type: up, x: 400, y: 300}
  - {type: keydown, key: shift}
  - {type: down, x: 400, y: 300}
  - {type: drag, x: 410, y: 300}
  - {type: up, x: 410, y: 300}
  - {type: keyup, key: shift}
`

func newEditor(s *Script) *editor.Editor {
	e := editor.New(camera.New(camera.DefaultOptions(), nil), scene.New(), nil)
	s.Calibrate(e, Viewport{})
	return e
}

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(drawTwo))
	require.NoError(t, err)

	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
	assert.Equal(t, 50.0, s.PPU)
	require.Len(t, s.Events, 11)
	assert.Equal(t, Event{Type: EventDrag, X: 550, Y: 200}, s.Events[2])
	assert.Equal(t, Event{Type: EventKeyDown, Key: "shift"}, s.Events[6])
}

func TestViewportFallback(t *testing.T) {
	s, err := Load(strings.NewReader("height: 300\nevents: []\n"))
	require.NoError(t, err)
	assert.Zero(t, s.Width)

	assert.Equal(t, Viewport{Width: 640, Height: 300, PPU: 50}, s.Viewport(Viewport{Width: 640}))
	assert.Equal(t, Viewport{Width: 800, Height: 300, PPU: 50}, s.Viewport(Viewport{}))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"unknown type", "events: [{type: tap}]", ErrUnknownEvent},
		{"bad button", "events: [{type: down, button: left}]", ErrInvalidEvent},
		{"bad key", "events: [{type: keydown, key: ctrl}]", ErrInvalidEvent},
		{"missing key", "events: [{type: keyup}]", ErrInvalidEvent},
		{"bad resize", "events: [{type: resize, width: 0, height: 10}]", ErrInvalidEvent},
		{"negative viewport", "width: -1\nevents: []", ErrInvalidEvent},
		{"negative ppu", "ppu: -5\nevents: []", ErrInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "   \n", "events: {", "colour: red\n"} {
		_, err := Load(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestReplay(t *testing.T) {
	s, err := Load(strings.NewReader(drawTwo))
	require.NoError(t, err)
	e := newEditor(s)

	st, err := Replay(e, s)
	require.NoError(t, err)
	assert.Equal(t, 11, st.Events)
	assert.Positive(t, st.Redraws)

	// The click without a drag is discarded; the shift-drawn line keeps its raw
	// endpoints.
	shapes := e.Scene().Shapes()
	require.Len(t, shapes, 2)

	first := shapes[0].(shape.Line)
	assert.Equal(t, geom.V(1, 1), first.Start())
	assert.Equal(t, geom.V(3, 2), first.End())

	second := shapes[1].(shape.Line)
	assert.Equal(t, geom.V(0, 0), second.Start())
	assert.True(t, second.End().ApproxEqual(geom.V(0.2, 0), 1e-9))
}

func TestReplayStopsWhenClosed(t *testing.T) {
	s, err := Load(strings.NewReader(`
events:
  - {type: keydown, key: escape}
  - {type: down, x: 400, y: 300}
`))
	require.NoError(t, err)
	e := newEditor(s)

	st, err := Replay(e, s)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Events)
	assert.True(t, e.Closed())
	assert.Equal(t, editor.ActionIdle, e.Action())
}

func TestReplayRejectsUnvalidatedEvent(t *testing.T) {
	s := &Script{Width: 800, Height: 600, PPU: 50, Events: []Event{{Type: "pinch"}}}
	_, err := Replay(newEditor(s), s)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestReplayResizeAndWheel(t *testing.T) {
	s, err := Load(strings.NewReader(`
events:
  - {type: resize, width: 400, height: 400}
  - {type: wheel, x: 200, y: 200, delta: -1}
`))
	require.NoError(t, err)
	e := newEditor(s)

	_, err = Replay(e, s)
	require.NoError(t, err)
	assert.Equal(t, 400, e.Camera().Width())
	assert.Equal(t, 55.0, e.Camera().PPU())
	assert.Equal(t, geom.Vec2{}, e.Camera().Position())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(drawTwo), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Events, 11)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
