// Package script loads recorded input sessions from YAML and replays them
// against an editor. Scripts describe input, not drawings: the shapes they
// produce come from running the events through the editor.
//
//	width: 800
//	height: 600
//	ppu: 50
//	events:
//	  - {type: down, x: 450, y: 250}
//	  - {type: drag, x: 550, y: 200}
//	  - {type: up, x: 550, y: 200}
//	  - {type: wheel, x: 400, y: 300, delta: -1}
//	  - {type: keydown, key: undo}
//
// Pointer coordinates are device pixels with the origin at the top-left corner
// of the viewport.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inamate/planar/internal/editor"
)

var (
	ErrUnknownEvent = errors.New("script: unknown event type")
	ErrInvalidEvent = errors.New("script: invalid event")
)

// Event types.
const (
	EventDown    = "down"
	EventUp      = "up"
	EventMove    = "move"
	EventDrag    = "drag"
	EventWheel   = "wheel"
	EventKeyDown = "keydown"
	EventKeyUp   = "keyup"
	EventResize  = "resize"
)

// Viewport is a camera calibration.
type Viewport struct {
	Width  int
	Height int
	PPU    float64
}

// DefaultViewport is used for fields neither the script nor the caller set.
var DefaultViewport = Viewport{Width: 800, Height: 600, PPU: 50}

var buttons = map[string]editor.Button{
	"":          editor.ButtonPrimary,
	"primary":   editor.ButtonPrimary,
	"secondary": editor.ButtonSecondary,
	"middle":    editor.ButtonMiddle,
}

var keys = map[string]editor.Key{
	"shift":  editor.KeyShift,
	"escape": editor.KeyEscape,
	"undo":   editor.KeyUndo,
}

// Script is a viewport calibration plus the events to feed through it.
type Script struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	PPU    float64 `yaml:"ppu"`
	Events []Event `yaml:"events"`
}

// Event is one host input event.
type Event struct {
	Type   string  `yaml:"type"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Button string  `yaml:"button,omitempty"`
	Delta  float64 `yaml:"delta,omitempty"`
	Key    string  `yaml:"key,omitempty"`
	Width  int     `yaml:"width,omitempty"`
	Height int     `yaml:"height,omitempty"`
}

// Load decodes and validates a script.
func Load(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("script: empty input")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from path.
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the viewport and every event. Zero viewport fields are
// allowed and mean "use the caller's".
func (s *Script) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidEvent, s.Width, s.Height)
	}
	if s.PPU < 0 {
		return fmt.Errorf("%w: ppu %v", ErrInvalidEvent, s.PPU)
	}
	for i, ev := range s.Events {
		if err := ev.validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

func (ev Event) validate() error {
	switch ev.Type {
	case EventDown:
		if _, ok := buttons[ev.Button]; !ok {
			return fmt.Errorf("%w: button %q", ErrInvalidEvent, ev.Button)
		}
	case EventUp, EventMove, EventDrag, EventWheel:
	case EventKeyDown, EventKeyUp:
		if _, ok := keys[ev.Key]; !ok {
			return fmt.Errorf("%w: key %q", ErrInvalidEvent, ev.Key)
		}
	case EventResize:
		if ev.Width <= 0 || ev.Height <= 0 {
			return fmt.Errorf("%w: resize to %dx%d", ErrInvalidEvent, ev.Width, ev.Height)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
	return nil
}

// Stats summarizes a replay.
type Stats struct {
	Events  int // events delivered
	Redraws int // events after which the editor asked for a render
}

// Replay feeds the script's events to e in order, stopping early if the editor
// is closed. e's camera must already be calibrated, see Calibrate.
func Replay(e *editor.Editor, s *Script) (Stats, error) {
	var st Stats
	for i, ev := range s.Events {
		if e.Closed() {
			break
		}
		redraw, err := apply(e, ev)
		if err != nil {
			return st, fmt.Errorf("event %d: %w", i, err)
		}
		st.Events++
		if redraw {
			st.Redraws++
		}
	}
	return st, nil
}

// Viewport returns the script's calibration with unset fields taken from
// fallback, then from DefaultViewport.
func (s *Script) Viewport(fallback Viewport) Viewport {
	v := Viewport{Width: s.Width, Height: s.Height, PPU: s.PPU}
	for _, f := range []Viewport{fallback, DefaultViewport} {
		if v.Width <= 0 {
			v.Width = f.Width
		}
		if v.Height <= 0 {
			v.Height = f.Height
		}
		if v.PPU <= 0 {
			v.PPU = f.PPU
		}
	}
	return v
}

// Calibrate sets up e's camera for the script's viewport and returns it.
func (s *Script) Calibrate(e *editor.Editor, fallback Viewport) Viewport {
	v := s.Viewport(fallback)
	e.Camera().Calibrate(v.Width, v.Height, v.PPU)
	return v
}

func apply(e *editor.Editor, ev Event) (bool, error) {
	if err := ev.validate(); err != nil {
		return false, err
	}
	px := e.Camera().CenterRelative(ev.X, ev.Y)

	switch ev.Type {
	case EventDown:
		return e.PointerDown(buttons[ev.Button], px), nil
	case EventUp:
		return e.PointerUp(px), nil
	case EventMove:
		return e.PointerMove(px), nil
	case EventDrag:
		return e.PointerDrag(px), nil
	case EventWheel:
		return e.Wheel(ev.Delta, px), nil
	case EventKeyDown:
		return e.KeyDown(keys[ev.Key]), nil
	case EventKeyUp:
		return e.KeyUp(keys[ev.Key]), nil
	case EventResize:
		return e.Resize(ev.Width, ev.Height), nil
	}
	return false, nil
}
