//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/inamate/planar/internal/config"
	"github.com/inamate/planar/internal/editor"
	"github.com/inamate/planar/internal/engine"
	"github.com/inamate/planar/internal/script"
)

var eng *engine.Engine

func main() {
	eng = engine.New(config.Default())

	// Create the engine API object
	planarEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	planarEditor.Set("pointerDown", js.FuncOf(pointerDown))
	planarEditor.Set("pointerUp", js.FuncOf(pointerUp))
	planarEditor.Set("pointerMove", js.FuncOf(pointerMove))
	planarEditor.Set("pointerDrag", js.FuncOf(pointerDrag))
	planarEditor.Set("wheel", js.FuncOf(wheel))
	planarEditor.Set("keyDown", js.FuncOf(keyDown))
	planarEditor.Set("keyUp", js.FuncOf(keyUp))
	planarEditor.Set("resize", js.FuncOf(resize))
	planarEditor.Set("undo", js.FuncOf(undo))
	planarEditor.Set("replay", js.FuncOf(replay))

	// --- Queries (frontend ← backend) ---
	planarEditor.Set("render", js.FuncOf(render))
	planarEditor.Set("getShapes", js.FuncOf(getShapes))
	planarEditor.Set("getView", js.FuncOf(getView))
	planarEditor.Set("isClosed", js.FuncOf(isClosed))

	// Register on global scope
	js.Global().Set("planarEditor", planarEditor)

	// Signal that WASM is ready
	js.Global().Set("planarWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---
//
// Pointer handlers take canvas pixel coordinates (offsetX, offsetY) and return
// whether the canvas needs to be redrawn.

// Matches MouseEvent.button.
func button(v js.Value) editor.Button {
	switch v.Int() {
	case 1:
		return editor.ButtonMiddle
	case 2:
		return editor.ButtonSecondary
	default:
		return editor.ButtonPrimary
	}
}

// Matches KeyboardEvent.key.
func key(v js.Value) (editor.Key, bool) {
	switch strings.ToLower(v.String()) {
	case "shift":
		return editor.KeyShift, true
	case "escape":
		return editor.KeyEscape, true
	case "z", "undo":
		return editor.KeyUndo, true
	}
	return 0, false
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return false
	}
	return eng.PointerDown(button(args[0]), args[1].Float(), args[2].Float())
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	return eng.PointerUp(args[0].Float(), args[1].Float())
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	return eng.PointerMove(args[0].Float(), args[1].Float())
}

func pointerDrag(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	return eng.PointerDrag(args[0].Float(), args[1].Float())
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return false
	}
	return eng.Wheel(args[0].Float(), args[1].Float(), args[2].Float())
}

func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	k, ok := key(args[0])
	if !ok {
		return false
	}
	return eng.KeyDown(k)
}

func keyUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return false
	}
	k, ok := key(args[0])
	if !ok {
		return false
	}
	return eng.KeyUp(k)
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return false
	}
	return eng.Resize(args[0].Int(), args[1].Int())
}

func undo(this js.Value, args []js.Value) interface{} {
	return eng.Undo()
}

func replay(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing script YAML"})
	}

	s, err := script.Load(strings.NewReader(args[0].String()))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	st, err := eng.Replay(s)
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true, "events": st.Events})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return eng.Render()
}

func getShapes(this js.Value, args []js.Value) interface{} {
	return eng.Shapes()
}

func getView(this js.Value, args []js.Value) interface{} {
	cam := eng.Camera()
	pos := cam.Position()
	b := cam.Bounds()
	return js.ValueOf(map[string]interface{}{
		"x":      pos.X,
		"y":      pos.Y,
		"ppu":    cam.PPU(),
		"width":  cam.Width(),
		"height": cam.Height(),
		"left":   b.Left,
		"top":    b.Top,
		"right":  b.Right,
		"bottom": b.Bottom,
	})
}

func isClosed(this js.Value, args []js.Value) interface{} {
	return eng.Closed()
}
