//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inklet/inklet/backend-go/internal/engine"
)

var eng *engine.Engine

// jsObserver bridges selection changes into a JavaScript callback set via
// onSelectionChanged. The callback receives a JSON string or null.
type jsObserver struct {
	callback js.Value
}

func (o *jsObserver) SelectionChanged(snap *engine.ShapeSnapshot) {
	if o.callback.IsUndefined() || o.callback.IsNull() {
		return
	}
	if snap == nil {
		o.callback.Invoke(js.Null())
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	o.callback.Invoke(string(data))
}

var observer = &jsObserver{callback: js.Undefined()}

func main() {
	eng = engine.NewEngine(0, 0)
	eng.SetObserver(observer)

	inkletEngine := js.Global().Get("Object").New()

	// --- Pointer input ---
	inkletEngine.Set("pointerDown", js.FuncOf(pointerDown))
	inkletEngine.Set("pointerMove", js.FuncOf(pointerMove))
	inkletEngine.Set("pointerUp", js.FuncOf(pointerUp))
	inkletEngine.Set("pointerCancel", js.FuncOf(pointerCancel))

	// --- Tool and style commands ---
	inkletEngine.Set("setMode", js.FuncOf(setMode))
	inkletEngine.Set("setShapeKind", js.FuncOf(setShapeKind))
	inkletEngine.Set("setStrokeColor", stringSetter(eng.SetStrokeColor))
	inkletEngine.Set("setStrokeWidth", floatSetter(eng.SetStrokeWidth))
	inkletEngine.Set("setBorderColor", stringSetter(eng.SetBorderColor))
	inkletEngine.Set("setBorderWidth", floatSetter(eng.SetBorderWidth))
	inkletEngine.Set("setFillColor", stringSetter(eng.SetFillColor))
	inkletEngine.Set("setFillEnabled", js.FuncOf(setFillEnabled))
	inkletEngine.Set("setEraserRadius", floatSetter(eng.SetEraserRadius))
	inkletEngine.Set("setTextColor", stringSetter(eng.SetTextColor))
	inkletEngine.Set("setTextSize", floatSetter(eng.SetTextSize))
	inkletEngine.Set("setBackground", stringSetter(eng.SetBackground))
	inkletEngine.Set("setDefaultShapeSize", js.FuncOf(setDefaultShapeSize))
	inkletEngine.Set("setSurfaceSize", js.FuncOf(setSurfaceSize))

	// --- Selected-shape mutations ---
	inkletEngine.Set("updateSelectedFillColor", stringSetter(eng.UpdateSelectedFillColor))
	inkletEngine.Set("updateSelectedFillEnabled", js.FuncOf(updateSelectedFillEnabled))
	inkletEngine.Set("updateSelectedBorderColor", stringSetter(eng.UpdateSelectedBorderColor))
	inkletEngine.Set("updateSelectedBorderWidth", floatSetter(eng.UpdateSelectedBorderWidth))
	inkletEngine.Set("updateSelectedText", stringSetter(eng.UpdateSelectedText))
	inkletEngine.Set("updateSelectedTextColor", stringSetter(eng.UpdateSelectedTextColor))
	inkletEngine.Set("updateSelectedTextSize", floatSetter(eng.UpdateSelectedTextSize))

	// --- Surface commands ---
	inkletEngine.Set("clearAll", js.FuncOf(clearAll))
	inkletEngine.Set("undoLastStroke", js.FuncOf(undoLastStroke))

	// --- Queries ---
	inkletEngine.Set("render", js.FuncOf(render))
	inkletEngine.Set("currentSelection", js.FuncOf(currentSelection))
	inkletEngine.Set("hitTest", js.FuncOf(hitTest))

	// --- Events ---
	inkletEngine.Set("onSelectionChanged", js.FuncOf(onSelectionChanged))

	js.Global().Set("inkletEngine", inkletEngine)
	js.Global().Set("inkletWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Pointer Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.PointerDown(args[0].Int(), args[1].Float(), args[2].Float())
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.PointerMove(args[0].Int(), args[1].Float(), args[2].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.PointerUp(args[0].Int(), args[1].Float(), args[2].Float())
	return nil
}

func pointerCancel(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.PointerCancel(args[0].Int(), args[1].Float(), args[2].Float())
	return nil
}

// --- Command Handlers ---

func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetMode(engine.Mode(args[0].String()))
	return nil
}

func setShapeKind(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetShapeKind(engine.ShapeKind(args[0].String()))
	return nil
}

func setFillEnabled(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetFillEnabled(args[0].Bool())
	return nil
}

func setDefaultShapeSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetDefaultShapeSize(args[0].Float(), args[1].Float())
	return nil
}

func setSurfaceSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.SetSurfaceSize(args[0].Int(), args[1].Int())
	return nil
}

func updateSelectedFillEnabled(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.UpdateSelectedFillEnabled(args[0].Bool())
	return nil
}

func clearAll(this js.Value, args []js.Value) interface{} {
	eng.ClearAll()
	return nil
}

func undoLastStroke(this js.Value, args []js.Value) interface{} {
	eng.UndoLastStroke()
	return nil
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.RenderJSON())
}

func currentSelection(this js.Value, args []js.Value) interface{} {
	snap := eng.CurrentSelection()
	if snap == nil {
		return js.Null()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return js.Null()
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.Null()
	}
	snap, kind := eng.HitTest(args[0].Float(), args[1].Float())
	if snap == nil {
		return js.Null()
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return js.Null()
	}
	return js.ValueOf(map[string]interface{}{
		"shape": string(data),
		"part":  string(kind),
	})
}

// --- Event Handlers ---

func onSelectionChanged(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		observer.callback = js.Undefined()
		return nil
	}
	observer.callback = args[0]
	return nil
}

// --- Binding Helpers ---

func stringSetter(set func(string)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		set(args[0].String())
		return nil
	})
}

func floatSetter(set func(float64)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		set(args[0].Float())
		return nil
	})
}
