// Package input maps keyboard and wheel input to engine operations. Key names
// follow the browser's KeyboardEvent.key values; other front ends translate
// their own key codes to these names.
package input

import (
	"fmt"

	"github.com/wirecanvas/wirecanvas/internal/engine"
)

// Per-keypress totals.
const (
	TranslateStep = 2.0
	RotateStep    = 45.0
	WheelScale    = 1.25
)

// Action is what a key asks the front end to do.
type Action int

const (
	ActionNone Action = iota
	ActionOperation
	ActionToggleHighlight
	ActionCancel
)

// ForKey returns the action bound to key. For ActionOperation the operation
// is also returned. Shift reverses rotations.
func ForKey(key string, shift bool) (Action, engine.Operation) {
	sign := 1.0
	if shift {
		sign = -1
	}

	switch key {
	case "ArrowLeft":
		return ActionOperation, engine.TranslateOp{X: -TranslateStep}
	case "ArrowRight":
		return ActionOperation, engine.TranslateOp{X: TranslateStep}
	case "ArrowUp":
		return ActionOperation, engine.TranslateOp{Y: TranslateStep}
	case "ArrowDown":
		return ActionOperation, engine.TranslateOp{Y: -TranslateStep}
	case "PageUp":
		return ActionOperation, engine.TranslateOp{Z: TranslateStep}
	case "PageDown":
		return ActionOperation, engine.TranslateOp{Z: -TranslateStep}
	case "x", "X":
		return ActionOperation, engine.RotateOp{X: sign * RotateStep}
	case "y", "Y":
		return ActionOperation, engine.RotateOp{Y: sign * RotateStep}
	case "z", "Z":
		return ActionOperation, engine.RotateOp{Z: sign * RotateStep}
	case "h", "H":
		return ActionToggleHighlight, nil
	case "Escape":
		return ActionCancel, nil
	default:
		return ActionNone, nil
	}
}

// ForWheel scales up when scrolling up (negative deltaY) and down otherwise.
func ForWheel(deltaY float64) engine.Operation {
	factor := WheelScale
	if deltaY > 0 {
		factor = 1 / WheelScale
	}
	return engine.ScaleOp{X: factor, Y: factor, Z: factor}
}

// Dispatch applies the action for key to eng. It reports whether the key
// was bound, and any error from setting up the operation.
func Dispatch(eng *engine.Engine, key string, shift bool, frames int) (bool, error) {
	action, op := ForKey(key, shift)
	switch action {
	case ActionOperation:
		if err := eng.SetUpOperation(op, frames); err != nil {
			return true, fmt.Errorf("key %q: %w", key, err)
		}
	case ActionToggleHighlight:
		eng.ToggleHighlight()
	case ActionCancel:
		eng.Cancel()
	default:
		return false, nil
	}
	return true, nil
}
