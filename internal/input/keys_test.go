package input

import (
	"errors"
	"testing"

	"github.com/wirecanvas/wirecanvas/internal/engine"
)

func TestForKey(t *testing.T) {
	tests := []struct {
		key    string
		shift  bool
		action Action
		op     engine.Operation
	}{
		{"ArrowLeft", false, ActionOperation, engine.TranslateOp{X: -TranslateStep}},
		{"ArrowUp", true, ActionOperation, engine.TranslateOp{Y: TranslateStep}},
		{"PageDown", false, ActionOperation, engine.TranslateOp{Z: -TranslateStep}},
		{"x", false, ActionOperation, engine.RotateOp{X: RotateStep}},
		{"Y", true, ActionOperation, engine.RotateOp{Y: -RotateStep}},
		{"h", false, ActionToggleHighlight, nil},
		{"Escape", false, ActionCancel, nil},
		{"q", false, ActionNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, op := ForKey(tt.key, tt.shift)
			if action != tt.action {
				t.Fatalf("action = %v, want %v", action, tt.action)
			}
			if op != tt.op {
				t.Fatalf("op = %#v, want %#v", op, tt.op)
			}
		})
	}
}

func TestForWheel(t *testing.T) {
	up := ForWheel(-120).(engine.ScaleOp)
	down := ForWheel(120).(engine.ScaleOp)
	if up.X != WheelScale || up.Y != WheelScale || up.Z != WheelScale {
		t.Fatalf("wheel up = %+v", up)
	}
	if down.X*WheelScale != 1 {
		t.Fatalf("wheel down = %+v", down)
	}
}

func TestDispatch(t *testing.T) {
	eng := engine.NewEngine()

	if bound, err := Dispatch(eng, "z", false, 4); !bound || err != nil {
		t.Fatalf("z: bound %v, err %v", bound, err)
	}
	if got := eng.Active(); got != (engine.RotateOp{Z: RotateStep}) {
		t.Fatalf("active = %#v", got)
	}
	if eng.Remaining() != 4 {
		t.Fatalf("remaining = %d", eng.Remaining())
	}

	Dispatch(eng, "h", false, 4)
	if !eng.Highlight() {
		t.Fatal("highlight not toggled")
	}

	Dispatch(eng, "Escape", false, 4)
	if _, idle := eng.Active().(engine.NoOp); !idle {
		t.Fatalf("active after escape = %#v", eng.Active())
	}

	bound, err := Dispatch(eng, "ArrowLeft", false, 0)
	if !bound || !errors.Is(err, engine.ErrInvalidFrameCount) {
		t.Fatalf("zero frames: bound %v, err %v", bound, err)
	}
	if bound, err := Dispatch(eng, "F1", false, 4); bound || err != nil {
		t.Fatalf("F1: bound %v, err %v", bound, err)
	}
}
