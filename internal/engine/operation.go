package engine

import (
	"fmt"
	"strings"
)

// Operation is an animated world-space transform requested by the user.
// It is one of NoOp, RotateOp, ScaleOp or TranslateOp.
type Operation interface {
	Kind() string
	isOperation()
}

// NoOp is the idle operation.
type NoOp struct{}

// RotateOp turns the world by X, Y and Z degrees about each axis.
type RotateOp struct{ X, Y, Z float64 }

// ScaleOp multiplies world coordinates by X, Y and Z.
type ScaleOp struct{ X, Y, Z float64 }

// TranslateOp moves the world by X, Y and Z.
type TranslateOp struct{ X, Y, Z float64 }

const (
	KindNone      = "none"
	KindRotate    = "rotate"
	KindScale     = "scale"
	KindTranslate = "translate"
)

func (NoOp) Kind() string        { return KindNone }
func (RotateOp) Kind() string    { return KindRotate }
func (ScaleOp) Kind() string     { return KindScale }
func (TranslateOp) Kind() string { return KindTranslate }

func (NoOp) isOperation()        {}
func (RotateOp) isOperation()    {}
func (ScaleOp) isOperation()     {}
func (TranslateOp) isOperation() {}

// ParseOperation builds an operation from a kind name and its three totals.
func ParseOperation(kind string, x, y, z float64) (Operation, error) {
	switch strings.ToLower(kind) {
	case KindNone, "":
		return NoOp{}, nil
	case KindRotate:
		return RotateOp{X: x, Y: y, Z: z}, nil
	case KindScale:
		return ScaleOp{X: x, Y: y, Z: z}, nil
	case KindTranslate:
		return TranslateOp{X: x, Y: y, Z: z}, nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownOperation)
	}
}

// Describe returns the on-screen text for an operation. It reports the
// requested totals, not the per-frame step.
func Describe(op Operation) string {
	switch o := op.(type) {
	case RotateOp:
		return fmt.Sprintf("Rotation. X: %v Y: %v Z: %v", o.X, o.Y, o.Z)
	case ScaleOp:
		return fmt.Sprintf("Scale. X: %v Y: %v Z: %v", o.X, o.Y, o.Z)
	case TranslateOp:
		return fmt.Sprintf("Translate. X: %v Y: %v Z: %v", o.X, o.Y, o.Z)
	default:
		return ""
	}
}

// StepMatrix returns the portion of op applied on each of frames ticks.
// The step always starts from a fresh identity.
func StepMatrix(op Operation, frames int) (Matrix, error) {
	if frames < 1 {
		return Identity(), fmt.Errorf("%d frames: %w", frames, ErrInvalidFrameCount)
	}
	parts := float64(frames)

	m := Identity()
	switch o := op.(type) {
	case RotateOp:
		// Rz · Ry · Rx: X is applied to a point first.
		if o.X != 0 {
			m = RotateX(o.X / parts).Multiply(m)
		}
		if o.Y != 0 {
			m = RotateY(o.Y / parts).Multiply(m)
		}
		if o.Z != 0 {
			m = RotateZ(o.Z / parts).Multiply(m)
		}

	case ScaleOp:
		// Linear split of the total factor. Compounding the step frames times
		// overshoots the requested factor; the animation depends on it.
		m = Scale(scaleStep(o.X, parts), scaleStep(o.Y, parts), scaleStep(o.Z, parts)).Multiply(m)

	case TranslateOp:
		m = Translate(o.X/parts, o.Y/parts, o.Z/parts).Multiply(m)
	}

	return m, nil
}

func scaleStep(total, parts float64) float64 {
	if total == 1 {
		return 1
	}
	return ((total - 1) / parts) + 1
}

// OperationState is the active operation and its per-tick step.
type OperationState struct {
	Op        Operation
	Step      Matrix
	Remaining int
	Text      string
}

// IdleState returns the state of an engine with nothing queued.
func IdleState() OperationState {
	return OperationState{Op: NoOp{}, Step: Identity()}
}

// NewOperationState builds the state for op spread over frames ticks.
func NewOperationState(op Operation, frames int) (OperationState, error) {
	if op == nil {
		op = NoOp{}
	}
	step, err := StepMatrix(op, frames)
	if err != nil {
		return OperationState{}, err
	}
	return OperationState{
		Op:        op,
		Step:      step,
		Remaining: frames,
		Text:      Describe(op),
	}, nil
}

// halted reports whether a tick should leave the world untouched. Only the
// scale kind stops on an exhausted counter; rotate and translate keep
// reapplying their step until the operation is replaced or cancelled.
func (s OperationState) halted() bool {
	switch s.Op.(type) {
	case NoOp:
		return true
	case ScaleOp:
		return s.Remaining < 1
	default:
		return false
	}
}

// Exhausted reports whether the frame budget has been used up.
func (s OperationState) Exhausted() bool {
	return s.Remaining < 1
}
