package engine

import (
	"errors"
	"math"
	"testing"
)

// stepPoint applies the operation's per-tick matrix frames times.
func stepPoint(t *testing.T, op Operation, frames int, p Point) Point {
	t.Helper()
	m, err := StepMatrix(op, frames)
	if err != nil {
		t.Fatalf("StepMatrix: %v", err)
	}
	for i := 0; i < frames; i++ {
		p = m.TransformPoint(p)
	}
	return p
}

func TestStepMatrixRejectsFrameCount(t *testing.T) {
	for _, frames := range []int{0, -1, -12} {
		if _, err := StepMatrix(TranslateOp{X: 1}, frames); !errors.Is(err, ErrInvalidFrameCount) {
			t.Errorf("frames %d: err = %v, want ErrInvalidFrameCount", frames, err)
		}
		if _, err := NewOperationState(RotateOp{Z: 1}, frames); !errors.Is(err, ErrInvalidFrameCount) {
			t.Errorf("frames %d: err = %v, want ErrInvalidFrameCount", frames, err)
		}
	}
}

func TestRotateStepsReachTotal(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}
	tests := []struct {
		name  string
		op    RotateOp
		total Matrix
	}{
		{"z90", RotateOp{Z: 90}, RotateZ(90)},
		{"x-45", RotateOp{X: -45}, RotateX(-45)},
		{"y270", RotateOp{Y: 270}, RotateY(270)},
	}
	for _, tt := range tests {
		want := tt.total.TransformPoint(p)
		for _, frames := range []int{1, 4, 12} {
			got := stepPoint(t, tt.op, frames, p)
			if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) {
				t.Errorf("%s over %d frames: got %+v, want %+v", tt.name, frames, got, want)
			}
		}
	}
}

func TestRotateAxisOrder(t *testing.T) {
	m, err := StepMatrix(RotateOp{X: 90, Z: 90}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(RotateZ(90).Multiply(RotateX(90)), eps) {
		t.Fatalf("step = %v, want Rz*Rx", m)
	}
	// X is applied first: (1,0,0) is unchanged by X, then turned onto Y by Z.
	assertPoint(t, m.TransformPoint(Point{X: 1}), 0, 1, 0)
}

func TestRotateStepZeroAxesIsIdentity(t *testing.T) {
	m, err := StepMatrix(RotateOp{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsIdentity() {
		t.Fatalf("step = %v, want identity", m)
	}
}

func TestScaleStepIsLinearApproximation(t *testing.T) {
	m, err := StepMatrix(ScaleOp{X: 2, Y: 2, Z: 2}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if want := 1 + 1.0/12; !near(m[0], want) || !near(m[5], want) || !near(m[10], want) {
		t.Fatalf("step factors %v %v %v, want %v", m[0], m[5], m[10], want)
	}

	ratio := 1.0
	for i := 0; i < 12; i++ {
		ratio *= m[0]
	}
	// (1 + 1/12)^12 overshoots the requested factor of 2 by about 0.613.
	if math.Abs(ratio-2.6130352902) > 1e-9 {
		t.Fatalf("compounded ratio = %.10f, want 2.6130352902", ratio)
	}

	single, err := StepMatrix(ScaleOp{X: 2, Y: 2, Z: 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if single[0] != 2 {
		t.Fatalf("one frame step = %v, want exactly 2", single[0])
	}
}

func TestScaleStepUnitAxis(t *testing.T) {
	m, err := StepMatrix(ScaleOp{X: 2, Y: 1, Z: 0.5}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if m[0] != 1.25 || m[5] != 1 || m[10] != 0.875 {
		t.Fatalf("diagonal = %v %v %v, want 1.25 1 0.875", m[0], m[5], m[10])
	}
}

func TestTranslateStep(t *testing.T) {
	got := stepPoint(t, TranslateOp{X: 12, Y: -6, Z: 3}, 12, Point{X: 1})
	assertPoint(t, got, 13, -6, 3)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{RotateOp{X: 90, Y: 0, Z: -45}, "Rotation. X: 90 Y: 0 Z: -45"},
		{ScaleOp{X: 2, Y: 1, Z: 0.5}, "Scale. X: 2 Y: 1 Z: 0.5"},
		{TranslateOp{X: 12}, "Translate. X: 12 Y: 0 Z: 0"},
		{NoOp{}, ""},
	}
	for _, tt := range tests {
		if got := Describe(tt.op); got != tt.want {
			t.Errorf("Describe(%#v) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestOperationStateRecordsTotals(t *testing.T) {
	s, err := NewOperationState(TranslateOp{X: 12}, 12)
	if err != nil {
		t.Fatal(err)
	}
	if s.Remaining != 12 {
		t.Errorf("remaining = %d, want 12", s.Remaining)
	}
	if s.Text != "Translate. X: 12 Y: 0 Z: 0" {
		t.Errorf("text = %q", s.Text)
	}
	if s.Step[3] != 1 {
		t.Errorf("step dx = %v, want 1", s.Step[3])
	}
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		kind string
		want Operation
	}{
		{"rotate", RotateOp{X: 1, Y: 2, Z: 3}},
		{"SCALE", ScaleOp{X: 1, Y: 2, Z: 3}},
		{"Translate", TranslateOp{X: 1, Y: 2, Z: 3}},
		{"none", NoOp{}},
		{"", NoOp{}},
	}
	for _, tt := range tests {
		got, err := ParseOperation(tt.kind, 1, 2, 3)
		if err != nil {
			t.Fatalf("ParseOperation(%q): %v", tt.kind, err)
		}
		if got != tt.want {
			t.Errorf("ParseOperation(%q) = %#v, want %#v", tt.kind, got, tt.want)
		}
	}

	if _, err := ParseOperation("spin", 0, 0, 0); !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("err = %v, want ErrUnknownOperation", err)
	}
}

func TestHalted(t *testing.T) {
	tests := []struct {
		name  string
		state OperationState
		want  bool
	}{
		{"idle", OperationState{Op: NoOp{}, Remaining: 5}, true},
		{"scale running", OperationState{Op: ScaleOp{X: 2}, Remaining: 1}, false},
		{"scale exhausted", OperationState{Op: ScaleOp{X: 2}, Remaining: 0}, true},
		{"rotate exhausted", OperationState{Op: RotateOp{Z: 90}, Remaining: 0}, false},
		{"translate overrun", OperationState{Op: TranslateOp{X: 1}, Remaining: -3}, false},
	}
	for _, tt := range tests {
		if got := tt.state.halted(); got != tt.want {
			t.Errorf("%s: halted = %v, want %v", tt.name, got, tt.want)
		}
	}
}
