package reactor

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestReactor_Defaults(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if r.Conversion() != 0.5 {
		t.Errorf("expected default conversion 0.5, got %g", r.Conversion())
	}
	if r.TwoOutputs() {
		t.Error("expected single-output mode by default")
	}
	if r.SplitRatio() != 0.5 {
		t.Errorf("expected default split ratio 0.5, got %g", r.SplitRatio())
	}

	a, b := r.Inputs()
	if a != 0 || b != 0 {
		t.Errorf("expected zero inputs, got (%g, %g)", a, b)
	}
	if r.Outputs() != nil {
		t.Errorf("expected no outputs before Run, got %v", r.Outputs())
	}
}

func TestReactor_SingleOutputBasic(t *testing.T) {
	r, err := New() // conversion=0.5, single output
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(2.0, 2.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	out := r.Run()
	if len(out) != 1 {
		t.Fatalf("expected 1 output, got %d", len(out))
	}
	if !near(out[0], 1.0) {
		t.Errorf("expected R=1.0, got %g", out[0])
	}
}

func TestReactor_TwoOutputsSplit(t *testing.T) {
	r, err := New(WithConversion(1.0), WithTwoOutputs(), WithSplitRatio(0.7))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(1.0, 1.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	out := r.Run()
	if len(out) != 2 {
		t.Fatalf("expected 2 outputs, got %d", len(out))
	}
	if !near(out[0], 0.7) {
		t.Errorf("expected R=0.7, got %g", out[0])
	}
	if !near(out[1], 0.3) {
		t.Errorf("expected S=0.3, got %g", out[1])
	}
}

func TestReactor_LimitingReagent(t *testing.T) {
	r, err := New(WithConversion(1.0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(0.5, 10.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	out := r.Run()
	if len(out) != 1 {
		t.Fatalf("expected 1 output, got %d", len(out))
	}
	if !near(out[0], 0.5) {
		t.Errorf("expected R=0.5, got %g", out[0])
	}
}

func TestReactor_InvalidConversionAtConstruction(t *testing.T) {
	if _, err := New(WithConversion(-0.1)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for conversion -0.1, got %v", err)
	}
	if _, err := New(WithConversion(1.2)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for conversion 1.2, got %v", err)
	}
}

func TestReactor_InvalidSplitRatioAtConstruction(t *testing.T) {
	if _, err := New(WithSplitRatio(-0.5)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for split ratio -0.5, got %v", err)
	}
	if _, err := New(WithSplitRatio(2.0)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for split ratio 2.0, got %v", err)
	}
}

func TestReactor_BoundaryParametersAccepted(t *testing.T) {
	for _, v := range []float64{0.0, 1.0} {
		if _, err := New(WithConversion(v), WithSplitRatio(v)); err != nil {
			t.Errorf("expected boundary value %g accepted, got %v", v, err)
		}
	}
}

func TestReactor_SetInputs_RejectsNegative(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(3.0, 4.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	if err := r.SetInputs(-1.0, 2.0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative A, got %v", err)
	}
	if err := r.SetInputs(2.0, -1.0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for negative B, got %v", err)
	}

	// Prior state retained on failure
	a, b := r.Inputs()
	if a != 3.0 || b != 4.0 {
		t.Errorf("expected inputs (3, 4) retained after failed set, got (%g, %g)", a, b)
	}
}

func TestReactor_SetConversion_RejectsOutOfRange(t *testing.T) {
	r, err := New(WithConversion(0.8))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := r.SetConversion(1.5); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	// Failed set does not corrupt stored parameter
	if r.Conversion() != 0.8 {
		t.Errorf("expected conversion 0.8 retained, got %g", r.Conversion())
	}
}

func TestReactor_SetSplitRatio_RejectsOutOfRange(t *testing.T) {
	r, err := New(WithSplitRatio(0.25))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := r.SetSplitRatio(-0.2); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	if r.SplitRatio() != 0.25 {
		t.Errorf("expected split ratio 0.25 retained, got %g", r.SplitRatio())
	}
}

func TestReactor_SetTwoOutputs_Toggle(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r.SetTwoOutputs(true)
	if !r.TwoOutputs() {
		t.Error("expected two-output mode after SetTwoOutputs(true)")
	}

	out := r.Run()
	if len(out) != 2 {
		t.Errorf("expected 2 outputs, got %d", len(out))
	}

	r.SetTwoOutputs(false)
	out = r.Run()
	if len(out) != 1 {
		t.Errorf("expected 1 output, got %d", len(out))
	}
}

func TestReactor_Run_DoesNotConsumeInputs(t *testing.T) {
	r, err := New(WithConversion(0.9))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(5.0, 3.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	r.Run()

	a, b := r.Inputs()
	if a != 5.0 || b != 3.0 {
		t.Errorf("expected inputs (5, 3) unchanged after Run, got (%g, %g)", a, b)
	}
}

func TestReactor_Run_Idempotent(t *testing.T) {
	r, err := New(WithConversion(0.5), WithTwoOutputs(), WithSplitRatio(0.3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(4.0, 6.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	first := r.Run()
	second := r.Run()

	if len(first) != len(second) {
		t.Fatalf("expected same output count, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("output %d differs between runs: %g vs %g", i, first[i], second[i])
		}
	}
}

func TestReactor_TwoOutputs_MassBalance(t *testing.T) {
	cases := []struct {
		a, b, conversion, split float64
	}{
		{2.0, 2.0, 0.5, 0.5},
		{1.0, 7.0, 1.0, 0.7},
		{3.5, 0.25, 0.33, 0.0},
		{9.0, 9.0, 0.0, 1.0},
	}

	for _, tc := range cases {
		r, err := New(WithConversion(tc.conversion), WithTwoOutputs(), WithSplitRatio(tc.split))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := r.SetInputs(tc.a, tc.b); err != nil {
			t.Fatalf("SetInputs() error = %v", err)
		}

		out := r.Run()
		reacted := min(tc.a, tc.b) * tc.conversion

		if !near(out[0]+out[1], reacted) {
			t.Errorf("inputs (%g,%g): expected R+S=%g, got %g", tc.a, tc.b, reacted, out[0]+out[1])
		}
		if !near(out[0], reacted*tc.split) {
			t.Errorf("inputs (%g,%g): expected R=%g, got %g", tc.a, tc.b, reacted*tc.split, out[0])
		}
		if !near(out[1], reacted*(1-tc.split)) {
			t.Errorf("inputs (%g,%g): expected S=%g, got %g", tc.a, tc.b, reacted*(1-tc.split), out[1])
		}
	}
}

func TestReactor_Output_ByIndex(t *testing.T) {
	r, err := New(WithConversion(0.5), WithTwoOutputs(), WithSplitRatio(0.5))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(2.0, 2.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}
	r.Run()

	v, err := r.Output(0)
	if err != nil {
		t.Fatalf("Output(0) error = %v", err)
	}
	if !near(v, 0.5) {
		t.Errorf("expected R=0.5, got %g", v)
	}

	v, err = r.Output(1)
	if err != nil {
		t.Fatalf("Output(1) error = %v", err)
	}
	if !near(v, 0.5) {
		t.Errorf("expected S=0.5, got %g", v)
	}

	if _, err := r.Output(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for index 2, got %v", err)
	}
	if _, err := r.Output(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for index -1, got %v", err)
	}
}

func TestReactor_Output_BeforeAnyRun(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.Output(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange before any Run, got %v", err)
	}
}

func TestReactor_RerunAndReset(t *testing.T) {
	r, err := New(WithConversion(0.5), WithTwoOutputs(), WithSplitRatio(0.5))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := r.SetInputs(2.0, 2.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}
	out := r.Run()
	if !near(out[0], 0.5) || !near(out[1], 0.5) {
		t.Errorf("expected [0.5, 0.5], got %v", out)
	}

	if err := r.SetInputs(1.0, 1.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}
	out = r.Run()
	if !near(out[0], 0.25) || !near(out[1], 0.25) {
		t.Errorf("expected [0.25, 0.25], got %v", out)
	}

	r.Reset()

	a, b := r.Inputs()
	if a != 0 || b != 0 {
		t.Errorf("expected zero inputs after Reset, got (%g, %g)", a, b)
	}
	if _, err := r.Output(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange after Reset, got %v", err)
	}
}

func TestReactor_Reset_RetainsParameters(t *testing.T) {
	r, err := New(WithConversion(0.9), WithTwoOutputs(), WithSplitRatio(0.1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	r.Reset()

	if r.Conversion() != 0.9 {
		t.Errorf("expected conversion 0.9 after Reset, got %g", r.Conversion())
	}
	if !r.TwoOutputs() {
		t.Error("expected two-output mode retained after Reset")
	}
	if r.SplitRatio() != 0.1 {
		t.Errorf("expected split ratio 0.1 after Reset, got %g", r.SplitRatio())
	}
}

func TestReactor_Outputs_ReturnsCopy(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := r.SetInputs(2.0, 2.0); err != nil {
		t.Fatalf("SetInputs() error = %v", err)
	}

	out := r.Run()
	out[0] = 99.0

	stored, err := r.Output(0)
	if err != nil {
		t.Fatalf("Output(0) error = %v", err)
	}
	if stored != 1.0 {
		t.Errorf("expected stored output unaffected by caller mutation, got %g", stored)
	}
}

func TestReactor_ZeroInputs_ZeroProduct(t *testing.T) {
	r, err := New(WithConversion(1.0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out := r.Run()
	if len(out) != 1 {
		t.Fatalf("expected 1 output, got %d", len(out))
	}
	if out[0] != 0 {
		t.Errorf("expected zero product from zero inputs, got %g", out[0])
	}
}
