// filter_test.go - boundary filter family tests

package dwm

import (
	"math"
	"testing"
)

func TestAnechoicFilterIsOneSampleDelay(t *testing.T) {
	f := &AnechoicFilter{}

	inputs := []float32{0, 1, -1, 0.5, 0}
	var prev float32
	for i, in := range inputs {
		got := f.Process(NoParams{}, in)
		if got != prev {
			t.Fatalf("step %d: Process(%v) = %v, want previous input %v", i, in, got, prev)
		}
		prev = in
	}
}

func TestAnechoicFilterResetClearsState(t *testing.T) {
	f := &AnechoicFilter{}
	f.Process(NoParams{}, 5)
	f.Reset()
	if got := f.Process(NoParams{}, 0); got != 0 {
		t.Fatalf("Process after Reset = %v, want 0", got)
	}
}

func TestAdmittanceLowpassParamsFormula(t *testing.T) {
	cases := []struct{ a0, c0 float32 }{
		{0, 0}, {1, 1}, {0.5, 0.5}, {1, 0}, {0, 1}, {0.9, 0.1},
	}
	for _, c := range cases {
		p := NewAdmittanceLowpassParams(c.a0, c.c0)
		wantA := c.a0 - c.a0*(1-c.c0)*0.5
		wantC := (1 - c.c0) * 0.25 * c.a0
		if p.Admittance != wantA {
			t.Errorf("a0=%v c0=%v: Admittance = %v, want %v", c.a0, c.c0, p.Admittance, wantA)
		}
		if p.Cutoff != wantC {
			t.Errorf("a0=%v c0=%v: Cutoff = %v, want %v", c.a0, c.c0, p.Cutoff, wantC)
		}
		if p.Admittance < 0 {
			t.Errorf("a0=%v c0=%v: Admittance = %v, want >= 0", c.a0, c.c0, p.Admittance)
		}
		if p.Cutoff < 0 {
			t.Errorf("a0=%v c0=%v: Cutoff = %v, want >= 0", c.a0, c.c0, p.Cutoff)
		}
	}
}

// TestAdmittanceLowpassZeroAdmittanceIsOneSampleDelay checks that a0=0
// reduces the filter to a plain one-sample delay, the same non-reflecting
// termination as AnechoicFilter, regardless of c0.
func TestAdmittanceLowpassZeroAdmittanceIsOneSampleDelay(t *testing.T) {
	params := NewAdmittanceLowpassParams(0, 0.7)
	f := &AdmittanceLowpassFilter{}

	inputs := []float32{0, 1, -1, 0.25}
	var prev float32
	for i, in := range inputs {
		got := f.Process(params, in)
		if got != prev {
			t.Fatalf("step %d: Process(%v) = %v, want %v", i, in, got, prev)
		}
		prev = in
	}
}

// TestAdmittanceLowpassFinite sweeps the admissible a0,c0 range and checks
// the filter never produces a non-finite output from finite input.
func TestAdmittanceLowpassFinite(t *testing.T) {
	for a0 := float32(0); a0 <= 1.001; a0 += 0.1 {
		for c0 := float32(0); c0 <= 1.001; c0 += 0.1 {
			params := NewAdmittanceLowpassParams(a0, c0)
			f := &AdmittanceLowpassFilter{}
			for i := 0; i < 16; i++ {
				out := f.Process(params, 1)
				if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
					t.Fatalf("a0=%v c0=%v: Process produced non-finite output %v", a0, c0, out)
				}
			}
		}
	}
}
