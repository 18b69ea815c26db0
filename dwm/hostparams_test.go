// hostparams_test.go - HostParams enumeration and translation tests

package dwm

import "testing"

func TestHostParamsSetGetRoundTrip(t *testing.T) {
	p := NewHostParams()
	if err := p.Set(ParamAdmittanceXp, 0.6); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := p.Get(ParamAdmittanceXp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 0.6 {
		t.Errorf("Get(ParamAdmittanceXp) = %v, want 0.6", got)
	}
}

func TestHostParamsOutOfRangeReturnsErrUnknownParameter(t *testing.T) {
	p := NewHostParams()
	if err := p.Set(ParamIndex(-1), 1); err != ErrUnknownParameter {
		t.Errorf("Set(-1) err = %v, want ErrUnknownParameter", err)
	}
	if err := p.Set(ParamIndex(9999), 1); err != ErrUnknownParameter {
		t.Errorf("Set(9999) err = %v, want ErrUnknownParameter", err)
	}
	if _, err := p.Get(ParamIndex(9999)); err != ErrUnknownParameter {
		t.Errorf("Get(9999) err = %v, want ErrUnknownParameter", err)
	}
}

func TestHostParamsGainAccessors(t *testing.T) {
	p := NewHostParams()
	p.Set(ParamRawGainDB, -6)
	p.Set(ParamHRTFGainDB, 3)

	if p.RawGainDB() != -6 {
		t.Errorf("RawGainDB() = %v, want -6", p.RawGainDB())
	}
	if p.HRTFGainDB() != 3 {
		t.Errorf("HRTFGainDB() = %v, want 3", p.HRTFGainDB())
	}
}

func TestHostParamsBoundaryParamSetTranslatesAllSixFaces(t *testing.T) {
	p := NewHostParams()
	p.Set(ParamAdmittanceXp, 1)
	p.Set(ParamCutoffXp, 0)
	p.Set(ParamAdmittanceZn, 0.4)
	p.Set(ParamCutoffZn, 0.2)

	set := p.BoundaryParamSet()

	xp, ok := set.Xp.(AdmittanceLowpassParams)
	if !ok {
		t.Fatalf("set.Xp has type %T, want AdmittanceLowpassParams", set.Xp)
	}
	want := NewAdmittanceLowpassParams(1, 0)
	if xp != want {
		t.Errorf("set.Xp = %+v, want %+v", xp, want)
	}

	zn, ok := set.Zn.(AdmittanceLowpassParams)
	if !ok {
		t.Fatalf("set.Zn has type %T, want AdmittanceLowpassParams", set.Zn)
	}
	wantZn := NewAdmittanceLowpassParams(0.4, 0.2)
	if zn != wantZn {
		t.Errorf("set.Zn = %+v, want %+v", zn, wantZn)
	}
}

func TestNewHostParamsStartsAtZero(t *testing.T) {
	p := NewHostParams()
	for idx := ParamIndex(0); idx < paramCount; idx++ {
		v, err := p.Get(idx)
		if err != nil {
			t.Fatalf("Get(%d): %v", idx, err)
		}
		if v != 0 {
			t.Errorf("Get(%d) = %v, want 0 for a fresh HostParams", idx, v)
		}
	}
}
