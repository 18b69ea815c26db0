// hostparams.go - host-visible parameter enumeration

package dwm

// ParamIndex enumerates the fixed parameter set a hosting plugin exposes for
// knob automation: two gains in dB plus an admittance/cutoff pair per face.
type ParamIndex int

const (
	ParamRawGainDB ParamIndex = iota
	ParamHRTFGainDB
	ParamAdmittanceXp
	ParamCutoffXp
	ParamAdmittanceXn
	ParamCutoffXn
	ParamAdmittanceYp
	ParamCutoffYp
	ParamAdmittanceYn
	ParamCutoffYn
	ParamAdmittanceZp
	ParamCutoffZp
	ParamAdmittanceZn
	ParamCutoffZn

	paramCount
)

// HostParams holds the current value of every host-visible parameter.
// Admittance and cutoff knobs are expected in [0,1]; gains in [-100,100] dB.
// Nothing here is read by Mesh3D.Step directly — BoundaryParamSet()
// translates the admittance/cutoff knobs into the records Step consumes,
// and RawGainDB()/HRTFGainDB() return the gain knobs in dB.
type HostParams struct {
	values [paramCount]float32
}

// NewHostParams returns a parameter set with every knob at zero.
func NewHostParams() *HostParams {
	return &HostParams{}
}

// Set stores value at index, or returns ErrUnknownParameter if index is out
// of range.
func (p *HostParams) Set(index ParamIndex, value float32) error {
	if index < 0 || int(index) >= int(paramCount) {
		return ErrUnknownParameter
	}
	p.values[index] = value
	return nil
}

// Get returns the value at index, or ErrUnknownParameter if index is out of
// range.
func (p *HostParams) Get(index ParamIndex) (float32, error) {
	if index < 0 || int(index) >= int(paramCount) {
		return 0, ErrUnknownParameter
	}
	return p.values[index], nil
}

// RawGainDB returns the current raw (source injection) gain knob, in dB.
func (p *HostParams) RawGainDB() float32 {
	return p.values[ParamRawGainDB]
}

// HRTFGainDB returns the current binaural-renderer gain knob, in dB.
func (p *HostParams) HRTFGainDB() float32 {
	return p.values[ParamHRTFGainDB]
}

// BoundaryParamSet builds the six per-face AdmittanceLowpassParams records
// Step expects from the current admittance/cutoff knob values.
func (p *HostParams) BoundaryParamSet() BoundaryParamSet {
	v := p.values
	return BoundaryParamSet{
		Xp: NewAdmittanceLowpassParams(v[ParamAdmittanceXp], v[ParamCutoffXp]),
		Xn: NewAdmittanceLowpassParams(v[ParamAdmittanceXn], v[ParamCutoffXn]),
		Yp: NewAdmittanceLowpassParams(v[ParamAdmittanceYp], v[ParamCutoffYp]),
		Yn: NewAdmittanceLowpassParams(v[ParamAdmittanceYn], v[ParamCutoffYn]),
		Zp: NewAdmittanceLowpassParams(v[ParamAdmittanceZp], v[ParamCutoffZp]),
		Zn: NewAdmittanceLowpassParams(v[ParamAdmittanceZn], v[ParamCutoffZn]),
	}
}
