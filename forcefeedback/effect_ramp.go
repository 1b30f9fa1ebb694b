package forcefeedback

import (
	"fmt"

	"github.com/padshift/padshift/padapi"
)

// RampForceParameters configure a ramp force effect.
type RampForceParameters struct {
	// Start and End magnitudes in [ForceMagnitudeMin, ForceMagnitudeMax].
	Start EffectValue
	End   EffectValue
}

// RampForceEffect interpolates linearly from the start magnitude to the
// end magnitude over the effect duration, which must be finite.
type RampForceEffect struct {
	effectBase
	params RampForceParameters
}

// NewRampForceEffect validates parameters and constructs the effect.
func (f *Factory) NewRampForceEffect(common CommonParameters, params RampForceParameters) (*RampForceEffect, error) {
	if params.Start < ForceMagnitudeMin || params.Start > ForceMagnitudeMax {
		return nil, fmt.Errorf("%w: ramp start %v", padapi.ErrInvalidParameter, params.Start)
	}
	if params.End < ForceMagnitudeMin || params.End > ForceMagnitudeMax {
		return nil, fmt.Errorf("%w: ramp end %v", padapi.ErrInvalidParameter, params.End)
	}
	if common.Duration == nil {
		return nil, fmt.Errorf("%w: ramp force requires a finite duration", padapi.ErrInvalidParameter)
	}
	base, err := f.newBase(common)
	if err != nil {
		return nil, err
	}
	return &RampForceEffect{effectBase: base, params: params}, nil
}

func (e *RampForceEffect) TypeName() string {
	return "ramp-force"
}

// Parameters returns the type-specific parameters.
func (e *RampForceEffect) Parameters() RampForceParameters {
	return e.params
}

func (e *RampForceEffect) computeRawMagnitude(rawTime EffectTimeMs) EffectValue {
	duration := EffectValue(*e.common.Duration)
	level := e.params.Start + (e.params.End-e.params.Start)*EffectValue(rawTime)/duration
	if level >= 0 {
		return e.applyEnvelope(rawTime, level)
	}
	return -e.applyEnvelope(rawTime, -level)
}

func (e *RampForceEffect) ComputeMagnitude(t EffectTimeMs) EffectValue {
	return e.magnitudeAt(t, e.computeRawMagnitude)
}

func (e *RampForceEffect) Clone() Effect {
	clone := *e
	return &clone
}
