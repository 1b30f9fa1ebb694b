package forcefeedback

import (
	"fmt"

	"github.com/padshift/padshift/padapi"
)

// ConstantForceParameters configure a constant force effect.
type ConstantForceParameters struct {
	// Magnitude in [ForceMagnitudeMin, ForceMagnitudeMax]. The envelope
	// shapes the absolute value; the sign is preserved.
	Magnitude EffectValue
}

// ConstantForceEffect outputs a constant magnitude, shaped by the optional
// envelope.
type ConstantForceEffect struct {
	effectBase
	params ConstantForceParameters
}

// NewConstantForceEffect validates parameters and constructs the effect.
func (f *Factory) NewConstantForceEffect(common CommonParameters, params ConstantForceParameters) (*ConstantForceEffect, error) {
	if params.Magnitude < ForceMagnitudeMin || params.Magnitude > ForceMagnitudeMax {
		return nil, fmt.Errorf("%w: constant force magnitude %v", padapi.ErrInvalidParameter, params.Magnitude)
	}
	base, err := f.newBase(common)
	if err != nil {
		return nil, err
	}
	return &ConstantForceEffect{effectBase: base, params: params}, nil
}

func (e *ConstantForceEffect) TypeName() string {
	return "constant-force"
}

// Parameters returns the type-specific parameters.
func (e *ConstantForceEffect) Parameters() ConstantForceParameters {
	return e.params
}

func (e *ConstantForceEffect) computeRawMagnitude(rawTime EffectTimeMs) EffectValue {
	if e.params.Magnitude >= 0 {
		return e.applyEnvelope(rawTime, e.params.Magnitude)
	}
	return -e.applyEnvelope(rawTime, -e.params.Magnitude)
}

func (e *ConstantForceEffect) ComputeMagnitude(t EffectTimeMs) EffectValue {
	return e.magnitudeAt(t, e.computeRawMagnitude)
}

func (e *ConstantForceEffect) Clone() Effect {
	clone := *e
	return &clone
}
