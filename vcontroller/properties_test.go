package vcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padshift/padshift/padapi"
)

func TestApplyPropertiesMidpoint(t *testing.T) {
	props := AxisProperties{
		Deadzone:               2500,
		Saturation:             7500,
		RangeMin:               -100,
		RangeMax:               100,
		TransformationsEnabled: true,
	}

	// Half scale input lands exactly halfway up the linear band.
	assert.InDelta(t, 50, props.apply(16383), 1)
	assert.InDelta(t, -50, props.apply(-16383), 1)
}

func TestApplyPropertiesIdentity(t *testing.T) {
	props := AxisProperties{
		Deadzone:               0,
		Saturation:             AxisSaturationMax,
		RangeMin:               padapi.AnalogValueMin,
		RangeMax:               padapi.AnalogValueMax,
		TransformationsEnabled: true,
	}

	for _, v := range []int32{padapi.AnalogValueMin, -20000, -1000, -1, 0, 1, 1000, 20000, padapi.AnalogValueMax} {
		assert.InDelta(t, v, props.apply(v), 1, "input %d", v)
	}
}

func TestApplyPropertiesFullDeadzone(t *testing.T) {
	props := defaultAxisProperties()
	props.Deadzone = AxisDeadzoneMax

	neutral := props.apply(0)
	for _, v := range []int32{padapi.AnalogValueMin, -1, 0, 1, padapi.AnalogValueMax} {
		assert.Equal(t, neutral, props.apply(v), "everything reads neutral")
	}
	assert.Equal(t, int32((AxisRangeMinDefault+AxisRangeMaxDefault)/2), neutral)
}

func TestApplyPropertiesSaturation(t *testing.T) {
	props := AxisProperties{
		Deadzone:               0,
		Saturation:             5000,
		RangeMin:               0,
		RangeMax:               1000,
		TransformationsEnabled: true,
	}

	// Half scale is already saturated.
	assert.Equal(t, int32(1000), props.apply(20000))
	assert.Equal(t, int32(0), props.apply(-20000))
	assert.Equal(t, int32(500), props.apply(0))
}

func TestApplyPropertiesMonotonic(t *testing.T) {
	props := AxisProperties{
		Deadzone:               3000,
		Saturation:             8000,
		RangeMin:               -512,
		RangeMax:               512,
		TransformationsEnabled: true,
	}

	previous := props.apply(padapi.AnalogValueMin)
	for v := int32(padapi.AnalogValueMin); v <= padapi.AnalogValueMax; v += 97 {
		current := props.apply(v)
		assert.GreaterOrEqual(t, current, previous, "input %d", v)
		assert.GreaterOrEqual(t, current, props.RangeMin)
		assert.LessOrEqual(t, current, props.RangeMax)
		previous = current
	}
}

func TestApplyPropertiesDisabled(t *testing.T) {
	props := defaultAxisProperties()
	props.TransformationsEnabled = false
	assert.Equal(t, int32(-12345), props.apply(-12345))
}

func TestApplyPropertiesDefaultRange(t *testing.T) {
	props := defaultAxisProperties()
	assert.Equal(t, int32(AxisRangeMaxDefault), props.apply(padapi.AnalogValueMax))
	assert.Equal(t, int32(AxisRangeMinDefault), props.apply(padapi.AnalogValueMin))
	assert.Equal(t, int32(32767), props.apply(0), "neutral is the integer midpoint")
}

func TestApplyPropertiesIdempotentOnNeutral(t *testing.T) {
	// With a symmetric range equal to the analog range the transform is
	// idempotent up to rounding.
	props := AxisProperties{
		Deadzone:               0,
		Saturation:             AxisSaturationMax,
		RangeMin:               padapi.AnalogValueMin,
		RangeMax:               padapi.AnalogValueMax,
		TransformationsEnabled: true,
	}
	for _, v := range []int32{-30000, -42, 0, 42, 30000} {
		once := props.apply(v)
		twice := props.apply(once)
		assert.InDelta(t, once, twice, 1, "input %d", v)
	}
}

func TestAxisPropertiesValidation(t *testing.T) {
	props := defaultAxisProperties()
	assert.NoError(t, props.validate())

	props.Deadzone = AxisDeadzoneMax + 1
	assert.Error(t, props.validate())

	props = defaultAxisProperties()
	props.Saturation = AxisSaturationMax + 1
	assert.Error(t, props.validate())

	props = defaultAxisProperties()
	props.RangeMin, props.RangeMax = 10, 10
	assert.Error(t, props.validate())

	props = defaultAxisProperties()
	props.RangeMin, props.RangeMax = 10, -10
	assert.Error(t, props.validate())
}
