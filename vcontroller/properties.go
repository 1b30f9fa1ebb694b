package vcontroller

import (
	"fmt"
	"math"

	"github.com/padshift/padshift/padapi"
)

// Deadzone and saturation are expressed on a 0..10000 scale.
const (
	AxisDeadzoneMin     = 0
	AxisDeadzoneMax     = 10000
	AxisDeadzoneDefault = 0

	AxisSaturationMin     = 0
	AxisSaturationMax     = 10000
	AxisSaturationDefault = 10000

	AxisRangeMinDefault = 0
	AxisRangeMaxDefault = 65535
)

// AxisProperties are the per-axis transform settings applied between the
// mapped raw state and the application-visible state.
type AxisProperties struct {
	Deadzone   uint32
	Saturation uint32
	RangeMin   int32
	RangeMax   int32

	TransformationsEnabled bool
}

func defaultAxisProperties() AxisProperties {
	return AxisProperties{
		Deadzone:               AxisDeadzoneDefault,
		Saturation:             AxisSaturationDefault,
		RangeMin:               AxisRangeMinDefault,
		RangeMax:               AxisRangeMaxDefault,
		TransformationsEnabled: true,
	}
}

func (p AxisProperties) validate() error {
	if p.Deadzone > AxisDeadzoneMax {
		return fmt.Errorf("%w: deadzone %d", padapi.ErrInvalidParameter, p.Deadzone)
	}
	if p.Saturation > AxisSaturationMax {
		return fmt.Errorf("%w: saturation %d", padapi.ErrInvalidParameter, p.Saturation)
	}
	if p.RangeMin >= p.RangeMax {
		return fmt.Errorf("%w: range [%d, %d]", padapi.ErrInvalidParameter, p.RangeMin, p.RangeMax)
	}
	return nil
}

// apply maps a raw axis value in the analog range onto the configured
// range through five regions: saturated low, linear low, deadzone
// (neutral), linear high, saturated high. The transform is monotonically
// non-decreasing and its output always lies within the configured range.
func (p AxisProperties) apply(raw int32) int32 {
	if !p.TransformationsEnabled {
		return raw
	}

	rangeMin := float64(p.RangeMin)
	rangeMax := float64(p.RangeMax)
	// Integer midpoint, so that a zero input maps to an exact neutral
	// output for symmetric ranges.
	neutral := float64((int64(p.RangeMin) + int64(p.RangeMax)) / 2)

	dzCut := float64(padapi.AnalogValueMax) * float64(p.Deadzone) / AxisDeadzoneMax
	satCut := float64(padapi.AnalogValueMax) * float64(p.Saturation) / AxisSaturationMax

	// The transform works on a range symmetric about zero; fold the one
	// extra negative value onto the symmetric extreme.
	v := float64(raw)
	if v < -float64(padapi.AnalogValueMax) {
		v = -float64(padapi.AnalogValueMax)
	}

	var out float64
	switch {
	case v >= -dzCut && v <= dzCut:
		out = neutral
	case v <= -satCut:
		out = rangeMin
	case v >= satCut:
		out = rangeMax
	case v > dzCut:
		out = neutral + (rangeMax-neutral)*(v-dzCut)/(satCut-dzCut)
	default:
		out = rangeMin + (neutral-rangeMin)*(v+satCut)/(satCut-dzCut)
	}

	out = math.Round(out)
	if out < rangeMin {
		out = rangeMin
	} else if out > rangeMax {
		out = rangeMax
	}
	return int32(out)
}
