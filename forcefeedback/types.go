// Package forcefeedback implements the force feedback engine: effect
// descriptions with envelopes, direction vectors in a canonical spherical
// representation, and the shared device that turns active effects into
// per-axis magnitude outputs.
package forcefeedback

import (
	"fmt"
	"sort"

	"github.com/padshift/padshift/padapi"
)

// EffectValue is the fixed-point force feedback value type. Magnitudes are
// symmetric around zero and bounded by ForceMagnitudeMin/Max; modifiers
// such as gain are fractions in [0, 1].
type EffectValue = float64

// EffectTimeMs measures effect-local time in milliseconds.
type EffectTimeMs = uint32

const (
	ForceMagnitudeMin  EffectValue = -10000
	ForceMagnitudeMax  EffectValue = 10000
	ForceMagnitudeZero EffectValue = 0

	// Angles are in hundredths of degrees.
	AngleMin   EffectValue = 0
	AngleMax   EffectValue = 35999
	AngleCycle EffectValue = 36000

	// EffectAxesMax is the maximum number of axes an effect can target.
	EffectAxesMax = int(padapi.AxisCount)
)

func clampForce(v EffectValue) EffectValue {
	if v > ForceMagnitudeMax {
		return ForceMagnitudeMax
	}
	if v < ForceMagnitudeMin {
		return ForceMagnitudeMin
	}
	return v
}

// OrderedMagnitudeComponents is a per-axis magnitude vector in ordered
// axis layout (X, Y, Z, RotX, RotY, RotZ), zero where absent.
type OrderedMagnitudeComponents [padapi.AxisCount]EffectValue

// Actuator identifies one physical force feedback actuator slot.
type Actuator int

const (
	ActuatorLeftMotor Actuator = iota
	ActuatorRightMotor
	ActuatorLeftImpulseTrigger
	ActuatorRightImpulseTrigger

	ActuatorCount
)

func (a Actuator) String() string {
	switch a {
	case ActuatorLeftMotor:
		return "LeftMotor"
	case ActuatorRightMotor:
		return "RightMotor"
	case ActuatorLeftImpulseTrigger:
		return "LeftImpulseTrigger"
	case ActuatorRightImpulseTrigger:
		return "RightImpulseTrigger"
	}
	return fmt.Sprintf("Actuator(%d)", int(a))
}

// ActuatorMode selects how virtual axis magnitudes reach an actuator.
type ActuatorMode int

const (
	// ActuatorModeDisabled produces no output.
	ActuatorModeDisabled ActuatorMode = iota

	// ActuatorModeSingleAxis passes one axis component through, subject to
	// a direction filter.
	ActuatorModeSingleAxis

	// ActuatorModeMagnitudeProjection outputs the Euclidean magnitude of
	// two axis components.
	ActuatorModeMagnitudeProjection
)

// ActuatorElement configures one actuator slot. Axis and Direction apply
// in single-axis mode; AxisFirst and AxisSecond in magnitude-projection
// mode.
type ActuatorElement struct {
	Present bool
	Mode    ActuatorMode

	Axis      padapi.Axis
	Direction padapi.AxisDirection

	AxisFirst  padapi.Axis
	AxisSecond padapi.Axis
}

// Validate checks that a present actuator element is internally coherent.
func (e ActuatorElement) Validate() error {
	if !e.Present {
		return nil
	}
	switch e.Mode {
	case ActuatorModeDisabled:
		return nil
	case ActuatorModeSingleAxis:
		if !e.Axis.IsValid() {
			return fmt.Errorf("%w: actuator axis %d", padapi.ErrInvalidParameter, int(e.Axis))
		}
	case ActuatorModeMagnitudeProjection:
		if !e.AxisFirst.IsValid() || !e.AxisSecond.IsValid() {
			return fmt.Errorf("%w: actuator projection axes", padapi.ErrInvalidParameter)
		}
		if e.AxisFirst == e.AxisSecond {
			return fmt.Errorf("%w: duplicate axes in magnitude projection", padapi.ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("%w: actuator mode %d", padapi.ErrInvalidParameter, int(e.Mode))
	}
	return nil
}

// Axes returns the virtual axes the actuator element reads from.
func (e ActuatorElement) Axes() []padapi.Axis {
	if !e.Present {
		return nil
	}
	switch e.Mode {
	case ActuatorModeSingleAxis:
		return []padapi.Axis{e.Axis}
	case ActuatorModeMagnitudeProjection:
		return []padapi.Axis{e.AxisFirst, e.AxisSecond}
	}
	return nil
}

// ActuatorMap assigns a configuration to each of the four actuator slots.
type ActuatorMap struct {
	LeftMotor           ActuatorElement
	RightMotor          ActuatorElement
	LeftImpulseTrigger  ActuatorElement
	RightImpulseTrigger ActuatorElement
}

// ByIndex provides the indexed view over the named actuator slots.
func (m ActuatorMap) ByIndex(a Actuator) ActuatorElement {
	switch a {
	case ActuatorLeftMotor:
		return m.LeftMotor
	case ActuatorRightMotor:
		return m.RightMotor
	case ActuatorLeftImpulseTrigger:
		return m.LeftImpulseTrigger
	case ActuatorRightImpulseTrigger:
		return m.RightImpulseTrigger
	}
	return ActuatorElement{}
}

// Validate checks all present actuator elements.
func (m ActuatorMap) Validate() error {
	for a := Actuator(0); a < ActuatorCount; a++ {
		if err := m.ByIndex(a).Validate(); err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
	}
	return nil
}

// Axes returns the sorted unique virtual axes referenced by any actuator.
func (m ActuatorMap) Axes() []padapi.Axis {
	seen := make(map[padapi.Axis]struct{})
	for a := Actuator(0); a < ActuatorCount; a++ {
		for _, axis := range m.ByIndex(a).Axes() {
			seen[axis] = struct{}{}
		}
	}
	axes := make([]padapi.Axis, 0, len(seen))
	for axis := range seen {
		axes = append(axes, axis)
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i] < axes[j] })
	return axes
}

// HasActuators reports whether at least one actuator slot is present and
// not disabled.
func (m ActuatorMap) HasActuators() bool {
	for a := Actuator(0); a < ActuatorCount; a++ {
		e := m.ByIndex(a)
		if e.Present && e.Mode != ActuatorModeDisabled {
			return true
		}
	}
	return false
}

// DefaultActuatorMap enables the two rumble motors with a magnitude
// projection onto the X and Y axes and leaves the impulse trigger slots
// disabled.
func DefaultActuatorMap() ActuatorMap {
	motor := ActuatorElement{
		Present:    true,
		Mode:       ActuatorModeMagnitudeProjection,
		AxisFirst:  padapi.AxisX,
		AxisSecond: padapi.AxisY,
	}
	return ActuatorMap{
		LeftMotor:  motor,
		RightMotor: motor,
	}
}

// PhysicalActuatorComponents is the per-actuator output vector written to
// the physical device, scaled to the unsigned 16-bit actuator range.
type PhysicalActuatorComponents struct {
	LeftMotor           uint16
	RightMotor          uint16
	LeftImpulseTrigger  uint16
	RightImpulseTrigger uint16
}

// IsZero reports whether all actuator outputs are zero.
func (c PhysicalActuatorComponents) IsZero() bool {
	return c == PhysicalActuatorComponents{}
}
