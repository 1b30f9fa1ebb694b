package mappers

import "github.com/padshift/padshift/padapi"

// AxisMapper contributes an analog value to one virtual axis, optionally
// restricted to one half of the axis range.
type AxisMapper struct {
	Target    padapi.Axis
	Direction padapi.AxisDirection
}

func NewAxisMapper(target padapi.Axis, direction padapi.AxisDirection) *AxisMapper {
	return &AxisMapper{Target: target, Direction: direction}
}

func (m *AxisMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, _ uint32) {
	state.AddAxisValue(m.Target, filterByDirection(int32(analogValue), m.Direction))
}

// A button feeding a whole axis slams between the extremes; a button
// feeding a half axis moves between neutral and that extreme.
func (m *AxisMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, _ uint32) {
	state.AddAxisValue(m.Target, digitalAxisValue(buttonPressed, m.Direction))
}

func (m *AxisMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, _ uint32) {
	state.AddAxisValue(m.Target, filterByDirection(analogFromTrigger(triggerValue), m.Direction))
}

func (m *AxisMapper) ContributeNeutral(state *padapi.State, _ uint32) {
	state.AddAxisValue(m.Target, padapi.AnalogValueNeutral)
}

func (m *AxisMapper) TargetElements() []padapi.ElementIdentifier {
	return []padapi.ElementIdentifier{padapi.AxisElement(m.Target)}
}

func digitalAxisValue(pressed bool, direction padapi.AxisDirection) int32 {
	switch direction {
	case padapi.AxisDirectionPositive:
		if pressed {
			return padapi.AnalogValueMax
		}
	case padapi.AxisDirectionNegative:
		if pressed {
			return padapi.AnalogValueMin
		}
	default:
		if pressed {
			return padapi.AnalogValueMax
		}
		return padapi.AnalogValueMin
	}
	return padapi.AnalogValueNeutral
}

// DigitalAxisMapper contributes saturated extremes to one virtual axis,
// thresholding analog inputs at half range.
type DigitalAxisMapper struct {
	Target    padapi.Axis
	Direction padapi.AxisDirection
}

func NewDigitalAxisMapper(target padapi.Axis, direction padapi.AxisDirection) *DigitalAxisMapper {
	return &DigitalAxisMapper{Target: target, Direction: direction}
}

func (m *DigitalAxisMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, _ uint32) {
	var v int32
	switch {
	case analogIsPressedPositive(analogValue):
		v = padapi.AnalogValueMax
	case analogIsPressedNegative(analogValue):
		v = padapi.AnalogValueMin
	}
	state.AddAxisValue(m.Target, filterByDirection(v, m.Direction))
}

func (m *DigitalAxisMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, _ uint32) {
	state.AddAxisValue(m.Target, digitalAxisValue(buttonPressed, m.Direction))
}

func (m *DigitalAxisMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, _ uint32) {
	var v int32
	if triggerIsPressed(triggerValue) {
		v = padapi.AnalogValueMax
	}
	state.AddAxisValue(m.Target, filterByDirection(v, m.Direction))
}

func (m *DigitalAxisMapper) ContributeNeutral(state *padapi.State, _ uint32) {
	state.AddAxisValue(m.Target, padapi.AnalogValueNeutral)
}

func (m *DigitalAxisMapper) TargetElements() []padapi.ElementIdentifier {
	return []padapi.ElementIdentifier{padapi.AxisElement(m.Target)}
}
