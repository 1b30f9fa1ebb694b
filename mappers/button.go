package mappers

import "github.com/padshift/padshift/padapi"

// ButtonMapper contributes a press to one virtual button. Contributions
// from multiple mappers to the same button are ORed.
type ButtonMapper struct {
	Target padapi.Button
}

func NewButtonMapper(target padapi.Button) *ButtonMapper {
	return &ButtonMapper{Target: target}
}

// Analog readings press the button when they reach half range toward
// either extreme.
func (m *ButtonMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, _ uint32) {
	state.PressButton(m.Target, analogIsPressed(analogValue))
}

func (m *ButtonMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, _ uint32) {
	state.PressButton(m.Target, buttonPressed)
}

func (m *ButtonMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, _ uint32) {
	state.PressButton(m.Target, triggerIsPressed(triggerValue))
}

func (m *ButtonMapper) ContributeNeutral(state *padapi.State, _ uint32) {
	state.PressButton(m.Target, false)
}

func (m *ButtonMapper) TargetElements() []padapi.ElementIdentifier {
	return []padapi.ElementIdentifier{padapi.ButtonElement(m.Target)}
}

// PovMapper contributes to one direction component of the POV hat.
type PovMapper struct {
	Direction padapi.PovComponent
}

func NewPovMapper(direction padapi.PovComponent) *PovMapper {
	return &PovMapper{Direction: direction}
}

func (m *PovMapper) contribute(state *padapi.State, pressed bool) {
	if pressed {
		state.Pov.Set(m.Direction)
	}
}

func (m *PovMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, _ uint32) {
	m.contribute(state, analogIsPressed(analogValue))
}

func (m *PovMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, _ uint32) {
	m.contribute(state, buttonPressed)
}

func (m *PovMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, _ uint32) {
	m.contribute(state, triggerIsPressed(triggerValue))
}

func (m *PovMapper) ContributeNeutral(state *padapi.State, _ uint32) {
	m.contribute(state, false)
}

func (m *PovMapper) TargetElements() []padapi.ElementIdentifier {
	return []padapi.ElementIdentifier{padapi.PovElement()}
}
