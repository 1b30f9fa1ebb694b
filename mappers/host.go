package mappers

import (
	"github.com/padshift/padshift/padapi"
	"github.com/padshift/padshift/pkg/hostio"
)

// MaxScancode bounds keyboard scancodes accepted by KeyboardMapper.
const MaxScancode = 255

// KeyboardMapper forwards pressed state to a host keyboard key. It writes
// no virtual elements.
type KeyboardMapper struct {
	Scancode uint16
	Host     hostio.Keyboard
}

func NewKeyboardMapper(scancode uint16, host hostio.Keyboard) *KeyboardMapper {
	if host == nil {
		host = hostio.NullKeyboard{}
	}
	return &KeyboardMapper{Scancode: scancode, Host: host}
}

func (m *KeyboardMapper) ContributeFromAnalogValue(_ *padapi.State, analogValue int16, sourceID uint32) {
	m.Host.SetKey(sourceID, m.Scancode, analogIsPressed(analogValue))
}

func (m *KeyboardMapper) ContributeFromButtonValue(_ *padapi.State, buttonPressed bool, sourceID uint32) {
	m.Host.SetKey(sourceID, m.Scancode, buttonPressed)
}

func (m *KeyboardMapper) ContributeFromTriggerValue(_ *padapi.State, triggerValue uint8, sourceID uint32) {
	m.Host.SetKey(sourceID, m.Scancode, triggerIsPressed(triggerValue))
}

func (m *KeyboardMapper) ContributeNeutral(_ *padapi.State, sourceID uint32) {
	m.Host.SetKey(sourceID, m.Scancode, false)
}

func (m *KeyboardMapper) TargetElements() []padapi.ElementIdentifier {
	return nil
}

// MouseAxisMapper forwards analog values to a host mouse axis.
type MouseAxisMapper struct {
	Axis      hostio.MouseAxis
	Direction padapi.AxisDirection
	Host      hostio.Mouse
}

func NewMouseAxisMapper(axis hostio.MouseAxis, direction padapi.AxisDirection, host hostio.Mouse) *MouseAxisMapper {
	if host == nil {
		host = hostio.NullMouse{}
	}
	return &MouseAxisMapper{Axis: axis, Direction: direction, Host: host}
}

func (m *MouseAxisMapper) ContributeFromAnalogValue(_ *padapi.State, analogValue int16, sourceID uint32) {
	m.Host.SetAxis(sourceID, m.Axis, filterByDirection(int32(analogValue), m.Direction))
}

func (m *MouseAxisMapper) ContributeFromButtonValue(_ *padapi.State, buttonPressed bool, sourceID uint32) {
	m.Host.SetAxis(sourceID, m.Axis, digitalAxisValue(buttonPressed, m.Direction))
}

func (m *MouseAxisMapper) ContributeFromTriggerValue(_ *padapi.State, triggerValue uint8, sourceID uint32) {
	m.Host.SetAxis(sourceID, m.Axis, filterByDirection(analogFromTrigger(triggerValue), m.Direction))
}

func (m *MouseAxisMapper) ContributeNeutral(_ *padapi.State, sourceID uint32) {
	m.Host.SetAxis(sourceID, m.Axis, 0)
}

func (m *MouseAxisMapper) TargetElements() []padapi.ElementIdentifier {
	return nil
}

// MouseButtonMapper forwards pressed state to a host mouse button.
type MouseButtonMapper struct {
	Button hostio.MouseButton
	Host   hostio.Mouse
}

func NewMouseButtonMapper(button hostio.MouseButton, host hostio.Mouse) *MouseButtonMapper {
	if host == nil {
		host = hostio.NullMouse{}
	}
	return &MouseButtonMapper{Button: button, Host: host}
}

func (m *MouseButtonMapper) ContributeFromAnalogValue(_ *padapi.State, analogValue int16, sourceID uint32) {
	m.Host.SetButton(sourceID, m.Button, analogIsPressed(analogValue))
}

func (m *MouseButtonMapper) ContributeFromButtonValue(_ *padapi.State, buttonPressed bool, sourceID uint32) {
	m.Host.SetButton(sourceID, m.Button, buttonPressed)
}

func (m *MouseButtonMapper) ContributeFromTriggerValue(_ *padapi.State, triggerValue uint8, sourceID uint32) {
	m.Host.SetButton(sourceID, m.Button, triggerIsPressed(triggerValue))
}

func (m *MouseButtonMapper) ContributeNeutral(_ *padapi.State, sourceID uint32) {
	m.Host.SetButton(sourceID, m.Button, false)
}

func (m *MouseButtonMapper) TargetElements() []padapi.ElementIdentifier {
	return nil
}
