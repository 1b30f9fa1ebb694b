// Package hostio declares the host keyboard and mouse collaborators that
// element mappers forward contributions to. Platform backends implement
// these interfaces; the package only ships no-op implementations.
package hostio

// MouseAxis identifies a host mouse movement axis.
type MouseAxis int

const (
	MouseAxisX MouseAxis = iota
	MouseAxisY
	MouseAxisWheelH
	MouseAxisWheelV

	MouseAxisCount
)

func (a MouseAxis) String() string {
	switch a {
	case MouseAxisX:
		return "X"
	case MouseAxisY:
		return "Y"
	case MouseAxisWheelH:
		return "WheelH"
	case MouseAxisWheelV:
		return "WheelV"
	}
	return "unknown"
}

// MouseButton identifies a host mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonX1
	MouseButtonX2

	MouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonMiddle:
		return "Middle"
	case MouseButtonRight:
		return "Right"
	case MouseButtonX1:
		return "X1"
	case MouseButtonX2:
		return "X2"
	}
	return "unknown"
}

// Keyboard receives key contributions keyed by the contributing physical
// controller, so that the same key pressed from two controllers is released
// only when both release it.
type Keyboard interface {
	SetKey(sourceID uint32, scancode uint16, pressed bool)
}

// Mouse receives mouse axis and button contributions keyed by the
// contributing physical controller.
type Mouse interface {
	SetAxis(sourceID uint32, axis MouseAxis, value int32)
	SetButton(sourceID uint32, button MouseButton, pressed bool)
}

// NullKeyboard discards all key contributions.
type NullKeyboard struct{}

func (NullKeyboard) SetKey(uint32, uint16, bool) {}

// NullMouse discards all mouse contributions.
type NullMouse struct{}

func (NullMouse) SetAxis(uint32, MouseAxis, int32) {}

func (NullMouse) SetButton(uint32, MouseButton, bool) {}
