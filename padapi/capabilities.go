package padapi

// AxisCapabilities describes a single axis present on a virtual controller.
type AxisCapabilities struct {
	Axis                  Axis
	SupportsForceFeedback bool
}

// Capabilities is the aggregate layout metadata of a virtual controller,
// derived from its mapper. Axes are sorted and unique. X and Y are always
// present, reading neutral if no element mapper targets them.
type Capabilities struct {
	Axes       []AxisCapabilities
	NumButtons int
	HasPov     bool
}

// HasAxis reports whether the given axis is present.
func (c Capabilities) HasAxis(axis Axis) bool {
	return c.AxisIndex(axis) >= 0
}

// AxisIndex returns the position of the given axis within the sorted axis
// list, or -1 if the axis is absent.
func (c Capabilities) AxisIndex(axis Axis) int {
	for i, a := range c.Axes {
		if a.Axis == axis {
			return i
		}
	}
	return -1
}

// NumAxes returns the number of axes present.
func (c Capabilities) NumAxes() int {
	return len(c.Axes)
}

// ForceFeedbackIsSupported reports whether any axis supports force feedback.
func (c Capabilities) ForceFeedbackIsSupported() bool {
	for _, a := range c.Axes {
		if a.SupportsForceFeedback {
			return true
		}
	}
	return false
}

// ForceFeedbackAxes returns the sorted axes that support force feedback.
func (c Capabilities) ForceFeedbackAxes() []Axis {
	var axes []Axis
	for _, a := range c.Axes {
		if a.SupportsForceFeedback {
			axes = append(axes, a.Axis)
		}
	}
	return axes
}
