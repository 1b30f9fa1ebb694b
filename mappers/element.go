// Package mappers implements element mappers, the composable transforms
// from one physical controller element to virtual controller elements, and
// the Mapper that composes twenty of them plus a force feedback actuator
// map into a complete virtual controller layout.
package mappers

import "github.com/padshift/padshift/padapi"

// Thresholds for treating analog readings as digital presses: half of the
// respective range.
const (
	analogPressThresholdPositive = padapi.AnalogValueMax / 2
	analogPressThresholdNegative = padapi.AnalogValueMin / 2
	triggerPressThreshold        = padapi.TriggerValueMid
)

// ElementMapper contributes the reading of a single physical element to a
// virtual controller state accumulator. Implementations are pure and
// stateless; the same mapper may be invoked for any input kind, so all
// three input flavors must be handled.
//
// sourceID identifies the contributing physical controller and is only
// meaningful to mappers that forward into shared host collaborators.
type ElementMapper interface {
	// ContributeFromAnalogValue contributes from a stick coordinate in
	// [AnalogValueMin, AnalogValueMax].
	ContributeFromAnalogValue(state *padapi.State, analogValue int16, sourceID uint32)

	// ContributeFromButtonValue contributes from a digital button.
	ContributeFromButtonValue(state *padapi.State, buttonPressed bool, sourceID uint32)

	// ContributeFromTriggerValue contributes from a trigger reading in
	// [TriggerValueMin, TriggerValueMax].
	ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, sourceID uint32)

	// ContributeNeutral contributes the resting value. Invoked when the
	// physical controller is absent and for inactive Split branches, so
	// that mappers with external side effects can release them.
	ContributeNeutral(state *padapi.State, sourceID uint32)

	// TargetElements returns every virtual element this mapper could
	// write, recursively for composite mappers. Mappers that only drive
	// host collaborators return nothing.
	TargetElements() []padapi.ElementIdentifier
}

func analogIsPressedPositive(v int16) bool {
	return int32(v) >= analogPressThresholdPositive
}

func analogIsPressedNegative(v int16) bool {
	return int32(v) <= analogPressThresholdNegative
}

func analogIsPressed(v int16) bool {
	return analogIsPressedPositive(v) || analogIsPressedNegative(v)
}

func triggerIsPressed(v uint8) bool {
	return v >= triggerPressThreshold
}

// analogFromTrigger linearly scales a trigger reading onto the positive
// half of the analog range.
func analogFromTrigger(v uint8) int32 {
	return int32(v) * padapi.AnalogValueMax / padapi.TriggerValueMax
}

// filterByDirection zeroes the half of the analog range the direction
// excludes.
func filterByDirection(v int32, direction padapi.AxisDirection) int32 {
	switch direction {
	case padapi.AxisDirectionPositive:
		if v < 0 {
			return 0
		}
	case padapi.AxisDirectionNegative:
		if v > 0 {
			return 0
		}
	}
	return v
}
