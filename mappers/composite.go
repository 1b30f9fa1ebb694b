package mappers

import (
	"math"

	"github.com/padshift/padshift/padapi"
)

// MaxRecursionDepth bounds how deeply composite mappers may nest.
const MaxRecursionDepth = 4

// CompoundMapperMaxChildren is the fan-out limit of a CompoundMapper.
const CompoundMapperMaxChildren = 4

// InvertMapper negates the analog input seen by its inner mapper. Digital
// inputs pass through unchanged.
type InvertMapper struct {
	Inner ElementMapper
}

func NewInvertMapper(inner ElementMapper) *InvertMapper {
	return &InvertMapper{Inner: inner}
}

func (m *InvertMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, sourceID uint32) {
	inverted := int16(0)
	if analogValue == math.MinInt16 {
		inverted = math.MaxInt16
	} else {
		inverted = -analogValue
	}
	m.Inner.ContributeFromAnalogValue(state, inverted, sourceID)
}

func (m *InvertMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, sourceID uint32) {
	m.Inner.ContributeFromButtonValue(state, buttonPressed, sourceID)
}

// Triggers invert within their own single-ended range.
func (m *InvertMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, sourceID uint32) {
	m.Inner.ContributeFromTriggerValue(state, padapi.TriggerValueMax-triggerValue, sourceID)
}

func (m *InvertMapper) ContributeNeutral(state *padapi.State, sourceID uint32) {
	m.Inner.ContributeNeutral(state, sourceID)
}

func (m *InvertMapper) TargetElements() []padapi.ElementIdentifier {
	return m.Inner.TargetElements()
}

// SplitMapper routes the positive half of an analog input to one inner
// mapper and the reflected negative half to another. The inactive side
// contributes its neutral value so that side effects are released.
// Either side may be nil.
type SplitMapper struct {
	Positive ElementMapper
	Negative ElementMapper
}

func NewSplitMapper(positive, negative ElementMapper) *SplitMapper {
	return &SplitMapper{Positive: positive, Negative: negative}
}

func (m *SplitMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, sourceID uint32) {
	if analogValue >= 0 {
		if m.Positive != nil {
			m.Positive.ContributeFromAnalogValue(state, analogValue, sourceID)
		}
		if m.Negative != nil {
			m.Negative.ContributeNeutral(state, sourceID)
		}
		return
	}

	reflected := int16(math.MaxInt16)
	if analogValue != math.MinInt16 {
		reflected = -analogValue
	}
	if m.Negative != nil {
		m.Negative.ContributeFromAnalogValue(state, reflected, sourceID)
	}
	if m.Positive != nil {
		m.Positive.ContributeNeutral(state, sourceID)
	}
}

// Digital inputs always go to the positive side.
func (m *SplitMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, sourceID uint32) {
	if m.Positive != nil {
		m.Positive.ContributeFromButtonValue(state, buttonPressed, sourceID)
	}
	if m.Negative != nil {
		m.Negative.ContributeNeutral(state, sourceID)
	}
}

// Triggers split at the center of their range: the upper half goes to the
// positive side, the lower half to the negative side.
func (m *SplitMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, sourceID uint32) {
	if triggerValue >= padapi.TriggerValueMid {
		if m.Positive != nil {
			m.Positive.ContributeFromTriggerValue(state, triggerValue, sourceID)
		}
		if m.Negative != nil {
			m.Negative.ContributeNeutral(state, sourceID)
		}
		return
	}
	if m.Negative != nil {
		m.Negative.ContributeFromTriggerValue(state, triggerValue, sourceID)
	}
	if m.Positive != nil {
		m.Positive.ContributeNeutral(state, sourceID)
	}
}

func (m *SplitMapper) ContributeNeutral(state *padapi.State, sourceID uint32) {
	if m.Positive != nil {
		m.Positive.ContributeNeutral(state, sourceID)
	}
	if m.Negative != nil {
		m.Negative.ContributeNeutral(state, sourceID)
	}
}

func (m *SplitMapper) TargetElements() []padapi.ElementIdentifier {
	var elements []padapi.ElementIdentifier
	if m.Positive != nil {
		elements = append(elements, m.Positive.TargetElements()...)
	}
	if m.Negative != nil {
		elements = append(elements, m.Negative.TargetElements()...)
	}
	return elements
}

// CompoundMapper fans the same input out to up to four children. Nil
// children are skipped.
type CompoundMapper struct {
	Children [CompoundMapperMaxChildren]ElementMapper
}

func NewCompoundMapper(children ...ElementMapper) *CompoundMapper {
	m := &CompoundMapper{}
	for i, child := range children {
		if i >= CompoundMapperMaxChildren {
			break
		}
		m.Children[i] = child
	}
	return m
}

func (m *CompoundMapper) ContributeFromAnalogValue(state *padapi.State, analogValue int16, sourceID uint32) {
	for _, child := range m.Children {
		if child != nil {
			child.ContributeFromAnalogValue(state, analogValue, sourceID)
		}
	}
}

func (m *CompoundMapper) ContributeFromButtonValue(state *padapi.State, buttonPressed bool, sourceID uint32) {
	for _, child := range m.Children {
		if child != nil {
			child.ContributeFromButtonValue(state, buttonPressed, sourceID)
		}
	}
}

func (m *CompoundMapper) ContributeFromTriggerValue(state *padapi.State, triggerValue uint8, sourceID uint32) {
	for _, child := range m.Children {
		if child != nil {
			child.ContributeFromTriggerValue(state, triggerValue, sourceID)
		}
	}
}

func (m *CompoundMapper) ContributeNeutral(state *padapi.State, sourceID uint32) {
	for _, child := range m.Children {
		if child != nil {
			child.ContributeNeutral(state, sourceID)
		}
	}
}

func (m *CompoundMapper) TargetElements() []padapi.ElementIdentifier {
	var elements []padapi.ElementIdentifier
	for _, child := range m.Children {
		if child != nil {
			elements = append(elements, child.TargetElements()...)
		}
	}
	return elements
}

// NullMapper contributes nothing. It exists so that definition strings can
// keep structure while disabling an element.
type NullMapper struct{}

func NewNullMapper() *NullMapper {
	return &NullMapper{}
}

func (*NullMapper) ContributeFromAnalogValue(*padapi.State, int16, uint32) {}

func (*NullMapper) ContributeFromButtonValue(*padapi.State, bool, uint32) {}

func (*NullMapper) ContributeFromTriggerValue(*padapi.State, uint8, uint32) {}

func (*NullMapper) ContributeNeutral(*padapi.State, uint32) {}

func (*NullMapper) TargetElements() []padapi.ElementIdentifier {
	return nil
}
