package mappers

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/multierr"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/padapi"
)

// PhysicalElement indexes the twenty physical controller element slots.
type PhysicalElement int

const (
	ElementStickLeftX PhysicalElement = iota
	ElementStickLeftY
	ElementStickRightX
	ElementStickRightY
	ElementDpadUp
	ElementDpadDown
	ElementDpadLeft
	ElementDpadRight
	ElementTriggerLT
	ElementTriggerRT
	ElementButtonA
	ElementButtonB
	ElementButtonX
	ElementButtonY
	ElementButtonLB
	ElementButtonRB
	ElementButtonBack
	ElementButtonStart
	ElementButtonLS
	ElementButtonRS

	PhysicalElementCount
)

var physicalElementNames = [PhysicalElementCount]string{
	"StickLeftX", "StickLeftY", "StickRightX", "StickRightY",
	"DpadUp", "DpadDown", "DpadLeft", "DpadRight",
	"TriggerLT", "TriggerRT",
	"ButtonA", "ButtonB", "ButtonX", "ButtonY",
	"ButtonLB", "ButtonRB", "ButtonBack", "ButtonStart",
	"ButtonLS", "ButtonRS",
}

func (e PhysicalElement) String() string {
	if e < 0 || e >= PhysicalElementCount {
		return fmt.Sprintf("PhysicalElement(%d)", int(e))
	}
	return physicalElementNames[e]
}

// PhysicalElementByName resolves a physical element from its name,
// case-sensitively.
func PhysicalElementByName(name string) (PhysicalElement, bool) {
	for i, n := range physicalElementNames {
		if n == name {
			return PhysicalElement(i), true
		}
	}
	return 0, false
}

// ElementMap assigns an element mapper to each physical controller
// element. Unused elements stay nil.
type ElementMap struct {
	StickLeftX  ElementMapper
	StickLeftY  ElementMapper
	StickRightX ElementMapper
	StickRightY ElementMapper
	DpadUp      ElementMapper
	DpadDown    ElementMapper
	DpadLeft    ElementMapper
	DpadRight   ElementMapper
	TriggerLT   ElementMapper
	TriggerRT   ElementMapper
	ButtonA     ElementMapper
	ButtonB     ElementMapper
	ButtonX     ElementMapper
	ButtonY     ElementMapper
	ButtonLB    ElementMapper
	ButtonRB    ElementMapper
	ButtonBack  ElementMapper
	ButtonStart ElementMapper
	ButtonLS    ElementMapper
	ButtonRS    ElementMapper
}

// ByIndex provides the indexed view over the named element slots.
func (m *ElementMap) ByIndex(e PhysicalElement) ElementMapper {
	switch e {
	case ElementStickLeftX:
		return m.StickLeftX
	case ElementStickLeftY:
		return m.StickLeftY
	case ElementStickRightX:
		return m.StickRightX
	case ElementStickRightY:
		return m.StickRightY
	case ElementDpadUp:
		return m.DpadUp
	case ElementDpadDown:
		return m.DpadDown
	case ElementDpadLeft:
		return m.DpadLeft
	case ElementDpadRight:
		return m.DpadRight
	case ElementTriggerLT:
		return m.TriggerLT
	case ElementTriggerRT:
		return m.TriggerRT
	case ElementButtonA:
		return m.ButtonA
	case ElementButtonB:
		return m.ButtonB
	case ElementButtonX:
		return m.ButtonX
	case ElementButtonY:
		return m.ButtonY
	case ElementButtonLB:
		return m.ButtonLB
	case ElementButtonRB:
		return m.ButtonRB
	case ElementButtonBack:
		return m.ButtonBack
	case ElementButtonStart:
		return m.ButtonStart
	case ElementButtonLS:
		return m.ButtonLS
	case ElementButtonRS:
		return m.ButtonRS
	}
	return nil
}

// SetByIndex assigns a mapper slot through the indexed view.
func (m *ElementMap) SetByIndex(e PhysicalElement, mapper ElementMapper) {
	switch e {
	case ElementStickLeftX:
		m.StickLeftX = mapper
	case ElementStickLeftY:
		m.StickLeftY = mapper
	case ElementStickRightX:
		m.StickRightX = mapper
	case ElementStickRightY:
		m.StickRightY = mapper
	case ElementDpadUp:
		m.DpadUp = mapper
	case ElementDpadDown:
		m.DpadDown = mapper
	case ElementDpadLeft:
		m.DpadLeft = mapper
	case ElementDpadRight:
		m.DpadRight = mapper
	case ElementTriggerLT:
		m.TriggerLT = mapper
	case ElementTriggerRT:
		m.TriggerRT = mapper
	case ElementButtonA:
		m.ButtonA = mapper
	case ElementButtonB:
		m.ButtonB = mapper
	case ElementButtonX:
		m.ButtonX = mapper
	case ElementButtonY:
		m.ButtonY = mapper
	case ElementButtonLB:
		m.ButtonLB = mapper
	case ElementButtonRB:
		m.ButtonRB = mapper
	case ElementButtonBack:
		m.ButtonBack = mapper
	case ElementButtonStart:
		m.ButtonStart = mapper
	case ElementButtonLS:
		m.ButtonLS = mapper
	case ElementButtonRS:
		m.ButtonRS = mapper
	}
}

// Mapper composes twenty element mapper slots and a force feedback
// actuator map into one immutable virtual controller layout.
type Mapper struct {
	name         string
	elements     ElementMap
	actuators    forcefeedback.ActuatorMap
	capabilities padapi.Capabilities
}

// NewMapper validates the element map and actuator map and derives the
// aggregate capabilities. The mapper owns the element mappers afterwards.
func NewMapper(name string, elements ElementMap, actuators forcefeedback.ActuatorMap) (*Mapper, error) {
	var errs error
	for e := PhysicalElement(0); e < PhysicalElementCount; e++ {
		mapper := elements.ByIndex(e)
		if mapper == nil {
			continue
		}
		for _, target := range mapper.TargetElements() {
			if err := validateTarget(target); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", e, err))
			}
		}
	}
	if err := actuators.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w: %w", padapi.ErrInvalidMapper, errs)
	}

	return &Mapper{
		name:         name,
		elements:     elements,
		actuators:    actuators,
		capabilities: deriveCapabilities(&elements, &actuators),
	}, nil
}

func validateTarget(target padapi.ElementIdentifier) error {
	switch target.Type {
	case padapi.ElementTypeAxis:
		if !target.Axis.IsValid() {
			return fmt.Errorf("%w: axis %d", padapi.ErrInvalidParameter, int(target.Axis))
		}
	case padapi.ElementTypeButton:
		if !target.Button.IsValid() {
			return fmt.Errorf("%w: button %d", padapi.ErrInvalidParameter, int(target.Button))
		}
	case padapi.ElementTypePov:
	default:
		return fmt.Errorf("%w: element type %d", padapi.ErrInvalidParameter, int(target.Type))
	}
	return nil
}

// deriveCapabilities unions the target elements of every slot. X and Y
// are always present; the button count never drops below the minimum.
func deriveCapabilities(elements *ElementMap, actuators *forcefeedback.ActuatorMap) padapi.Capabilities {
	axes := map[padapi.Axis]struct{}{
		padapi.AxisX: {},
		padapi.AxisY: {},
	}
	numButtons := padapi.ButtonCountMin
	hasPov := false

	for e := PhysicalElement(0); e < PhysicalElementCount; e++ {
		mapper := elements.ByIndex(e)
		if mapper == nil {
			continue
		}
		for _, target := range mapper.TargetElements() {
			switch target.Type {
			case padapi.ElementTypeAxis:
				axes[target.Axis] = struct{}{}
			case padapi.ElementTypeButton:
				if n := int(target.Button) + 1; n > numButtons {
					numButtons = n
				}
			case padapi.ElementTypePov:
				hasPov = true
			}
		}
	}

	ffAxes := make(map[padapi.Axis]struct{})
	for _, axis := range actuators.Axes() {
		ffAxes[axis] = struct{}{}
		axes[axis] = struct{}{}
	}

	sorted := make([]padapi.Axis, 0, len(axes))
	for axis := range axes {
		sorted = append(sorted, axis)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	caps := padapi.Capabilities{
		NumButtons: numButtons,
		HasPov:     hasPov,
	}
	for _, axis := range sorted {
		_, ff := ffAxes[axis]
		caps.Axes = append(caps.Axes, padapi.AxisCapabilities{
			Axis:                  axis,
			SupportsForceFeedback: ff,
		})
	}
	return caps
}

// Name returns the mapper's human-readable name, possibly empty.
func (m *Mapper) Name() string {
	return m.name
}

// Capabilities returns the derived aggregate capabilities.
func (m *Mapper) Capabilities() padapi.Capabilities {
	return m.capabilities
}

// Elements returns a read-only view of the element map.
func (m *Mapper) Elements() *ElementMap {
	return &m.elements
}

// ActuatorMap returns the force feedback actuator map.
func (m *Mapper) ActuatorMap() forcefeedback.ActuatorMap {
	return m.actuators
}

// MapState maps one physical controller reading to a virtual controller
// state. The result is pre-property: axis values are within the analog
// range and no deadzone, saturation or range transform is applied.
// MapState never fails; a non-ok physical status maps like a neutral
// controller.
func (m *Mapper) MapState(physical padapi.PhysicalState, controllerID uint32) padapi.State {
	if physical.Status != padapi.PhysicalStatusOk {
		return m.MapNeutral(controllerID)
	}

	var state padapi.State
	for e := PhysicalElement(0); e < PhysicalElementCount; e++ {
		mapper := m.elements.ByIndex(e)
		if mapper == nil {
			continue
		}
		switch e {
		case ElementStickLeftX:
			mapper.ContributeFromAnalogValue(&state, physical.StickLeftX, controllerID)
		case ElementStickLeftY:
			mapper.ContributeFromAnalogValue(&state, physical.StickLeftY, controllerID)
		case ElementStickRightX:
			mapper.ContributeFromAnalogValue(&state, physical.StickRightX, controllerID)
		case ElementStickRightY:
			mapper.ContributeFromAnalogValue(&state, physical.StickRightY, controllerID)
		case ElementTriggerLT:
			mapper.ContributeFromTriggerValue(&state, physical.TriggerLeft, controllerID)
		case ElementTriggerRT:
			mapper.ContributeFromTriggerValue(&state, physical.TriggerRight, controllerID)
		default:
			mapper.ContributeFromButtonValue(&state, physical.Pressed(physicalButtonFor(e)), controllerID)
		}
	}
	return state
}

// MapNeutral maps the state a completely neutral or disconnected physical
// controller produces.
func (m *Mapper) MapNeutral(controllerID uint32) padapi.State {
	var state padapi.State
	for e := PhysicalElement(0); e < PhysicalElementCount; e++ {
		if mapper := m.elements.ByIndex(e); mapper != nil {
			mapper.ContributeNeutral(&state, controllerID)
		}
	}
	return state
}

func physicalButtonFor(e PhysicalElement) padapi.PhysicalButton {
	switch e {
	case ElementDpadUp:
		return padapi.PhysicalButtonDpadUp
	case ElementDpadDown:
		return padapi.PhysicalButtonDpadDown
	case ElementDpadLeft:
		return padapi.PhysicalButtonDpadLeft
	case ElementDpadRight:
		return padapi.PhysicalButtonDpadRight
	case ElementButtonA:
		return padapi.PhysicalButtonA
	case ElementButtonB:
		return padapi.PhysicalButtonB
	case ElementButtonX:
		return padapi.PhysicalButtonX
	case ElementButtonY:
		return padapi.PhysicalButtonY
	case ElementButtonLB:
		return padapi.PhysicalButtonLB
	case ElementButtonRB:
		return padapi.PhysicalButtonRB
	case ElementButtonBack:
		return padapi.PhysicalButtonBack
	case ElementButtonStart:
		return padapi.PhysicalButtonStart
	case ElementButtonLS:
		return padapi.PhysicalButtonLS
	case ElementButtonRS:
		return padapi.PhysicalButtonRS
	}
	return 0
}

// physicalActuatorMax is the full-scale output value of one actuator.
const physicalActuatorMax = 65535

// MapForceFeedback projects a virtual per-axis magnitude vector onto the
// four physical actuators. All intermediate math is in float64; outputs
// saturate at the actuator range.
func (m *Mapper) MapForceFeedback(components forcefeedback.OrderedMagnitudeComponents, gainFraction float64) forcefeedback.PhysicalActuatorComponents {
	return forcefeedback.PhysicalActuatorComponents{
		LeftMotor:           actuatorOutput(m.actuators.LeftMotor, components, gainFraction),
		RightMotor:          actuatorOutput(m.actuators.RightMotor, components, gainFraction),
		LeftImpulseTrigger:  actuatorOutput(m.actuators.LeftImpulseTrigger, components, gainFraction),
		RightImpulseTrigger: actuatorOutput(m.actuators.RightImpulseTrigger, components, gainFraction),
	}
}

func actuatorOutput(actuator forcefeedback.ActuatorElement, components forcefeedback.OrderedMagnitudeComponents, gainFraction float64) uint16 {
	if !actuator.Present {
		return 0
	}

	var magnitude float64
	switch actuator.Mode {
	case forcefeedback.ActuatorModeSingleAxis:
		component := components[actuator.Axis]
		switch actuator.Direction {
		case padapi.AxisDirectionPositive:
			if component < 0 {
				return 0
			}
		case padapi.AxisDirectionNegative:
			if component > 0 {
				return 0
			}
		}
		magnitude = math.Abs(component)
	case forcefeedback.ActuatorModeMagnitudeProjection:
		magnitude = math.Hypot(components[actuator.AxisFirst], components[actuator.AxisSecond])
	default:
		return 0
	}

	scaled := magnitude * gainFraction * physicalActuatorMax / forcefeedback.ForceMagnitudeMax
	if scaled <= 0 {
		return 0
	}
	if scaled >= physicalActuatorMax {
		return physicalActuatorMax
	}
	return uint16(math.Round(scaled))
}
