package vcontroller

import (
	"fmt"
	"sync"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/mappers"
	"github.com/padshift/padshift/padapi"
)

// ForceFeedbackRegistry is implemented by the physical device service. It
// hands out the shared force feedback device and tracks which controllers
// are registered so effect output can be distributed.
type ForceFeedbackRegistry interface {
	RegisterController(c *Controller) *forcefeedback.Device
	UnregisterController(c *Controller)
}

// Controller is a virtual controller: it holds the application-visible
// state produced by pushing physical readings through a mapper and the
// per-axis property transforms, buffers state-change events, and manages
// registration against the shared force feedback device.
//
// All public methods serialize on an internal lock held only for the
// duration of the call, never across blocking operations.
type Controller struct {
	mu sync.Mutex

	id     uint32
	mapper *mappers.Mapper
	clock  padapi.Clock

	status padapi.PhysicalStatus

	// prePropertySnapshot is the last mapped state before property
	// transforms; diffs against it decide which events to emit.
	prePropertySnapshot padapi.State
	state               padapi.State

	properties [padapi.AxisCount]AxisProperties

	eventBuffer *EventBuffer
	eventFilter map[padapi.ElementIdentifier]struct{}
	notify      padapi.Notify

	ffRegistry ForceFeedbackRegistry
	ffDevice   *forcefeedback.Device
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithClock substitutes the timestamp source.
func WithClock(clock padapi.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithForceFeedbackRegistry attaches the registry of the physical device
// this controller reads from, enabling force feedback registration.
func WithForceFeedbackRegistry(registry ForceFeedbackRegistry) Option {
	return func(c *Controller) {
		c.ffRegistry = registry
	}
}

// NewController creates a virtual controller for the physical controller
// identified by id, laid out by the given mapper.
func NewController(id uint32, mapper *mappers.Mapper, opts ...Option) *Controller {
	c := &Controller{
		id:          id,
		mapper:      mapper,
		clock:       padapi.NewSystemClock(),
		status:      padapi.PhysicalStatusNotConnected,
		eventBuffer: NewEventBuffer(),
		eventFilter: make(map[padapi.ElementIdentifier]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.prePropertySnapshot = mapper.MapNeutral(id)
	c.state = c.applyPropertiesLocked(c.prePropertySnapshot)
	return c
}

// ID returns the physical controller identifier this virtual controller
// reads from.
func (c *Controller) ID() uint32 {
	return c.id
}

// Mapper returns the mapper defining this controller's layout.
func (c *Controller) Mapper() *mappers.Mapper {
	return c.mapper
}

// Capabilities returns the mapper-derived layout capabilities.
func (c *Controller) Capabilities() padapi.Capabilities {
	return c.mapper.Capabilities()
}

// State returns the current post-property virtual state.
func (c *Controller) State() padapi.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the device status seen at the last refresh.
func (c *Controller) Status() padapi.PhysicalStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// AxisProperties returns the property settings of one axis.
func (c *Controller) AxisProperties(axis padapi.Axis) (AxisProperties, error) {
	if !axis.IsValid() {
		return AxisProperties{}, fmt.Errorf("%w: axis %d", padapi.ErrInvalidParameter, int(axis))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.properties[axis], nil
}

// setAxisProperties validates and installs new settings for one axis,
// then recomputes the post-property state so the change is visible
// without waiting for the next refresh.
func (c *Controller) setAxisProperties(axis padapi.Axis, mutate func(*AxisProperties)) error {
	if !axis.IsValid() {
		return fmt.Errorf("%w: axis %d", padapi.ErrInvalidParameter, int(axis))
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	props := c.properties[axis]
	mutate(&props)
	if err := props.validate(); err != nil {
		return err
	}
	c.properties[axis] = props
	c.state = c.applyPropertiesLocked(c.prePropertySnapshot)
	return nil
}

// SetAxisDeadzone sets the deadzone of one axis, on a 0..10000 scale.
func (c *Controller) SetAxisDeadzone(axis padapi.Axis, deadzone uint32) error {
	return c.setAxisProperties(axis, func(p *AxisProperties) {
		p.Deadzone = deadzone
	})
}

// SetAxisSaturation sets the saturation of one axis, on a 0..10000 scale.
func (c *Controller) SetAxisSaturation(axis padapi.Axis, saturation uint32) error {
	return c.setAxisProperties(axis, func(p *AxisProperties) {
		p.Saturation = saturation
	})
}

// SetAxisRange sets the output range of one axis. min must be below max.
func (c *Controller) SetAxisRange(axis padapi.Axis, min, max int32) error {
	return c.setAxisProperties(axis, func(p *AxisProperties) {
		p.RangeMin = min
		p.RangeMax = max
	})
}

// SetAxisTransformations enables or disables property transforms for one
// axis.
func (c *Controller) SetAxisTransformations(axis padapi.Axis, enabled bool) error {
	return c.setAxisProperties(axis, func(p *AxisProperties) {
		p.TransformationsEnabled = enabled
	})
}

// ApplyProperties maps a pre-property state through the configured axis
// transforms. Buttons and POV pass through unchanged.
func (c *Controller) ApplyProperties(state padapi.State) padapi.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyPropertiesLocked(state)
}

func (c *Controller) applyPropertiesLocked(state padapi.State) padapi.State {
	for axis := padapi.Axis(0); axis < padapi.AxisCount; axis++ {
		state.Axis[axis] = c.properties[axis].apply(state.Axis[axis])
	}
	return state
}

// SetEventBufferCapacity resizes the event buffer. Oversized requests are
// clamped; shrinking below the stored count raises the overflow flag.
func (c *Controller) SetEventBufferCapacity(capacity uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventBuffer.SetCapacity(capacity)
}

// EventBufferCapacity returns the declared event buffer capacity.
func (c *Controller) EventBufferCapacity() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventBuffer.Capacity()
}

// EventBufferCount returns the number of buffered events.
func (c *Controller) EventBufferCount() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventBuffer.Count()
}

// EventBufferEvent returns the buffered event at the given index, 0 being
// the oldest.
func (c *Controller) EventBufferEvent(index uint32) (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventBuffer.Event(index)
}

// EventBufferIsOverflowed reports whether events were dropped since the
// last pop.
func (c *Controller) EventBufferIsOverflowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventBuffer.IsOverflowed()
}

// PopOldestEvents removes up to n oldest buffered events, clearing any
// overflow condition, and returns how many were removed.
func (c *Controller) PopOldestEvents(n uint32) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventBuffer.PopOldest(n)
}

// EventFilterAddElement excludes an element's state changes from the
// event buffer. State itself still updates.
func (c *Controller) EventFilterAddElement(element padapi.ElementIdentifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventFilter[element] = struct{}{}
}

// EventFilterRemoveElement re-includes an element's state changes.
func (c *Controller) EventFilterRemoveElement(element padapi.ElementIdentifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.eventFilter, element)
}

// SetStateChangeNotify installs the notify handle signaled whenever a
// refresh appends at least one event. A nil handle disables notification.
func (c *Controller) SetStateChangeNotify(notify padapi.Notify) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = notify
}

// Refresh ingests one physical controller reading: it drives the device
// status state machine, maps the reading through the mapper, and applies
// the state diff. Polling failures never propagate; they coerce the
// virtual state to neutral until the device recovers.
func (c *Controller) Refresh(physical padapi.PhysicalState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.status
	c.status = physical.Status

	switch physical.Status {
	case padapi.PhysicalStatusOk:
		candidate := c.mapper.MapState(physical, c.id)
		if previous == padapi.PhysicalStatusNotConnected {
			// First contact adopts the state silently.
			c.prePropertySnapshot = candidate
			c.state = c.applyPropertiesLocked(candidate)
			return
		}
		c.refreshStateLocked(candidate)
	case padapi.PhysicalStatusNotConnected:
		c.refreshStateLocked(c.mapper.MapNeutral(c.id))
		if previous != padapi.PhysicalStatusNotConnected && c.ffDevice != nil {
			c.ffDevice.Clear()
		}
	case padapi.PhysicalStatusError:
		c.refreshStateLocked(c.mapper.MapNeutral(c.id))
	}
}

// RefreshState applies a candidate pre-property virtual state: diffs it
// against the previous snapshot, buffers events for unfiltered changes,
// recomputes the post-property state, and signals the notify handle if
// anything changed.
func (c *Controller) RefreshState(candidate padapi.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshStateLocked(candidate)
}

func (c *Controller) refreshStateLocked(candidate padapi.State) {
	timestamp := c.clock.NowMs()
	post := c.applyPropertiesLocked(candidate)
	appended := 0

	for axis := padapi.Axis(0); axis < padapi.AxisCount; axis++ {
		if candidate.Axis[axis] == c.prePropertySnapshot.Axis[axis] {
			continue
		}
		if c.appendEventLocked(EventData{
			Element:   padapi.AxisElement(axis),
			AxisValue: post.Axis[axis],
		}, timestamp) {
			appended++
		}
	}
	for button := padapi.Button(0); button < padapi.ButtonCountMax; button++ {
		if candidate.Button[button] == c.prePropertySnapshot.Button[button] {
			continue
		}
		if c.appendEventLocked(EventData{
			Element:       padapi.ButtonElement(button),
			ButtonPressed: candidate.Button[button],
		}, timestamp) {
			appended++
		}
	}
	if candidate.Pov.Collapse() != c.prePropertySnapshot.Pov.Collapse() {
		if c.appendEventLocked(EventData{
			Element:      padapi.PovElement(),
			PovDirection: candidate.Pov.Collapse(),
		}, timestamp) {
			appended++
		}
	}

	c.prePropertySnapshot = candidate
	c.state = post

	if appended > 0 && c.notify != nil {
		c.notify.Signal()
	}
}

func (c *Controller) appendEventLocked(data EventData, timestamp uint32) bool {
	if _, filtered := c.eventFilter[data.Element]; filtered {
		return false
	}
	c.eventBuffer.Append(data, timestamp)
	return true
}

// ForceFeedbackRegister registers this controller with the physical
// device's force feedback engine and returns the shared device.
// Registration is idempotent.
func (c *Controller) ForceFeedbackRegister() (*forcefeedback.Device, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ffDevice != nil {
		return c.ffDevice, nil
	}
	if c.ffRegistry == nil {
		return nil, fmt.Errorf("%w: no force feedback registry", padapi.ErrUnsupported)
	}
	if !c.mapper.ActuatorMap().HasActuators() {
		return nil, fmt.Errorf("%w: layout has no actuators", padapi.ErrUnsupported)
	}
	c.ffDevice = c.ffRegistry.RegisterController(c)
	return c.ffDevice, nil
}

// ForceFeedbackUnregister reverses a registration. Safe to call when not
// registered.
func (c *Controller) ForceFeedbackUnregister() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ffDevice == nil {
		return
	}
	c.ffRegistry.UnregisterController(c)
	c.ffDevice = nil
}

// ForceFeedbackDevice returns the shared device if registered.
func (c *Controller) ForceFeedbackDevice() (*forcefeedback.Device, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ffDevice, c.ffDevice != nil
}

// ForceFeedbackIsRegistered reports whether the controller is registered.
func (c *Controller) ForceFeedbackIsRegistered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ffDevice != nil
}

// Close releases the controller. Unregistering from the force feedback
// device here is mandatory: the physical device iterates its registered
// controllers when distributing effect output.
func (c *Controller) Close() {
	c.ForceFeedbackUnregister()
}
