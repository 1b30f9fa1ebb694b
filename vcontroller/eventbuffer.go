// Package vcontroller implements the virtual controller: post-property
// state, per-axis property transforms, the buffered state-change event
// stream, notify signaling, and force feedback registration.
package vcontroller

import (
	"go.uber.org/atomic"

	"github.com/padshift/padshift/padapi"
)

// EventData identifies a changed element and carries its updated value.
// Exactly one of the value fields is meaningful, selected by Element.Type.
type EventData struct {
	Element padapi.ElementIdentifier

	AxisValue     int32
	ButtonPressed bool
	PovDirection  padapi.PovDirection
}

// Equal compares event data by element and the value field the element
// type selects.
func (d EventData) Equal(other EventData) bool {
	if d.Element != other.Element {
		return false
	}
	switch d.Element.Type {
	case padapi.ElementTypeAxis:
		return d.AxisValue == other.AxisValue
	case padapi.ElementTypeButton:
		return d.ButtonPressed == other.ButtonPressed
	case padapi.ElementTypePov:
		return d.PovDirection == other.PovDirection
	}
	return true
}

// Event is one buffered state change with its metadata.
type Event struct {
	Data EventData

	// Timestamp is the monotonic millisecond time of the state refresh
	// that produced the event.
	Timestamp uint32

	// Sequence is drawn from a process-wide monotonic counter: strictly
	// increasing within one controller, weakly ordered across controllers.
	Sequence uint32
}

// EventBufferCapacityMax bounds the declared capacity so that the total
// buffer footprint stays within 1 MiB.
const EventBufferCapacityMax = (1024 * 1024) / 16

// eventSequence is the process-wide sequence counter shared by all event
// buffers that are not given their own.
var eventSequence = atomic.NewUint32(0)

// EventBuffer is a bounded FIFO of state-change events. Following the
// documented semantics of the input API being emulated, one slot is
// always kept free: a buffer with capacity N stores at most N-1 events.
// Capacity 0 disables buffering entirely. Methods are not safe for
// concurrent use; the virtual controller serializes access.
type EventBuffer struct {
	events     []Event
	head       int
	count      int
	overflowed bool
	sequence   *atomic.Uint32
}

// NewEventBuffer returns a disabled event buffer (capacity 0).
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{sequence: eventSequence}
}

// Capacity returns the declared capacity.
func (b *EventBuffer) Capacity() uint32 {
	return uint32(len(b.events))
}

// Count returns the number of stored events.
func (b *EventBuffer) Count() uint32 {
	return uint32(b.count)
}

// IsEnabled reports whether the buffer stores events at all.
func (b *EventBuffer) IsEnabled() bool {
	return len(b.events) != 0
}

// IsOverflowed reports whether events were dropped since the last pop.
func (b *EventBuffer) IsOverflowed() bool {
	return b.overflowed
}

// maxStored is the usable slot count: one less than capacity.
func (b *EventBuffer) maxStored() int {
	if len(b.events) == 0 {
		return 0
	}
	return len(b.events) - 1
}

// Append stores one event, stamping it with the next sequence number.
// When the buffer is full the oldest event is dropped and the overflow
// flag raised. A disabled buffer drops the event without overflow.
func (b *EventBuffer) Append(data EventData, timestamp uint32) {
	if !b.IsEnabled() {
		return
	}
	if b.count == b.maxStored() {
		b.dropOldest(1)
		b.overflowed = true
	}
	tail := (b.head + b.count) % len(b.events)
	b.events[tail] = Event{
		Data:      data,
		Timestamp: timestamp,
		Sequence:  b.sequence.Add(1),
	}
	b.count++
}

// Event returns the stored event at the given index, 0 being the oldest.
func (b *EventBuffer) Event(index uint32) (Event, bool) {
	if int(index) >= b.count {
		return Event{}, false
	}
	return b.events[(b.head+int(index))%len(b.events)], true
}

func (b *EventBuffer) dropOldest(n int) {
	if n > b.count {
		n = b.count
	}
	b.head = (b.head + n) % len(b.events)
	b.count -= n
}

// PopOldest removes up to n oldest events and returns how many were
// removed. Any successful pop clears the overflow condition.
func (b *EventBuffer) PopOldest(n uint32) uint32 {
	if b.count == 0 || n == 0 {
		return 0
	}
	popped := int(n)
	if popped > b.count {
		popped = b.count
	}
	b.dropOldest(popped)
	b.overflowed = false
	return uint32(popped)
}

// SetCapacity resizes the buffer. Values above EventBufferCapacityMax are
// clamped; 0 disables buffering and discards stored events. Shrinking
// below the stored count drops the oldest excess events and raises the
// overflow flag.
func (b *EventBuffer) SetCapacity(capacity uint32) {
	if capacity > EventBufferCapacityMax {
		capacity = EventBufferCapacityMax
	}

	if capacity == 0 {
		b.events = nil
		b.head = 0
		b.count = 0
		b.overflowed = false
		return
	}

	keep := int(capacity) - 1
	if b.count > keep {
		b.dropOldest(b.count - keep)
		b.overflowed = true
	}

	events := make([]Event, capacity)
	for i := 0; i < b.count; i++ {
		events[i] = b.events[(b.head+i)%len(b.events)]
	}
	b.events = events
	b.head = 0
}
