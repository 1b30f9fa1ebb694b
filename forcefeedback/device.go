package forcefeedback

import (
	"fmt"
	"math"
	"sync"

	"github.com/padshift/padshift/padapi"
)

// InfiniteIterations starts an effect that repeats until stopped.
const InfiniteIterations = math.MaxUint32

// MaxEffects bounds how many effects a device holds at once.
const MaxEffects = 64

type playState struct {
	playing    bool
	startTime  EffectTimeMs
	iterations uint32
}

type effectSlot struct {
	effect Effect
	state  playState
}

// Device is the force feedback engine shared by every virtual controller
// registered against one physical controller. It holds active effects
// keyed by identifier, tracks playback state, and produces per-axis
// magnitude sums on demand. All methods are safe for concurrent use; the
// interior lock is independent of any virtual controller lock.
type Device struct {
	mu       sync.Mutex
	clock    padapi.Clock
	effects  map[EffectIdentifier]*effectSlot
	gain     EffectValue
	paused   bool
	pausedAt EffectTimeMs
}

func NewDevice(clock padapi.Clock) *Device {
	return &Device{
		clock:   clock,
		effects: make(map[EffectIdentifier]*effectSlot),
		gain:    1,
	}
}

// AddEffect stores a clone of the effect in stopped state. The effect is
// immutable once added; to change parameters, remove and re-add.
func (d *Device) AddEffect(effect Effect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.effects[effect.ID()]; exists {
		return fmt.Errorf("%w: effect %d already added", padapi.ErrInvalidParameter, effect.ID())
	}
	if len(d.effects) >= MaxEffects {
		return fmt.Errorf("%w: effect capacity reached", padapi.ErrUnsupported)
	}
	d.effects[effect.ID()] = &effectSlot{effect: effect.Clone()}
	return nil
}

// HasEffect reports whether the identifier is present on the device.
func (d *Device) HasEffect(id EffectIdentifier) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.effects[id]
	return ok
}

// NumEffects returns how many effects the device currently holds.
func (d *Device) NumEffects() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.effects)
}

// RemoveEffect discards an effect, stopping it implicitly.
func (d *Device) RemoveEffect(id EffectIdentifier) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.effects[id]; !ok {
		return fmt.Errorf("%w: effect %d", padapi.ErrInvalidParameter, id)
	}
	delete(d.effects, id)
	return nil
}

// StartEffect begins playback for the given number of iterations, or
// until stopped when iterations is InfiniteIterations. Restarting a
// playing effect rewinds it.
func (d *Device) StartEffect(id EffectIdentifier, iterations uint32) error {
	if iterations == 0 {
		return fmt.Errorf("%w: zero iterations", padapi.ErrInvalidParameter)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.effects[id]
	if !ok {
		return fmt.Errorf("%w: effect %d", padapi.ErrInvalidParameter, id)
	}
	slot.state = playState{
		playing:    true,
		startTime:  d.clock.NowMs(),
		iterations: iterations,
	}
	return nil
}

// StopEffect halts playback. Stopping a stopped effect is a no-op.
func (d *Device) StopEffect(id EffectIdentifier) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.effects[id]
	if !ok {
		return fmt.Errorf("%w: effect %d", padapi.ErrInvalidParameter, id)
	}
	slot.state = playState{}
	return nil
}

// IsEffectPlaying reports whether the effect is currently running.
func (d *Device) IsEffectPlaying(id EffectIdentifier) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	slot, ok := d.effects[id]
	return ok && slot.state.playing
}

// StopAllEffects halts playback of every effect but keeps them loaded.
func (d *Device) StopAllEffects() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, slot := range d.effects {
		slot.state = playState{}
	}
}

// Clear removes every effect. Used when the physical device disconnects.
func (d *Device) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.effects = make(map[EffectIdentifier]*effectSlot)
}

// SetGain sets the device-wide gain fraction applied after effects are
// summed.
func (d *Device) SetGain(fraction EffectValue) error {
	if fraction < 0 || fraction > 1 {
		return fmt.Errorf("%w: gain fraction %v", padapi.ErrInvalidParameter, fraction)
	}
	d.mu.Lock()
	d.gain = fraction
	d.mu.Unlock()
	return nil
}

// Gain returns the device-wide gain fraction.
func (d *Device) Gain() EffectValue {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gain
}

// Pause freezes playback time for all effects. While paused the device
// outputs zero magnitudes.
func (d *Device) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		d.paused = true
		d.pausedAt = d.clock.NowMs()
	}
}

// Resume continues playback from where Pause froze it by shifting every
// running effect's start time forward by the paused interval.
func (d *Device) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		return
	}
	delta := d.clock.NowMs() - d.pausedAt
	for _, slot := range d.effects {
		if slot.state.playing {
			slot.state.startTime += delta
		}
	}
	d.paused = false
}

// IsPaused reports whether the device is paused.
func (d *Device) IsPaused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// HasPlayingEffects reports whether any effect is currently running.
func (d *Device) HasPlayingEffects() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, slot := range d.effects {
		if slot.state.playing {
			return true
		}
	}
	return false
}

// ComputeAxisMagnitudes sums the per-axis contributions of all running
// effects at the given time, clamps each axis, and applies the device
// gain. Effects whose iterations have elapsed are stopped as a side
// effect.
func (d *Device) ComputeAxisMagnitudes(now EffectTimeMs) OrderedMagnitudeComponents {
	d.mu.Lock()
	defer d.mu.Unlock()

	var components OrderedMagnitudeComponents
	if d.paused {
		return components
	}

	for _, slot := range d.effects {
		magnitude, ok := d.effectMagnitudeLocked(slot, now)
		if !ok {
			continue
		}
		common := slot.effect.Common()
		projected := common.Direction.Project(magnitude)
		for i, axis := range common.AssociatedAxes {
			components[axis] += projected[i]
		}
	}

	for i := range components {
		components[i] = clampForce(components[i]) * d.gain
	}
	return components
}

// effectMagnitudeLocked resolves an effect's local playback time and
// computes its scalar magnitude. Returns false for effects that are
// stopped, still in their start delay, or expired.
func (d *Device) effectMagnitudeLocked(slot *effectSlot, now EffectTimeMs) (EffectValue, bool) {
	if !slot.state.playing || now < slot.state.startTime {
		return 0, false
	}
	common := slot.effect.Common()

	elapsed := now - slot.state.startTime
	if elapsed < common.StartDelay {
		return 0, false
	}
	t := elapsed - common.StartDelay

	if common.Duration != nil {
		duration := uint64(*common.Duration)
		if slot.state.iterations != InfiniteIterations {
			total := duration * uint64(slot.state.iterations)
			if uint64(t) >= total {
				slot.state = playState{}
				return 0, false
			}
		}
		t = EffectTimeMs(uint64(t) % duration)
	}

	return slot.effect.ComputeMagnitude(t), true
}
