package vcontroller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/mappers"
	"github.com/padshift/padshift/padapi"
)

func testMapper(t *testing.T) *mappers.Mapper {
	t.Helper()
	mapper, err := mappers.NewMapper("test", mappers.ElementMap{
		StickLeftX: mappers.NewAxisMapper(padapi.AxisX, padapi.AxisDirectionBoth),
		StickLeftY: mappers.NewAxisMapper(padapi.AxisY, padapi.AxisDirectionBoth),
		DpadUp:     mappers.NewPovMapper(padapi.PovUp),
		DpadLeft:   mappers.NewPovMapper(padapi.PovLeft),
		ButtonA:    mappers.NewButtonMapper(padapi.Button(0)),
	}, forcefeedback.DefaultActuatorMap())
	require.NoError(t, err)
	return mapper
}

func newTestController(t *testing.T) (*Controller, *padapi.ManualClock) {
	t.Helper()
	clock := &padapi.ManualClock{}
	c := NewController(0, testMapper(t), WithClock(clock))
	c.SetEventBufferCapacity(32)
	return c, clock
}

func connect(c *Controller) {
	c.Refresh(padapi.PhysicalState{Status: padapi.PhysicalStatusOk})
}

func TestControllerInitialState(t *testing.T) {
	c, _ := newTestController(t)
	assert.Equal(t, padapi.PhysicalStatusNotConnected, c.Status())

	state := c.State()
	// Default range maps neutral to its midpoint.
	assert.Equal(t, int32(32767), state.Axis[padapi.AxisX])
	assert.False(t, state.Button[0])
}

func TestControllerFirstConnectIsSilent(t *testing.T) {
	c, _ := newTestController(t)

	c.Refresh(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonA,
	})

	assert.Equal(t, padapi.PhysicalStatusOk, c.Status())
	assert.True(t, c.State().Button[0])
	assert.Equal(t, uint32(0), c.EventBufferCount(), "first contact produces no events")
}

func TestControllerButtonEventAndNotify(t *testing.T) {
	c, clock := newTestController(t)
	notify := padapi.NewChanNotify()
	c.SetStateChangeNotify(notify)

	connect(c)
	clock.Advance(5)
	c.Refresh(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonA,
	})

	require.Equal(t, uint32(1), c.EventBufferCount())
	event, ok := c.EventBufferEvent(0)
	require.True(t, ok)
	assert.Equal(t, padapi.ButtonElement(padapi.Button(0)), event.Data.Element)
	assert.True(t, event.Data.ButtonPressed)
	assert.Equal(t, uint32(5), event.Timestamp)

	select {
	case <-notify.Wait():
	default:
		t.Fatal("expected a state change signal")
	}

	// Release produces exactly one more event and one more signal.
	clock.Advance(5)
	c.Refresh(padapi.PhysicalState{Status: padapi.PhysicalStatusOk})
	assert.Equal(t, uint32(2), c.EventBufferCount())
	select {
	case <-notify.Wait():
	default:
		t.Fatal("expected a second signal")
	}
	select {
	case <-notify.Wait():
		t.Fatal("signals must not accumulate beyond the pending one")
	default:
	}
}

func TestControllerNoEventsWithoutChange(t *testing.T) {
	c, _ := newTestController(t)
	connect(c)

	for i := 0; i < 3; i++ {
		c.Refresh(padapi.PhysicalState{Status: padapi.PhysicalStatusOk})
	}
	assert.Equal(t, uint32(0), c.EventBufferCount())
}

func TestControllerAxisEventCarriesTransformedValue(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.SetAxisRange(padapi.AxisX, -100, 100))
	connect(c)

	c.Refresh(padapi.PhysicalState{
		Status:     padapi.PhysicalStatusOk,
		StickLeftX: padapi.AnalogValueMax,
	})

	event, ok := c.EventBufferEvent(0)
	require.True(t, ok)
	assert.Equal(t, padapi.AxisElement(padapi.AxisX), event.Data.Element)
	assert.Equal(t, int32(100), event.Data.AxisValue)
	assert.Equal(t, int32(100), c.State().Axis[padapi.AxisX])
}

func TestControllerPovEvent(t *testing.T) {
	c, _ := newTestController(t)
	connect(c)

	c.Refresh(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonDpadUp | padapi.PhysicalButtonDpadLeft,
	})

	event, ok := c.EventBufferEvent(0)
	require.True(t, ok)
	assert.Equal(t, padapi.PovElement(), event.Data.Element)
	assert.Equal(t, padapi.PovNorthWest, event.Data.PovDirection)
}

func TestControllerEventFilter(t *testing.T) {
	c, _ := newTestController(t)
	connect(c)
	c.EventFilterAddElement(padapi.ButtonElement(padapi.Button(0)))

	c.Refresh(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonA,
	})

	assert.Equal(t, uint32(0), c.EventBufferCount(), "filtered elements emit no events")
	assert.True(t, c.State().Button[0], "state still updates")

	c.EventFilterRemoveElement(padapi.ButtonElement(padapi.Button(0)))
	c.Refresh(padapi.PhysicalState{Status: padapi.PhysicalStatusOk})
	assert.Equal(t, uint32(1), c.EventBufferCount())
}

func TestControllerErrorReportsNeutral(t *testing.T) {
	c, _ := newTestController(t)
	connect(c)

	c.Refresh(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonA,
	})
	require.True(t, c.State().Button[0])
	c.PopOldestEvents(100)

	c.Refresh(padapi.PhysicalState{Status: padapi.PhysicalStatusError})
	assert.Equal(t, padapi.PhysicalStatusError, c.Status())
	assert.False(t, c.State().Button[0], "error coerces to neutral")
	assert.Equal(t, uint32(1), c.EventBufferCount(), "release event for the held button")

	// Recovery re-diffs against neutral.
	c.PopOldestEvents(100)
	c.Refresh(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonA,
	})
	assert.Equal(t, padapi.PhysicalStatusOk, c.Status())
	assert.True(t, c.State().Button[0])
	assert.Equal(t, uint32(1), c.EventBufferCount())
}

func TestControllerPropertySettersValidate(t *testing.T) {
	c, _ := newTestController(t)

	assert.NoError(t, c.SetAxisDeadzone(padapi.AxisX, 5000))
	assert.Error(t, c.SetAxisDeadzone(padapi.AxisX, AxisDeadzoneMax+1))
	assert.Error(t, c.SetAxisDeadzone(padapi.Axis(99), 0))
	assert.Error(t, c.SetAxisSaturation(padapi.AxisX, AxisSaturationMax+1))
	assert.Error(t, c.SetAxisRange(padapi.AxisX, 100, 100))
	assert.Error(t, c.SetAxisRange(padapi.AxisX, 100, -100))
	assert.NoError(t, c.SetAxisRange(padapi.AxisX, -100, 100))

	props, err := c.AxisProperties(padapi.AxisX)
	require.NoError(t, err)
	assert.Equal(t, uint32(5000), props.Deadzone, "failed setters must not mutate")
	assert.Equal(t, int32(-100), props.RangeMin)
}

func TestControllerDisableTransformations(t *testing.T) {
	c, _ := newTestController(t)
	require.NoError(t, c.SetAxisTransformations(padapi.AxisX, false))
	connect(c)

	c.Refresh(padapi.PhysicalState{
		Status:     padapi.PhysicalStatusOk,
		StickLeftX: 1234,
	})
	assert.Equal(t, int32(1234), c.State().Axis[padapi.AxisX])
}

type fakeRegistry struct {
	device       *forcefeedback.Device
	registered   int
	unregistered int
}

func (r *fakeRegistry) RegisterController(*Controller) *forcefeedback.Device {
	r.registered++
	return r.device
}

func (r *fakeRegistry) UnregisterController(*Controller) {
	r.unregistered++
}

func TestControllerForceFeedbackRegistration(t *testing.T) {
	registry := &fakeRegistry{device: forcefeedback.NewDevice(&padapi.ManualClock{})}
	c := NewController(0, testMapper(t), WithForceFeedbackRegistry(registry))

	_, ok := c.ForceFeedbackDevice()
	assert.False(t, ok)

	device, err := c.ForceFeedbackRegister()
	require.NoError(t, err)
	assert.Equal(t, registry.device, device)

	// Idempotent.
	again, err := c.ForceFeedbackRegister()
	require.NoError(t, err)
	assert.Equal(t, device, again)
	assert.Equal(t, 1, registry.registered)

	c.ForceFeedbackUnregister()
	c.ForceFeedbackUnregister()
	assert.Equal(t, 1, registry.unregistered)
	assert.False(t, c.ForceFeedbackIsRegistered())
}

func TestControllerCloseUnregisters(t *testing.T) {
	registry := &fakeRegistry{device: forcefeedback.NewDevice(&padapi.ManualClock{})}
	c := NewController(0, testMapper(t), WithForceFeedbackRegistry(registry))

	_, err := c.ForceFeedbackRegister()
	require.NoError(t, err)

	c.Close()
	assert.Equal(t, 1, registry.unregistered)
}

func TestControllerForceFeedbackWithoutActuators(t *testing.T) {
	mapper, err := mappers.NewMapper("bare", mappers.ElementMap{}, forcefeedback.ActuatorMap{})
	require.NoError(t, err)

	registry := &fakeRegistry{device: forcefeedback.NewDevice(&padapi.ManualClock{})}
	c := NewController(0, mapper, WithForceFeedbackRegistry(registry))

	_, err = c.ForceFeedbackRegister()
	require.Error(t, err)
	assert.True(t, errors.Is(err, padapi.ErrUnsupported))
}

func TestControllerDisconnectClearsEffects(t *testing.T) {
	clock := &padapi.ManualClock{}
	registry := &fakeRegistry{device: forcefeedback.NewDevice(clock)}
	c := NewController(0, testMapper(t), WithClock(clock), WithForceFeedbackRegistry(registry))

	device, err := c.ForceFeedbackRegister()
	require.NoError(t, err)

	var direction forcefeedback.DirectionVector
	require.NoError(t, direction.SetDirectionUsingCartesian([]forcefeedback.EffectValue{1}))
	effect, err := forcefeedback.NewFactory().NewConstantForceEffect(forcefeedback.CommonParameters{
		GainFraction: 1,
		Direction:    direction,
	}, forcefeedback.ConstantForceParameters{Magnitude: 1000})
	require.NoError(t, err)
	require.NoError(t, device.AddEffect(effect))

	connect(c)
	require.Equal(t, 1, device.NumEffects())

	c.Refresh(padapi.PhysicalState{Status: padapi.PhysicalStatusNotConnected})
	assert.Equal(t, 0, device.NumEffects(), "disconnect clears active effects")
}
