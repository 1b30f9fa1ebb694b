package mappers

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padshift/padshift/forcefeedback"
	"github.com/padshift/padshift/padapi"
)

func testMapper(t *testing.T) *Mapper {
	t.Helper()
	mapper, err := NewMapper("test", ElementMap{
		StickLeftX:  NewAxisMapper(padapi.AxisX, padapi.AxisDirectionBoth),
		StickLeftY:  NewAxisMapper(padapi.AxisY, padapi.AxisDirectionBoth),
		StickRightX: NewAxisMapper(padapi.AxisRotX, padapi.AxisDirectionBoth),
		StickRightY: NewAxisMapper(padapi.AxisRotY, padapi.AxisDirectionBoth),
		TriggerLT:   NewAxisMapper(padapi.AxisZ, padapi.AxisDirectionBoth),
		DpadUp:      NewPovMapper(padapi.PovUp),
		DpadDown:    NewPovMapper(padapi.PovDown),
		DpadLeft:    NewPovMapper(padapi.PovLeft),
		DpadRight:   NewPovMapper(padapi.PovRight),
		ButtonA:     NewButtonMapper(padapi.Button(0)),
		ButtonB:     NewButtonMapper(padapi.Button(1)),
		ButtonStart: NewButtonMapper(padapi.Button(7)),
	}, forcefeedback.DefaultActuatorMap())
	require.NoError(t, err)
	return mapper
}

func TestMapStateIdentity(t *testing.T) {
	mapper := testMapper(t)

	state := mapper.MapState(padapi.PhysicalState{
		Status:     padapi.PhysicalStatusOk,
		StickLeftX: 1111,
		StickLeftY: 2222,
	}, 0)

	assert.Equal(t, int32(1111), state.Axis[padapi.AxisX])
	assert.Equal(t, int32(2222), state.Axis[padapi.AxisY])
	assert.Equal(t, int32(0), state.Axis[padapi.AxisZ])
	assert.Equal(t, padapi.PovCenter, state.Pov.Collapse())
	for i := 0; i < padapi.ButtonCountMax; i++ {
		assert.False(t, state.Button[i])
	}
}

func TestMapStatePovCollapse(t *testing.T) {
	mapper := testMapper(t)

	state := mapper.MapState(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonDpadUp | padapi.PhysicalButtonDpadLeft,
	}, 0)

	assert.Equal(t, padapi.PovNorthWest, state.Pov.Collapse())
}

func TestMapStateButtons(t *testing.T) {
	mapper := testMapper(t)

	state := mapper.MapState(padapi.PhysicalState{
		Status:  padapi.PhysicalStatusOk,
		Buttons: padapi.PhysicalButtonA | padapi.PhysicalButtonStart,
	}, 0)

	assert.True(t, state.Button[0])
	assert.False(t, state.Button[1])
	assert.True(t, state.Button[7])
}

func TestMapStateNotConnectedIsNeutral(t *testing.T) {
	mapper := testMapper(t)

	state := mapper.MapState(padapi.PhysicalState{
		Status:     padapi.PhysicalStatusNotConnected,
		StickLeftX: 30000,
		Buttons:    padapi.PhysicalButtonA,
	}, 0)

	assert.Equal(t, mapper.MapNeutral(0), state)
}

func TestMapNeutralMatchesNeutralPoll(t *testing.T) {
	mapper := testMapper(t)
	polled := mapper.MapState(padapi.PhysicalState{Status: padapi.PhysicalStatusOk}, 0)
	assert.Equal(t, mapper.MapNeutral(0), polled)
}

func TestCapabilitiesDerivation(t *testing.T) {
	mapper := testMapper(t)
	caps := mapper.Capabilities()

	// X, Y forced plus Z, RotX, RotY from the element map; the default
	// actuator map projects onto X and Y.
	require.Equal(t, 5, caps.NumAxes())
	assert.True(t, caps.HasAxis(padapi.AxisX))
	assert.True(t, caps.HasAxis(padapi.AxisY))
	assert.True(t, caps.HasAxis(padapi.AxisZ))
	assert.True(t, caps.HasAxis(padapi.AxisRotX))
	assert.True(t, caps.HasAxis(padapi.AxisRotY))
	assert.False(t, caps.HasAxis(padapi.AxisRotZ))

	assert.Equal(t, 8, caps.NumButtons)
	assert.True(t, caps.HasPov)

	assert.True(t, caps.ForceFeedbackIsSupported())
	assert.Equal(t, []padapi.Axis{padapi.AxisX, padapi.AxisY}, caps.ForceFeedbackAxes())

	// Axis list is sorted.
	for i := 1; i < len(caps.Axes); i++ {
		assert.Less(t, int(caps.Axes[i-1].Axis), int(caps.Axes[i].Axis))
	}
}

func TestCapabilitiesMinimums(t *testing.T) {
	mapper, err := NewMapper("", ElementMap{}, forcefeedback.ActuatorMap{})
	require.NoError(t, err)

	caps := mapper.Capabilities()
	assert.Equal(t, padapi.ButtonCountMin, caps.NumButtons)
	assert.False(t, caps.HasPov)
	assert.False(t, caps.ForceFeedbackIsSupported())
	assert.True(t, caps.HasAxis(padapi.AxisX), "X is always present")
	assert.True(t, caps.HasAxis(padapi.AxisY), "Y is always present")
}

func TestNewMapperRejectsBadActuators(t *testing.T) {
	actuators := forcefeedback.ActuatorMap{
		LeftMotor: forcefeedback.ActuatorElement{
			Present:    true,
			Mode:       forcefeedback.ActuatorModeMagnitudeProjection,
			AxisFirst:  padapi.AxisX,
			AxisSecond: padapi.AxisX,
		},
	}
	_, err := NewMapper("bad", ElementMap{}, actuators)
	require.Error(t, err)
	assert.True(t, errors.Is(err, padapi.ErrInvalidMapper))
	assert.True(t, errors.Is(err, padapi.ErrInvalidParameter))
}

func TestMapForceFeedbackSingleAxis(t *testing.T) {
	actuators := forcefeedback.ActuatorMap{
		LeftMotor: forcefeedback.ActuatorElement{
			Present:   true,
			Mode:      forcefeedback.ActuatorModeSingleAxis,
			Axis:      padapi.AxisX,
			Direction: padapi.AxisDirectionBoth,
		},
		RightMotor: forcefeedback.ActuatorElement{
			Present:   true,
			Mode:      forcefeedback.ActuatorModeSingleAxis,
			Axis:      padapi.AxisX,
			Direction: padapi.AxisDirectionPositive,
		},
	}
	mapper, err := NewMapper("ff", ElementMap{}, actuators)
	require.NoError(t, err)

	var components forcefeedback.OrderedMagnitudeComponents
	components[padapi.AxisX] = -5000

	out := mapper.MapForceFeedback(components, 1)
	assert.Equal(t, uint16(math.Round(0.5*65535)), out.LeftMotor, "both-direction takes the absolute value")
	assert.Equal(t, uint16(0), out.RightMotor, "positive-only filters a negative component")
	assert.Equal(t, uint16(0), out.LeftImpulseTrigger)

	out = mapper.MapForceFeedback(components, 0.5)
	assert.Equal(t, uint16(math.Round(0.25*65535)), out.LeftMotor)
}

func TestMapForceFeedbackMagnitudeProjection(t *testing.T) {
	mapper, err := NewMapper("ff", ElementMap{}, forcefeedback.DefaultActuatorMap())
	require.NoError(t, err)

	var components forcefeedback.OrderedMagnitudeComponents
	components[padapi.AxisX] = 3000
	components[padapi.AxisY] = 4000

	out := mapper.MapForceFeedback(components, 1)
	assert.Equal(t, uint16(math.Round(0.5*65535)), out.LeftMotor, "hypot(3000, 4000) = 5000")
	assert.Equal(t, out.LeftMotor, out.RightMotor)
}

func TestMapForceFeedbackSaturates(t *testing.T) {
	mapper, err := NewMapper("ff", ElementMap{}, forcefeedback.DefaultActuatorMap())
	require.NoError(t, err)

	var components forcefeedback.OrderedMagnitudeComponents
	components[padapi.AxisX] = forcefeedback.ForceMagnitudeMax
	components[padapi.AxisY] = forcefeedback.ForceMagnitudeMax

	out := mapper.MapForceFeedback(components, 1)
	assert.Equal(t, uint16(65535), out.LeftMotor, "hypot exceeds full scale and saturates")
}

func TestElementMapDualView(t *testing.T) {
	var elements ElementMap
	mapper := NewButtonMapper(padapi.Button(0))
	elements.SetByIndex(ElementButtonRS, mapper)
	assert.Equal(t, ElementMapper(mapper), elements.ByIndex(ElementButtonRS))
	assert.Equal(t, ElementMapper(mapper), elements.ButtonRS)

	for e := PhysicalElement(0); e < PhysicalElementCount; e++ {
		name := e.String()
		resolved, ok := PhysicalElementByName(name)
		require.True(t, ok, name)
		assert.Equal(t, e, resolved)
	}
}
