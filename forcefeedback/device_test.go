package forcefeedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padshift/padshift/padapi"
)

func constantEffect(t *testing.T, factory *Factory, magnitude EffectValue, axes []padapi.Axis, cartesian []EffectValue) *ConstantForceEffect {
	t.Helper()
	var direction DirectionVector
	require.NoError(t, direction.SetDirectionUsingCartesian(cartesian))
	effect, err := factory.NewConstantForceEffect(CommonParameters{
		GainFraction:   1,
		Direction:      direction,
		AssociatedAxes: axes,
	}, ConstantForceParameters{Magnitude: magnitude})
	require.NoError(t, err)
	return effect
}

func TestDeviceEffectLifecycle(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	effect := constantEffect(t, factory, 1000, nil, []EffectValue{1})
	require.NoError(t, device.AddEffect(effect))
	assert.True(t, device.HasEffect(effect.ID()))
	assert.Equal(t, 1, device.NumEffects())

	err := device.AddEffect(effect)
	require.Error(t, err, "duplicate add is rejected")

	assert.False(t, device.IsEffectPlaying(effect.ID()))
	require.NoError(t, device.StartEffect(effect.ID(), InfiniteIterations))
	assert.True(t, device.IsEffectPlaying(effect.ID()))

	require.NoError(t, device.StopEffect(effect.ID()))
	assert.False(t, device.IsEffectPlaying(effect.ID()))

	require.NoError(t, device.RemoveEffect(effect.ID()))
	assert.False(t, device.HasEffect(effect.ID()))
	require.Error(t, device.RemoveEffect(effect.ID()))
}

func TestDeviceComputeAxisMagnitudesLinearity(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	onX := constantEffect(t, factory, 1000, []padapi.Axis{padapi.AxisX}, []EffectValue{1})
	alsoOnX := constantEffect(t, factory, 2000, []padapi.Axis{padapi.AxisX}, []EffectValue{1})
	onY := constantEffect(t, factory, -3000, []padapi.Axis{padapi.AxisY}, []EffectValue{1})

	for _, effect := range []*ConstantForceEffect{onX, alsoOnX, onY} {
		require.NoError(t, device.AddEffect(effect))
		require.NoError(t, device.StartEffect(effect.ID(), InfiniteIterations))
	}

	components := device.ComputeAxisMagnitudes(clock.NowMs())
	assert.InDelta(t, 3000, components[padapi.AxisX], 1e-9, "contributions sum per axis")
	assert.InDelta(t, -3000, components[padapi.AxisY], 1e-9)
	assert.Zero(t, components[padapi.AxisZ])
}

func TestDeviceStoppedEffectsContributeNothing(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	effect := constantEffect(t, factory, 1000, nil, []EffectValue{1})
	require.NoError(t, device.AddEffect(effect))

	components := device.ComputeAxisMagnitudes(clock.NowMs())
	assert.Zero(t, components[padapi.AxisX])
}

func TestDeviceStartDelay(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	var direction DirectionVector
	require.NoError(t, direction.SetDirectionUsingCartesian([]EffectValue{1}))
	effect, err := factory.NewConstantForceEffect(CommonParameters{
		GainFraction: 1,
		StartDelay:   100,
		Direction:    direction,
	}, ConstantForceParameters{Magnitude: 1000})
	require.NoError(t, err)

	require.NoError(t, device.AddEffect(effect))
	require.NoError(t, device.StartEffect(effect.ID(), 1))

	assert.Zero(t, device.ComputeAxisMagnitudes(50)[padapi.AxisX], "silent during the start delay")
	assert.InDelta(t, 1000, device.ComputeAxisMagnitudes(100)[padapi.AxisX], 1e-9)
}

func TestDeviceIterationsExpire(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	var direction DirectionVector
	require.NoError(t, direction.SetDirectionUsingCartesian([]EffectValue{1}))
	effect, err := factory.NewConstantForceEffect(CommonParameters{
		GainFraction: 1,
		Duration:     Duration(100),
		Direction:    direction,
	}, ConstantForceParameters{Magnitude: 1000})
	require.NoError(t, err)

	require.NoError(t, device.AddEffect(effect))
	require.NoError(t, device.StartEffect(effect.ID(), 3))

	assert.InDelta(t, 1000, device.ComputeAxisMagnitudes(0)[padapi.AxisX], 1e-9)
	assert.InDelta(t, 1000, device.ComputeAxisMagnitudes(250)[padapi.AxisX], 1e-9, "third iteration still running")
	assert.Zero(t, device.ComputeAxisMagnitudes(300)[padapi.AxisX], "all iterations elapsed")
	assert.False(t, device.IsEffectPlaying(effect.ID()), "expiry stops the effect")
}

func TestDeviceGain(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	effect := constantEffect(t, factory, 8000, nil, []EffectValue{1})
	require.NoError(t, device.AddEffect(effect))
	require.NoError(t, device.StartEffect(effect.ID(), InfiniteIterations))

	require.NoError(t, device.SetGain(0.5))
	assert.InDelta(t, 4000, device.ComputeAxisMagnitudes(0)[padapi.AxisX], 1e-9)

	require.Error(t, device.SetGain(1.5))
	assert.Equal(t, EffectValue(0.5), device.Gain())
}

func TestDevicePauseAndResume(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	var direction DirectionVector
	require.NoError(t, direction.SetDirectionUsingCartesian([]EffectValue{1}))
	effect, err := factory.NewRampForceEffect(CommonParameters{
		GainFraction: 1,
		Duration:     Duration(1000),
		Direction:    direction,
	}, RampForceParameters{Start: 0, End: 10000})
	require.NoError(t, err)

	require.NoError(t, device.AddEffect(effect))
	require.NoError(t, device.StartEffect(effect.ID(), 1))

	clock.Set(250)
	assert.InDelta(t, 2500, device.ComputeAxisMagnitudes(250)[padapi.AxisX], 1e-9)

	device.Pause()
	assert.True(t, device.IsPaused())
	assert.Zero(t, device.ComputeAxisMagnitudes(400)[padapi.AxisX], "paused device outputs zero")

	clock.Set(750)
	device.Resume()
	assert.False(t, device.IsPaused())

	// 500ms of pause shifted the start time; effect-local time resumes at
	// 250ms.
	assert.InDelta(t, 2500, device.ComputeAxisMagnitudes(750)[padapi.AxisX], 1e-9)
}

func TestDeviceClampsSummedComponents(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	for i := 0; i < 3; i++ {
		effect := constantEffect(t, factory, 9000, nil, []EffectValue{1})
		require.NoError(t, device.AddEffect(effect))
		require.NoError(t, device.StartEffect(effect.ID(), InfiniteIterations))
	}

	components := device.ComputeAxisMagnitudes(0)
	assert.Equal(t, ForceMagnitudeMax, components[padapi.AxisX], "per-axis sum clamps at full scale")
}

func TestDeviceClear(t *testing.T) {
	clock := &padapi.ManualClock{}
	device := NewDevice(clock)
	factory := NewFactory()

	effect := constantEffect(t, factory, 1000, nil, []EffectValue{1})
	require.NoError(t, device.AddEffect(effect))
	require.NoError(t, device.StartEffect(effect.ID(), InfiniteIterations))
	assert.True(t, device.HasPlayingEffects())

	device.Clear()
	assert.False(t, device.HasPlayingEffects())
	assert.Equal(t, 0, device.NumEffects())
}
