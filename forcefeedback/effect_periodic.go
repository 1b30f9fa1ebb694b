package forcefeedback

import (
	"fmt"
	"math"

	"github.com/padshift/padshift/padapi"
)

// Waveform selects the shape of a periodic effect.
type Waveform int

const (
	WaveformSine Waveform = iota
	WaveformSquare
	WaveformTriangle
	WaveformSawtoothUp
	WaveformSawtoothDown

	waveformCount
)

func (w Waveform) String() string {
	switch w {
	case WaveformSine:
		return "sine"
	case WaveformSquare:
		return "square"
	case WaveformTriangle:
		return "triangle"
	case WaveformSawtoothUp:
		return "sawtooth-up"
	case WaveformSawtoothDown:
		return "sawtooth-down"
	}
	return "unknown"
}

// PeriodicParameters configure a periodic effect.
type PeriodicParameters struct {
	Waveform  Waveform
	Amplitude EffectValue  // [0, ForceMagnitudeMax]
	Offset    EffectValue  // [ForceMagnitudeMin, ForceMagnitudeMax]
	Phase     EffectValue  // [0, AngleCycle) centidegrees
	Period    EffectTimeMs // >= 1 millisecond
}

// PeriodicEffect oscillates with one of the five waveforms. The envelope
// shapes the amplitude; the offset is applied afterwards.
type PeriodicEffect struct {
	effectBase
	params PeriodicParameters
}

// NewPeriodicEffect validates parameters and constructs the effect.
func (f *Factory) NewPeriodicEffect(common CommonParameters, params PeriodicParameters) (*PeriodicEffect, error) {
	if params.Waveform < 0 || params.Waveform >= waveformCount {
		return nil, fmt.Errorf("%w: waveform %d", padapi.ErrInvalidParameter, int(params.Waveform))
	}
	if params.Amplitude < 0 || params.Amplitude > ForceMagnitudeMax {
		return nil, fmt.Errorf("%w: periodic amplitude %v", padapi.ErrInvalidParameter, params.Amplitude)
	}
	if params.Offset < ForceMagnitudeMin || params.Offset > ForceMagnitudeMax {
		return nil, fmt.Errorf("%w: periodic offset %v", padapi.ErrInvalidParameter, params.Offset)
	}
	if params.Phase < AngleMin || params.Phase > AngleMax {
		return nil, fmt.Errorf("%w: periodic phase %v", padapi.ErrInvalidParameter, params.Phase)
	}
	if params.Period < 1 {
		return nil, fmt.Errorf("%w: periodic period %d", padapi.ErrInvalidParameter, params.Period)
	}
	base, err := f.newBase(common)
	if err != nil {
		return nil, err
	}
	return &PeriodicEffect{effectBase: base, params: params}, nil
}

func (e *PeriodicEffect) TypeName() string {
	return "periodic-" + e.params.Waveform.String()
}

// Parameters returns the type-specific parameters.
func (e *PeriodicEffect) Parameters() PeriodicParameters {
	return e.params
}

// computePhase converts effect-local time to the waveform phase in
// centidegrees, including the configured phase offset.
func (e *PeriodicEffect) computePhase(rawTime EffectTimeMs) EffectValue {
	periods := float64(rawTime) / float64(e.params.Period)
	phase := math.Round((periods-math.Floor(periods))*AngleCycle) + e.params.Phase
	if phase >= AngleCycle {
		phase -= AngleCycle
	}
	return phase
}

// waveformAmplitude evaluates the waveform in [-1, 1] at a phase in
// [0, AngleCycle).
func (e *PeriodicEffect) waveformAmplitude(phase EffectValue) EffectValue {
	switch e.params.Waveform {
	case WaveformSine:
		return math.Sin(radians(phase))
	case WaveformSquare:
		if phase < 18000 {
			return 1
		}
		return -1
	case WaveformTriangle:
		switch {
		case phase < 9000:
			return phase / 9000
		case phase < 27000:
			return 1 - (phase-9000)/9000
		default:
			return -1 + (phase-27000)/9000
		}
	case WaveformSawtoothUp:
		return -1 + 2*phase/AngleCycle
	case WaveformSawtoothDown:
		return 1 - 2*phase/AngleCycle
	}
	return 0
}

func (e *PeriodicEffect) computeRawMagnitude(rawTime EffectTimeMs) EffectValue {
	amplitude := e.applyEnvelope(rawTime, e.params.Amplitude)
	raw := amplitude*e.waveformAmplitude(e.computePhase(rawTime)) + e.params.Offset
	return clampForce(raw)
}

func (e *PeriodicEffect) ComputeMagnitude(t EffectTimeMs) EffectValue {
	return e.magnitudeAt(t, e.computeRawMagnitude)
}

func (e *PeriodicEffect) Clone() Effect {
	clone := *e
	return &clone
}
