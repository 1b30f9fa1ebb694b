package forcefeedback

import (
	"fmt"

	"go.uber.org/atomic"

	"github.com/padshift/padshift/padapi"
)

// EffectIdentifier is the globally unique identity of an effect, allocated
// monotonically at construction.
type EffectIdentifier uint64

// IdentifierAllocator hands out monotonically increasing effect
// identifiers. A single process-wide allocator keeps identifiers unique
// across factories that share it.
type IdentifierAllocator struct {
	next atomic.Uint64
}

func NewIdentifierAllocator() *IdentifierAllocator {
	return &IdentifierAllocator{}
}

func (a *IdentifierAllocator) Next() EffectIdentifier {
	return EffectIdentifier(a.next.Add(1))
}

// Envelope shapes an effect's sustain level with attack and fade ramps.
// Levels are magnitudes in [0, ForceMagnitudeMax].
type Envelope struct {
	AttackTime  EffectTimeMs
	AttackLevel EffectValue
	FadeTime    EffectTimeMs
	FadeLevel   EffectValue
}

// CommonParameters are shared by all effect types. A nil Duration means
// the effect plays until stopped. AssociatedAxes maps direction components
// to virtual axes; nil selects the first N axes in ordered layout.
type CommonParameters struct {
	Duration     *EffectTimeMs
	StartDelay   EffectTimeMs
	SamplePeriod EffectTimeMs
	GainFraction EffectValue
	Direction    DirectionVector
	Envelope     *Envelope
	AssociatedAxes []padapi.Axis
}

// Duration returns an EffectTimeMs pointer, for CommonParameters literals.
func Duration(ms EffectTimeMs) *EffectTimeMs {
	return &ms
}

// Effect is an immutable force feedback effect description. Time passed to
// ComputeMagnitude is effect-local: zero at the end of the start delay,
// already wrapped by the device for repeated iterations.
type Effect interface {
	ID() EffectIdentifier
	Common() CommonParameters
	TypeName() string
	ComputeMagnitude(t EffectTimeMs) EffectValue
	Clone() Effect
}

func validateCommon(common *CommonParameters) error {
	if common.GainFraction < 0 || common.GainFraction > 1 {
		return fmt.Errorf("%w: gain fraction %v", padapi.ErrInvalidParameter, common.GainFraction)
	}
	if common.Duration != nil && *common.Duration < 1 {
		return fmt.Errorf("%w: duration %d", padapi.ErrInvalidParameter, *common.Duration)
	}
	if !common.Direction.HasDirection() {
		return fmt.Errorf("%w: effect direction not set", padapi.ErrInvalidCoordinates)
	}
	if env := common.Envelope; env != nil {
		if env.AttackLevel < 0 || env.AttackLevel > ForceMagnitudeMax {
			return fmt.Errorf("%w: attack level %v", padapi.ErrInvalidParameter, env.AttackLevel)
		}
		if env.FadeLevel < 0 || env.FadeLevel > ForceMagnitudeMax {
			return fmt.Errorf("%w: fade level %v", padapi.ErrInvalidParameter, env.FadeLevel)
		}
		if env.FadeTime > 0 && common.Duration == nil {
			return fmt.Errorf("%w: fade requires a finite duration", padapi.ErrInvalidParameter)
		}
		if common.Duration != nil && env.FadeTime > *common.Duration {
			return fmt.Errorf("%w: fade time %d exceeds duration", padapi.ErrInvalidParameter, env.FadeTime)
		}
	}

	numAxes := common.Direction.NumAxes()
	if common.AssociatedAxes == nil {
		axes := make([]padapi.Axis, numAxes)
		for i := range axes {
			axes[i] = padapi.Axis(i)
		}
		common.AssociatedAxes = axes
		return nil
	}
	if len(common.AssociatedAxes) != numAxes {
		return fmt.Errorf("%w: %d associated axes for %d direction axes",
			padapi.ErrInvalidParameter, len(common.AssociatedAxes), numAxes)
	}
	seen := make(map[padapi.Axis]struct{}, numAxes)
	for _, axis := range common.AssociatedAxes {
		if !axis.IsValid() {
			return fmt.Errorf("%w: associated axis %d", padapi.ErrInvalidParameter, int(axis))
		}
		if _, dup := seen[axis]; dup {
			return fmt.Errorf("%w: duplicate associated axis %s", padapi.ErrInvalidParameter, axis)
		}
		seen[axis] = struct{}{}
	}
	return nil
}

// effectBase carries the identity and common parameters shared by all
// concrete effect types.
type effectBase struct {
	id     EffectIdentifier
	common CommonParameters
}

func (e *effectBase) ID() EffectIdentifier {
	return e.id
}

func (e *effectBase) Common() CommonParameters {
	common := e.common
	common.AssociatedAxes = append([]padapi.Axis(nil), e.common.AssociatedAxes...)
	if e.common.Duration != nil {
		d := *e.common.Duration
		common.Duration = &d
	}
	if e.common.Envelope != nil {
		env := *e.common.Envelope
		common.Envelope = &env
	}
	return common
}

// applyEnvelope transforms a sustain level at the given effect-local time.
// With no envelope the sustain level passes through unchanged. The fade
// segment only exists for effects with a finite duration.
func (e *effectBase) applyEnvelope(rawTime EffectTimeMs, sustainLevel EffectValue) EffectValue {
	env := e.common.Envelope
	if env == nil {
		return sustainLevel
	}

	if rawTime < env.AttackTime {
		slope := (sustainLevel - env.AttackLevel) / EffectValue(env.AttackTime)
		return env.AttackLevel + slope*EffectValue(rawTime)
	}

	if e.common.Duration != nil && env.FadeTime > 0 {
		fadeStart := *e.common.Duration - env.FadeTime
		if rawTime > fadeStart {
			slope := (env.FadeLevel - sustainLevel) / EffectValue(env.FadeTime)
			return sustainLevel + slope*EffectValue(rawTime-fadeStart)
		}
	}

	return sustainLevel
}

// magnitudeAt quantizes time to the sample period, evaluates the
// type-specific raw magnitude and applies the effect gain.
func (e *effectBase) magnitudeAt(t EffectTimeMs, rawMagnitude func(EffectTimeMs) EffectValue) EffectValue {
	if e.common.Duration != nil && t >= *e.common.Duration {
		return ForceMagnitudeZero
	}
	rawTime := t
	if e.common.SamplePeriod > 0 {
		rawTime = t - t%e.common.SamplePeriod
	}
	return clampForce(rawMagnitude(rawTime) * e.common.GainFraction)
}

// Factory constructs validated effects, allocating identifiers from its
// allocator. The zero factory is not usable; use NewFactory.
type Factory struct {
	ids *IdentifierAllocator
}

type FactoryOption func(*Factory)

// WithIdentifierAllocator shares an identifier allocator between
// factories.
func WithIdentifierAllocator(ids *IdentifierAllocator) FactoryOption {
	return func(f *Factory) {
		f.ids = ids
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	if f.ids == nil {
		f.ids = defaultIdentifiers
	}
	return f
}

// defaultIdentifiers keeps identifiers unique across factories that do not
// provide their own allocator.
var defaultIdentifiers = NewIdentifierAllocator()

func (f *Factory) newBase(common CommonParameters) (effectBase, error) {
	if err := validateCommon(&common); err != nil {
		return effectBase{}, err
	}
	return effectBase{id: f.ids.Next(), common: common}, nil
}
