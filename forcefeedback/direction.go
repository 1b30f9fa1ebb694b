package forcefeedback

import (
	"fmt"
	"math"

	"github.com/padshift/padshift/padapi"
)

// CoordinateSystem identifies how a direction was originally specified.
type CoordinateSystem int

const (
	CoordinateSystemNone CoordinateSystem = iota
	CoordinateSystemCartesian
	CoordinateSystemPolar
	CoordinateSystemSpherical
)

func (c CoordinateSystem) String() string {
	switch c {
	case CoordinateSystemCartesian:
		return "cartesian"
	case CoordinateSystemPolar:
		return "polar"
	case CoordinateSystemSpherical:
		return "spherical"
	}
	return "none"
}

// DirectionVector is a pure direction in 1 to EffectAxesMax axes. The
// canonical internal representation is spherical: N-1 angles in
// centidegrees, converted once on ingress and never re-normalized. A
// one-axis direction has no angles, so its sign is tracked separately.
//
// Angle conventions follow the input API being emulated: the first angle
// is measured in the plane of the first two axes from the positive first
// axis, and each subsequent angle lifts toward the next axis. Polar input
// (two axes only) is measured from the negative second axis, offset 9000
// centidegrees from spherical.
type DirectionVector struct {
	numAxes        int
	angles         [EffectAxesMax - 1]EffectValue
	negativeSingle bool
	original       CoordinateSystem
}

func angleInRange(angle EffectValue) bool {
	return angle >= AngleMin && angle < AngleCycle
}

func wrapAngle(angle EffectValue) EffectValue {
	angle = math.Mod(angle, AngleCycle)
	if angle < 0 {
		angle += AngleCycle
	}
	return angle
}

func radians(centidegrees EffectValue) float64 {
	return centidegrees * math.Pi / 18000
}

// SetDirectionUsingCartesian sets the direction from 1..EffectAxesMax
// Cartesian coordinates. Magnitude is discarded; a zero vector is invalid.
func (v *DirectionVector) SetDirectionUsingCartesian(coords []EffectValue) error {
	if len(coords) < 1 || len(coords) > EffectAxesMax {
		return fmt.Errorf("%w: %d cartesian coordinates", padapi.ErrInvalidCoordinates, len(coords))
	}
	zero := true
	for _, c := range coords {
		if c != 0 {
			zero = false
			break
		}
	}
	if zero {
		return fmt.Errorf("%w: zero cartesian vector", padapi.ErrInvalidCoordinates)
	}

	v.numAxes = len(coords)
	v.negativeSingle = len(coords) == 1 && coords[0] < 0
	v.original = CoordinateSystemCartesian
	for i := range v.angles {
		v.angles[i] = 0
	}

	// Each angle k is the elevation of coordinate k+1 above the subspace
	// spanned by the coordinates before it. The first angle sees the
	// signed first coordinate; later angles see the prefix norm.
	prefix := coords[0]
	for k := 1; k < len(coords); k++ {
		angle := math.Atan2(coords[k], prefix) * 18000 / math.Pi
		v.angles[k-1] = wrapAngle(math.Round(angle))
		prefix = math.Hypot(prefix, coords[k])
	}
	return nil
}

// SetDirectionUsingPolar sets the direction from exactly one polar angle,
// valid only for two-axis directions.
func (v *DirectionVector) SetDirectionUsingPolar(coords []EffectValue) error {
	if len(coords) != 1 {
		return fmt.Errorf("%w: %d polar coordinates", padapi.ErrInvalidCoordinates, len(coords))
	}
	if !angleInRange(coords[0]) {
		return fmt.Errorf("%w: polar angle %v", padapi.ErrInvalidCoordinates, coords[0])
	}

	v.numAxes = 2
	v.negativeSingle = false
	v.original = CoordinateSystemPolar
	for i := range v.angles {
		v.angles[i] = 0
	}
	v.angles[0] = wrapAngle(coords[0] + 27000)
	return nil
}

// SetDirectionUsingSpherical sets the direction from N-1 spherical angles
// for an N-axis direction. Zero angles denote a one-axis direction along
// the positive first axis.
func (v *DirectionVector) SetDirectionUsingSpherical(coords []EffectValue) error {
	if len(coords) >= EffectAxesMax {
		return fmt.Errorf("%w: %d spherical coordinates", padapi.ErrInvalidCoordinates, len(coords))
	}
	for _, c := range coords {
		if !angleInRange(c) {
			return fmt.Errorf("%w: spherical angle %v", padapi.ErrInvalidCoordinates, c)
		}
	}

	v.numAxes = len(coords) + 1
	v.negativeSingle = false
	v.original = CoordinateSystemSpherical
	for i := range v.angles {
		v.angles[i] = 0
	}
	copy(v.angles[:], coords)
	return nil
}

// HasDirection reports whether a direction has been set.
func (v *DirectionVector) HasDirection() bool {
	return v.numAxes > 0
}

// NumAxes returns the number of axes of the direction, 0 if unset.
func (v *DirectionVector) NumAxes() int {
	return v.numAxes
}

// OriginalCoordinateSystem returns the ingress coordinate system.
func (v *DirectionVector) OriginalCoordinateSystem() CoordinateSystem {
	return v.original
}

// unitVector expands the spherical representation into Cartesian unit
// vector components, one per direction axis.
func (v *DirectionVector) unitVector() []EffectValue {
	coords := make([]EffectValue, v.numAxes)
	if v.numAxes == 0 {
		return coords
	}
	coords[0] = 1
	if v.negativeSingle {
		coords[0] = -1
	}
	for k := 1; k < v.numAxes; k++ {
		a := radians(v.angles[k-1])
		sin, cos := math.Sincos(a)
		for j := 0; j < k; j++ {
			coords[j] *= cos
		}
		coords[k] = sin
	}
	return coords
}

// GetCartesianCoordinates returns the direction as Cartesian unit vector
// components, one per axis.
func (v *DirectionVector) GetCartesianCoordinates() []EffectValue {
	return v.unitVector()
}

// GetSphericalCoordinates returns the N-1 spherical angles.
func (v *DirectionVector) GetSphericalCoordinates() []EffectValue {
	if v.numAxes < 2 {
		return nil
	}
	out := make([]EffectValue, v.numAxes-1)
	copy(out, v.angles[:v.numAxes-1])
	return out
}

// GetPolarCoordinates returns the single polar angle. Only two-axis
// directions have a polar representation.
func (v *DirectionVector) GetPolarCoordinates() (EffectValue, bool) {
	if v.numAxes != 2 {
		return 0, false
	}
	return wrapAngle(v.angles[0] + 9000), true
}

// Project distributes a scalar magnitude onto the direction's axes.
func (v *DirectionVector) Project(magnitude EffectValue) []EffectValue {
	coords := v.unitVector()
	for i := range coords {
		coords[i] *= magnitude
	}
	return coords
}
