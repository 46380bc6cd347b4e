package profile

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'traject.profile'
func tracer() tracing.Trace {
	return tracing.Select("traject.profile")
}

var (
	// ErrInvalidConstraints indicates zero/negative kinematic limits.
	ErrInvalidConstraints = errors.New("motion constraints must be positive")
	// ErrEmptyPath indicates generation was attempted without samples.
	ErrEmptyPath = errors.New("cannot generate trajectory for empty path")
	// ErrUnsupportedProfile indicates a profile kind with no generator yet.
	ErrUnsupportedProfile = errors.New("unsupported velocity profile kind")
)

// Kind selects the velocity profile model. The set is closed: clients
// plugging in alternate constraint models extend this enumeration rather
// than supplying open-ended dispatch.
type Kind int

const (
	// Trapezoidal is the curvature-limited trapezoidal profile.
	Trapezoidal Kind = iota
	// SCurve is reserved for a jerk-limited profile; no generator exists yet.
	SCurve
)

// Constraints are the kinematic limits a generated trajectory must
// respect. All values are positive scalars; they are validated at
// generation time and not mutated once generation begins.
type Constraints struct {
	MaxVelocity        float64 // m/s
	MaxAcceleration    float64 // m/s²
	MaxDeceleration    float64 // m/s² (positive)
	MaxAngularVelocity float64 // rad/s
	MaxAngularAccel    float64 // rad/s²
	MaxCentripetal     float64 // m/s², curvature-induced lateral acceleration
	Profile            Kind
}

// Validate rejects degenerate constraint sets before any computation.
// Degenerate limits are a configuration error, never silently clamped to
// defaults.
func (c Constraints) Validate() error {
	check := func(name string, v float64) error {
		if !(v > 0) {
			return fmt.Errorf("%w: %s is %g", ErrInvalidConstraints, name, v)
		}
		return nil
	}
	for _, lim := range []struct {
		name string
		v    float64
	}{
		{"max velocity", c.MaxVelocity},
		{"max acceleration", c.MaxAcceleration},
		{"max deceleration", c.MaxDeceleration},
		{"max angular velocity", c.MaxAngularVelocity},
		{"max angular acceleration", c.MaxAngularAccel},
		{"max centripetal acceleration", c.MaxCentripetal},
	} {
		if err := check(lim.name, lim.v); err != nil {
			return err
		}
	}
	if c.Profile != Trapezoidal {
		return fmt.Errorf("%w: kind %d", ErrUnsupportedProfile, c.Profile)
	}
	return nil
}
