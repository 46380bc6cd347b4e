package quintic

import (
	"fmt"
	"math"

	"github.com/kbergen/traject"
)

// A knot of the waypoint builder: position plus velocity and acceleration
// boundary conditions.
type knot struct {
	z traject.Pair // position
	v traject.Pair // velocity (tangent) at z
	a traject.Pair // acceleration at z
}

// PathBuilder assembles a 2D quintic spline from waypoints. Start with
// NewPath(), add knots, then call Build(). Adjacent segments share their
// boundary conditions, so built splines are C²-continuous.
type PathBuilder struct {
	knots []knot
}

// NewPath creates an empty path builder, to be extended by subsequent
// builder calls. The following example builds a two-segment path:
//
//	path, err := NewPath().
//	    Knot(traject.P(0, 0)).Dir(traject.P(1, 0)).
//	    Knot(traject.P(1, 1)).
//	    Knot(traject.P(2, 0)).Dir(traject.P(1, 0)).
//	    Build()
func NewPath() *PathBuilder {
	return &PathBuilder{}
}

// Knot adds a waypoint with zero velocity and acceleration.
// Part of builder functionality.
func (b *PathBuilder) Knot(z traject.Pair) *PathBuilder {
	b.knots = append(b.knots, knot{z: z})
	return b
}

// Dir sets the velocity (tangent) condition at the last knot.
// Part of builder functionality.
func (b *PathBuilder) Dir(v traject.Pair) *PathBuilder {
	if len(b.knots) == 0 {
		panic("cannot set direction on empty path")
	}
	b.knots[len(b.knots)-1].v = v
	return b
}

// Accel sets the acceleration condition at the last knot.
// Part of builder functionality.
func (b *PathBuilder) Accel(a traject.Pair) *PathBuilder {
	if len(b.knots) == 0 {
		panic("cannot set acceleration on empty path")
	}
	b.knots[len(b.knots)-1].a = a
	return b
}

// N returns the knot count.
func (b *PathBuilder) N() int {
	return len(b.knots)
}

func (b *PathBuilder) validate() error {
	if b.N() < 2 {
		return fmt.Errorf("%w: path needs at least 2 knots, got %d", ErrTooFewKnots, b.N())
	}
	for i, k := range b.knots {
		if !k.z.IsValid() || !k.v.IsValid() || !k.a.IsValid() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 1; i < b.N(); i++ {
		if b.knots[i].z.Dist(b.knots[i-1].z) <= _epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i-1, i)
		}
	}
	return nil
}

// Build validates the waypoints and assembles the segment list.
// It returns an error for empty/invalid geometry.
func (b *PathBuilder) Build() (*Spline, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}
	segments := make([]Segment, b.N()-1)
	for i := range segments {
		k0, k1 := b.knots[i], b.knots[i+1]
		segments[i] = Segment{
			P0: k0.z, V0: k0.v, A0: k0.a,
			A1: k1.a, V1: k1.v, P1: k1.z,
		}
	}
	tracer().Debugf("built spline with %d segments", len(segments))
	return &Spline{segments: segments}, nil
}

// MustBuild is a compatibility helper which panics on validation errors.
func (b *PathBuilder) MustBuild() *Spline {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// HeadingBuilder assembles a 1D quintic spline for a decoupled heading
// profile. Knot values are angles in radians.
type HeadingBuilder struct {
	thetas []float64
	rates  []float64
}

// NewHeading creates an empty heading builder.
func NewHeading() *HeadingBuilder {
	return &HeadingBuilder{}
}

// Knot adds a heading waypoint with zero angular rate.
// Part of builder functionality.
func (b *HeadingBuilder) Knot(theta float64) *HeadingBuilder {
	b.thetas = append(b.thetas, theta)
	b.rates = append(b.rates, 0)
	return b
}

// Rate sets the angular-rate condition at the last knot.
// Part of builder functionality.
func (b *HeadingBuilder) Rate(w float64) *HeadingBuilder {
	if len(b.thetas) == 0 {
		panic("cannot set rate on empty heading path")
	}
	b.rates[len(b.rates)-1] = w
	return b
}

// Build validates the heading waypoints and assembles the segment list.
func (b *HeadingBuilder) Build() (*ScalarSpline, error) {
	if len(b.thetas) < 2 {
		return nil, fmt.Errorf("%w: heading path needs at least 2 knots, got %d",
			ErrTooFewKnots, len(b.thetas))
	}
	for i, theta := range b.thetas {
		if math.IsNaN(theta) || math.IsInf(theta, 0) ||
			math.IsNaN(b.rates[i]) || math.IsInf(b.rates[i], 0) {
			return nil, fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	segments := make([]ScalarSegment, len(b.thetas)-1)
	for i := range segments {
		segments[i] = ScalarSegment{
			P0: b.thetas[i], V0: b.rates[i],
			V1: b.rates[i+1], P1: b.thetas[i+1],
		}
	}
	return &ScalarSpline{segments: segments}, nil
}
