package quintic

import (
	"math"

	"github.com/kbergen/traject"
)

// DefaultArcLengthSamples is the sample count used by ArcLength.
const DefaultArcLengthSamples = 1024

// locate maps a global parameter u ∈ [0,1] onto a segment index and the
// local parameter t within that segment. The index is clamped into the
// valid range, so u=1 evaluates the last segment at t=1.
func locate(u float64, n int) (int, float64) {
	i := int(math.Floor(u * float64(n)))
	if i < 0 {
		i = 0
	} else if i > n-1 {
		i = n - 1
	}
	return i, u*float64(n) - float64(i)
}

// At evaluates the spline at global parameter u ∈ [0,1].
// The spline must not be empty; callers check N() > 0 first.
func (s *Spline) At(u float64) traject.Pair {
	i, t := locate(u, s.N())
	return s.segments[i].At(t)
}

// DerivativeAt evaluates the first derivative of the spline at global
// parameter u, with respect to u (the segment derivative is scaled by the
// segment count, by the chain rule).
func (s *Spline) DerivativeAt(u float64) traject.Pair {
	n := s.N()
	i, t := locate(u, n)
	return s.segments[i].DerivativeAt(t).Scaled(float64(n))
}

// TangentAt returns the tangent direction angle at u, in radians.
func (s *Spline) TangentAt(u float64) float64 {
	return s.DerivativeAt(u).Angle()
}

// Start returns the first point of the spline.
func (s *Spline) Start() traject.Pair {
	return s.segments[0].P0
}

// End returns the last point of the spline.
func (s *Spline) End() traject.Pair {
	return s.segments[s.N()-1].P1
}

// ArcLength estimates the length of the spline by summing distances of
// `samples` consecutive evaluations. Deterministic, O(samples); estimates
// are monotonically non-decreasing in the sample count. A sample count
// below 1 falls back to DefaultArcLengthSamples. An empty spline has
// length 0.
func (s *Spline) ArcLength(samples int) float64 {
	if s.IsEmpty() {
		return 0
	}
	if samples < 1 {
		samples = DefaultArcLengthSamples
	}
	length := 0.0
	prev := s.At(0)
	for i := 1; i <= samples; i++ {
		pt := s.At(float64(i) / float64(samples))
		length += prev.Dist(pt)
		prev = pt
	}
	return length
}

// At evaluates the scalar spline at global parameter u ∈ [0,1].
// The spline must not be empty; callers check IsEmpty() first.
func (s *ScalarSpline) At(u float64) float64 {
	i, t := locate(u, s.N())
	return s.segments[i].At(t)
}

// DerivativeAt evaluates the first derivative of the scalar spline at
// global parameter u, with respect to u.
func (s *ScalarSpline) DerivativeAt(u float64) float64 {
	n := s.N()
	i, t := locate(u, n)
	return s.segments[i].DerivativeAt(t) * float64(n)
}
