package quintic

import (
	"errors"

	"github.com/kbergen/traject"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'traject.quintic'
func tracer() tracing.Trace {
	return tracing.Select("traject.quintic")
}

const _epsilon = 0.0000001

var (
	// ErrTooFewKnots indicates knot count is insufficient for building a spline.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot value contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot value")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
)

// Segment is a single 2D quintic Hermite curve segment, defined by six
// control values: position, velocity and acceleration at each endpoint.
// Immutable once constructed.
type Segment struct {
	P0, V0, A0 traject.Pair // boundary conditions at t=0
	A1, V1, P1 traject.Pair // boundary conditions at t=1
}

// ScalarSegment is the 1D analogue of Segment, used for heading profiles.
type ScalarSegment struct {
	P0, V0, A0 float64
	A1, V1, P1 float64
}

// Spline is an ordered, continuous sequence of 2D quintic segments,
// evaluated by a uniform parameter u ∈ [0,1]. The zero value is an empty
// ("cleared") spline; evaluating an empty spline is a caller error.
type Spline struct {
	segments []Segment
}

// ScalarSpline is an ordered sequence of 1D quintic segments. An empty
// scalar spline signals tangent-follows-path mode to consumers.
type ScalarSpline struct {
	segments []ScalarSegment
}

// NewSpline wraps an editor-supplied segment list. The list is copied;
// segments are never mutated in place.
func NewSpline(segments ...Segment) *Spline {
	s := &Spline{segments: make([]Segment, len(segments))}
	copy(s.segments, segments)
	return s
}

// NewScalarSpline wraps an editor-supplied 1D segment list.
func NewScalarSpline(segments ...ScalarSegment) *ScalarSpline {
	s := &ScalarSpline{segments: make([]ScalarSegment, len(segments))}
	copy(s.segments, segments)
	return s
}

// N returns the segment count.
func (s *Spline) N() int {
	if s == nil {
		return 0
	}
	return len(s.segments)
}

// IsEmpty is a predicate: does this spline hold no segments?
func (s *Spline) IsEmpty() bool {
	return s.N() == 0
}

// Segment returns segment i.
func (s *Spline) Segment(i int) Segment {
	return s.segments[i]
}

// N returns the segment count.
func (s *ScalarSpline) N() int {
	if s == nil {
		return 0
	}
	return len(s.segments)
}

// IsEmpty is a predicate: does this spline hold no segments?
// Consumers treat an empty heading spline as tangent-follows-path mode.
func (s *ScalarSpline) IsEmpty() bool {
	return s.N() == 0
}

// Segment returns segment i.
func (s *ScalarSpline) Segment(i int) ScalarSegment {
	return s.segments[i]
}
