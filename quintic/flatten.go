package quintic

import (
	"fmt"
	"math"

	"github.com/kbergen/traject"
)

// MaxFlattenSamples bounds the output of Flatten, guarding against runaway
// subdivision on pathological tolerance configurations.
const MaxFlattenSamples = 50000

// Subdivision stops once a parameter interval is this small, even if a
// tolerance is still violated.
const minSplitStep = 1e-6

// ErrSampleBudget indicates flattening hit MaxFlattenSamples.
var ErrSampleBudget = fmt.Errorf("flattening exceeded %d samples", MaxFlattenSamples)

// Sample is one point of a flattened spline: position, tangent direction,
// heading and the global parameter it was taken at. Sequences of samples
// are ordered by strictly increasing parameter.
type Sample struct {
	Pos     traject.Pair
	Tangent float64 // tangent direction angle of the translation spline
	Heading float64 // explicit heading, or Tangent in tangent-follows-path mode
	U       float64
}

// Tolerances configures adaptive flattening. An interval of the spline is
// subdivided while its endpoints differ by more than Dx/Dy in position or
// DAngle in tangent direction, or while the parameter step exceeds DParam.
type Tolerances struct {
	Dx, Dy float64
	DAngle float64
	DParam float64
}

// DefaultTolerances are suitable for meter-scaled field coordinates.
func DefaultTolerances() Tolerances {
	return Tolerances{Dx: 0.05, Dy: 0.05, DAngle: 2 * traject.Deg2Rad, DParam: 1.0 / 64.0}
}

// SplitPredicate decides whether the parameter interval [u0,u1] needs
// further subdivision beyond the positional and tangent tolerances. It
// couples the sampling density to a decoupled heading spline; the heuristic
// is hand-tuned, so it is pluggable rather than hardcoded.
type SplitPredicate func(u0, u1 float64) bool

// RotationSplit returns the canonical split predicate for a heading
// spline: split while the heading changes by more than dAngle across the
// interval and the interval is still wider than dParam.
func RotationSplit(heading *ScalarSpline, dAngle, dParam float64) SplitPredicate {
	if heading.IsEmpty() {
		return nil
	}
	return func(u0, u1 float64) bool {
		if u1-u0 <= dParam {
			return false
		}
		return math.Abs(traject.ReduceAngle(heading.At(u1)-heading.At(u0))) > dAngle
	}
}

// Flatten converts a spline into a discrete ordered sample sequence, dense
// enough that linear interpolation between consecutive samples stays within
// the configured tolerances, without over-sampling low-curvature regions.
// Samples are appended to the caller-provided out slice; the sequence
// always includes the path's start and end. heading may be nil or empty
// (tangent-follows-path mode), pred may be nil.
//
// Flatten is a pure function over its inputs; it fails only when the
// sample budget is exhausted.
func Flatten(path *Spline, heading *ScalarSpline, tol Tolerances, pred SplitPredicate, out *[]Sample) error {
	if path.IsEmpty() {
		return fmt.Errorf("%w: cannot flatten empty spline", ErrTooFewKnots)
	}
	f := flattener{path: path, heading: heading, tol: tol, pred: pred, out: out}
	*out = append(*out, f.sampleAt(0))
	if err := f.bisect(0, 1); err != nil {
		return err
	}
	tracer().Debugf("flattened spline into %d samples", len(*out))
	return nil
}

type flattener struct {
	path    *Spline
	heading *ScalarSpline
	tol     Tolerances
	pred    SplitPredicate
	out     *[]Sample
	count   int
}

func (f *flattener) sampleAt(u float64) Sample {
	s := Sample{
		Pos:     f.path.At(u),
		Tangent: f.path.TangentAt(u),
		U:       u,
	}
	if f.heading.IsEmpty() {
		s.Heading = s.Tangent
	} else {
		s.Heading = f.heading.At(u)
	}
	return s
}

// needsSplit checks the endpoint deviation of [u0,u1] against the
// configured tolerances.
func (f *flattener) needsSplit(s0, s1 Sample) bool {
	if s1.U-s0.U > f.tol.DParam {
		return true
	}
	d := s1.Pos - s0.Pos
	if math.Abs(d.X()) > f.tol.Dx || math.Abs(d.Y()) > f.tol.Dy {
		return true
	}
	if math.Abs(traject.ReduceAngle(s1.Tangent-s0.Tangent)) > f.tol.DAngle {
		return true
	}
	if f.pred != nil && f.pred(s0.U, s1.U) {
		return true
	}
	return false
}

// bisect recursively subdivides [u0,u1], emitting the endpoint of every
// interval that is within tolerance.
func (f *flattener) bisect(u0, u1 float64) error {
	s0, s1 := f.sampleAt(u0), f.sampleAt(u1)
	if u1-u0 > minSplitStep && f.needsSplit(s0, s1) {
		mid := 0.5 * (u0 + u1)
		if err := f.bisect(u0, mid); err != nil {
			return err
		}
		return f.bisect(mid, u1)
	}
	f.count++
	if f.count > MaxFlattenSamples {
		return ErrSampleBudget
	}
	*f.out = append(*f.out, s1)
	return nil
}
