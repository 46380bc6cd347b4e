package quintic

import (
	"math"

	"github.com/kbergen/traject"
)

// Tuning constants of the projection search. The falloff exponent is
// applied to the step size whenever neither neighbor improves the squared
// distance, regardless of direction; downstream callers depend on these
// convergence characteristics, so they are fixed.
const (
	projectCoarseSamples = 128
	projectBudget        = 64
	projectFalloff       = 1.25
	projectMinStep       = 1e-9
)

// Project maps an arbitrary point onto the spline, returning the parameter
// u ∈ [0,1] of the closest curve point found. The search runs in two
// stages: a coarse uniform scan over a fixed sample count, then a local
// gradient-sign descent around the best coarse candidate with a
// super-linearly shrinking step. The result is the best estimate within a
// fixed iteration budget and is not guaranteed to be globally optimal on
// self-intersecting or highly non-convex curves.
//
// The spline must not be empty; callers check N() > 0 first.
func (s *Spline) Project(pt traject.Pair) float64 {
	distSq := func(u float64) float64 {
		d := s.At(u) - pt
		return d.Dot(d)
	}

	best := 0.0
	bestD := distSq(0)
	for i := 1; i <= projectCoarseSamples; i++ {
		u := float64(i) / float64(projectCoarseSamples)
		if d := distSq(u); d < bestD {
			best, bestD = u, d
		}
	}

	step := 1.0 / float64(projectCoarseSamples)
	for iter := 0; iter < projectBudget && step > projectMinStep; iter++ {
		lo := traject.Clamp(best-step, 0, 1)
		hi := traject.Clamp(best+step, 0, 1)
		dLo, dHi := distSq(lo), distSq(hi)
		switch {
		case dLo < bestD && dLo <= dHi:
			best, bestD = lo, dLo
		case dHi < bestD:
			best, bestD = hi, dHi
		default:
			// No improvement on either side: shrink super-linearly.
			step = math.Pow(step, projectFalloff)
		}
	}
	tracer().Debugf("projected %s onto u=%.6g (dist %.6g)", pt, best, math.Sqrt(bestD))
	return best
}
