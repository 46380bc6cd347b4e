package profile

import (
	"fmt"
	"math"

	"github.com/kbergen/traject"
	"github.com/kbergen/traject/quintic"
)

// Curvatures below this are treated as straight-line motion.
const curvatureEpsilon = 1e-6

// Fallback duration for zero-velocity sample pairs (zero-distance steps).
const minStepDuration = 1e-6

// Tolerance factor for the post-hoc limit checks; finite-difference
// estimates wobble slightly around the pass results.
const limitSlack = 1.001

// Generate assigns a feasible speed to every flattened sample and
// integrates arc length into time, producing a Trajectory.
//
// Samples must be ordered by strictly increasing parameter, as produced by
// quintic.Flatten. explicitHeading states whether sample headings come
// from a decoupled heading spline (and must then respect the angular
// limits via speed caps) or simply follow the path tangent.
//
// Generation is all-or-nothing: degenerate constraints and empty paths are
// rejected before the passes run.
func Generate(samples []quintic.Sample, c Constraints, explicitHeading bool) (*Trajectory, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: got %d samples", ErrEmptyPath, len(samples))
	}
	n := len(samples)

	// Arc-length steps and curvature by finite differences of successive
	// tangent headings.
	ds := make([]float64, n) // ds[i] spans samples i-1 .. i
	kappa := make([]float64, n)
	for i := 1; i < n; i++ {
		ds[i] = samples[i-1].Pos.Dist(samples[i].Pos)
		if ds[i] > curvatureEpsilon {
			kappa[i] = traject.ReduceAngle(samples[i].Tangent-samples[i-1].Tangent) / ds[i]
		}
	}
	kappa[0] = kappa[1]

	// Pass 1: curvature cap, plus heading-rate cap in explicit-heading mode.
	vcap := make([]float64, n)
	for i := 0; i < n; i++ {
		v := c.MaxVelocity
		if k := math.Abs(kappa[i]); k > curvatureEpsilon {
			v = math.Min(v, math.Sqrt(c.MaxCentripetal/k))
		}
		if explicitHeading && i > 0 && ds[i] > curvatureEpsilon {
			dhds := math.Abs(traject.ReduceAngle(samples[i].Heading-samples[i-1].Heading)) / ds[i]
			if dhds > curvatureEpsilon {
				v = math.Min(v, c.MaxAngularVelocity/dhds)
			}
		}
		vcap[i] = v
	}

	// Pass 2: forward, from rest.
	v := make([]float64, n)
	v[0] = 0
	for i := 1; i < n; i++ {
		v[i] = math.Min(vcap[i], math.Sqrt(v[i-1]*v[i-1]+2*c.MaxAcceleration*ds[i]))
	}

	// Pass 3: backward, to rest.
	v[n-1] = 0
	for i := n - 2; i >= 0; i-- {
		v[i] = math.Min(v[i], math.Sqrt(v[i+1]*v[i+1]+2*c.MaxDeceleration*ds[i+1]))
	}

	// Pass 4: trapezoidal time integration.
	t := make([]float64, n)
	dist := make([]float64, n)
	for i := 1; i < n; i++ {
		dist[i] = dist[i-1] + ds[i]
		if vsum := v[i-1] + v[i]; vsum > 0 {
			t[i] = t[i-1] + 2*ds[i]/vsum
		} else {
			t[i] = t[i-1] + minStepDuration
		}
	}

	// Pass 5: derived kinematics per sample, by finite differences over
	// the integrated timeline.
	points := make([]Point, n)
	accel := make([]float64, n)
	omega := make([]float64, n)
	for i := 0; i < n-1; i++ {
		dt := t[i+1] - t[i]
		accel[i] = (v[i+1] - v[i]) / dt
		omega[i] = traject.ReduceAngle(samples[i+1].Heading-samples[i].Heading) / dt
	}
	for i := 0; i < n; i++ {
		p := Point{
			Time:            t[i],
			Distance:        dist[i],
			Pos:             samples[i].Pos,
			Heading:         samples[i].Heading,
			Curvature:       kappa[i],
			U:               samples[i].U,
			Velocity:        traject.UnitVector(samples[i].Tangent).Scaled(v[i]),
			Accel:           traject.UnitVector(samples[i].Tangent).Scaled(accel[i]),
			AngularVelocity: omega[i],
		}
		if i < n-1 {
			p.AngularAccel = (omega[i+1] - omega[i]) / (t[i+1] - t[i])
		}
		points[i] = p
	}

	traj := newTrajectory(points)
	checkLimits(traj, c)
	tracer().Infof("generated trajectory: %d points, %.3gs, %.3gm",
		n, traj.Duration(), traj.Stats().Length)
	return traj, nil
}

// checkLimits verifies the derived kinematics against the constraint set.
// A violation indicates the passes under-constrained that axis; it is
// surfaced via trace and counted in Stats, not silently clipped.
func checkLimits(traj *Trajectory, c Constraints) {
	for i := range traj.points {
		p := &traj.points[i]
		report := func(what string, got, limit float64) {
			traj.stats.LimitViolations++
			tracer().Errorf("trajectory point %d at t=%.4g violates %s: %.4g > %.4g",
				i, p.Time, what, got, limit)
		}
		if a := p.Accel.Norm(); a > c.MaxAcceleration*limitSlack &&
			a > c.MaxDeceleration*limitSlack {
			report("linear acceleration limit", a, math.Max(c.MaxAcceleration, c.MaxDeceleration))
		}
		if w := math.Abs(p.AngularVelocity); w > c.MaxAngularVelocity*limitSlack {
			report("angular velocity limit", w, c.MaxAngularVelocity)
		}
		if al := math.Abs(p.AngularAccel); al > c.MaxAngularAccel*limitSlack {
			report("angular acceleration limit", al, c.MaxAngularAccel)
		}
	}
}
