// Package planner is the editor-facing facade over the trajectory core.
// It holds the current path, heading profile, constraints and sampling
// tolerances, and regenerates the trajectory on demand when any of them
// changed since the last build.
//
// Invalidation is a plain version counter bumped by every setter; no
// change notifications, no reflection. Callers owning an old trajectory
// may keep reading it while a new one is generated; trajectories are
// replaced wholesale, never mutated.
/*
# BSD License

# Copyright (c) the traject authors

All rights reserved.

Please refer to the license file for more information.
*/
package planner

import (
	"errors"

	"github.com/kbergen/traject"
	"github.com/kbergen/traject/profile"
	"github.com/kbergen/traject/quintic"
	"github.com/kbergen/traject/region"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'traject.planner'
func tracer() tracing.Trace {
	return tracing.Select("traject.planner")
}

// ErrNoPath indicates trajectory generation without a usable path.
var ErrNoPath = errors.New("planner has no path with positive arc length")

// Sampling bundles the flattening tolerances with the heading-spline
// coupling thresholds of the rotation split predicate.
type Sampling struct {
	quintic.Tolerances
	DAngleRot float64
	DParamRot float64
}

// DefaultSampling returns tolerances suitable for meter-scaled fields.
func DefaultSampling() Sampling {
	return Sampling{
		Tolerances: quintic.DefaultTolerances(),
		DAngleRot:  2 * traject.Deg2Rad,
		DParamRot:  1.0 / 256.0,
	}
}

// Planner caches one generated trajectory per configuration version.
// It is single-threaded by design: generation runs to completion without
// preemption, and callers wanting responsiveness run Trajectory() on a
// background worker while consumers keep the previous result.
type Planner struct {
	path        *quintic.Spline
	heading     *quintic.ScalarSpline
	constraints profile.Constraints
	sampling    Sampling
	boundary    *region.Region

	version      uint64
	builtVersion uint64
	traj         *profile.Trajectory
	outside      int
}

// New creates a planner with default sampling tolerances and the given
// constraints. Path and heading start empty.
func New(c profile.Constraints) *Planner {
	return &Planner{constraints: c, sampling: DefaultSampling(), version: 1}
}

// SetPath replaces the translation spline wholesale.
func (pl *Planner) SetPath(path *quintic.Spline) {
	pl.path = path
	pl.version++
}

// SetHeading replaces the decoupled heading spline. Passing nil (or an
// empty spline) switches to tangent-follows-path mode.
func (pl *Planner) SetHeading(heading *quintic.ScalarSpline) {
	pl.heading = heading
	pl.version++
}

// SetConstraints replaces the kinematic limits.
func (pl *Planner) SetConstraints(c profile.Constraints) {
	pl.constraints = c
	pl.version++
}

// SetSampling replaces the flattening tolerances.
func (pl *Planner) SetSampling(s Sampling) {
	pl.sampling = s
	pl.version++
}

// SetBoundary installs an optional drivable region. Trajectories leaving
// the boundary still generate; violations are counted, traced, and
// reported via BoundaryViolations.
func (pl *Planner) SetBoundary(rg *region.Region) {
	pl.boundary = rg
	pl.version++
}

// Version returns the current configuration version. It increases with
// every mutation and never decreases.
func (pl *Planner) Version() uint64 {
	return pl.version
}

// Dirty is a predicate: does the cached trajectory lag the configuration?
func (pl *Planner) Dirty() bool {
	return pl.builtVersion != pl.version
}

// ArcLength estimates the current path length; it gates whether
// generation is possible at all.
func (pl *Planner) ArcLength() float64 {
	if pl.path.IsEmpty() {
		return 0
	}
	return pl.path.ArcLength(quintic.DefaultArcLengthSamples)
}

// Project maps a point onto the current path, for indicator placement.
func (pl *Planner) Project(pt traject.Pair) (float64, error) {
	if pl.path.IsEmpty() {
		return 0, ErrNoPath
	}
	return pl.path.Project(pt), nil
}

// BoundaryViolations returns the count of flattened samples outside the
// boundary region during the last successful build.
func (pl *Planner) BoundaryViolations() int {
	return pl.outside
}

// Trajectory returns the trajectory for the current configuration,
// regenerating only when a setter invalidated the cached one. The old
// trajectory is discarded wholesale; readers holding it see a consistent
// snapshot.
func (pl *Planner) Trajectory() (*profile.Trajectory, error) {
	if !pl.Dirty() && pl.traj != nil {
		return pl.traj, nil
	}
	if pl.path.IsEmpty() || traject.Is0(pl.ArcLength()) {
		return nil, ErrNoPath
	}

	var samples []quintic.Sample
	pred := quintic.RotationSplit(pl.heading, pl.sampling.DAngleRot, pl.sampling.DParamRot)
	if err := quintic.Flatten(pl.path, pl.heading, pl.sampling.Tolerances, pred, &samples); err != nil {
		return nil, err
	}

	explicit := !pl.heading.IsEmpty()
	traj, err := profile.Generate(samples, pl.constraints, explicit)
	if err != nil {
		return nil, err
	}

	pl.outside = 0
	if pl.boundary != nil {
		pts := make([]traject.Pair, len(samples))
		for i, s := range samples {
			pts[i] = s.Pos
		}
		ok, outside := pl.boundary.ContainsAll(pts)
		pl.outside = outside
		if !ok {
			tracer().Infof("trajectory leaves boundary at %d of %d samples", outside, len(samples))
		}
	}

	pl.traj = traj
	pl.builtVersion = pl.version
	tracer().Debugf("rebuilt trajectory for version %d", pl.version)
	return pl.traj, nil
}
