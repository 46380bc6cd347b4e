package profile

import (
	"math"

	"github.com/kbergen/traject"
	"github.com/kbergen/traject/rangetree"
)

// Point is one time-indexed sample of a generated trajectory.
// Points are produced only by the generator and read-only afterward.
type Point struct {
	Time            float64
	Distance        float64 // displacement along the path, in meters
	Pos             traject.Pair
	Heading         float64 // radians
	Velocity        traject.Pair
	Accel           traject.Pair
	AngularVelocity float64
	AngularAccel    float64
	Curvature       float64
	U               float64 // path parameter the point was sampled at
}

// Stats are summary statistics of a trajectory, for display.
type Stats struct {
	Duration        float64
	Length          float64
	MaxVelocity     float64
	MaxAcceleration float64
	MaxAngularVel   float64
	MaxAngularAccel float64
	SampleCount     int
	LimitViolations int
}

// Trajectory is a finalized, time-indexed lookup structure over generated
// points. It is built once per generation call and immutable afterwards;
// source changes discard and rebuild it wholesale.
type Trajectory struct {
	points []Point
	index  *rangetree.Tree[int]
	stats  Stats
}

// newTrajectory wraps the generated point list and builds the time index.
// Point times are strictly increasing by construction (zero/negative time
// steps are guarded during integration), which is exactly the contiguity
// the range tree requires.
func newTrajectory(points []Point) *Trajectory {
	spans := make([]rangetree.Span[int], len(points)-1)
	for i := range spans {
		spans[i] = rangetree.Span[int]{
			Interval: rangetree.Interval{Start: points[i].Time, End: points[i+1].Time},
			Payload:  i,
		}
	}
	traj := &Trajectory{
		points: points,
		index:  rangetree.MustNew(spans),
	}
	traj.stats = summarize(traj)
	return traj
}

func summarize(traj *Trajectory) Stats {
	s := Stats{
		Duration:    traj.points[len(traj.points)-1].Time,
		Length:      traj.points[len(traj.points)-1].Distance,
		SampleCount: len(traj.points),
	}
	for i := range traj.points {
		p := &traj.points[i]
		s.MaxVelocity = math.Max(s.MaxVelocity, p.Velocity.Norm())
		s.MaxAcceleration = math.Max(s.MaxAcceleration, p.Accel.Norm())
		s.MaxAngularVel = math.Max(s.MaxAngularVel, math.Abs(p.AngularVelocity))
		s.MaxAngularAccel = math.Max(s.MaxAngularAccel, math.Abs(p.AngularAccel))
	}
	return s
}

// Duration returns the total time of the trajectory.
func (traj *Trajectory) Duration() float64 {
	return traj.stats.Duration
}

// TimeRange returns the [0, totalTime] interval the trajectory covers.
func (traj *Trajectory) TimeRange() rangetree.Interval {
	return traj.index.Bounds()
}

// Points returns the underlying point list. Callers must not mutate it.
func (traj *Trajectory) Points() []Point {
	return traj.points
}

// Stats returns the trajectory's summary statistics.
func (traj *Trajectory) Stats() Stats {
	return traj.stats
}

// At evaluates the trajectory at an arbitrary time, interpolating linearly
// between the bracketing pair of points. Out-of-range times are clamped
// into [0, Duration], so At(clamp(t)) returns the boundary point.
// Evaluation is idempotent and safe for concurrent readers.
func (traj *Trajectory) At(time float64) Point {
	time = traject.Clamp(time, 0, traj.Duration())
	i := traj.index.Covering(time)
	p0, p1 := &traj.points[i], &traj.points[i+1]
	f := (time - p0.Time) / (p1.Time - p0.Time)
	return Point{
		Time:            time,
		Distance:        traject.Lerp(p0.Distance, p1.Distance, f),
		Pos:             p0.Pos.Lerp(p1.Pos, f),
		Heading:         traject.LerpAngle(p0.Heading, p1.Heading, f),
		Velocity:        p0.Velocity.Lerp(p1.Velocity, f),
		Accel:           p0.Accel.Lerp(p1.Accel, f),
		AngularVelocity: traject.Lerp(p0.AngularVelocity, p1.AngularVelocity, f),
		AngularAccel:    traject.Lerp(p0.AngularAccel, p1.AngularAccel, f),
		Curvature:       traject.Lerp(p0.Curvature, p1.Curvature, f),
		U:               traject.Lerp(p0.U, p1.U, f),
	}
}
