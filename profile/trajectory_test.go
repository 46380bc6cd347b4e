package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func lineTrajectory(t *testing.T) *Trajectory {
	t.Helper()
	traj, err := Generate(lineSamples(101, 2), testConstraints(), false)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return traj
}

func TestAtIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	traj := lineTrajectory(t)
	for _, time := range []float64{0, 0.5, 1.5, 2.9, traj.Duration()} {
		first := traj.At(time)
		second := traj.At(first.Time)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("At(%g) not idempotent (-first +second):\n%s", time, diff)
		}
	}
}

func TestAtInterpolatesBetweenPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	traj := lineTrajectory(t)
	pts := traj.Points()
	// Querying exactly at a point's time returns that point.
	for _, i := range []int{0, len(pts) / 3, len(pts) / 2} {
		got := traj.At(pts[i].Time)
		if diff := cmp.Diff(pts[i], got); diff != "" {
			t.Errorf("At(point %d time) differs (-point +got):\n%s", i, diff)
		}
	}
	// A query between two points lands between their values.
	mid := (pts[3].Time + pts[4].Time) / 2
	p := traj.At(mid)
	if p.Distance <= pts[3].Distance || p.Distance >= pts[4].Distance {
		t.Errorf("interpolated distance %g not between %g and %g",
			p.Distance, pts[3].Distance, pts[4].Distance)
	}
}

func TestAtClampsOutOfRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	traj := lineTrajectory(t)
	pts := traj.Points()
	if diff := cmp.Diff(pts[0], traj.At(-5)); diff != "" {
		t.Errorf("At(-5) should clamp to the first point:\n%s", diff)
	}
	last := pts[len(pts)-1]
	end := traj.At(traj.Duration() + 5)
	assert.InDelta(t, last.Time, end.Time, 1e-12)
	assert.InDelta(t, last.Distance, end.Distance, 1e-9)
	assert.InDelta(t, 0.0, end.Velocity.Norm(), 1e-9)
}

func TestDistanceAndTimeMonotone(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	traj := lineTrajectory(t)
	const steps = 200
	prev := traj.At(0)
	for i := 1; i <= steps; i++ {
		p := traj.At(float64(i) / steps * traj.Duration())
		if p.Time < prev.Time || p.Distance < prev.Distance {
			t.Fatalf("trajectory not monotone at step %d", i)
		}
		prev = p
	}
}

func TestTimeRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	traj := lineTrajectory(t)
	r := traj.TimeRange()
	if r.Start != 0 || r.End != traj.Duration() {
		t.Errorf("TimeRange() = %v, want [0,%g)", r, traj.Duration())
	}
	if traj.Stats().SampleCount != len(traj.Points()) {
		t.Errorf("stats sample count %d does not match point count %d",
			traj.Stats().SampleCount, len(traj.Points()))
	}
}
