package quintic

import (
	"errors"
	"math"
	"testing"

	"github.com/kbergen/traject"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func mustPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	f()
}

// A straight two-segment path from (0,0) to (2,0) with linear
// parameterization (x(u) = 2u exactly, see TestStraightSegmentIsLinear).
func straightPath(t *testing.T) *Spline {
	t.Helper()
	path, err := NewPath().
		Knot(traject.P(0, 0)).Dir(traject.P(1, 0)).
		Knot(traject.P(1, 0)).Dir(traject.P(1, 0)).
		Knot(traject.P(2, 0)).Dir(traject.P(1, 0)).
		Build()
	if err != nil {
		t.Fatalf("building straight path failed: %v", err)
	}
	return path
}

// A gently curved s-shaped two-segment path.
func curvedPath(t *testing.T) *Spline {
	t.Helper()
	path, err := NewPath().
		Knot(traject.P(0, 0)).Dir(traject.P(2, 0)).
		Knot(traject.P(2, 1)).Dir(traject.P(2, 0)).
		Knot(traject.P(4, 0)).Dir(traject.P(2, 0)).
		Build()
	if err != nil {
		t.Fatalf("building curved path failed: %v", err)
	}
	return path
}

func TestSegmentInterpolatesBoundaries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg := Segment{
		P0: traject.P(1, 2), V0: traject.P(3, 0), A0: traject.P(0, 1),
		A1: traject.P(1, 0), V1: traject.P(0, 2), P1: traject.P(4, 5),
	}
	if !seg.At(0).Equal(seg.P0) {
		t.Errorf("At(0) = %v, want %v", seg.At(0), seg.P0)
	}
	if !seg.At(1).Equal(seg.P1) {
		t.Errorf("At(1) = %v, want %v", seg.At(1), seg.P1)
	}
	if !seg.DerivativeAt(0).Equal(seg.V0) {
		t.Errorf("DerivativeAt(0) = %v, want %v", seg.DerivativeAt(0), seg.V0)
	}
	if !seg.DerivativeAt(1).Equal(seg.V1) {
		t.Errorf("DerivativeAt(1) = %v, want %v", seg.DerivativeAt(1), seg.V1)
	}
}

func TestScalarSegmentInterpolatesBoundaries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seg := ScalarSegment{P0: 0.5, V0: 1, A0: 2, A1: -1, V1: 0.5, P1: 3}
	assert.InDelta(t, 0.5, seg.At(0), 1e-12)
	assert.InDelta(t, 3.0, seg.At(1), 1e-12)
	assert.InDelta(t, 1.0, seg.DerivativeAt(0), 1e-12)
	assert.InDelta(t, 0.5, seg.DerivativeAt(1), 1e-12)
}

func TestStraightSegmentIsLinear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// p0=0, v0=1, v1=1, p1=1 cancels all higher-order basis terms.
	seg := Segment{
		P0: traject.P(0, 0), V0: traject.P(1, 0),
		V1: traject.P(1, 0), P1: traject.P(1, 0),
	}
	for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		assert.InDelta(t, u, seg.At(u).X(), 1e-12, "at u=%g", u)
		assert.InDelta(t, 0.0, seg.At(u).Y(), 1e-12, "at u=%g", u)
	}
}

func TestSplineContinuity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := curvedPath(t)
	// Consecutive evaluations differ by no more than the local derivative
	// times the step size (with slack for the second-order term).
	const steps = 1000
	prev := path.At(0)
	for i := 1; i <= steps; i++ {
		u := float64(i) / steps
		pt := path.At(u)
		bound := path.DerivativeAt(u).Norm()/steps + 1e-4
		if prev.Dist(pt) > bound {
			t.Fatalf("discontinuity at u=%g: step %g exceeds bound %g", u, prev.Dist(pt), bound)
		}
		prev = pt
	}
}

func TestSplineSegmentBoundary(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := straightPath(t)
	if path.N() != 2 {
		t.Fatalf("expected 2 segments, got %d", path.N())
	}
	// u=0.5 is the shared knot of both segments.
	if !path.At(0.5).Equal(traject.P(1, 0)) {
		t.Errorf("At(0.5) = %v, want (1,0)", path.At(0.5))
	}
	if !path.Start().Equal(traject.P(0, 0)) || !path.End().Equal(traject.P(2, 0)) {
		t.Errorf("unexpected endpoints %v %v", path.Start(), path.End())
	}
}

func TestArcLengthStraight(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := straightPath(t)
	assert.InDelta(t, 2.0, path.ArcLength(1024), 1e-6)
}

func TestArcLengthConverges(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := curvedPath(t)
	l256 := path.ArcLength(256)
	l1024 := path.ArcLength(1024)
	l4096 := path.ArcLength(4096)
	// Monotonically non-decreasing in the sample count...
	if l1024 < l256 || l4096 < l1024 {
		t.Fatalf("arc length not monotone: %g %g %g", l256, l1024, l4096)
	}
	// ...and converging to a stable value.
	if (l4096-l1024)/l4096 > 0.001 {
		t.Fatalf("arc length not converged: %g vs %g", l1024, l4096)
	}
}

func TestEmptySpline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var s *Spline
	if !s.IsEmpty() || s.N() != 0 {
		t.Errorf("nil spline should be empty")
	}
	empty := NewSpline()
	if !empty.IsEmpty() {
		t.Errorf("NewSpline() should be empty")
	}
	if empty.ArcLength(128) != 0 {
		t.Errorf("empty spline should have zero arc length")
	}
	var h *ScalarSpline
	if !h.IsEmpty() {
		t.Errorf("nil scalar spline should be empty")
	}
}

func TestBuilderValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewPath().Knot(traject.P(0, 0)).Build()
	if !errors.Is(err, ErrTooFewKnots) {
		t.Fatalf("expected ErrTooFewKnots, got %v", err)
	}
	_, err = NewPath().Knot(traject.P(0, 0)).Knot(traject.P(math.NaN(), 1)).Build()
	if !errors.Is(err, ErrInvalidKnot) {
		t.Fatalf("expected ErrInvalidKnot, got %v", err)
	}
	_, err = NewPath().Knot(traject.P(1, 1)).Knot(traject.P(1, 1)).Build()
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Fatalf("expected ErrDegenerateSegment, got %v", err)
	}
	mustPanic(t, func() { NewPath().Dir(traject.P(1, 0)) })
	mustPanic(t, func() { NewPath().Accel(traject.P(1, 0)) })
	mustPanic(t, func() { NewPath().Knot(traject.P(0, 0)).MustBuild() })
}

func TestHeadingBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	h, err := NewHeading().Knot(0).Knot(math.Pi / 2).Build()
	if err != nil {
		t.Fatalf("heading build failed: %v", err)
	}
	assert.InDelta(t, 0.0, h.At(0), 1e-9)
	assert.InDelta(t, math.Pi/2, h.At(1), 1e-9)
	assert.InDelta(t, 0.0, h.DerivativeAt(0), 1e-9)

	_, err = NewHeading().Knot(1).Build()
	if !errors.Is(err, ErrTooFewKnots) {
		t.Fatalf("expected ErrTooFewKnots, got %v", err)
	}
	_, err = NewHeading().Knot(math.Inf(1)).Knot(0).Build()
	if !errors.Is(err, ErrInvalidKnot) {
		t.Fatalf("expected ErrInvalidKnot, got %v", err)
	}
	mustPanic(t, func() { NewHeading().Rate(1) })
}
