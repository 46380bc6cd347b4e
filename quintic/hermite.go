package quintic

import "github.com/kbergen/traject"

// Quintic Hermite basis functions h0..h5, ordered to match the segment
// control values (p0, v0, a0, a1, v1, p1). The basis satisfies
//
//    h0(0)=1  h1'(0)=1  h2''(0)=1  h3''(1)=1  h4'(1)=1  h5(1)=1
//
// with all other boundary values zero, so a segment interpolates its
// boundary conditions exactly.
func hermiteBasis(t float64) [6]float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t
	return [6]float64{
		1 - 10*t3 + 15*t4 - 6*t5,
		t - 6*t3 + 8*t4 - 3*t5,
		0.5*t2 - 1.5*t3 + 1.5*t4 - 0.5*t5,
		0.5*t3 - t4 + 0.5*t5,
		-4*t3 + 7*t4 - 3*t5,
		10*t3 - 15*t4 + 6*t5,
	}
}

// Analytic first derivative of the basis.
func hermiteBasisDerivative(t float64) [6]float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	return [6]float64{
		-30*t2 + 60*t3 - 30*t4,
		1 - 18*t2 + 32*t3 - 15*t4,
		t - 4.5*t2 + 6*t3 - 2.5*t4,
		1.5*t2 - 4*t3 + 2.5*t4,
		-12*t2 + 28*t3 - 15*t4,
		30*t2 - 60*t3 + 30*t4,
	}
}

// At evaluates the segment at local parameter t ∈ [0,1].
// Pure function; both axes blend independently.
func (seg Segment) At(t float64) traject.Pair {
	h := hermiteBasis(t)
	return seg.P0.Scaled(h[0]) +
		seg.V0.Scaled(h[1]) +
		seg.A0.Scaled(h[2]) +
		seg.A1.Scaled(h[3]) +
		seg.V1.Scaled(h[4]) +
		seg.P1.Scaled(h[5])
}

// DerivativeAt evaluates the first derivative of the segment at local
// parameter t, with respect to t.
func (seg Segment) DerivativeAt(t float64) traject.Pair {
	h := hermiteBasisDerivative(t)
	return seg.P0.Scaled(h[0]) +
		seg.V0.Scaled(h[1]) +
		seg.A0.Scaled(h[2]) +
		seg.A1.Scaled(h[3]) +
		seg.V1.Scaled(h[4]) +
		seg.P1.Scaled(h[5])
}

// At evaluates the 1D segment at local parameter t ∈ [0,1].
func (seg ScalarSegment) At(t float64) float64 {
	h := hermiteBasis(t)
	return seg.P0*h[0] + seg.V0*h[1] + seg.A0*h[2] +
		seg.A1*h[3] + seg.V1*h[4] + seg.P1*h[5]
}

// DerivativeAt evaluates the first derivative of the 1D segment at local
// parameter t, with respect to t.
func (seg ScalarSegment) DerivativeAt(t float64) float64 {
	h := hermiteBasisDerivative(t)
	return seg.P0*h[0] + seg.V0*h[1] + seg.A0*h[2] +
		seg.A1*h[3] + seg.V1*h[4] + seg.P1*h[5]
}
