// Package region implements closed 2D polygon regions, used as drivable
// field boundaries for trajectory preview. Boolean operations are
// delegated to polyclip-go.
/*
# BSD License

# Copyright (c) the traject authors

All rights reserved.

Please refer to the license file for more information.
*/
package region

import (
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/kbergen/traject"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to a tracer with key 'traject.region'.
func L() tracing.Trace {
	return tracing.Select("traject.region")
}

// Region is a closed polygon. Build regions with NullRegion()...Cycle()
// or Box(); regions are not mutated after Cycle().
type Region struct {
	knots  []traject.Pair
	closed bool
}

// NullRegion creates an empty region, to be extended by subsequent builder
// calls and closed with Cycle():
//
//	field := NullRegion().
//	    Knot(traject.P(0, 0)).
//	    Knot(traject.P(16, 0)).
//	    Knot(traject.P(16, 8)).
//	    Knot(traject.P(0, 8)).Cycle()
func NullRegion() *Region {
	return &Region{}
}

// Knot adds a corner to the region outline. Part of builder functionality.
func (rg *Region) Knot(p traject.Pair) *Region {
	if rg.closed {
		panic("cannot add knot to closed region")
	}
	rg.knots = append(rg.knots, p)
	return rg
}

// Cycle closes the region outline. Part of builder functionality.
func (rg *Region) Cycle() *Region {
	if len(rg.knots) < 3 {
		panic("region needs at least 3 knots")
	}
	rg.closed = true
	return rg
}

// Box creates a rectangular region from two opposite corners.
func Box(p1, p2 traject.Pair) *Region {
	x0, x1 := p1.X(), p2.X()
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := p1.Y(), p2.Y()
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return NullRegion().
		Knot(traject.P(x0, y0)).
		Knot(traject.P(x1, y0)).
		Knot(traject.P(x1, y1)).
		Knot(traject.P(x0, y1)).Cycle()
}

// N returns the corner count.
func (rg *Region) N() int {
	if rg == nil {
		return 0
	}
	return len(rg.knots)
}

// Z returns the corner at position (i mod N).
func (rg *Region) Z(i int) traject.Pair {
	return rg.knots[((i%rg.N())+rg.N())%rg.N()]
}

// AsString pretty-prints the region outline.
func AsString(rg *Region) string {
	var s string
	for i, p := range rg.knots {
		if i > 0 {
			s += " -- "
		}
		s += p.String()
	}
	if rg.closed {
		s += " -- cycle"
	}
	return s
}

// Area returns the unsigned area of the region (shoelace formula).
func (rg *Region) Area() float64 {
	a := 0.0
	for i := 0; i < rg.N(); i++ {
		p, q := rg.Z(i), rg.Z(i+1)
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	if a < 0 {
		a = -a
	}
	return a / 2
}

// Contains is a predicate: does the region contain point pt?
// Points exactly on the outline count as contained.
func (rg *Region) Contains(pt traject.Pair) bool {
	n := rg.N()
	if n < 3 || !rg.closed {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		p, q := rg.Z(i), rg.Z(i+1)
		// On-edge check for the degenerate-but-common boundary case.
		d := q - p
		e := pt - p
		cross := d.X()*e.Y() - d.Y()*e.X()
		if traject.Is0(cross) && e.Dot(d) >= 0 && e.Dot(e) <= d.Dot(d) {
			return true
		}
		if (p.Y() > pt.Y()) != (q.Y() > pt.Y()) {
			x := p.X() + (pt.Y()-p.Y())/(q.Y()-p.Y())*(q.X()-p.X())
			if pt.X() < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ContainsAll checks a point sequence against the region. It returns
// whether all points are contained, and the count of points outside.
func (rg *Region) ContainsAll(pts []traject.Pair) (bool, int) {
	outside := 0
	for _, p := range pts {
		if !rg.Contains(p) {
			outside++
		}
	}
	if outside > 0 {
		L().Infof("%d of %d points outside region %s", outside, len(pts), AsString(rg))
	}
	return outside == 0, outside
}

// Transformed returns a new region with every corner transformed by T.
func (rg *Region) Transformed(T traject.AT) *Region {
	out := NullRegion()
	for _, p := range rg.knots {
		out.Knot(T.Transform(p))
	}
	return out.Cycle()
}

// === Boolean operations (polyclip) =========================================

func (rg *Region) polygon() polyclip.Polygon {
	contour := make(polyclip.Contour, rg.N())
	for i, p := range rg.knots {
		contour[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return polyclip.Polygon{contour}
}

// fromPolygon converts a clip result back. Results with multiple contours
// keep only the largest one; preview boundaries are simple polygons.
func fromPolygon(poly polyclip.Polygon) *Region {
	if len(poly) == 0 {
		return NullRegion()
	}
	best := 0
	for i, c := range poly {
		if len(c) > len(poly[best]) {
			best = i
		}
	}
	if len(poly) > 1 {
		L().Infof("clip result has %d contours, keeping largest", len(poly))
	}
	out := NullRegion()
	for _, pt := range poly[best] {
		out.Knot(traject.P(pt.X, pt.Y))
	}
	if out.N() < 3 {
		return out
	}
	return out.Cycle()
}

func (rg *Region) construct(op polyclip.Op, other *Region) *Region {
	if !rg.closed || !other.closed {
		panic(fmt.Sprintf("boolean op on open region: %s", AsString(rg)))
	}
	return fromPolygon(rg.polygon().Construct(op, other.polygon()))
}

// Union returns the union of two regions.
func (rg *Region) Union(other *Region) *Region {
	return rg.construct(polyclip.UNION, other)
}

// Intersect returns the intersection of two regions.
func (rg *Region) Intersect(other *Region) *Region {
	return rg.construct(polyclip.INTERSECTION, other)
}

// Difference returns rg minus other.
func (rg *Region) Difference(other *Region) *Region {
	return rg.construct(polyclip.DIFFERENCE, other)
}
