// Package quintic implements piecewise quintic Hermite splines for robot
// path geometry.
/*

A quintic Hermite segment is a degree-5 polynomial curve defined by position,
velocity and acceleration boundary conditions at its two endpoints. Chaining
segments that share boundary conditions yields a C²-continuous path. Splines
come in two flavors: 2D splines for translation, and 1D (scalar) splines for
a decoupled heading profile.

The package covers:

   ▪ evaluation of segments and splines, and their first derivative
   ▪ arc-length estimation by discrete summation
   ▪ closest-point projection of arbitrary points onto a spline
   ▪ adaptive flattening of a spline into a discrete sample sequence

Splines are evaluated by a global parameter u ∈ [0,1], which maps uniformly
onto the segment list. Segment lists are built either directly from
editor-supplied segments, or with the waypoint builder:

   path, err := NewPath().
       Knot(traject.P(0, 0)).Dir(traject.P(2, 0)).
       Knot(traject.P(2, 0)).Dir(traject.P(2, 0)).
       Build()

The projection algorithm is a two-stage search (coarse scan plus local
gradient descent) and is not guaranteed to find the global optimum on
self-intersecting or highly non-convex curves; it returns its best estimate
within a fixed iteration budget.

# BSD License

# Copyright (c) the traject authors

All rights reserved.

Please refer to the license file for more information.
*/
package quintic
