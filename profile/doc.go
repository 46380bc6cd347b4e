// Package profile converts a flattened geometric path plus kinematic limits
// into a time-parameterized trajectory.
/*

The generator runs a curvature-limited trapezoidal profile, the standard
time-optimal approach under decoupled longitudinal/lateral limits:

   1. cap every sample's speed by curvature (centripetal limit) and,
      for decoupled heading profiles, by the angular-velocity limit
   2. forward pass from rest, limited by acceleration over arc length
   3. backward pass to rest, limited by deceleration
   4. trapezoidal time integration over arc-length steps
   5. derived kinematics (velocity/acceleration vectors, angular rates)
      by finite differences, with post-hoc limit checks that are traced
      and counted, never silently clipped

The result is an immutable Trajectory: an ordered, time-indexed point list
with interpolated evaluation at arbitrary time. Trajectories are derived,
disposable artifacts: they are recomputed from scratch on every
invalidation and never mutated in place, so concurrent readers of an old
trajectory always see a consistent snapshot.

# BSD License

# Copyright (c) the traject authors

All rights reserved.

Please refer to the license file for more information.
*/
package profile
