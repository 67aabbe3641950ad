package orient

import (
	"fmt"
	"math"

	"truethick/internal/geometry/vector"
)

var worldZ = vector.Vec3{Z: 1}

// clamp bounds v to [lo,hi]; dot products of unit vectors drift slightly
// past ±1 and acos must not see that.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AlphaNormal returns the angle in degrees between the hole vector and the
// plane normal. The absolute value of the dot product makes the result
// insensitive to the normal's sign and to which side of the plane the hole
// approaches from, so alpha is always in [0,90]. Both inputs must already
// be unit vectors.
func AlphaNormal(holeVec, planeNormal vector.Vec3) float64 {
	dot := holeVec.Dot(planeNormal)
	return rad2deg(math.Acos(clamp(math.Abs(dot), -1, 1)))
}

// AlphaKenometer converts the hole-to-normal angle into the angle between
// the hole and the plane surface, the convention kenometer tools report.
func AlphaKenometer(alphaNormalDeg float64) float64 {
	return 90 - alphaNormalDeg
}

// Beta returns the rotation angle in degrees between the hole vector's
// in-plane projection and the plane's horizontal reference direction
// (cross of the normal with world up). The result is folded into [0,180]:
// acos cannot distinguish clockwise from counter-clockwise sense.
//
// Fails with a degenerate-input error when the hole lies exactly along the
// normal (projection has no direction) or the normal is vertical (the
// reference cross product vanishes).
func Beta(holeVec, planeNormal vector.Vec3) (float64, error) {
	proj := holeVec.Sub(planeNormal.Mul(holeVec.Dot(planeNormal)))
	projU, err := proj.Unit()
	if err != nil {
		return 0, fmt.Errorf("beta: hole projection onto plane: %w", err)
	}

	dipDirVec, err := planeNormal.Cross(worldZ).Unit()
	if err != nil {
		return 0, fmt.Errorf("beta: vertical plane normal has no reference direction: %w", err)
	}

	return rad2deg(math.Acos(clamp(projU.Dot(dipDirVec), -1, 1))), nil
}
