package orient

import (
	"fmt"
	"math"

	"truethick/internal/geometry/vector"
)

var worldX = vector.Vec3{X: 1}

// AlphaBetaToPlaneNormal reconstructs a plane's unit normal from the hole
// orientation and alpha/beta readings. Alpha here is the angle between the
// hole axis and the reconstructed normal.
//
// An orthonormal frame (v1, v2) is built around the hole axis by crossing
// with world up, or with world east when the hole is nearly vertical and
// the first cross product would degenerate. Beta's zero reference is
// therefore v1, a hole-frame direction, not the geographic dip-direction
// reference Beta measures against; the two conventions are deliberately
// kept distinct.
func AlphaBetaToPlaneNormal(holeAzDeg, holeDipDeg, alphaDeg, betaDeg float64) (vector.Vec3, error) {
	hole, err := HoleVector(holeAzDeg, holeDipDeg)
	if err != nil {
		return vector.Vec3{}, err
	}

	ref := worldZ
	if math.Abs(hole.Z) >= 0.9 {
		ref = worldX
	}

	v1, err := hole.Cross(ref).Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("hole frame: %w", err)
	}
	v2, err := hole.Cross(v1).Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("hole frame: %w", err)
	}

	alpha := deg2rad(alphaDeg)
	beta := deg2rad(betaDeg)

	n := hole.Mul(math.Cos(alpha)).
		Add(v1.Mul(math.Sin(alpha) * math.Cos(beta))).
		Add(v2.Mul(math.Sin(alpha) * math.Sin(beta)))

	u, err := n.Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("reconstructed normal: %w", err)
	}
	return u, nil
}

// AlphaBetaToDipDipdir solves alpha/beta readings into the plane's dip,
// dip direction and strike, all in degrees.
func AlphaBetaToDipDipdir(holeAzDeg, holeDipDeg, alphaDeg, betaDeg float64) (dip, dipdir, strike float64, err error) {
	n, err := AlphaBetaToPlaneNormal(holeAzDeg, holeDipDeg, alphaDeg, betaDeg)
	if err != nil {
		return 0, 0, 0, err
	}
	dip, dipdir = NormalToDipDipdir(n)
	return dip, dipdir, StrikeFromDipdir(dipdir), nil
}
