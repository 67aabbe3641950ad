// Package orient converts between structural-geology orientation
// measurements: hole azimuth/dip, plane dip/dip-direction, and kenometer
// alpha/beta angles measured relative to the drillhole axis.
//
// Conventions are fixed: azimuth in degrees clockwise from north, hole dip
// negative downward, structure dip in [0,90], world frame X=east Y=north
// Z=up. All angles cross the package boundary in degrees.
package orient

import (
	"errors"
	"fmt"
	"math"

	"truethick/internal/geometry/vector"
)

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }

func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }

// wrap360 maps an angle in degrees into [0,360).
func wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// IsDegenerate reports whether err stems from a degenerate (zero-length)
// vector anywhere in a conversion.
func IsDegenerate(err error) bool {
	var de *vector.DegenerateInputError
	return errors.As(err, &de)
}

// HoleVector returns the unit vector pointing down the drillhole.
// Azimuth is degrees clockwise from north; dip is negative downward.
func HoleVector(azimuthDeg, dipDeg float64) (vector.Vec3, error) {
	az := deg2rad(azimuthDeg)
	dip := deg2rad(dipDeg)

	v := vector.Vec3{
		X: math.Sin(az) * math.Cos(dip),
		Y: math.Cos(az) * math.Cos(dip),
		Z: math.Sin(dip),
	}
	u, err := v.Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("hole vector: %w", err)
	}
	return u, nil
}

// PlaneNormalFromDipDipdir returns the upward-pointing unit normal of a
// plane given its dip and dip direction. The normal's horizontal component
// points toward the dip direction, so NormalToDipDipdir inverts this
// exactly; its vertical component is non-negative for dip in [0,90].
func PlaneNormalFromDipDipdir(dipDeg, dipdirDeg float64) (vector.Vec3, error) {
	dip := deg2rad(dipDeg)
	dipdir := deg2rad(dipdirDeg)

	n := vector.Vec3{
		X: math.Sin(dip) * math.Sin(dipdir),
		Y: math.Sin(dip) * math.Cos(dipdir),
		Z: math.Cos(dip),
	}
	u, err := n.Unit()
	if err != nil {
		return vector.Vec3{}, fmt.Errorf("plane normal: %w", err)
	}
	return u, nil
}

// NormalToDipDipdir converts a plane's unit normal to dip and dip
// direction. Dip is direction-agnostic (the sign of the vertical component
// is discarded, so upward and downward normals yield the same dip in
// [0,90]). Dip direction is returned in [0,360); for a horizontal plane it
// is undefined and whatever atan2 yields is returned.
func NormalToDipDipdir(n vector.Vec3) (dipDeg, dipdirDeg float64) {
	dipDeg = rad2deg(math.Acos(math.Abs(n.Z)))
	dipdirDeg = wrap360(rad2deg(math.Atan2(n.X, n.Y)))
	return dipDeg, dipdirDeg
}

// StrikeFromDipdir returns the strike of a plane (dip direction minus 90°)
// wrapped into [0,360).
func StrikeFromDipdir(dipdirDeg float64) float64 {
	return wrap360(dipdirDeg - 90)
}
