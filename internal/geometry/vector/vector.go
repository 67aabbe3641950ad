// Package vector provides 3D vector operations
package vector

import "math"

// DegenerateEps is the norm below which a vector carries no usable
// direction and unit construction fails.
const DegenerateEps = 1e-10

// DegenerateInputError reports an attempt to take the direction of a
// near-zero vector.
type DegenerateInputError struct {
	Norm float64
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: vector norm too small to define a direction"
}

// NewVec3 creates a new 3D vector with the given components
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Vec3 represents a 3D vector in the world frame with X=east, Y=north,
// Z=up (right-handed)
type Vec3 struct{ X, Y, Z float64 }

// Add returns the sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales a vector by a scalar
func (v Vec3) Mul(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// NormSquared returns the squared magnitude, useful when only comparing lengths
func (v Vec3) NormSquared() float64 { return v.Dot(v) }

// Norm returns the vector's magnitude (Euclidean norm)
func (v Vec3) Norm() float64 { return math.Sqrt(v.NormSquared()) }

// Cross returns the cross product of two vectors
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Unit returns a unit vector in the same direction. Unit vectors enter the
// angle computations only through this constructor; nothing re-normalizes
// downstream. A vector with norm below DegenerateEps has no defined
// direction and yields a *DegenerateInputError.
func (v Vec3) Unit() (Vec3, error) {
	norm := v.Norm()
	if norm < DegenerateEps {
		return Vec3{}, &DegenerateInputError{Norm: norm}
	}
	return v.Mul(1 / norm), nil
}
