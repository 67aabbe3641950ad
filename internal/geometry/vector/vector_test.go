package vector

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func TestUnitMagnitude(t *testing.T) {
	v := Vec3{X: 29183284.2374234, Y: 2738223.232732, Z: -2372}
	u, err := v.Unit()
	if err != nil {
		t.Fatalf("Unit() error: %v", err)
	}
	if math.Abs(u.Norm()-1) > tol {
		t.Fatalf("magnitude of unit vector is %v, want 1", u.Norm())
	}
}

func TestUnitIdempotent(t *testing.T) {
	v := Vec3{X: 3, Y: -4, Z: 12}
	u1, err := v.Unit()
	if err != nil {
		t.Fatalf("first Unit() error: %v", err)
	}
	u2, err := u1.Unit()
	if err != nil {
		t.Fatalf("second Unit() error: %v", err)
	}
	if math.Abs(u1.X-u2.X) > tol || math.Abs(u1.Y-u2.Y) > tol || math.Abs(u1.Z-u2.Z) > tol {
		t.Fatalf("Unit not idempotent: %+v vs %+v", u1, u2)
	}
}

func TestUnitDegenerate(t *testing.T) {
	cases := []Vec3{
		{},
		{X: 1e-11, Y: -1e-11, Z: 1e-12},
	}
	for _, v := range cases {
		_, err := v.Unit()
		if err == nil {
			t.Fatalf("Unit(%+v): expected error, got none", v)
		}
		var de *DegenerateInputError
		if !errors.As(err, &de) {
			t.Fatalf("Unit(%+v): error %v is not a DegenerateInputError", v, err)
		}
	}
}

func TestDotCross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := Vec3{Z: 1}

	if got := x.Dot(y); got != 0 {
		t.Fatalf("x·y = %v, want 0", got)
	}
	if got := x.Cross(y); got != z {
		t.Fatalf("x×y = %+v, want %+v", got, z)
	}
	if got := y.Cross(x); got != z.Mul(-1) {
		t.Fatalf("y×x = %+v, want %+v", got, z.Mul(-1))
	}

	// cross product is perpendicular to both operands
	a := Vec3{X: 2, Y: -3, Z: 5}
	b := Vec3{X: -1, Y: 4, Z: 0.5}
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > tol || math.Abs(c.Dot(b)) > tol {
		t.Fatalf("a×b not perpendicular to operands: %v, %v", c.Dot(a), c.Dot(b))
	}
}

func TestNorm(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 12}
	if got := v.Norm(); math.Abs(got-13) > tol {
		t.Fatalf("Norm = %v, want 13", got)
	}
	if got := v.NormSquared(); math.Abs(got-169) > tol {
		t.Fatalf("NormSquared = %v, want 169", got)
	}
}
