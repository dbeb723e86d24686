package math

import (
	gomath "math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to itself")
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateZ(0.5))
	got := m.Mul(Identity())
	if got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
}

func TestRotateZQuarterTurn(t *testing.T) {
	m := RotateZ(Radians(90))
	// Column-major: rotating (1,0,0) by 90 degrees around Z gives (0,1,0).
	x := m[0]*1 + m[4]*0 + m[8]*0
	y := m[1]*1 + m[5]*0 + m[9]*0
	if gomath.Abs(float64(x)) > 1e-6 || gomath.Abs(float64(y)-1) > 1e-6 {
		t.Errorf("RotateZ(90deg) * (1,0,0) = (%v, %v), want (0, 1)", x, y)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); gomath.Abs(float64(got)-gomath.Pi) > 1e-6 {
		t.Errorf("Radians(180) = %v, want pi", got)
	}
}
