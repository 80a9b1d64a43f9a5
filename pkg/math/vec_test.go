package math

import (
	"errors"
	"math"
	"testing"
)

func TestVec2Sub(t *testing.T) {
	a := Vec2{5, 7}
	b := Vec2{3, 4}
	got := a.Sub(b)
	want := Vec2{2, 3}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3AddScale(t *testing.T) {
	got := Vec3{1, 2, 3}.Add(Vec3{1, 1, 1}.Scale(2))
	want := Vec3{3, 4, 5}
	if got != want {
		t.Errorf("Vec3.Add(Scale) = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	vectors := []Vec3{
		{3, 4, 0},
		{1, 1, 1},
		{-0.001, 0.002, 0.0005},
		{1000, -2000, 3000},
	}
	for _, v := range vectors {
		n, err := v.NormalizeChecked()
		if err != nil {
			t.Fatalf("NormalizeChecked(%v): %v", v, err)
		}
		if l := n.Length(); math.Abs(float64(l-1)) > 1e-5 {
			t.Errorf("NormalizeChecked(%v).Length() = %v, want 1", v, l)
		}
		if n != v.Normalize() {
			t.Errorf("Normalize and NormalizeChecked disagree for %v", v)
		}
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(zero) = %v, want zero vector", got)
	}

	_, err := Vec3{}.NormalizeChecked()
	var degenerate *DegenerateGeometryError
	if !errors.As(err, &degenerate) {
		t.Fatalf("NormalizeChecked(zero) error = %v, want DegenerateGeometryError", err)
	}
}

func TestDeg2Rad(t *testing.T) {
	if got := Deg2Rad(180); math.Abs(float64(got)-math.Pi) > 1e-6 {
		t.Errorf("Deg2Rad(180) = %v, want pi", got)
	}
}
