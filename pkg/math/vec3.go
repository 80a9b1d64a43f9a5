package math

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is a 3D vector. Arithmetic goes through mgl32.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) mgl() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func fromMgl(v mgl32.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

func (v Vec3) Add(other Vec3) Vec3 { return fromMgl(v.mgl().Add(other.mgl())) }

func (v Vec3) Sub(other Vec3) Vec3 { return fromMgl(v.mgl().Sub(other.mgl())) }

func (v Vec3) Scale(s float32) Vec3 { return fromMgl(v.mgl().Mul(s)) }

func (v Vec3) Dot(other Vec3) float32 { return v.mgl().Dot(other.mgl()) }

func (v Vec3) Cross(other Vec3) Vec3 { return fromMgl(v.mgl().Cross(other.mgl())) }

func (v Vec3) Length() float32 { return v.mgl().Len() }

// Normalize returns a unit vector, or the zero vector for zero input so
// callers never see NaN components.
func (v Vec3) Normalize() Vec3 {
	if v.Length() == 0 {
		return Vec3{}
	}
	return fromMgl(v.mgl().Normalize())
}

// NormalizeChecked fails with a DegenerateGeometryError when the length is
// below Epsilon.
func (v Vec3) NormalizeChecked() (Vec3, error) {
	if v.Length() < Epsilon {
		return Vec3{}, &DegenerateGeometryError{Op: "normalize", Reason: "zero-length vector"}
	}
	return fromMgl(v.mgl().Normalize()), nil
}

// Vec4 extends v with w.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec4 is a homogeneous vector.
type Vec4 [4]float32

// Vec3 drops w.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}
