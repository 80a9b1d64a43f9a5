package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4x4 matrix with the same layout as mgl32.Mat4, so
// the two convert freely. a.Mul(b) applied to a vector applies b first.
type Mat4 [16]float32

// parallelTolerance bounds |forward x up| below which LookAtChecked treats
// the two directions as parallel.
const parallelTolerance = 1e-4

func (m Mat4) mgl() mgl32.Mat4 { return mgl32.Mat4(m) }

func Identity() Mat4 { return Mat4(mgl32.Ident4()) }

// Perspective takes fovY in radians. Depth follows OpenGL: near maps to -1
// and far to +1 in NDC.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ortho builds an orthographic projection with NDC depth in [-1, 1].
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	return Mat4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// LookAt builds a view matrix without validating the basis. Use
// LookAtChecked for anything driven by user input.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(eye.mgl(), center.mgl(), up.mgl()))
}

// LookAtChecked refuses a degenerate basis: eye equal to center, a zero up
// hint, or forward parallel to up.
func LookAtChecked(eye, center, up Vec3) (Mat4, error) {
	f, err := center.Sub(eye).NormalizeChecked()
	if err != nil {
		return Mat4{}, &DegenerateGeometryError{Op: "lookAt", Reason: "eye and target coincide"}
	}
	upN, err := up.NormalizeChecked()
	if err != nil {
		return Mat4{}, &DegenerateGeometryError{Op: "lookAt", Reason: "zero up hint"}
	}
	if f.Cross(upN).Length() < parallelTolerance {
		return Mat4{}, &DegenerateGeometryError{Op: "lookAt", Reason: "forward parallel to up hint"}
	}
	return LookAt(eye, center, upN), nil
}

func Translate(x, y, z float32) Mat4 { return Mat4(mgl32.Translate3D(x, y, z)) }

func Scale(x, y, z float32) Mat4 { return Mat4(mgl32.Scale3D(x, y, z)) }

func UniformScale(s float32) Mat4 { return Scale(s, s, s) }

// RotateX, RotateY and RotateZ take radians.
func RotateX(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DX(angle)) }

func RotateY(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DY(angle)) }

func RotateZ(angle float32) Mat4 { return Mat4(mgl32.HomogRotate3DZ(angle)) }

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(m.mgl().Mul4(other.mgl()))
}

func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4(m.mgl().Mul4x1(mgl32.Vec4(v)))
}

// TransformPoint applies m to p with w=1 and divides by the resulting w.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	r := m.MulVec4(p.Vec4(1))
	if w := r[3]; w != 0 && w != 1 {
		return Vec3{r[0] / w, r[1] / w, r[2] / w}
	}
	return r.Vec3()
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Mat4) ApproxEqual(other Mat4, tol float32) bool {
	return m.mgl().ApproxEqualThreshold(other.mgl(), tol)
}

// Ptr returns a pointer to the first element for glUniformMatrix4fv.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
