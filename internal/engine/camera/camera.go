// Package camera provides the look-at camera used to view the scene.
package camera

import (
	"github.com/Faultbox/heightview/pkg/math"
)

// Camera is an eye/target/up-hint camera. It is a value type: operations
// return an updated copy and never leave a half-applied change behind.
type Camera struct {
	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3 // hint, need not be orthogonal to the view direction
}

// Default returns the camera looking at the origin from (0, 5, 5).
func Default() Camera {
	return Camera{
		Eye:    math.Vec3{X: 0, Y: 5, Z: 5},
		Target: math.Vec3{},
		Up:     math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c Camera) ViewMatrix() (math.Mat4, error) {
	return math.LookAtChecked(c.Eye, c.Target, c.Up)
}

// Basis returns the orthonormal right, up and forward vectors of the camera.
func (c Camera) Basis() (right, up, forward math.Vec3, err error) {
	forward, err = c.Target.Sub(c.Eye).NormalizeChecked()
	if err != nil {
		return right, up, forward, &math.DegenerateGeometryError{Op: "camera basis", Reason: "eye and target coincide"}
	}
	right, err = forward.Cross(c.Up).NormalizeChecked()
	if err != nil {
		return right, up, forward, &math.DegenerateGeometryError{Op: "camera basis", Reason: "forward parallel to up hint"}
	}
	up = right.Cross(forward)
	return right, up, forward, nil
}

// Pan translates eye and target by the same offset in the camera plane, so
// the view direction is preserved. delta is a pointer delta in pixels
// (y grows downward); the scene follows the pointer.
//
// On a degenerate basis the receiver is returned unchanged with the error.
func (c Camera) Pan(delta math.Vec2, speed float32) (Camera, error) {
	right, up, _, err := c.Basis()
	if err != nil {
		return c, err
	}

	offset := right.Scale(-delta.X * speed).Add(up.Scale(delta.Y * speed))
	c.Eye = c.Eye.Add(offset)
	c.Target = c.Target.Add(offset)
	return c, nil
}

// Distance returns the distance from eye to target.
func (c Camera) Distance() float32 {
	return c.Target.Sub(c.Eye).Length()
}

// Forward returns the unit view direction.
func (c Camera) Forward() (math.Vec3, error) {
	_, _, f, err := c.Basis()
	return f, err
}

// Right returns the unit right vector of the view.
func (c Camera) Right() (math.Vec3, error) {
	r, _, _, err := c.Basis()
	return r, err
}

// TrueUp returns the up vector orthogonal to the view direction.
func (c Camera) TrueUp() (math.Vec3, error) {
	_, u, _, err := c.Basis()
	return u, err
}
