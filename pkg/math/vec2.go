// Package math holds the vector and matrix types shared by the viewer. The
// arithmetic is mathgl's; this package adds checked constructors that report
// degenerate geometry instead of producing NaNs.
package math

import "github.com/go-gl/mathgl/mgl32"

// Vec2 is a pointer position or delta in pixels.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(other Vec2) Vec2 { return Vec2{v.X + other.X, v.Y + other.Y} }

func (v Vec2) Sub(other Vec2) Vec2 { return Vec2{v.X - other.X, v.Y - other.Y} }

func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Length() float32 { return mgl32.Vec2{v.X, v.Y}.Len() }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
