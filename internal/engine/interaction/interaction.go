// Package interaction turns pointer input into rotate, pan and zoom gestures.
//
// Drag is a two-state machine (idle, dragging). Its methods are pure: they
// return the next state instead of mutating the receiver.
package interaction

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/pkg/math"
)

// Zoom limits and per-notch factors.
const (
	MinZoom = 0.1
	MaxZoom = 10

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// size returns the viewport dimensions with zero sides treated as 1.
func (v Viewport) size() (w, h float32) {
	w, h = float32(v.Width), float32(v.Height)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// Aspect returns width/height with zero dimensions treated as 1.
func (v Viewport) Aspect() float32 {
	w, h := v.size()
	return w / h
}

// GestureKind identifies a Gesture.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureRotate
	GesturePan
)

// Gesture is the result of a pointer move during a drag.
type Gesture struct {
	Kind GestureKind

	// Rotate: radians about X (from vertical motion) and Y (from horizontal motion).
	AngleX float32
	AngleY float32

	// Pan: pointer delta in pixels.
	Delta math.Vec2
}

// Drag is the interaction state. The zero value is idle.
type Drag struct {
	Active bool
	Button input.Button
	Last   math.Vec2
}

// Press starts a drag with button at pos. Buttons other than left and right
// leave the state unchanged.
func (d Drag) Press(button input.Button, pos math.Vec2) Drag {
	if button != input.ButtonLeft && button != input.ButtonRight {
		return d
	}
	return Drag{Active: true, Button: button, Last: pos}
}

// Move reports the gesture for a pointer move to pos and the next state.
// Idle moves produce GestureNone.
func (d Drag) Move(pos math.Vec2, vp Viewport) (Gesture, Drag) {
	if !d.Active {
		return Gesture{}, d
	}

	delta := pos.Sub(d.Last)
	d.Last = pos

	switch d.Button {
	case input.ButtonLeft:
		w, h := vp.size()
		return Gesture{
			Kind:   GestureRotate,
			AngleX: delta.Y / h * 2 * gomath.Pi,
			AngleY: delta.X / w * 2 * gomath.Pi,
		}, d
	case input.ButtonRight:
		return Gesture{Kind: GesturePan, Delta: delta}, d
	}
	return Gesture{}, d
}

// Release ends any drag. Pointer up and pointer leave both release.
func (d Drag) Release() Drag {
	return Drag{}
}

// ZoomStep applies one wheel notch to scale. A negative delta (wheel up)
// zooms in, a positive delta zooms out and zero is a no-op. The result is
// clamped to [MinZoom, MaxZoom].
func ZoomStep(scale, wheelDelta float32) float32 {
	switch {
	case wheelDelta < 0:
		scale *= ZoomInFactor
	case wheelDelta > 0:
		scale *= ZoomOutFactor
	default:
		return scale
	}
	return mgl32.Clamp(scale, MinZoom, MaxZoom)
}

// PanOffset converts a pointer delta into a model-space translation for a
// viewport: a full-width drag moves the model by 2 units in NDC terms.
func PanOffset(delta math.Vec2, vp Viewport) math.Vec3 {
	w, h := vp.size()
	return math.Vec3{X: delta.X / w * 2, Y: -delta.Y / h * 2}
}
