package viewer

import (
	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/interaction"
	"github.com/Faultbox/heightview/pkg/math"
)

// heightStep is one height slider notch.
var heightStep = input.HeightScaleFromSlider(1)

// Reduce applies one input event to s and returns the next state.
//
// Updates that would produce a degenerate camera are rejected: the previous
// camera is kept and Err reports why.
func Reduce(s State, e input.Event) State {
	s.Err = nil

	switch e.Type {
	case input.EventQuit:
		s.Quit = true

	case input.EventResize:
		s.Viewport = interaction.Viewport{Width: e.Width, Height: e.Height}

	case input.EventPointerDown:
		s.Drag = s.Drag.Press(e.Button, math.Vec2{X: e.X, Y: e.Y})

	case input.EventPointerMove:
		var g interaction.Gesture
		g, s.Drag = s.Drag.Move(math.Vec2{X: e.X, Y: e.Y}, s.Viewport)
		s = s.applyGesture(g)

	case input.EventPointerUp, input.EventPointerLeave:
		s.Drag = s.Drag.Release()

	case input.EventWheel:
		s.Zoom = interaction.ZoomStep(s.Zoom, e.Delta)

	case input.EventKeyDown:
		s = s.applyKey(e.Key)

	case input.EventSetHeightScale:
		if e.Value > 0 {
			s.HeightScale = e.Value
		}

	case input.EventSetProjection:
		s.Projection = e.Projection

	case input.EventSetWireframe:
		s.Wireframe = e.Enabled
	}

	return s
}

func (s State) applyGesture(g interaction.Gesture) State {
	switch g.Kind {
	case interaction.GestureRotate:
		s.Pitch, s.Yaw = s.Options.Rotation.Apply(s.Pitch, s.Yaw, g)

	case interaction.GesturePan:
		if s.Subject == SubjectTerrain {
			cam, err := s.Camera.Pan(g.Delta, s.Options.PanSpeed)
			if err != nil {
				s.Err = err
				return s
			}
			s.Camera = cam
			return s
		}

		offset := interaction.PanOffset(g.Delta, s.Viewport)
		if s.Options.Rotation == interaction.RotationAccumulate {
			offset = s.ModelPan.Add(offset)
		}
		s.ModelPan = offset
	}
	return s
}

func (s State) applyKey(k input.Key) State {
	switch k {
	case input.KeyEscape:
		s.Quit = true
	case input.KeyProjection:
		if s.Projection == input.Perspective {
			s.Projection = input.Orthographic
		} else {
			s.Projection = input.Perspective
		}
	case input.KeyWireframe:
		s.Wireframe = !s.Wireframe
	case input.KeyHeightUp:
		s.HeightScale = min(s.HeightScale+heightStep, input.HeightScaleFromSlider(input.SliderMax))
	case input.KeyHeightDown:
		// A scale set below one notch stays where it is.
		if s.HeightScale >= heightStep {
			s.HeightScale = max(s.HeightScale-heightStep, heightStep)
		}
	case input.KeyReset:
		s = s.reset()
	}
	return s
}
