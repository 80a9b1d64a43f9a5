package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/heightview/internal/engine/input"
)

// PollEvents drains the SDL queue and returns the translated events. The
// slice is reused by the next call.
func (w *Window) PollEvents() []input.Event {
	w.events = w.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := w.translate(event); ok {
			w.events = append(w.events, e)
		}
	}
	return w.events
}

// translate maps one SDL event onto the viewer's vocabulary. Pointer
// coordinates are scaled to drawable pixels.
func (w *Window) translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			width, height := int(e.Data1), int(e.Data2)
			if w.sdlWindow != nil {
				width, height = w.DrawableSize()
			}
			return input.Event{Type: input.EventResize, Width: width, Height: height}, true
		case sdl.WINDOWEVENT_LEAVE:
			return input.Event{Type: input.EventPointerLeave}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return input.Event{}, false
		}
		if k := keyFor(e.Keysym.Scancode); k != input.KeyNone {
			return input.Event{Type: input.EventKeyDown, Key: k}, true
		}

	case *sdl.MouseMotionEvent:
		x, y := w.toDrawable(e.X, e.Y)
		return input.Event{Type: input.EventPointerMove, X: x, Y: y}, true

	case *sdl.MouseButtonEvent:
		x, y := w.toDrawable(e.X, e.Y)
		typ := input.EventPointerDown
		if e.Type == sdl.MOUSEBUTTONUP {
			typ = input.EventPointerUp
		}
		return input.Event{Type: typ, X: x, Y: y, Button: buttonFor(e.Button)}, true

	case *sdl.MouseWheelEvent:
		if e.Y == 0 {
			return input.Event{}, false
		}
		delta := -float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			delta = -delta
		}
		return input.Event{Type: input.EventWheel, Delta: delta}, true
	}
	return input.Event{}, false
}

// toDrawable converts window coordinates to framebuffer pixels.
func (w *Window) toDrawable(x, y int32) (float32, float32) {
	if w.sdlWindow == nil {
		return float32(x), float32(y)
	}
	ww, wh := w.Size()
	dw, dh := w.DrawableSize()
	if ww == 0 || wh == 0 {
		return float32(x), float32(y)
	}
	return float32(x) * float32(dw) / float32(ww), float32(y) * float32(dh) / float32(wh)
}

func buttonFor(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return input.ButtonNone
}

func keyFor(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_P:
		return input.KeyProjection
	case sdl.SCANCODE_W:
		return input.KeyWireframe
	case sdl.SCANCODE_O:
		return input.KeyOpen
	case sdl.SCANCODE_R:
		return input.KeyReset
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return input.KeyHeightUp
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return input.KeyHeightDown
	case sdl.SCANCODE_F12:
		return input.KeyScreenshot
	}
	return input.KeyNone
}
