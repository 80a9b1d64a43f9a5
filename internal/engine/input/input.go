// Package input defines the event vocabulary consumed by the viewer.
//
// Events come from the SDL window (see window.PollEvents) or from a remote
// frontend as JSON; both produce the same Event values.
package input

import (
	"fmt"
)

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventWheel
	EventKeyDown
	EventSetHeightScale
	EventSetProjection
	EventSetWireframe
)

var eventNames = map[EventType]string{
	EventNone:           "none",
	EventQuit:           "quit",
	EventResize:         "resize",
	EventPointerDown:    "pointer_down",
	EventPointerMove:    "pointer_move",
	EventPointerUp:      "pointer_up",
	EventPointerLeave:   "pointer_leave",
	EventWheel:          "wheel",
	EventKeyDown:        "key_down",
	EventSetHeightScale: "set_height_scale",
	EventSetProjection:  "set_projection",
	EventSetWireframe:   "set_wireframe",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(text []byte) error {
	for k, name := range eventNames {
		if name == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", text)
}

// Button is a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

var buttonNames = []string{"none", "left", "middle", "right"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Button) UnmarshalText(text []byte) error {
	for i, name := range buttonNames {
		if name == string(text) {
			*b = Button(i)
			return nil
		}
	}
	return fmt.Errorf("unknown button %q", text)
}

// Key is a viewer key binding.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyProjection // P
	KeyWireframe  // W
	KeyOpen       // O
	KeyReset      // R
	KeyHeightUp   // + / =
	KeyHeightDown // -
	KeyScreenshot // F12
)

var keyNames = []string{"none", "escape", "projection", "wireframe", "open", "reset", "height_up", "height_down", "screenshot"}

func (k Key) String() string {
	if int(k) >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	for i, name := range keyNames {
		if name == string(text) {
			*k = Key(i)
			return nil
		}
	}
	return fmt.Errorf("unknown key %q", text)
}

// Projection selects the projection matrix.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// ParseProjection parses "perspective" (or "") and "orthographic" (or "ortho").
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "", "perspective":
		return Perspective, nil
	case "orthographic", "ortho":
		return Orthographic, nil
	}
	return Perspective, fmt.Errorf("unknown projection %q", s)
}

func (p Projection) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Projection) UnmarshalText(text []byte) error {
	v, err := ParseProjection(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Event is a processed input event. Only the fields relevant to Type are set.
type Event struct {
	Type   EventType `json:"type"`
	X      float32   `json:"x,omitempty"`
	Y      float32   `json:"y,omitempty"`
	Button Button    `json:"button,omitempty"`
	Delta  float32   `json:"delta,omitempty"` // wheel: negative is wheel up
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
	Key    Key       `json:"key,omitempty"`
	Value  float32   `json:"value,omitempty"` // height scale

	Projection Projection `json:"projection,omitempty"`
	Enabled    bool       `json:"enabled,omitempty"` // wireframe
}

// SliderMax is the top of the height slider range.
const SliderMax = 100

// HeightScaleFromSlider maps a height slider position to a height scale.
// The result is positive only for positive slider values.
func HeightScaleFromSlider(v float32) float32 {
	return v / 50
}
