package interaction

import "fmt"

// RotationMode selects how drag rotations combine.
type RotationMode int

const (
	// RotationDelta replaces the rotation with the latest drag delta's angles.
	RotationDelta RotationMode = iota
	// RotationAccumulate integrates drag deltas so rotations compound.
	RotationAccumulate
)

func (m RotationMode) String() string {
	if m == RotationAccumulate {
		return "accumulate"
	}
	return "delta"
}

// ParseRotationMode parses "delta" (or "") and "accumulate".
func ParseRotationMode(s string) (RotationMode, error) {
	switch s {
	case "", "delta":
		return RotationDelta, nil
	case "accumulate":
		return RotationAccumulate, nil
	}
	return RotationDelta, fmt.Errorf("unknown rotation mode %q", s)
}

// Apply combines the current pitch and yaw angles with a rotate gesture.
func (m RotationMode) Apply(pitch, yaw float32, g Gesture) (float32, float32) {
	if g.Kind != GestureRotate {
		return pitch, yaw
	}
	if m == RotationAccumulate {
		return pitch + g.AngleX, yaw + g.AngleY
	}
	return g.AngleX, g.AngleY
}
