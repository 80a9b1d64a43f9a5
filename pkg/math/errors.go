package math

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-6

// DegenerateGeometryError reports that a basis could not be built, e.g. a
// zero-length direction or a forward vector parallel to the up hint.
type DegenerateGeometryError struct {
	Op     string
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: degenerate geometry: %s", e.Op, e.Reason)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 {
	return mgl32.DegToRad(deg)
}
