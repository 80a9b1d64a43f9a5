// Package terrain converts grayscale images into heightmaps and heightmaps
// into triangle meshes ready for GPU upload.
package terrain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/heightview/pkg/math"
)

// ErrEmptyHeightmap is returned for heightmaps with a zero dimension or too
// few samples.
var ErrEmptyHeightmap = errors.New("terrain: empty heightmap")

// Heightmap is a dense row-major grid of luminance samples in [0,1].
// It is never modified after construction.
type Heightmap struct {
	Width   int
	Height  int
	Samples []float32 // len == Width*Height, row-major
}

// NewHeightmap validates the dimensions and wraps samples.
func NewHeightmap(width, height int, samples []float32) (*Heightmap, error) {
	if width <= 0 || height <= 0 || len(samples) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d samples", ErrEmptyHeightmap, width, height, len(samples))
	}
	return &Heightmap{Width: width, Height: height, Samples: samples}, nil
}

// At returns the sample at column x, row z. Coordinates outside the grid are
// clamped to the nearest edge.
func (h *Heightmap) At(x, z int) float32 {
	x = clampi(x, 0, h.Width-1)
	z = clampi(z, 0, h.Height-1)
	return h.Samples[z*h.Width+x]
}

func (h *Heightmap) valid() bool {
	return h != nil && h.Width > 0 && h.Height > 0 && len(h.Samples) >= h.Width*h.Height
}

// Mapping selects how grid coordinates become model-space positions.
type Mapping int

const (
	// MappingCentered maps the grid to [-1,1] on X and Z and samples to [-1,1] on Y.
	MappingCentered Mapping = iota
	// MappingLegacy maps coord/(dim+1)*2 on X and Z and keeps raw samples on Y.
	MappingLegacy
)

// String returns the config name of the mapping.
func (m Mapping) String() string {
	switch m {
	case MappingLegacy:
		return "legacy"
	default:
		return "centered"
	}
}

// ParseMapping parses a mapping name as used in config files.
func ParseMapping(s string) (Mapping, error) {
	switch strings.ToLower(s) {
	case "", "centered":
		return MappingCentered, nil
	case "legacy":
		return MappingLegacy, nil
	}
	return MappingCentered, fmt.Errorf("unknown mesh mapping %q", s)
}

// Mesh is a flat triangle list: 3 floats per vertex, 3 vertices per
// triangle, no index buffer. Shared corners are duplicated.
type Mesh struct {
	Positions []float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 9
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) math.Vec3 {
	return math.Vec3{X: m.Positions[i*3], Y: m.Positions[i*3+1], Z: m.Positions[i*3+2]}
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Bounds computes the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() Bounds {
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for i := 0; i+2 < len(m.Positions); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := m.Positions[i+axis]
			if v < bounds.Min[axis] {
				bounds.Min[axis] = v
			}
			if v > bounds.Max[axis] {
				bounds.Max[axis] = v
			}
		}
	}
	return bounds
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
