package terrain

import (
	"fmt"
	"image"
	"image/color"

	"github.com/aquilax/go-perlin"
)

// NoiseParams configures Generate.
type NoiseParams struct {
	Seed      int64
	Alpha     float64 // weight falloff per octave
	Beta      float64 // frequency step per octave
	Octaves   int32
	Frequency float64 // noise periods across the map
}

// DefaultNoiseParams returns rolling-hill settings.
func DefaultNoiseParams(seed int64) NoiseParams {
	return NoiseParams{
		Seed:      seed,
		Alpha:     2,
		Beta:      2,
		Octaves:   4,
		Frequency: 3,
	}
}

// Generate builds a width x height heightmap from Perlin noise, rescaled so
// the samples span [0,1]. The same params always yield the same map.
func Generate(width, height int, p NoiseParams) (*Heightmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("generate %dx%d: %w", width, height, ErrEmptyHeightmap)
	}
	if p.Octaves <= 0 {
		return nil, fmt.Errorf("generate: octaves must be positive, got %d", p.Octaves)
	}

	noise := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)

	raw := make([]float64, width*height)
	var lo, hi float64
	for z := range height {
		for x := range width {
			v := noise.Noise2D(
				float64(x)/float64(width)*p.Frequency,
				float64(z)/float64(height)*p.Frequency,
			)
			raw[z*width+x] = v
			if x == 0 && z == 0 {
				lo, hi = v, v
			}
			lo, hi = min(lo, v), max(hi, v)
		}
	}

	samples := make([]float32, len(raw))
	if span := hi - lo; span > 0 {
		for i, v := range raw {
			samples[i] = float32((v - lo) / span)
		}
	}
	return NewHeightmap(width, height, samples)
}

// Image renders the heightmap as an 8-bit grayscale image.
func (h *Heightmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, h.Width, h.Height))
	for z := range h.Height {
		for x := range h.Width {
			img.SetGray(x, z, color.Gray{Y: uint8(h.At(x, z)*255 + 0.5)})
		}
	}
	return img
}
