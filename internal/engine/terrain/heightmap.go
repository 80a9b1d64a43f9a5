package terrain

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// BT.709 luma coefficients.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// InvalidImageError reports that a source could not be decoded into a heightmap.
type InvalidImageError struct {
	Source string
	Err    error
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image %q: %v", e.Source, e.Err)
}

func (e *InvalidImageError) Unwrap() error {
	return e.Err
}

// Luminance converts an 8-bit RGB triple into a height in [0,1].
func Luminance(r, g, b uint8) float32 {
	l := (lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)) / 255.0
	if l > 1 {
		l = 1
	}
	return float32(l)
}

// FromPixels builds a heightmap from raw interleaved pixel bytes.
// channels must be 3 (RGB) or 4 (RGBA); alpha is ignored.
func FromPixels(pix []byte, width, height, channels int) (*Heightmap, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyHeightmap
	}
	if len(pix) < width*height*channels {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*channels, len(pix))
	}

	samples := make([]float32, width*height)
	for i := range samples {
		o := i * channels
		samples[i] = Luminance(pix[o], pix[o+1], pix[o+2])
	}
	return NewHeightmap(width, height, samples)
}

// FromImage builds a heightmap from a decoded image. Colors are read
// non-premultiplied, the way a canvas reads them back.
func FromImage(img image.Image) (*Heightmap, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyHeightmap
	}

	if nrgba, ok := img.(*image.NRGBA); ok {
		return fromNRGBA(nrgba)
	}

	samples := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			samples[y*width+x] = Luminance(c.R, c.G, c.B)
		}
	}
	return NewHeightmap(width, height, samples)
}

func fromNRGBA(img *image.NRGBA) (*Heightmap, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	samples := make([]float32, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			samples[y*width+x] = Luminance(row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return NewHeightmap(width, height, samples)
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP, TIFF,
// WebP) and converts it to a heightmap. Failures are InvalidImageError.
func Decode(r io.Reader, source string) (*Heightmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &InvalidImageError{Source: source, Err: err}
	}
	hm, err := FromImage(img)
	if err != nil {
		return nil, &InvalidImageError{Source: source, Err: err}
	}
	return hm, nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte, source string) (*Heightmap, error) {
	return Decode(bytes.NewReader(data), source)
}

// LoadFile opens and decodes an image file.
func LoadFile(path string) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}
