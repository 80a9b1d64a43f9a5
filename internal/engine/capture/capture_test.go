package capture

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func TestFilename(t *testing.T) {
	c := New("shots", "heightview")
	c.now = fixedClock

	want := filepath.Join("shots", "heightview_2026-03-14_15-09-26.png")
	if got := c.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestFlipRGBA(t *testing.T) {
	// 1x2: bottom row red, top row blue, in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipRGBA: %v", err)
	}
	if top := img.RGBAAt(0, 0); top.B != 255 || top.R != 0 {
		t.Errorf("top pixel = %v, want blue", top)
	}
	if bottom := img.RGBAAt(0, 1); bottom.R != 255 || bottom.B != 0 {
		t.Errorf("bottom pixel = %v, want red", bottom)
	}
}

func TestFlipRGBASizeMismatch(t *testing.T) {
	if _, err := FlipRGBA(make([]byte, 7), 1, 2); err == nil {
		t.Error("short buffer accepted")
	}
	if _, err := FlipRGBA(nil, 0, 0); err == nil {
		t.Error("empty frame accepted")
	}
}

func TestSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := New(dir, "frame")
	c.now = fixedClock

	path, err := c.SavePixels(make([]byte, 3*2*4), 3, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open saved file: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("saved size = %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
}
