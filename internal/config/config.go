// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/heightview/internal/engine/camera"
	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/interaction"
	"github.com/Faultbox/heightview/internal/engine/terrain"
	"github.com/Faultbox/heightview/internal/viewer"
	"github.com/Faultbox/heightview/pkg/math"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ViewerConfig holds the starting view. The R key returns to it.
type ViewerConfig struct {
	Image        string       `yaml:"image"` // heightmap opened at startup
	Projection   string       `yaml:"projection"`
	Wireframe    bool         `yaml:"wireframe"`
	HeightScale  float32      `yaml:"height_scale"`
	Mapping      string       `yaml:"mapping"`
	RotationMode string       `yaml:"rotation_mode"`
	PanSpeed     float32      `yaml:"pan_speed"`
	Camera       CameraConfig `yaml:"camera"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CameraConfig positions the camera.
type CameraConfig struct {
	Eye    [3]float32 `yaml:"eye,flow"`
	Target [3]float32 `yaml:"target,flow"`
	Up     [3]float32 `yaml:"up,flow"`
}

// ServerConfig holds websocket server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadLimit    int64         `yaml:"read_limit"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Viewer: ViewerConfig{
			Projection:    "perspective",
			HeightScale:   1,
			Mapping:       "centered",
			RotationMode:  "delta",
			PanSpeed:      0.01,
			ScreenshotDir: "screenshots",
			Camera: CameraConfig{
				Eye:    [3]float32{0, 5, 5},
				Target: [3]float32{0, 0, 0},
				Up:     [3]float32{0, 1, 0},
			},
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadLimit:    16 << 20,
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// ViewerOptions converts the viewer section into viewer.Options.
func (c *Config) ViewerOptions() (viewer.Options, error) {
	v := c.Viewer
	opts := viewer.Options{
		Camera: camera.Camera{
			Eye:    vec3(v.Camera.Eye),
			Target: vec3(v.Camera.Target),
			Up:     vec3(v.Camera.Up),
		},
		Wireframe:   v.Wireframe,
		HeightScale: v.HeightScale,
		PanSpeed:    v.PanSpeed,
	}

	var err error
	if opts.Projection, err = input.ParseProjection(v.Projection); err != nil {
		return opts, fmt.Errorf("viewer.projection: %w", err)
	}
	if opts.Mapping, err = terrain.ParseMapping(v.Mapping); err != nil {
		return opts, fmt.Errorf("viewer.mapping: %w", err)
	}
	if opts.Rotation, err = interaction.ParseRotationMode(v.RotationMode); err != nil {
		return opts, fmt.Errorf("viewer.rotation_mode: %w", err)
	}
	if opts.HeightScale <= 0 {
		return opts, fmt.Errorf("viewer.height_scale: must be positive, got %v", opts.HeightScale)
	}
	if opts.PanSpeed <= 0 {
		return opts, fmt.Errorf("viewer.pan_speed: must be positive, got %v", opts.PanSpeed)
	}
	if _, err := opts.Camera.ViewMatrix(); err != nil {
		return opts, fmt.Errorf("viewer.camera: %w", err)
	}
	return opts, nil
}

// Validate checks the settings that the viewer and server cannot start without.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if _, err := c.ViewerOptions(); err != nil {
		return err
	}
	if c.Server.ReadLimit <= 0 {
		return fmt.Errorf("server.read_limit: must be positive, got %d", c.Server.ReadLimit)
	}
	return nil
}
