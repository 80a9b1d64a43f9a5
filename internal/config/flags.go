package config

import (
	"flag"
	"fmt"

	"github.com/Faultbox/heightview/internal/engine/input"
)

// Flags are the command-line overrides shared by the commands.
type Flags struct {
	config     *string
	debug      *bool
	image      *string
	windowed   *bool
	fullscreen *bool
	width      *int
	height     *int
	projection *string
	mapping    *string
	addr       *string
	write      *string
}

// RegisterFlags defines the overrides on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:     fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
		image:      fs.String("image", "", "Heightmap image to open at startup"),
		windowed:   fs.Bool("windowed", false, "Run in windowed mode"),
		fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		width:      fs.Int("width", 0, "Window width"),
		height:     fs.Int("height", 0, "Window height"),
		projection: fs.String("projection", "", "Projection: perspective or orthographic"),
		mapping:    fs.String("mapping", "", "Heightmap mapping: centered or legacy"),
		addr:       fs.String("addr", "", "Websocket server listen address"),
		write:      fs.String("write-config", "", `Write the effective config to this path ("default" for the user config dir) and exit`),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// WritePath returns the -write-config destination, or "" when unset.
func (f *Flags) WritePath() string {
	if f == nil {
		return ""
	}
	if *f.write == "default" {
		return DefaultPath()
	}
	return *f.write
}

// apply applies flag overrides to cfg.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.image != "" {
		cfg.Viewer.Image = *f.image
	}
	if *f.windowed {
		cfg.Graphics.Fullscreen = false
	}
	if *f.fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *f.width > 0 {
		cfg.Graphics.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Graphics.Height = *f.height
	}
	if *f.projection != "" {
		p, err := input.ParseProjection(*f.projection)
		if err != nil {
			return fmt.Errorf("-projection: %w", err)
		}
		cfg.Viewer.Projection = p.String()
	}
	if *f.mapping != "" {
		cfg.Viewer.Mapping = *f.mapping
	}
	if *f.addr != "" {
		cfg.Server.Addr = *f.addr
	}
	return nil
}
