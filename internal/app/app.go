// Package app runs the desktop viewer: SDL window, OpenGL renderer and the
// viewer driven from the window's events.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/heightview/internal/config"
	"github.com/Faultbox/heightview/internal/engine/capture"
	"github.com/Faultbox/heightview/internal/engine/input"
	"github.com/Faultbox/heightview/internal/engine/renderer"
	"github.com/Faultbox/heightview/internal/engine/window"
	"github.com/Faultbox/heightview/internal/logger"
	"github.com/Faultbox/heightview/internal/viewer"
)

// ErrCancelled is returned by a Picker when the user dismisses it.
var ErrCancelled = errors.New("cancelled")

// Picker asks the user for an image file.
type Picker func() (string, error)

const title = "heightview"

// App is the desktop viewer instance.
type App struct {
	config   *config.Config
	picker   Picker
	window   *window.Window
	renderer *renderer.Renderer
	viewer   *viewer.Viewer
	source   string // mesh shown in the title
	capture  *capture.Capture
	shoot    bool // capture the next drawn frame

	picking bool
	picked  chan string
}

// New creates the window, the GL context and the viewer.
func New(cfg *config.Config, picker Picker) (*App, error) {
	opts, err := cfg.ViewerOptions()
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		picker:  picker,
		picked:  make(chan string, 1),
		capture: capture.New(cfg.Viewer.ScreenshotDir, title),
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context created by the window.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.viewer, err = viewer.New(a.renderer, opts)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, err
	}
	a.viewer.Handle(input.Event{Type: input.EventResize, Width: width, Height: height})

	if cfg.Viewer.Image != "" {
		a.viewer.Open(cfg.Viewer.Image)
	}
	return a, nil
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.viewer.Close()
	a.renderer.Close()
	a.window.Close()
}

// Run processes events and draws frames until the viewer quits.
func (a *App) Run() error {
	logger.Info("starting render loop")

	frames := 0
	fpsTimer := time.Now()

	for !a.viewer.State().Quit {
		for _, e := range a.window.PollEvents() {
			a.handle(e)
		}

		select {
		case path := <-a.picked:
			a.picking = false
			if path != "" {
				a.viewer.Open(path)
			}
		default:
		}

		_ = a.viewer.Update() // failures are logged and keep the current mesh
		a.updateTitle()

		a.renderer.Begin()
		if _, err := a.viewer.Draw(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.shoot {
			a.shoot = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frames++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			logger.Debug("fps", zap.Float64("fps", float64(frames)/elapsed.Seconds()))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("render loop finished", zap.Uint64("frames", a.viewer.State().Frames))
	return nil
}

func (a *App) handle(e input.Event) {
	switch {
	case e.Type == input.EventResize:
		a.renderer.Resize(e.Width, e.Height)
	case e.Type == input.EventKeyDown && e.Key == input.KeyOpen:
		a.open()
		return
	case e.Type == input.EventKeyDown && e.Key == input.KeyScreenshot:
		a.shoot = true
		return
	}
	a.viewer.Handle(e)
}

// open shows the picker off the render loop; the chosen path is opened by
// Run on the main thread. An empty path means nothing was chosen.
func (a *App) open() {
	if a.picker == nil || a.picking {
		return
	}
	a.picking = true
	go func() {
		path, err := a.picker()
		switch {
		case errors.Is(err, ErrCancelled):
			logger.Debug("open cancelled")
			path = ""
		case err != nil:
			logger.Warn("file dialog failed", zap.Error(err))
			path = ""
		}
		a.picked <- path
	}()
}

func (a *App) screenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	path, err := a.capture.SavePixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) updateTitle() {
	_, source := a.viewer.Mesh()
	if source == a.source {
		return
	}
	a.source = source
	a.window.SetTitle(fmt.Sprintf("%s - %s", title, source))
}
