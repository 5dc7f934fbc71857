// surface_backend_headless.go - Headless render surface backend for VidWall

/*
██╗   ██╗██╗██████╗ ██╗    ██╗ █████╗ ██╗     ██╗
██║   ██║██║██╔══██╗██║    ██║██╔══██╗██║     ██║
██║   ██║██║██║  ██║██║ █╗ ██║███████║██║     ██║
╚██╗ ██╔╝██║██║  ██║██║███╗██║██╔══██║██║     ██║
 ╚████╔╝ ██║██████╔╝╚███╔███╔╝██║  ██║███████╗███████╗
  ╚═══╝  ╚═╝╚═════╝  ╚═══╝╚═══╝╚═╝  ╚═╝╚══════╝╚══════╝

(c) 2025 - 2026 The VidWall Authors
https://github.com/vidwall/vidwall
License: GPLv3 or later
*/

package main

import (
	"image"
	"sync"
	"time"
)

// HeadlessSurface satisfies RenderSurface without a display. It backs
// the -headless flag and the test suite: frames can be driven manually
// with Step or by the ticker loop in Run.
type HeadlessSurface struct {
	mu  sync.Mutex
	bus *Bus

	acquired bool
	released bool
	running  bool
	width    int
	height   int

	shaderCompiled bool
	failAcquire    bool
	failShader     bool

	frameFn func()
	done    chan struct{}

	frameCount   uint64
	uploadCount  int
	tiledCount   int
	presentCount int
	lastUniforms TileUniforms
	lastUpload   *image.RGBA
}

func NewHeadlessSurface(bus *Bus) *HeadlessSurface {
	return &HeadlessSurface{
		bus:    bus,
		width:  1280,
		height: 720,
	}
}

func (hs *HeadlessSurface) Acquire(cfg SurfaceConfig) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if hs.failAcquire {
		return &SurfaceError{Operation: "acquire", Details: "no context available"}
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		hs.width = cfg.Width
		hs.height = cfg.Height
	}
	hs.acquired = true
	hs.released = false
	return nil
}

func (hs *HeadlessSurface) CompileShader(src []byte) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if hs.failShader {
		return &SurfaceError{Operation: "shader compile", Details: "compilation unavailable"}
	}
	if len(src) == 0 {
		return &SurfaceError{Operation: "shader compile", Details: "empty source"}
	}
	hs.shaderCompiled = true
	return nil
}

func (hs *HeadlessSurface) Size() (int, int) {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.width, hs.height
}

// Resize changes surface dimensions and publishes the same events the
// windowed backend would.
func (hs *HeadlessSurface) Resize(w, h int) {
	hs.mu.Lock()
	prev := ChooseOrientation(hs.width, hs.height)
	hs.width, hs.height = w, h
	next := ChooseOrientation(w, h)
	hs.mu.Unlock()
	hs.bus.Publish(ResizeEvent{Width: w, Height: h})
	if next != prev {
		hs.bus.Publish(OrientationChangedEvent{Orientation: next})
	}
}

func (hs *HeadlessSurface) Clear() {}

func (hs *HeadlessSurface) UploadFrame(img *image.RGBA) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if img == nil {
		return &SurfaceError{Operation: "frame upload", Details: "nil frame"}
	}
	hs.uploadCount++
	hs.lastUpload = img
	return nil
}

func (hs *HeadlessSurface) DrawTiled(u TileUniforms) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if !hs.shaderCompiled {
		return &SurfaceError{Operation: "draw", Details: "no compiled shader"}
	}
	hs.tiledCount++
	hs.lastUniforms = u
	return nil
}

func (hs *HeadlessSurface) Present(img *image.RGBA) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if img == nil {
		return &SurfaceError{Operation: "present", Details: "nil frame"}
	}
	hs.presentCount++
	return nil
}

// Step invokes the frame callback once, standing in for one display
// refresh.
func (hs *HeadlessSurface) Step() {
	hs.mu.Lock()
	frame := hs.frameFn
	hs.frameCount++
	hs.mu.Unlock()
	if frame != nil {
		frame()
	}
}

func (hs *HeadlessSurface) Run(frame func()) error {
	hs.mu.Lock()
	if hs.running {
		hs.mu.Unlock()
		return nil
	}
	hs.frameFn = frame
	hs.running = true
	hs.done = make(chan struct{})
	done := hs.done
	hs.mu.Unlock()

	tick := time.NewTicker(time.Second / 60)
	defer tick.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-tick.C:
			hs.Step()
		}
	}
}

func (hs *HeadlessSurface) Stop() {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	if !hs.running {
		return
	}
	hs.running = false
	if hs.done != nil {
		close(hs.done)
		hs.done = nil
	}
}

func (hs *HeadlessSurface) Release() {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.shaderCompiled = false
	hs.released = true
}

func (hs *HeadlessSurface) Running() bool {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	return hs.running
}
