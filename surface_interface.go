// surface_interface.go - Render surface interface for VidWall

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
	"fmt"
	"image"
)

// SurfaceError provides detailed error context for surface operations
type SurfaceError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *SurfaceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("surface %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("surface %s failed: %s", e.Operation, e.Details)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// SurfaceConfig contains backend-independent window configuration.
type SurfaceConfig struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// RenderSurface is the minimal contract a display backend must
// implement. The controller owns exactly one surface; all GPU resources
// live behind it and are released through it.
type RenderSurface interface {
	// Acquire creates the window/context. Failure is recoverable: the
	// controller drops to fallback presentation.
	Acquire(cfg SurfaceConfig) error
	// CompileShader builds the tiling program. Compile or link failure
	// is likewise recoverable via fallback.
	CompileShader(src []byte) error

	// Size returns current surface dimensions in pixels.
	Size() (int, int)
	// Clear wipes the surface at the start of a frame.
	Clear()
	// UploadFrame copies a decoded frame into the GPU-resident texture.
	UploadFrame(img *image.RGBA) error
	// DrawTiled issues the two-triangle full-surface quad through the
	// tiling shader with the given uniforms.
	DrawTiled(u TileUniforms) error
	// Present blits a pre-composed frame directly, bypassing the shader
	// pipeline. Used only in fallback mode.
	Present(img *image.RGBA) error

	// Run drives the refresh loop, invoking frame once per display
	// refresh until Stop. Blocks the calling goroutine.
	Run(frame func()) error
	// Stop ends the refresh loop. Idempotent.
	Stop()
	// Release frees GPU resources. Safe to call at any point of the
	// lifecycle, including after a failed Acquire, and more than once.
	Release()
	// Running reports whether the refresh loop is active.
	Running() bool
}

// Predefined surface backend types
const (
	SURFACE_BACKEND_EBITEN   = iota // Windowed GPU backend
	SURFACE_BACKEND_HEADLESS        // No display; tests and probe runs
)

// NewRenderSurface creates a surface using the specified backend. The
// bus receives resize, orientation and interaction events sampled by
// the backend.
func NewRenderSurface(backend int, bus *Bus) (RenderSurface, error) {
	switch backend {
	case SURFACE_BACKEND_EBITEN:
		return NewEbitenSurface(bus), nil
	case SURFACE_BACKEND_HEADLESS:
		return NewHeadlessSurface(bus), nil
	}
	return nil, &SurfaceError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
