// wall_uniforms_test.go - Tiling uniform computation tests for VidWall

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
	"math"
	"testing"
)

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestContainmentScale(t *testing.T) {
	tests := []struct {
		name                 string
		sw, sh, vw, vh, want float64
	}{
		{"wider surface limits on height", 1920, 1080, 1280, 720, 1.5},
		{"portrait surface limits on width", 1080, 1920, 1280, 720, 0.84375},
		{"exact fit", 1280, 720, 1280, 720, 1},
		{"downscale", 640, 360, 1280, 720, 0.5},
		{"degenerate video", 1920, 1080, 0, 720, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainmentScale(tt.sw, tt.sh, tt.vw, tt.vh); !closeEnough(got, tt.want) {
				t.Errorf("ContainmentScale(%v, %v, %v, %v) = %v, want %v", tt.sw, tt.sh, tt.vw, tt.vh, got, tt.want)
			}
		})
	}
}

func TestComputeTileUniforms(t *testing.T) {
	tests := []struct {
		name           string
		sw, sh, vw, vh int
		padding        float64
		wantW, wantH   float64
	}{
		// Padding shrinks the containment box before scaling, so the
		// tile is smaller than a pad-after-containment reading would
		// give.
		{"no padding fills surface", 1920, 1080, 1280, 720, 0, 1920, 1080},
		{"ten percent per side", 1920, 1080, 1280, 720, 10, 1536, 864},
		{"portrait surface", 1080, 1920, 1280, 720, 0, 1080, 607.5},
		{"negative padding clamped", 1920, 1080, 1280, 720, -5, 1920, 1080},
		{"degenerate video", 1920, 1080, 0, 0, 0, 0, 0},
		{"degenerate surface", 0, 1080, 1280, 720, 0, 0, 0},
		{"padding swallows surface", 1920, 1080, 1280, 720, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := ComputeTileUniforms(tt.sw, tt.sh, tt.vw, tt.vh, tt.padding, false)
			if !closeEnough(u.DisplayW, tt.wantW) || !closeEnough(u.DisplayH, tt.wantH) {
				t.Errorf("display = %vx%v, want %vx%v", u.DisplayW, u.DisplayH, tt.wantW, tt.wantH)
			}
			if u.SurfaceW != float64(tt.sw) || u.SurfaceH != float64(tt.sh) {
				t.Errorf("surface = %vx%v, want %dx%d", u.SurfaceW, u.SurfaceH, tt.sw, tt.sh)
			}
		})
	}
}

func TestComputeTileUniformsFlip(t *testing.T) {
	if u := ComputeTileUniforms(1920, 1080, 1280, 720, 0, true); !u.FlipY {
		t.Error("FlipY not carried into uniforms")
	}
	if u := ComputeTileUniforms(1920, 1080, 1280, 720, 0, false); u.FlipY {
		t.Error("FlipY set without being requested")
	}
}
