// wall_uniforms.go - Tiling uniform computation for VidWall

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

// TileUniforms are the per-frame shader parameters for the tiled quad.
// Recomputed every drawn frame; surface size can change independently of
// media state.
type TileUniforms struct {
	SurfaceW float64
	SurfaceH float64
	DisplayW float64
	DisplayH float64
	FlipY    bool
}

// ContainmentScale returns the largest uniform scale that fits a
// videoW x videoH frame entirely inside surfaceW x surfaceH without
// cropping.
func ContainmentScale(surfaceW, surfaceH, videoW, videoH float64) float64 {
	if videoW <= 0 || videoH <= 0 {
		return 0
	}
	fitW := surfaceW / videoW
	fitH := surfaceH / videoH
	if fitW < fitH {
		return fitW
	}
	return fitH
}

// ComputeTileUniforms derives the display size of one video tile.
// paddingPct percent of each surface dimension is subtracted from both
// sides before containment, so larger padding produces a smaller, more
// tightly tiled video. Containment runs on the padded dimensions; the
// order is load-bearing.
func ComputeTileUniforms(surfaceW, surfaceH, videoW, videoH int, paddingPct float64, flipY bool) TileUniforms {
	u := TileUniforms{
		SurfaceW: float64(surfaceW),
		SurfaceH: float64(surfaceH),
		FlipY:    flipY,
	}
	if surfaceW <= 0 || surfaceH <= 0 || videoW <= 0 || videoH <= 0 {
		return u
	}
	if paddingPct < 0 {
		paddingPct = 0
	}
	padW := u.SurfaceW * paddingPct / 100
	padH := u.SurfaceH * paddingPct / 100
	effW := u.SurfaceW - 2*padW
	effH := u.SurfaceH - 2*padH
	if effW <= 0 || effH <= 0 {
		return u
	}
	scale := ContainmentScale(effW, effH, float64(videoW), float64(videoH))
	u.DisplayW = float64(videoW) * scale
	u.DisplayH = float64(videoH) * scale
	return u
}
