// tile_shader.go - Embedded Kage tiling shader for VidWall

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

/*
The shader repeats one video frame across the whole surface without
distorting its aspect ratio. Per output pixel it takes the offset from
surface center in units of one tile's display size; the fractional part
of that coordinate is the sampling position within the tile. Sampling
coordinates are clamped away from the exact 0/1 edges so linear
filtering never bleeds across tile boundaries. FlipY corrects for a
decode/sampling origin mismatch when a source needs it.

Uniforms must match the names produced by tileShaderUniforms.
*/

package main

// TileShaderSrc is the Kage source compiled by the render surface at
// acquisition time. A compile failure sends the controller to fallback.
var TileShaderSrc = []byte(`//kage:unit pixels

package main

var SurfaceSize vec2
var DisplaySize vec2
var FlipY float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	center := SurfaceSize / 2
	tile := (dstPos.xy - center) / DisplaySize
	f := fract(tile)
	f = clamp(f, vec2(0.002, 0.002), vec2(0.998, 0.998))
	if FlipY != 0 {
		f = vec2(f.x, 1-f.y)
	}
	return imageSrc0At(imageSrc0Origin() + f*imageSrc0Size())
}
`)

// tileShaderUniforms converts computed uniforms into the map the shader
// expects. Degenerate display sizes are clamped so the shader never
// divides by zero while the first frame is still loading.
func tileShaderUniforms(u TileUniforms) map[string]any {
	dw, dh := u.DisplayW, u.DisplayH
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	flip := float32(0)
	if u.FlipY {
		flip = 1
	}
	return map[string]any{
		"SurfaceSize": []float32{float32(u.SurfaceW), float32(u.SurfaceH)},
		"DisplaySize": []float32{float32(dw), float32(dh)},
		"FlipY":       flip,
	}
}
