// fallback_presenter.go - Shaderless fallback presentation for VidWall

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

	xdraw "golang.org/x/image/draw"
)

// FallbackPresenter shows the active clip directly when the shader
// pipeline is unavailable: frames are scaled to cover the surface on
// the CPU and handed to the backend as a plain blit. No GPU resources
// are involved beyond final presentation.
type FallbackPresenter struct {
	buf *image.RGBA
}

func NewFallbackPresenter() *FallbackPresenter {
	return &FallbackPresenter{}
}

// Activate makes primary the visible source and silences secondary.
// play is the controller's gated playback attempt; rejections are the
// caller's to log. Re-invoked on every resize or orientation change
// while in fallback mode.
func (p *FallbackPresenter) Activate(primary, secondary MediaSource, play func(MediaSource) error) error {
	if secondary != nil && secondary != primary {
		secondary.Pause()
	}
	if primary == nil {
		return nil
	}
	return play(primary)
}

// Compose scales a frame to cover a surfaceW x surfaceH area without
// letterboxing, cropping symmetrically. The buffer is reused across
// frames while the surface size is stable.
func (p *FallbackPresenter) Compose(frame *image.RGBA, surfaceW, surfaceH int) *image.RGBA {
	if frame == nil || surfaceW <= 0 || surfaceH <= 0 {
		return nil
	}
	fb := frame.Bounds()
	fw, fh := fb.Dx(), fb.Dy()
	if fw <= 0 || fh <= 0 {
		return nil
	}
	if p.buf == nil || p.buf.Bounds().Dx() != surfaceW || p.buf.Bounds().Dy() != surfaceH {
		p.buf = image.NewRGBA(image.Rect(0, 0, surfaceW, surfaceH))
	}

	// Cover scale: the smaller dimension overflows and is cropped.
	scaleW := float64(surfaceW) / float64(fw)
	scaleH := float64(surfaceH) / float64(fh)
	scale := scaleW
	if scaleH > scale {
		scale = scaleH
	}
	dw := int(float64(fw)*scale + 0.5)
	dh := int(float64(fh)*scale + 0.5)
	offX := (surfaceW - dw) / 2
	offY := (surfaceH - dh) / 2
	dstRect := image.Rect(offX, offY, offX+dw, offY+dh)

	xdraw.ApproxBiLinear.Scale(p.buf, dstRect, frame, fb, xdraw.Src, nil)
	return p.buf
}
