// fallback_presenter_test.go - Fallback presentation tests for VidWall

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
	"testing"
)

func TestComposeMatchesSurface(t *testing.T) {
	p := NewFallbackPresenter()
	frame := image.NewRGBA(image.Rect(0, 0, 640, 360))

	out := p.Compose(frame, 1920, 1080)
	if out == nil {
		t.Fatal("Compose returned nil for a valid frame")
	}
	if b := out.Bounds(); b.Dx() != 1920 || b.Dy() != 1080 {
		t.Errorf("composed bounds = %dx%d, want 1920x1080", b.Dx(), b.Dy())
	}

	// The buffer is reused while the surface size is stable.
	again := p.Compose(frame, 1920, 1080)
	if again != out {
		t.Error("Compose reallocated the buffer for an unchanged surface")
	}

	// And reallocated when it changes.
	resized := p.Compose(frame, 800, 1200)
	if resized == out {
		t.Error("Compose kept a stale buffer across a surface resize")
	}
	if b := resized.Bounds(); b.Dx() != 800 || b.Dy() != 1200 {
		t.Errorf("composed bounds = %dx%d, want 800x1200", b.Dx(), b.Dy())
	}
}

func TestComposeDegenerateInputs(t *testing.T) {
	p := NewFallbackPresenter()
	if out := p.Compose(nil, 1920, 1080); out != nil {
		t.Error("Compose of nil frame should return nil")
	}
	frame := image.NewRGBA(image.Rect(0, 0, 640, 360))
	if out := p.Compose(frame, 0, 1080); out != nil {
		t.Error("Compose onto zero-width surface should return nil")
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if out := p.Compose(empty, 1920, 1080); out != nil {
		t.Error("Compose of empty frame should return nil")
	}
}

func TestActivatePlaysPrimarySilencesSecondary(t *testing.T) {
	p := NewFallbackPresenter()
	primary := newFakeSource("a.mp4", 1280, 720)
	secondary := newFakeSource("b.mp4", 720, 1280)

	played := 0
	err := p.Activate(primary, secondary, func(src MediaSource) error {
		played++
		return src.Play()
	})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if played != 1 || primary.plays() != 1 {
		t.Errorf("primary played %d times via gate %d, want 1/1", primary.plays(), played)
	}
	if secondary.pauses() != 1 {
		t.Errorf("secondary paused %d times, want 1", secondary.pauses())
	}
	if secondary.plays() != 0 {
		t.Errorf("secondary played %d times, want 0", secondary.plays())
	}
}

func TestActivateWithoutPrimary(t *testing.T) {
	p := NewFallbackPresenter()
	secondary := newFakeSource("b.mp4", 720, 1280)

	err := p.Activate(nil, secondary, func(src MediaSource) error {
		t.Error("play attempted with no primary")
		return nil
	})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if secondary.pauses() != 1 {
		t.Errorf("secondary paused %d times, want 1", secondary.pauses())
	}
}
