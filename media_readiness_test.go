// media_readiness_test.go - Readiness gate tests for VidWall

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
	"errors"
	"testing"
	"time"
)

func TestAwaitReadyAlreadyReady(t *testing.T) {
	src := newFakeSource("clip.mp4", 1280, 720)
	src.setReady(true)

	// Awaiting an already-ready source is idempotent and must not
	// re-trigger a load.
	for i := 0; i < 2; i++ {
		if err := AwaitReady(src, time.Second); err != nil {
			t.Fatalf("AwaitReady #%d: %v", i+1, err)
		}
	}
	if src.loads() != 0 {
		t.Errorf("loads = %d, want 0", src.loads())
	}
}

func TestAwaitReadyTriggersLoad(t *testing.T) {
	src := newFakeSource("clip.mp4", 1280, 720)

	if err := AwaitReady(src, time.Second); err != nil {
		t.Fatalf("AwaitReady: %v", err)
	}
	if src.loads() != 1 {
		t.Errorf("loads = %d, want 1", src.loads())
	}
}

func TestAwaitReadyPollsUntilReady(t *testing.T) {
	src := newFakeSource("clip.mp4", 1280, 720)
	src.readyOnLoad = false

	go func() {
		time.Sleep(40 * time.Millisecond)
		src.setReady(true)
	}()
	if err := AwaitReady(src, time.Second); err != nil {
		t.Fatalf("AwaitReady: %v", err)
	}
}

func TestAwaitReadyTimesOut(t *testing.T) {
	src := newFakeSource("clip.mp4", 1280, 720)
	src.readyOnLoad = false

	err := AwaitReady(src, 30*time.Millisecond)
	if !errors.Is(err, ErrNeverReady) {
		t.Fatalf("err = %v, want ErrNeverReady", err)
	}
}

func TestAwaitReadyLoadFailure(t *testing.T) {
	src := newFakeSource("clip.mp4", 1280, 720)
	loadErr := errors.New("container truncated")
	src.loadErr = loadErr

	err := AwaitReady(src, time.Second)
	if !errors.Is(err, loadErr) {
		t.Fatalf("err = %v, want wrapped load error", err)
	}
}
