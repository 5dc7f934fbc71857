// media_readiness.go - Media readiness gate for VidWall

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
	"fmt"
	"time"
)

// defaultReadyTimeout bounds how long a selection waits for a source to
// report its intrinsic dimensions before giving up on it.
const defaultReadyTimeout = 5 * time.Second

// ErrNeverReady is returned when a source fails to expose dimensions
// within the timeout even after an explicit load attempt.
var ErrNeverReady = errors.New("media source never became ready")

// AwaitReady resolves once the source knows its intrinsic width and
// height. An already-ready source resolves immediately without
// re-triggering a load. Otherwise a load is issued explicitly, then the
// gate polls until the dimensions appear or the timeout elapses; a
// broken source therefore resolves with ErrNeverReady instead of
// hanging the caller.
func AwaitReady(src MediaSource, timeout time.Duration) error {
	if src.Ready() {
		return nil
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("readiness gate: %w", err)
	}
	if src.Ready() {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}
	deadline := time.Now().Add(timeout)
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	for range tick.C {
		if src.Ready() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("readiness gate: %w after %v", ErrNeverReady, timeout)
		}
	}
	return nil
}
