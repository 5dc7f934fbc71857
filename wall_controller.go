// wall_controller.go - Render surface controller state machine for VidWall

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
	"log"
	"sync"
	"time"
)

// wallState is the explicit lifecycle tag of the controller. Transitions
// are funnelled through the controller's lock; drawing while disposed is
// unreachable rather than guarded ad hoc.
type wallState int

const (
	stateUninitialized wallState = iota
	stateSurfaceAcquired
	stateRunning
	stateFallback
	stateDisposed
)

func (s wallState) String() string {
	switch s {
	case stateSurfaceAcquired:
		return "surface-acquired"
	case stateRunning:
		return "running"
	case stateFallback:
		return "fallback"
	case stateDisposed:
		return "disposed"
	}
	return "uninitialized"
}

// ErrPlaybackBlocked reports a playback attempt rejected by the gesture
// policy. Never fatal; attempts are retried on the first interaction.
var ErrPlaybackBlocked = errors.New("playback blocked until user gesture")

// WallOptions carries the presentation tuning the controller needs.
type WallOptions struct {
	Title          string
	Width          int
	Height         int
	Fullscreen     bool
	PaddingPercent float64
	FlipY          bool
	RequireGesture bool
}

// WallController owns the render surface, the compiled tiling program,
// the frame texture and the per-refresh draw loop. It mediates between
// orientation selection and media readiness so that exactly one source
// is active, and degrades to direct presentation when the shader
// pipeline is unavailable. Mount and Dispose are the entire contract the
// surrounding binary needs.
type WallController struct {
	mu sync.Mutex

	state   wallState
	variant OrientationVariant
	opts    WallOptions

	surface  RenderSurface
	bus      *Bus
	probe    CapabilityProbe
	fallback *FallbackPresenter

	// sourceFactory builds playback handles from resolved paths; tests
	// substitute fakes.
	sourceFactory func(path string) MediaSource
	readyTimeout  time.Duration

	sources         map[string]MediaSource
	active          MediaSource
	activeOrient    Orientation
	pending         MediaSource
	requestedOrient Orientation
	selected        bool

	dirty      bool
	interacted bool
	surfaceW   int
	surfaceH   int

	unsubs           []func()
	interactionUnsub func()
}

// NewWallController wires a controller to its collaborators. Nothing is
// acquired until Mount.
func NewWallController(variant OrientationVariant, surface RenderSurface, bus *Bus, probe CapabilityProbe, opts WallOptions) *WallController {
	return &WallController{
		variant:  variant,
		opts:     opts,
		surface:  surface,
		bus:      bus,
		probe:    probe,
		fallback: NewFallbackPresenter(),
		sourceFactory: func(path string) MediaSource {
			return NewMediaClip(path)
		},
		readyTimeout: defaultReadyTimeout,
		sources:      make(map[string]MediaSource),
	}
}

// Mount acquires the surface, compiles the tiling program and starts the
// first media selection. Surface or shader failure is recovered locally
// by entering fallback mode; the wall always shows something.
func (wc *WallController) Mount() error {
	wc.mu.Lock()
	if wc.state != stateUninitialized {
		state := wc.state
		wc.mu.Unlock()
		if state == stateDisposed {
			return nil
		}
		return errors.New("controller already mounted")
	}
	wc.mu.Unlock()

	err := wc.surface.Acquire(SurfaceConfig{
		Title:      wc.opts.Title,
		Width:      wc.opts.Width,
		Height:     wc.opts.Height,
		Fullscreen: wc.opts.Fullscreen,
	})
	if err == nil {
		err = wc.surface.CompileShader(TileShaderSrc)
	}

	wc.mu.Lock()
	if wc.state == stateDisposed {
		wc.mu.Unlock()
		return nil
	}
	if err != nil {
		log.Printf("warning: shader pipeline unavailable, using direct presentation: %v", err)
		wc.state = stateFallback
	} else {
		wc.state = stateSurfaceAcquired
	}
	wc.attachListenersLocked()
	w, h := wc.surface.Size()
	wc.surfaceW, wc.surfaceH = w, h
	wc.selectForLocked(ChooseOrientation(w, h), true)
	wc.mu.Unlock()
	return nil
}

// Run drives the refresh loop until Stop or Dispose. Blocks.
func (wc *WallController) Run() error {
	return wc.surface.Run(wc.renderFrame)
}

// attachListenersLocked subscribes resize, orientation and interaction
// handlers. Each subscription's teardown handle is collected so Dispose
// detaches everything unconditionally, whatever state we reached.
func (wc *WallController) attachListenersLocked() {
	wc.unsubs = append(wc.unsubs, wc.bus.Subscribe(func(e ResizeEvent) {
		wc.onViewportChange(e.Width, e.Height)
	}))
	wc.unsubs = append(wc.unsubs, wc.bus.Subscribe(func(e OrientationChangedEvent) {
		wc.onOrientationSignal(e.Orientation)
	}))
	unsub := wc.bus.Subscribe(func(e InteractionEvent) {
		wc.onFirstInteraction()
	})
	wc.interactionUnsub = unsub
	wc.unsubs = append(wc.unsubs, unsub)
}

// renderFrame runs once per display refresh inside the surface's draw
// callback. Ordering within a frame: resize handling, texture upload,
// uniform recomputation, draw.
func (wc *WallController) renderFrame() {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	switch wc.state {
	case stateFallback:
		wc.presentFallbackLocked()
		return
	case stateRunning:
	default:
		// Uninitialized, awaiting first selection, or disposed: skip.
		return
	}

	active := wc.active
	if active == nil {
		return
	}

	w, h := wc.surface.Size()
	wc.surfaceW, wc.surfaceH = w, h

	wc.surface.Clear()

	if wc.dirty || active.Advancing() {
		if frame := active.Frame(); frame != nil {
			if err := wc.surface.UploadFrame(frame); err != nil {
				log.Printf("frame upload: %v", err)
			} else {
				wc.dirty = false
			}
		}
	}

	// Uniforms are recomputed every frame; surface size changes
	// independently of media state.
	vw, vh := active.Size()
	u := ComputeTileUniforms(w, h, vw, vh, wc.opts.PaddingPercent, wc.opts.FlipY)
	if err := wc.surface.DrawTiled(u); err != nil {
		log.Printf("warning: draw failed, using direct presentation: %v", err)
		wc.enterFallbackLocked()
	}
}

func (wc *WallController) presentFallbackLocked() {
	active := wc.active
	if active == nil {
		return
	}
	frame := active.Frame()
	if frame == nil {
		return
	}
	// Dimensions are kept current by resize events; no surface query in
	// the fallback hot path.
	w, h := wc.surfaceW, wc.surfaceH
	if composed := wc.fallback.Compose(frame, w, h); composed != nil {
		if err := wc.surface.Present(composed); err != nil {
			log.Printf("fallback present: %v", err)
		}
	}
}

// onViewportChange handles resize events. Dimensions always update; a
// media re-selection happens only when the orientation classification
// itself changed.
func (wc *WallController) onViewportChange(w, h int) {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.state == stateDisposed {
		return
	}
	wc.surfaceW, wc.surfaceH = w, h
	o := ChooseOrientation(w, h)
	if wc.selected && o == wc.requestedOrient {
		if wc.state == stateFallback {
			wc.activateFallbackLocked()
		}
		return
	}
	wc.selectForLocked(o, false)
}

// onOrientationSignal is the second, independent trigger; it converges
// on the same decision path as resize.
func (wc *WallController) onOrientationSignal(o Orientation) {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.state == stateDisposed {
		return
	}
	if wc.selected && o == wc.requestedOrient {
		return
	}
	wc.selectForLocked(o, false)
}

// selectForLocked runs one media selection: capability probe, source
// selection, preload split, readiness await, playback attempt. The
// readiness await is deferred to its own goroutine so the render loop
// stays responsive; its completion is inert once the controller is
// disposed or a newer selection supersedes it.
func (wc *WallController) selectForLocked(o Orientation, initial bool) {
	wc.requestedOrient = o
	wc.selected = true

	caps := wc.probe.Probe()
	set, eff := wc.variant.ActiveSet(o)
	srcs := SelectSources(set, caps)
	if len(srcs) == 0 {
		log.Printf("no playable sources for %s variant", eff)
		return
	}
	wc.startCandidateLocked(eff, srcs, 0)
}

// startCandidateLocked runs the selection pipeline for the candidate at
// idx, advancing down the ordered list when one fails so the mandatory
// fallback entry at the end is always reached.
func (wc *WallController) startCandidateLocked(eff Orientation, srcs []Source, idx int) {
	target := wc.sourceForLocked(srcs[idx].Path)
	if target == nil {
		return
	}
	if target == wc.active {
		// Same element: no pause/preload/replay sequence, but any
		// in-flight switch is now superseded and must not complete, and
		// it may already have paused this clip.
		wc.pending = nil
		if err := wc.attemptPlayLocked(target); err != nil {
			log.Printf("playback attempt: %v", err)
		}
		return
	}

	if wc.active != nil {
		wc.active.Pause()
	}
	target.SetPreload(PreloadFull)
	if other := wc.otherSourceLocked(target); other != nil {
		// Metadata-only on the inactive variant saves decode bandwidth.
		other.SetPreload(PreloadMetadata)
	}

	wc.pending = target
	timeout := wc.readyTimeout
	go func() {
		err := AwaitReady(target, timeout)
		wc.mu.Lock()
		defer wc.mu.Unlock()
		if wc.state == stateDisposed || wc.pending != target {
			return
		}
		wc.pending = nil
		if err != nil {
			log.Printf("diagnostic: %v", err)
			wc.discardSourceLocked(target)
			if idx+1 < len(srcs) {
				wc.startCandidateLocked(eff, srcs, idx+1)
			} else {
				log.Printf("no candidate for %s variant became ready", eff)
			}
			return
		}
		wc.completeSelectionLocked(target, eff)
	}()
}

func (wc *WallController) completeSelectionLocked(target MediaSource, eff Orientation) {
	if err := wc.attemptPlayLocked(target); err != nil {
		log.Printf("playback attempt: %v", err)
	}
	wc.active = target
	wc.activeOrient = eff
	wc.dirty = true
	log.Printf("presenting %s clip", wc.activeOrient)

	// Forced resize so the first drawn frame sees current dimensions.
	w, h := wc.surface.Size()
	wc.surfaceW, wc.surfaceH = w, h

	switch wc.state {
	case stateSurfaceAcquired:
		wc.state = stateRunning
	case stateFallback:
		wc.activateFallbackLocked()
	}
}

// sourceForLocked returns the cached source for a resolved path,
// creating it on first use. Keyed by path so a discarded candidate's
// replacement never resurrects the broken handle.
func (wc *WallController) sourceForLocked(path string) MediaSource {
	if src, ok := wc.sources[path]; ok {
		return src
	}
	src := wc.sourceFactory(path)
	if src == nil {
		return nil
	}
	wc.sources[path] = src
	return src
}

// discardSourceLocked drops a failed candidate from the cache and closes
// it off the lock.
func (wc *WallController) discardSourceLocked(src MediaSource) {
	for path, cached := range wc.sources {
		if cached == src {
			delete(wc.sources, path)
		}
	}
	go func() {
		if err := src.Close(); err != nil {
			log.Printf("source close: %v", err)
		}
	}()
}

func (wc *WallController) otherSourceLocked(target MediaSource) MediaSource {
	for _, src := range wc.sources {
		if src != target {
			return src
		}
	}
	return nil
}

// attemptPlayLocked is the single gated playback path. Rejection is
// recoverable and only ever logged by callers.
func (wc *WallController) attemptPlayLocked(src MediaSource) error {
	if wc.opts.RequireGesture && !wc.interacted {
		return ErrPlaybackBlocked
	}
	return src.Play()
}

// onFirstInteraction fires once: it marks the session interacted,
// retries playback on every managed source, then permanently detaches
// its own subscription.
func (wc *WallController) onFirstInteraction() {
	wc.mu.Lock()
	if wc.state == stateDisposed || wc.interacted {
		wc.mu.Unlock()
		return
	}
	wc.interacted = true
	sources := make([]MediaSource, 0, len(wc.sources))
	for _, src := range wc.sources {
		sources = append(sources, src)
	}
	unsub := wc.interactionUnsub
	wc.interactionUnsub = nil
	wc.mu.Unlock()

	for _, src := range sources {
		if err := src.Play(); err != nil {
			log.Printf("playback attempt: %v", err)
		}
	}
	if unsub != nil {
		// Detach outside the dispatch path.
		go unsub()
	}
}

func (wc *WallController) enterFallbackLocked() {
	if wc.state == stateDisposed {
		return
	}
	wc.state = stateFallback
	wc.activateFallbackLocked()
}

func (wc *WallController) activateFallbackLocked() {
	primary := wc.active
	secondary := wc.otherSourceLocked(primary)
	err := wc.fallback.Activate(primary, secondary, func(src MediaSource) error {
		return wc.attemptPlayLocked(src)
	})
	if err != nil {
		log.Printf("playback attempt: %v", err)
	}
}

// SetTuning applies live presentation tuning (config reload). The next
// drawn frame picks it up through the per-frame uniform recomputation.
func (wc *WallController) SetTuning(paddingPercent float64, flipY bool) {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.state == stateDisposed {
		return
	}
	wc.opts.PaddingPercent = paddingPercent
	wc.opts.FlipY = flipY
}

// State reports the current lifecycle tag.
func (wc *WallController) State() string {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return wc.state.String()
}

// Dispose tears the controller down from any state: listeners detached,
// refresh loop cancelled, GPU resources released, media paused and
// closed. Idempotent and safe even if initialization never completed;
// late readiness resolutions find the disposed state and do nothing.
func (wc *WallController) Dispose() {
	wc.mu.Lock()
	if wc.state == stateDisposed {
		wc.mu.Unlock()
		return
	}
	wc.state = stateDisposed
	unsubs := wc.unsubs
	wc.unsubs = nil
	wc.interactionUnsub = nil
	sources := make([]MediaSource, 0, len(wc.sources))
	for _, src := range wc.sources {
		sources = append(sources, src)
	}
	wc.sources = make(map[string]MediaSource)
	wc.active = nil
	wc.pending = nil
	wc.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
	wc.surface.Stop()
	wc.surface.Release()
	for _, src := range sources {
		src.Pause()
		if err := src.Close(); err != nil {
			log.Printf("source close: %v", err)
		}
	}
}
