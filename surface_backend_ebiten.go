// surface_backend_ebiten.go - Ebiten render surface backend for VidWall

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

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSurface renders through an ebiten window. The Draw callback is
// the display-refresh scheduling primitive: ebiten invokes it once per
// refresh, and the controller's frame function runs inside it.
type EbitenSurface struct {
	mu  sync.RWMutex
	bus *Bus

	running  bool
	acquired bool
	cfg      SurfaceConfig

	width  int
	height int

	lastW      int
	lastH      int
	lastOrient Orientation

	shader     *ebiten.Shader
	tex        *ebiten.Image
	presentImg *ebiten.Image
	uploadBuf  []byte

	// screen is only valid for the duration of one Draw call.
	screen  *ebiten.Image
	frameFn func()
}

func NewEbitenSurface(bus *Bus) *EbitenSurface {
	return &EbitenSurface{
		bus:    bus,
		width:  1280,
		height: 720,
	}
}

func (es *EbitenSurface) Acquire(cfg SurfaceConfig) error {
	es.mu.Lock()
	defer es.mu.Unlock()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &SurfaceError{Operation: "acquire", Details: "invalid window dimensions"}
	}
	es.cfg = cfg
	es.width = cfg.Width
	es.height = cfg.Height
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if cfg.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	es.acquired = true
	return nil
}

func (es *EbitenSurface) CompileShader(src []byte) error {
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return &SurfaceError{Operation: "shader compile", Details: "tiling program rejected", Err: err}
	}
	es.mu.Lock()
	if es.shader != nil {
		es.shader.Dispose()
	}
	es.shader = shader
	es.mu.Unlock()
	return nil
}

func (es *EbitenSurface) Size() (int, int) {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.width, es.height
}

func (es *EbitenSurface) Clear() {
	if es.screen != nil {
		es.screen.Clear()
	}
}

func (es *EbitenSurface) UploadFrame(img *image.RGBA) error {
	if img == nil {
		return &SurfaceError{Operation: "frame upload", Details: "nil frame"}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return &SurfaceError{Operation: "frame upload", Details: "empty frame"}
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.tex != nil {
		tb := es.tex.Bounds()
		if tb.Dx() != w || tb.Dy() != h {
			es.tex.Dispose()
			es.tex = nil
		}
	}
	if es.tex == nil {
		es.tex = ebiten.NewImage(w, h)
	}
	if img.Stride == 4*w {
		es.tex.WritePixels(img.Pix)
		return nil
	}
	// Subimage with a wider stride; repack row by row.
	if len(es.uploadBuf) != 4*w*h {
		es.uploadBuf = make([]byte, 4*w*h)
	}
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+4*w]
		copy(es.uploadBuf[y*4*w:], src)
	}
	es.tex.WritePixels(es.uploadBuf)
	return nil
}

func (es *EbitenSurface) DrawTiled(u TileUniforms) error {
	es.mu.RLock()
	shader, tex := es.shader, es.tex
	w, h := es.width, es.height
	es.mu.RUnlock()
	if es.screen == nil {
		return &SurfaceError{Operation: "draw", Details: "no active frame"}
	}
	if shader == nil {
		return &SurfaceError{Operation: "draw", Details: "no compiled shader"}
	}
	if tex == nil {
		return &SurfaceError{Operation: "draw", Details: "no frame texture"}
	}
	tb := tex.Bounds()
	tw, th := float32(tb.Dx()), float32(tb.Dy())
	fw, fh := float32(w), float32(h)
	vertices := []ebiten.Vertex{
		{DstX: 0, DstY: 0, SrcX: 0, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: fw, DstY: 0, SrcX: tw, SrcY: 0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: fh, SrcX: 0, SrcY: th, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: fw, DstY: fh, SrcX: tw, SrcY: th, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
	indices := []uint16{0, 1, 2, 1, 2, 3}
	opts := &ebiten.DrawTrianglesShaderOptions{
		Uniforms: tileShaderUniforms(u),
	}
	opts.Images[0] = tex
	es.screen.DrawTrianglesShader(vertices, indices, shader, opts)
	return nil
}

func (es *EbitenSurface) Present(img *image.RGBA) error {
	if img == nil {
		return &SurfaceError{Operation: "present", Details: "nil frame"}
	}
	if es.screen == nil {
		return &SurfaceError{Operation: "present", Details: "no active frame"}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	es.mu.Lock()
	if es.presentImg != nil {
		pb := es.presentImg.Bounds()
		if pb.Dx() != w || pb.Dy() != h {
			es.presentImg.Dispose()
			es.presentImg = nil
		}
	}
	if es.presentImg == nil {
		es.presentImg = ebiten.NewImage(w, h)
	}
	es.presentImg.WritePixels(img.Pix)
	dst := es.presentImg
	es.mu.Unlock()
	es.screen.DrawImage(dst, nil)
	return nil
}

func (es *EbitenSurface) Run(frame func()) error {
	es.mu.Lock()
	if !es.acquired {
		es.mu.Unlock()
		return &SurfaceError{Operation: "run", Details: "surface not acquired"}
	}
	es.frameFn = frame
	es.running = true
	es.mu.Unlock()
	if err := ebiten.RunGame(es); err != nil {
		es.mu.Lock()
		es.running = false
		es.mu.Unlock()
		return &SurfaceError{Operation: "run", Details: "refresh loop ended", Err: err}
	}
	es.mu.Lock()
	es.running = false
	es.mu.Unlock()
	return nil
}

func (es *EbitenSurface) Stop() {
	es.mu.Lock()
	es.running = false
	es.mu.Unlock()
}

func (es *EbitenSurface) Release() {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.tex != nil {
		es.tex.Dispose()
		es.tex = nil
	}
	if es.presentImg != nil {
		es.presentImg.Dispose()
		es.presentImg = nil
	}
	if es.shader != nil {
		es.shader.Dispose()
		es.shader = nil
	}
}

func (es *EbitenSurface) Running() bool {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.running
}

// Update samples window state and user input once per tick. Size changes
// publish resize events; aspect flips additionally publish orientation
// events so both triggers exist independently, converging on the same
// decision function.
func (es *EbitenSurface) Update() error {
	es.mu.RLock()
	running := es.running
	w, h := es.width, es.height
	lastW, lastH, lastOrient := es.lastW, es.lastH, es.lastOrient
	es.mu.RUnlock()
	if !running {
		return ebiten.Termination
	}

	if w != lastW || h != lastH {
		orient := ChooseOrientation(w, h)
		es.mu.Lock()
		es.lastW, es.lastH = w, h
		es.lastOrient = orient
		es.mu.Unlock()
		es.bus.Publish(ResizeEvent{Width: w, Height: h})
		if orient != lastOrient {
			es.bus.Publish(OrientationChangedEvent{Orientation: orient})
		}
	}

	es.sampleInteraction()
	return nil
}

// sampleInteraction publishes one event per input category per tick.
// Subscribers that only care about the first gesture detach themselves.
func (es *EbitenSurface) sampleInteraction() {
	if len(inpututil.AppendJustPressedKeys(nil)) > 0 {
		es.bus.Publish(InteractionEvent{Kind: InteractKey})
	}
	for _, btn := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonMiddle, ebiten.MouseButtonRight} {
		if inpututil.IsMouseButtonJustPressed(btn) {
			es.bus.Publish(InteractionEvent{Kind: InteractPointer})
			break
		}
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		es.bus.Publish(InteractionEvent{Kind: InteractTouch})
	}
}

func (es *EbitenSurface) Draw(screen *ebiten.Image) {
	es.mu.RLock()
	frame := es.frameFn
	es.mu.RUnlock()
	es.screen = screen
	if frame != nil {
		frame()
	}
	es.screen = nil
}

// Layout renders at native resolution, honouring the device scale
// factor of the active monitor.
func (es *EbitenSurface) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(outsideWidth) * scale)
	h := int(float64(outsideHeight) * scale)
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	es.mu.Lock()
	es.width, es.height = w, h
	es.mu.Unlock()
	return w, h
}
