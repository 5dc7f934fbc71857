// media_clip.go - Decoded clip playback source for VidWall

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
	"log"
	"sync"
	"time"

	"github.com/zergon321/reisen"
)

// PreloadMode controls how much work a source does before playback.
type PreloadMode int

const (
	PreloadNone PreloadMode = iota
	// PreloadMetadata opens the container header only, enough to learn
	// intrinsic dimensions. Used for the inactive orientation to save
	// decode bandwidth.
	PreloadMetadata
	// PreloadFull opens the decoder and primes the first frame.
	PreloadFull
)

// MediaSource is the playback handle the controller manages. MediaClip
// implements it with an ffmpeg decode loop; tests use fakes.
type MediaSource interface {
	// Load opens the container and reads its header. Idempotent.
	Load() error
	// Play starts or resumes frame production.
	Play() error
	// Pause stops frame advancement without releasing the decoder.
	Pause()
	// Ready reports whether intrinsic dimensions are known.
	Ready() bool
	// Size returns the intrinsic pixel dimensions, valid once Ready.
	Size() (int, int)
	// Advancing reports whether frames are currently progressing.
	Advancing() bool
	// Frame returns the most recently decoded frame, nil before first decode.
	Frame() *image.RGBA
	// SetPreload adjusts how eagerly the source prepares itself.
	SetPreload(mode PreloadMode)
	// Close releases the decoder. Safe to call more than once.
	Close() error
}

// MediaClip decodes a clip file into RGBA frames at the stream's native
// rate, looping at end of stream. The decode loop runs on its own
// goroutine; all state is guarded because playback control arrives from
// event subscriptions.
type MediaClip struct {
	path string

	mu       sync.Mutex
	media    *reisen.Media
	stream   *reisen.VideoStream
	width    int
	height   int
	ready    bool
	playing  bool
	frame    *image.RGBA
	decodeOn bool
	closed   bool

	stop chan struct{}
	done chan struct{}
}

// NewMediaClip creates an unloaded clip for the given resolved path.
func NewMediaClip(path string) *MediaClip {
	return &MediaClip{path: path}
}

// Load opens the container header and records intrinsic dimensions.
// Calling it on a loaded clip is a no-op.
func (c *MediaClip) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

func (c *MediaClip) loadLocked() error {
	if c.closed {
		return fmt.Errorf("clip %s: closed", c.path)
	}
	if c.media != nil {
		return nil
	}
	media, err := reisen.NewMedia(c.path)
	if err != nil {
		return fmt.Errorf("clip %s: open: %w", c.path, err)
	}
	streams := media.VideoStreams()
	if len(streams) == 0 {
		media.Close()
		return fmt.Errorf("clip %s: no video stream", c.path)
	}
	c.media = media
	c.stream = streams[0]
	c.width = int(c.stream.Width())
	c.height = int(c.stream.Height())
	c.ready = c.width > 0 && c.height > 0
	return nil
}

func (c *MediaClip) SetPreload(mode PreloadMode) {
	switch mode {
	case PreloadMetadata:
		if err := c.Load(); err != nil {
			log.Printf("preload metadata: %v", err)
		}
	case PreloadFull:
		if err := c.Load(); err != nil {
			log.Printf("preload full: %v", err)
			return
		}
		if err := c.startDecode(); err != nil {
			log.Printf("preload full: %v", err)
		}
	}
}

// Play starts the decode loop if needed and resumes frame advancement.
func (c *MediaClip) Play() error {
	c.mu.Lock()
	if err := c.loadLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.playing = true
	c.mu.Unlock()
	return c.startDecode()
}

func (c *MediaClip) Pause() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
}

func (c *MediaClip) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

func (c *MediaClip) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *MediaClip) Advancing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing && c.decodeOn
}

func (c *MediaClip) Frame() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// startDecode opens the decoder and launches the paced frame loop. The
// first frame is decoded eagerly so the initial paint has content even
// while playback is still gated.
func (c *MediaClip) startDecode() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("clip %s: closed", c.path)
	}
	if c.decodeOn {
		c.mu.Unlock()
		return nil
	}
	media, stream := c.media, c.stream
	if media == nil {
		c.mu.Unlock()
		return fmt.Errorf("clip %s: not loaded", c.path)
	}
	if err := media.OpenDecode(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("clip %s: open decode: %w", c.path, err)
	}
	if err := stream.Open(); err != nil {
		media.CloseDecode()
		c.mu.Unlock()
		return fmt.Errorf("clip %s: open stream: %w", c.path, err)
	}
	c.decodeOn = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	stop, done := c.stop, c.done
	c.mu.Unlock()

	fps, _ := stream.FrameRate()
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)

	go func() {
		defer close(done)
		if img := c.nextFrame(); img != nil {
			c.setFrame(img)
		}
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				c.mu.Lock()
				playing := c.playing
				c.mu.Unlock()
				if !playing {
					continue
				}
				if img := c.nextFrame(); img != nil {
					c.setFrame(img)
				}
			}
		}
	}()
	return nil
}

// nextFrame pulls packets until one video frame decodes. At end of
// stream the clip rewinds and continues, so playback loops seamlessly.
func (c *MediaClip) nextFrame() *image.RGBA {
	c.mu.Lock()
	media, stream := c.media, c.stream
	closed := c.closed
	c.mu.Unlock()
	if closed || media == nil {
		return nil
	}
	for {
		packet, gotPacket, err := media.ReadPacket()
		if err != nil {
			log.Printf("clip %s: read packet: %v", c.path, err)
			return nil
		}
		if !gotPacket {
			if err := stream.Rewind(0); err != nil {
				log.Printf("clip %s: rewind: %v", c.path, err)
				c.Pause()
				return nil
			}
			continue
		}
		if packet.Type() != reisen.StreamVideo {
			// Holding screens are muted; audio packets are discarded.
			continue
		}
		videoFrame, gotFrame, err := stream.ReadVideoFrame()
		if err != nil {
			log.Printf("clip %s: decode frame: %v", c.path, err)
			return nil
		}
		if !gotFrame || videoFrame == nil {
			continue
		}
		return videoFrame.Image()
	}
}

func (c *MediaClip) setFrame(img *image.RGBA) {
	c.mu.Lock()
	c.frame = img
	c.mu.Unlock()
}

// Close stops the decode loop and releases the container. Idempotent.
func (c *MediaClip) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.playing = false
	decodeOn := c.decodeOn
	c.decodeOn = false
	stop, done := c.stop, c.done
	media, stream := c.media, c.stream
	c.media, c.stream = nil, nil
	c.mu.Unlock()

	if decodeOn {
		close(stop)
		<-done
		if stream != nil {
			stream.Close()
		}
		if media != nil {
			media.CloseDecode()
		}
	}
	if media != nil {
		media.Close()
	}
	return nil
}
