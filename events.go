// events.go - Surface event bus for VidWall

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
	"github.com/kelindar/event"
)

// Event type identifiers for the dispatcher.
const (
	TypeResize uint32 = iota + 1
	TypeOrientationChanged
	TypeInteraction
)

// WallEvent is the interface every bus event implements.
type WallEvent interface {
	Type() uint32
}

// ResizeEvent fires when the render surface dimensions change.
type ResizeEvent struct {
	Width  int
	Height int
}

func (e ResizeEvent) Type() uint32 { return TypeResize }

// OrientationChangedEvent fires when the surface aspect classification
// flips between landscape and portrait. It is an independent trigger
// from plain resizes; both converge on the same decision function.
type OrientationChangedEvent struct {
	Orientation Orientation
}

func (e OrientationChangedEvent) Type() uint32 { return TypeOrientationChanged }

// Interaction kinds, deliberately broad so any gesture unlocks playback.
const (
	InteractPointer = "pointer"
	InteractTouch   = "touch"
	InteractKey     = "key"
)

// InteractionEvent fires on the first sampled user input of each kind.
type InteractionEvent struct {
	Kind string
}

func (e InteractionEvent) Type() uint32 { return TypeInteraction }

// Bus wraps a kelindar/event dispatcher. Subscriptions return teardown
// handles so dispose can detach every listener unconditionally.
type Bus struct {
	dispatcher *event.Dispatcher
}

// NewBus creates an event bus with its own dispatcher, so multiple
// controllers (and tests) never interfere through shared state.
func NewBus() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish broadcasts an event to all subscribers.
func (b *Bus) Publish(ev WallEvent) {
	switch e := ev.(type) {
	case ResizeEvent:
		event.Publish(b.dispatcher, e)
	case OrientationChangedEvent:
		event.Publish(b.dispatcher, e)
	case InteractionEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a typed handler and returns its teardown handle.
// The handler signature determines which events it receives.
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ResizeEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(OrientationChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(InteractionEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}
