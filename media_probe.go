// media_probe.go - Runtime decode capability probing for VidWall

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
	"log"

	"github.com/zergon321/reisen"
)

// Capabilities is a transient record of which codecs the runtime can
// decode. It is probed on demand and never cached across selection
// events; probing is cheap and the record is derived, not stored.
type Capabilities struct {
	codecs map[Codec]bool
}

// Supports reports whether the runtime can decode the given codec.
func (c Capabilities) Supports(codec Codec) bool {
	return c.codecs[codec]
}

// NewCapabilities builds a record from an explicit codec list.
func NewCapabilities(codecs ...Codec) Capabilities {
	m := make(map[Codec]bool, len(codecs))
	for _, c := range codecs {
		m[c] = true
	}
	return Capabilities{codecs: m}
}

// CapabilityProbe answers what the runtime playback stack can decode.
type CapabilityProbe interface {
	Probe() Capabilities
}

// ProfileCapabilities returns a fixed capability record for a named
// deployment profile. Profiles never extend what the decode stack
// reports; they only describe known hardware classes for headless runs
// and tests.
func ProfileCapabilities(profile string) Capabilities {
	switch profile {
	case "desktop":
		return NewCapabilities(CodecAV1, CodecHEVC, CodecVP9, CodecH264)
	case "embedded":
		return NewCapabilities(CodecHEVC, CodecH264)
	default:
		// conservative: the mandatory baseline only
		return NewCapabilities(CodecH264)
	}
}

// ProfileProbe is a CapabilityProbe backed by a static profile.
type ProfileProbe struct {
	Profile string
}

func (p ProfileProbe) Probe() Capabilities {
	return ProfileCapabilities(p.Profile)
}

// DecodeProbe determines support by attempting a header open of each
// configured clip path. Opening reads only container metadata, so the
// probe stays cheap enough to rerun on every selection.
type DecodeProbe struct {
	Variant OrientationVariant
}

func (p DecodeProbe) Probe() Capabilities {
	m := make(map[Codec]bool)
	probeSet := func(set MediaFormatSet) {
		for _, f := range set.Formats {
			if f.Path == "" || m[f.Codec] {
				continue
			}
			if canDecode(f.Path) {
				m[f.Codec] = true
			}
		}
	}
	probeSet(p.Variant.Landscape)
	if p.Variant.Portrait != nil {
		probeSet(*p.Variant.Portrait)
	}
	return Capabilities{codecs: m}
}

func canDecode(path string) bool {
	media, err := reisen.NewMedia(path)
	if err != nil {
		log.Printf("capability probe: cannot open %s: %v", path, err)
		return false
	}
	defer media.Close()
	return len(media.VideoStreams()) > 0
}
