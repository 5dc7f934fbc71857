// media_format.go - Encoded media format sets and source selection for VidWall

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
	"strings"
)

// Codec identifies the video encoding of a clip file.
type Codec string

const (
	CodecAV1  Codec = "av1"
	CodecHEVC Codec = "hevc"
	CodecVP9  Codec = "vp9"
	CodecH264 Codec = "h264"
)

// FallbackCodec is the mandatory encoding every runtime can decode.
// A format set without a path for it is a configuration defect.
const FallbackCodec = CodecH264

// codecRank orders codecs best-compression-first. Lower is better.
var codecRank = map[Codec]int{
	CodecAV1:  0,
	CodecHEVC: 1,
	CodecVP9:  2,
	CodecH264: 3,
}

// ParseCodec maps a configuration string to a Codec.
func ParseCodec(s string) (Codec, error) {
	switch Codec(strings.ToLower(strings.TrimSpace(s))) {
	case CodecAV1:
		return CodecAV1, nil
	case CodecHEVC:
		return CodecHEVC, nil
	case CodecVP9:
		return CodecVP9, nil
	case CodecH264:
		return CodecH264, nil
	}
	return "", fmt.Errorf("unknown codec %q", s)
}

// MediaFormat is one candidate encoding of a logical clip.
type MediaFormat struct {
	Codec Codec
	Path  string
}

// MediaFormatSet is an ordered list of candidate encodings for one clip,
// best compression first. Exactly one entry, the fallback codec, is
// mandatory; the rest are optional.
type MediaFormatSet struct {
	Formats []MediaFormat
}

// Validate checks the invariants a format set must hold before any
// controller is constructed: the mandatory fallback codec present with a
// path, no duplicate codecs, and best-compression-first ordering.
func (s MediaFormatSet) Validate() error {
	if len(s.Formats) == 0 {
		return fmt.Errorf("format set is empty")
	}
	seen := make(map[Codec]bool, len(s.Formats))
	lastRank := -1
	for _, f := range s.Formats {
		if _, ok := codecRank[f.Codec]; !ok {
			return fmt.Errorf("unknown codec %q", f.Codec)
		}
		if seen[f.Codec] {
			return fmt.Errorf("duplicate codec %q", f.Codec)
		}
		seen[f.Codec] = true
		if codecRank[f.Codec] < lastRank {
			return fmt.Errorf("formats not ordered best-compression-first: %q out of place", f.Codec)
		}
		lastRank = codecRank[f.Codec]
	}
	fb, ok := s.lookup(FallbackCodec)
	if !ok || fb.Path == "" {
		return fmt.Errorf("mandatory %s format has no configured path", FallbackCodec)
	}
	return nil
}

func (s MediaFormatSet) lookup(c Codec) (MediaFormat, bool) {
	for _, f := range s.Formats {
		if f.Codec == c {
			return f, true
		}
	}
	return MediaFormat{}, false
}

// Source is one playable (path, codec) candidate.
type Source struct {
	Path  string
	Codec Codec
}

// SelectSources picks the candidates the runtime can decode, ordered best
// compression first. A format is included only when the capability record
// reports support and the configuration supplies a path. The mandatory
// fallback is appended last unconditionally; some runtimes under-report
// what they can decode.
func SelectSources(set MediaFormatSet, caps Capabilities) []Source {
	out := make([]Source, 0, len(set.Formats))
	for _, f := range set.Formats {
		if f.Codec == FallbackCodec {
			continue
		}
		if f.Path == "" || !caps.Supports(f.Codec) {
			continue
		}
		out = append(out, Source{Path: f.Path, Codec: f.Codec})
	}
	if fb, ok := set.lookup(FallbackCodec); ok && fb.Path != "" {
		out = append(out, Source{Path: fb.Path, Codec: fb.Codec})
	}
	return out
}
