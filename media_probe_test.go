// media_probe_test.go - Capability profile tests for VidWall

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

import "testing"

func TestProfileCapabilities(t *testing.T) {
	tests := []struct {
		profile     string
		supported   []Codec
		unsupported []Codec
	}{
		{"desktop", []Codec{CodecAV1, CodecHEVC, CodecVP9, CodecH264}, nil},
		{"embedded", []Codec{CodecHEVC, CodecH264}, []Codec{CodecAV1, CodecVP9}},
		{"conservative", []Codec{CodecH264}, []Codec{CodecAV1, CodecHEVC, CodecVP9}},
		{"unknown-profile", []Codec{CodecH264}, []Codec{CodecAV1, CodecHEVC, CodecVP9}},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			caps := ProfileCapabilities(tt.profile)
			for _, c := range tt.supported {
				if !caps.Supports(c) {
					t.Errorf("profile %q should support %s", tt.profile, c)
				}
			}
			for _, c := range tt.unsupported {
				if caps.Supports(c) {
					t.Errorf("profile %q should not support %s", tt.profile, c)
				}
			}
		})
	}
}

func TestProfileProbe(t *testing.T) {
	caps := ProfileProbe{Profile: "embedded"}.Probe()
	if !caps.Supports(CodecHEVC) || caps.Supports(CodecAV1) {
		t.Error("ProfileProbe does not match its profile record")
	}
}

func TestDecodeProbeMissingFiles(t *testing.T) {
	// Nothing on disk: the probe reports no support at all, leaving the
	// mandatory fallback to source selection.
	probe := DecodeProbe{Variant: OrientationVariant{
		Landscape: MediaFormatSet{Formats: []MediaFormat{
			{Codec: CodecAV1, Path: "/nonexistent/clip_av1.webm"},
			{Codec: CodecH264, Path: "/nonexistent/clip_h264.mp4"},
		}},
	}}
	caps := probe.Probe()
	for _, c := range []Codec{CodecAV1, CodecHEVC, CodecVP9, CodecH264} {
		if caps.Supports(c) {
			t.Errorf("probe of missing files reported support for %s", c)
		}
	}
}
