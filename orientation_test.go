// orientation_test.go - Orientation selection tests for VidWall

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

func TestChooseOrientation(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   Orientation
	}{
		{"desktop 16:9", 1920, 1080, Landscape},
		{"ultrawide", 3440, 1440, Landscape},
		{"square resolves wide", 1000, 1000, Landscape},
		{"phone portrait", 375, 812, Portrait},
		{"tall kiosk", 1080, 1920, Portrait},
		{"one pixel taller", 999, 1000, Portrait},
		{"one pixel wider", 1000, 999, Landscape},
		{"zero height", 1280, 0, Landscape},
		{"zero width", 0, 720, Landscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseOrientation(tt.width, tt.height); got != tt.want {
				t.Errorf("ChooseOrientation(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestActiveSetPortraitConfigured(t *testing.T) {
	portrait := MediaFormatSet{Formats: []MediaFormat{{Codec: CodecH264, Path: "p.mp4"}}}
	v := OrientationVariant{
		Landscape: MediaFormatSet{Formats: []MediaFormat{{Codec: CodecH264, Path: "l.mp4"}}},
		Portrait:  &portrait,
	}

	set, eff := v.ActiveSet(Portrait)
	if eff != Portrait {
		t.Errorf("effective orientation = %v, want portrait", eff)
	}
	if set.Formats[0].Path != "p.mp4" {
		t.Errorf("got %q, want portrait set", set.Formats[0].Path)
	}

	set, eff = v.ActiveSet(Landscape)
	if eff != Landscape || set.Formats[0].Path != "l.mp4" {
		t.Errorf("landscape request resolved to %v %q", eff, set.Formats[0].Path)
	}
}

func TestActiveSetPortraitMissing(t *testing.T) {
	v := OrientationVariant{
		Landscape: MediaFormatSet{Formats: []MediaFormat{{Codec: CodecH264, Path: "l.mp4"}}},
	}

	// A portrait viewport with no portrait variant still gets landscape.
	set, eff := v.ActiveSet(Portrait)
	if eff != Landscape {
		t.Errorf("effective orientation = %v, want landscape fallback", eff)
	}
	if set.Formats[0].Path != "l.mp4" {
		t.Errorf("got %q, want landscape set", set.Formats[0].Path)
	}
}
