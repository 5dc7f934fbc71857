// media_format_test.go - Format set and source selection tests for VidWall

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
	"reflect"
	"testing"
)

func fullSet() MediaFormatSet {
	return MediaFormatSet{Formats: []MediaFormat{
		{Codec: CodecAV1, Path: "clip_av1.webm"},
		{Codec: CodecHEVC, Path: "clip_hevc.mp4"},
		{Codec: CodecVP9, Path: "clip_vp9.webm"},
		{Codec: CodecH264, Path: "clip_h264.mp4"},
	}}
}

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    Codec
		wantErr bool
	}{
		{"av1", CodecAV1, false},
		{"HEVC", CodecHEVC, false},
		{"  vp9 ", CodecVP9, false},
		{"h264", CodecH264, false},
		{"h265", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCodec(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCodec(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCodec(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		set     MediaFormatSet
		wantErr bool
	}{
		{"full ordered set", fullSet(), false},
		{"fallback only", MediaFormatSet{Formats: []MediaFormat{
			{Codec: CodecH264, Path: "clip.mp4"},
		}}, false},
		{"empty set", MediaFormatSet{}, true},
		{"missing mandatory fallback", MediaFormatSet{Formats: []MediaFormat{
			{Codec: CodecAV1, Path: "clip_av1.webm"},
		}}, true},
		{"fallback without path", MediaFormatSet{Formats: []MediaFormat{
			{Codec: CodecAV1, Path: "clip_av1.webm"},
			{Codec: CodecH264},
		}}, true},
		{"duplicate codec", MediaFormatSet{Formats: []MediaFormat{
			{Codec: CodecAV1, Path: "a.webm"},
			{Codec: CodecAV1, Path: "b.webm"},
			{Codec: CodecH264, Path: "clip.mp4"},
		}}, true},
		{"out of order", MediaFormatSet{Formats: []MediaFormat{
			{Codec: CodecVP9, Path: "clip_vp9.webm"},
			{Codec: CodecAV1, Path: "clip_av1.webm"},
			{Codec: CodecH264, Path: "clip.mp4"},
		}}, true},
		{"unknown codec", MediaFormatSet{Formats: []MediaFormat{
			{Codec: "theora", Path: "clip.ogv"},
			{Codec: CodecH264, Path: "clip.mp4"},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.set.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSelectSources(t *testing.T) {
	tests := []struct {
		name string
		set  MediaFormatSet
		caps Capabilities
		want []Source
	}{
		{
			"nothing supported still yields fallback",
			fullSet(),
			NewCapabilities(),
			[]Source{{Path: "clip_h264.mp4", Codec: CodecH264}},
		},
		{
			"everything supported stays ordered, fallback last",
			fullSet(),
			NewCapabilities(CodecAV1, CodecHEVC, CodecVP9, CodecH264),
			[]Source{
				{Path: "clip_av1.webm", Codec: CodecAV1},
				{Path: "clip_hevc.mp4", Codec: CodecHEVC},
				{Path: "clip_vp9.webm", Codec: CodecVP9},
				{Path: "clip_h264.mp4", Codec: CodecH264},
			},
		},
		{
			"partial support filters the middle",
			fullSet(),
			NewCapabilities(CodecVP9, CodecH264),
			[]Source{
				{Path: "clip_vp9.webm", Codec: CodecVP9},
				{Path: "clip_h264.mp4", Codec: CodecH264},
			},
		},
		{
			"supported format without a path is skipped",
			MediaFormatSet{Formats: []MediaFormat{
				{Codec: CodecAV1},
				{Codec: CodecH264, Path: "clip_h264.mp4"},
			}},
			NewCapabilities(CodecAV1, CodecH264),
			[]Source{{Path: "clip_h264.mp4", Codec: CodecH264}},
		},
		{
			// Runtimes under-report support, so the fallback is offered
			// even when the capability record denies it.
			"fallback bypasses the capability record",
			fullSet(),
			NewCapabilities(CodecAV1),
			[]Source{
				{Path: "clip_av1.webm", Codec: CodecAV1},
				{Path: "clip_h264.mp4", Codec: CodecH264},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectSources(tt.set, tt.caps)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SelectSources() = %v, want %v", got, tt.want)
			}
		})
	}
}
