// orientation.go - Viewport orientation selection for VidWall

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

// Orientation classifies the surface aspect as landscape or portrait.
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// ChooseOrientation classifies a surface by aspect ratio. A ratio of
// exactly 1 (square) resolves to landscape. Degenerate dimensions also
// resolve to landscape so the mandatory variant is always reachable.
func ChooseOrientation(width, height int) Orientation {
	if width <= 0 || height <= 0 {
		return Landscape
	}
	if width >= height {
		return Landscape
	}
	return Portrait
}

// OrientationVariant pairs the landscape format set with an optional
// portrait one. Built once from configuration, immutable afterwards.
type OrientationVariant struct {
	Landscape MediaFormatSet
	Portrait  *MediaFormatSet
}

// ActiveSet returns the format set for the requested orientation and the
// orientation actually served. When no portrait set is configured the
// landscape set is used for both orientations.
func (v OrientationVariant) ActiveSet(o Orientation) (MediaFormatSet, Orientation) {
	if o == Portrait && v.Portrait != nil {
		return *v.Portrait, Portrait
	}
	return v.Landscape, Landscape
}
