// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbpanel

import "github.com/periphextra/usbpanel/protocol"

// Orientation is the panel's 4-valued addressing mode, carrying a numeric
// ordinal used by the wire protocol's Orientation command (spec.md §3).
type Orientation int

const (
	// Portrait is the panel's native 320x480 orientation.
	Portrait Orientation = iota
	// Landscape presents a logical 480x320 surface, software-rotated.
	Landscape
	// ReversePortrait maps 1:1 to the native 320x480 axes, upside down.
	ReversePortrait
	// ReverseLandscape presents a logical 480x320 surface, software-rotated.
	ReverseLandscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "Portrait"
	case Landscape:
		return "Landscape"
	case ReversePortrait:
		return "ReversePortrait"
	case ReverseLandscape:
		return "ReverseLandscape"
	default:
		return "Unknown"
	}
}

func (o Orientation) valid() bool {
	return o >= Portrait && o <= ReverseLandscape
}

// rotated reports whether this orientation requires software rotation:
// the logical surface is transposed relative to the panel's native axes.
func (o Orientation) rotated() bool {
	return o == Landscape || o == ReverseLandscape
}

// logicalDims returns the (width, height) an application sees for this
// orientation. Portrait/ReversePortrait match the panel's native axes;
// Landscape/ReverseLandscape swap them (spec.md §3).
func (o Orientation) logicalDims() (width, height int) {
	if o.rotated() {
		return protocol.PanelHeight, protocol.PanelWidth
	}
	return protocol.PanelWidth, protocol.PanelHeight
}
