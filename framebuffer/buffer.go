// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framebuffer implements a flat, row-major RGB565 pixel store used
// both for the device's shadow state and for frames submitted by callers.
package framebuffer

import "github.com/periphextra/usbpanel/color565"

// ScreenBuffer is a logical-dimensioned RGB565 pixel store. It is never
// resized in place; a dimension change allocates a fresh ScreenBuffer.
type ScreenBuffer struct {
	width, height int
	cells         []color565.Color
}

// New constructs a ScreenBuffer of the given logical dimensions, all cells
// zeroed (black).
func New(width, height int) *ScreenBuffer {
	return &ScreenBuffer{
		width:  width,
		height: height,
		cells:  make([]color565.Color, width*height),
	}
}

// Width returns the logical width in pixels.
func (b *ScreenBuffer) Width() int { return b.width }

// Height returns the logical height in pixels.
func (b *ScreenBuffer) Height() int { return b.height }

// Cells exposes the underlying row-major storage read-only, for use by the
// diff scanner and transmitter without per-pixel accessor overhead.
func (b *ScreenBuffer) Cells() []color565.Color { return b.cells }

func (b *ScreenBuffer) index(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic("framebuffer: coordinate out of range")
	}
	return y*b.width + x
}

// At returns the cell at (x, y).
func (b *ScreenBuffer) At(x, y int) color565.Color {
	return b.cells[b.index(x, y)]
}

// Set writes the cell at (x, y).
func (b *ScreenBuffer) Set(x, y int, c color565.Color) {
	b.cells[b.index(x, y)] = c
}

// Clear zeroes every cell.
func (b *ScreenBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = 0
	}
}

// RowSlice returns a mutable slice view over the half-open column range
// [x0, x1) of row y, backed directly by the buffer's storage. Since stride
// always equals width, this is a plain sub-slice.
func (b *ScreenBuffer) RowSlice(y, x0, x1 int) []color565.Color {
	if y < 0 || y >= b.height || x0 < 0 || x1 > b.width || x0 > x1 {
		panic("framebuffer: row slice out of range")
	}
	base := y * b.width
	return b.cells[base+x0 : base+x1]
}

// ClearColor broadcasts c to every cell.
func (b *ScreenBuffer) ClearColor(c color565.Color) {
	for i := range b.cells {
		b.cells[i] = c
	}
}
