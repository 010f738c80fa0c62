// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transmit

import (
	"github.com/periphextra/usbpanel/color565"
	"github.com/periphextra/usbpanel/diff"
	"github.com/periphextra/usbpanel/framebuffer"
	"github.com/periphextra/usbpanel/protocol"
)

// Rectangle synchronizes the shadow over the bounding box and transmits it
// as one or more horizontal-strip tiles (spec.md §4.7). When rotated is
// true, each tile's payload is transposed and its header describes the
// physical rectangle instead of the logical one (software rotation).
func Rectangle(w Writer, s []color565.Color, srcW int, shadow *framebuffer.ScreenBuffer, left, top int, res diff.Result, rotated bool) error {
	diffW := res.MaxX - res.MinX + 1
	diffH := res.MaxY - res.MinY + 1

	// Synchronize shadow before any transmission, spec.md §4.7.
	for y := res.MinY; y <= res.MaxY; y++ {
		srcRow := s[y*srcW+res.MinX : y*srcW+res.MinX+diffW]
		dstRow := shadow.RowSlice(top+y, left+res.MinX, left+res.MinX+diffW)
		copy(dstRow, srcRow)
	}

	return tileAndSend(w, s, srcW, res.MinX, res.MinY, diffW, diffH, left+res.MinX, top+res.MinY, rotated)
}

// FullRedraw emits the entire shadow as a tiled Draw sequence, used by the
// recovery protocol (spec.md §4.9) to restore visible state after a
// reconnect. When rotated, tiles are transposed the same way Rectangle
// would transpose a dirty region spanning the whole logical surface.
func FullRedraw(w Writer, shadow *framebuffer.ScreenBuffer, rotated bool) error {
	width, height := shadow.Width(), shadow.Height()
	return tileAndSend(w, shadow.Cells(), width, 0, 0, width, height, 0, 0, rotated)
}

// tileAndSend packs and transmits the diffW x diffH region of s starting
// at local (localX0, localY0), whose top-left absolute (shadow/physical
// logical) coordinate is (absX, absY), tiled into at most MaxBlockHeight
// logical rows per write.
func tileAndSend(w Writer, s []color565.Color, srcW, localX0, localY0, diffW, diffH, absX, absY int, rotated bool) error {
	for rowsDone := 0; rowsDone < diffH; {
		tileH := MaxBlockHeight
		if remaining := diffH - rowsDone; tileH > remaining {
			tileH = remaining
		}

		tileLocalY0 := localY0 + rowsDone

		payload := payloadPool.get(diffW * tileH * 2)
		var scratch protocol.Scratch

		if rotated {
			packTransposed(payload, s, srcW, localX0, tileLocalY0, diffW, tileH)
			physX := absY + rowsDone
			physY := absX
			protocol.EncodeHeader(scratch.Header(), physX, physY, tileH, diffW, protocol.CmdDraw)
		} else {
			packRowMajor(payload, s, srcW, localX0, tileLocalY0, diffW, tileH)
			protocol.EncodeHeader(scratch.Header(), absX, absY+rowsDone, diffW, tileH, protocol.CmdDraw)
		}

		err := w.WriteAll(scratch.Header(), payload)
		payloadPool.put(payload)
		if err != nil {
			return err
		}

		rowsDone += tileH
	}
	return nil
}

// packRowMajor fills payload with the diffW x tileH submitted-region tile
// starting at local (localX0, localY0), row-major, little-endian RGB565.
func packRowMajor(payload []byte, s []color565.Color, srcStride, localX0, localY0, diffW, tileH int) {
	for r := 0; r < tileH; r++ {
		rowBase := (localY0 + r) * srcStride
		for c := 0; c < diffW; c++ {
			lo, hi := s[rowBase+localX0+c].Split()
			idx := (r*diffW + c) * 2
			payload[idx], payload[idx+1] = lo, hi
		}
	}
}

// packTransposed fills payload with the same tile, transposed so that
// packed[row*tileH+col] = S[(localY0+col)*srcStride + localX0+row], for
// row in [0, diffW) and col in [0, tileH) (spec.md §4.7 software
// rotation).
func packTransposed(payload []byte, s []color565.Color, srcStride, localX0, localY0, diffW, tileH int) {
	for row := 0; row < diffW; row++ {
		for col := 0; col < tileH; col++ {
			lo, hi := s[(localY0+col)*srcStride+localX0+row].Split()
			idx := (row*tileH + col) * 2
			payload[idx], payload[idx+1] = lo, hi
		}
	}
}
