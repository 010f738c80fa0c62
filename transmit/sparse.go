// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transmit

import (
	"github.com/periphextra/usbpanel/color565"
	"github.com/periphextra/usbpanel/framebuffer"
	"github.com/periphextra/usbpanel/protocol"
)

// Sparse iterates the submitted w x h region row-major and, for every cell
// that differs from the shadow, synchronizes the shadow and emits one
// pixel Draw command at the corresponding physical coordinate (spec.md
// §4.6). No batching: each pixel is a separate write.
func Sparse(w Writer, s []color565.Color, srcW, srcH int, shadow *framebuffer.ScreenBuffer, left, top int, toPhysical func(x, y int) (int, int)) error {
	var scratch protocol.Scratch

	for y := 0; y < srcH; y++ {
		for x := 0; x < srcW; x++ {
			c := s[y*srcW+x]
			sx, sy := left+x, top+y
			if shadow.At(sx, sy) == c {
				continue
			}
			shadow.Set(sx, sy, c)

			px, py := toPhysical(sx, sy)
			protocol.EncodeHeader(scratch.Header(), px, py, 1, 1, protocol.CmdDraw)
			lo, hi := c.Split()
			pix := scratch.Pixel()
			pix[0], pix[1] = lo, hi

			if err := w.WriteAll(scratch.Full()[:8]); err != nil {
				return err
			}
		}
	}
	return nil
}
