// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termpreview renders a ScreenBuffer to an ANSI-256 terminal, for
// developing and debugging the render pipeline without a physical panel
// attached. It is debug tooling, not part of the render pipeline itself.
package termpreview

import (
	"bytes"
	"image/color"
	"io"
	"os"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/periphextra/usbpanel/framebuffer"
)

// Preview renders ScreenBuffer snapshots to a terminal, one character cell
// per logical pixel, using ansi256.Palette.Block the same way screen1d
// renders its LED strip emulation.
type Preview struct {
	w       io.Writer
	palette ansi256.Palette
	enabled bool
}

// New returns a Preview writing to stdout. If stdout is not a terminal,
// rendering is a silent no-op (isatty check), since termpreview is debug
// tooling layered on a real driver rather than the only output target, per
// DESIGN.md.
func New() *Preview {
	out := colorable.NewColorableStdout()
	return &Preview{
		w:       out,
		palette: *ansi256.Default,
		enabled: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// Render draws the full ScreenBuffer to the terminal, one call per frame.
// Terminal character cells are roughly twice as tall as wide, so the
// preview is a stretched approximation of the panel, not a proportional
// one; it is for spotting gross render errors, not pixel-perfect review.
func (p *Preview) Render(buf *framebuffer.ScreenBuffer) error {
	if !p.enabled {
		return nil
	}

	var out bytes.Buffer
	w, h := buf.Width(), buf.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := buf.At(x, y).RGB()
			io.WriteString(&out, p.palette.Block(color.NRGBA{R: r, G: g, B: b, A: 255}))
		}
		out.WriteString("\033[0m\n")
	}

	_, err := p.w.Write(out.Bytes())
	return err
}

// Close resets terminal attributes, mirroring screen1d.Dev.Halt.
func (p *Preview) Close() error {
	if !p.enabled {
		return nil
	}
	_, err := p.w.Write([]byte("\033[0m"))
	return err
}
