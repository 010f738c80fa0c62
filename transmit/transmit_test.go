// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transmit

import (
	"bytes"
	"testing"

	"github.com/periphextra/usbpanel/color565"
	"github.com/periphextra/usbpanel/diff"
	"github.com/periphextra/usbpanel/framebuffer"
	"github.com/periphextra/usbpanel/protocol"
)

type recordingWriter struct {
	writes [][]byte
}

func (r *recordingWriter) WriteAll(parts ...[]byte) error {
	var buf bytes.Buffer
	for _, p := range parts {
		buf.Write(p)
	}
	r.writes = append(r.writes, buf.Bytes())
	return nil
}

func TestSparseSinglePixel(t *testing.T) {
	shadow := framebuffer.New(320, 480)
	s := make([]color565.Color, 320*480)
	s[20*320+10] = 0xF800

	w := &recordingWriter{}
	identity := func(x, y int) (int, int) { return x, y }
	if err := Sparse(w, s, 320, 480, shadow, 0, 0, identity); err != nil {
		t.Fatalf("Sparse() failed: %v", err)
	}
	if len(w.writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(w.writes))
	}
	x, y, ex, ey, cmd := protocol.DecodeHeader(w.writes[0])
	if x != 10 || y != 20 || ex != 10 || ey != 20 || cmd != protocol.CmdDraw {
		t.Errorf("header = (%d,%d,%d,%d,%d), want (10,20,10,20,%d)", x, y, ex, ey, cmd, protocol.CmdDraw)
	}
	lo, hi := color565.Color(0xF800).Split()
	if got := w.writes[0][6:8]; got[0] != lo || got[1] != hi {
		t.Errorf("pixel bytes = %v, want [%d %d]", got, lo, hi)
	}
	if got := shadow.At(10, 20); got != 0xF800 {
		t.Errorf("shadow not synchronized: At(10,20) = %#04x", got)
	}
}

func TestSparseNoWritesWhenEqual(t *testing.T) {
	shadow := framebuffer.New(4, 4)
	s := make([]color565.Color, 16)
	w := &recordingWriter{}
	identity := func(x, y int) (int, int) { return x, y }
	if err := Sparse(w, s, 4, 4, shadow, 0, 0, identity); err != nil {
		t.Fatalf("Sparse() failed: %v", err)
	}
	if len(w.writes) != 0 {
		t.Fatalf("got %d writes, want 0", len(w.writes))
	}
}

func TestRectangleDenseOverlayTiling(t *testing.T) {
	shadow := framebuffer.New(320, 480)
	s := make([]color565.Color, 100*100)
	for i := range s {
		s[i] = 0xFFFF
	}
	res := diff.Scan(s, 100, 100, shadow, 0, 0)

	w := &recordingWriter{}
	if err := Rectangle(w, s, 100, shadow, 0, 0, res, false); err != nil {
		t.Fatalf("Rectangle() failed: %v", err)
	}
	if len(w.writes) != 3 {
		t.Fatalf("got %d tiles, want 3", len(w.writes))
	}
	wantHeights := []int{40, 40, 20}
	sumH := 0
	for i, tile := range w.writes {
		x, y, ex, ey, cmd := protocol.DecodeHeader(tile)
		h := ey - y + 1
		wdt := ex - x + 1
		if wdt != 100 {
			t.Errorf("tile %d width = %d, want 100", i, wdt)
		}
		if h != wantHeights[i] {
			t.Errorf("tile %d height = %d, want %d", i, h, wantHeights[i])
		}
		if cmd != protocol.CmdDraw {
			t.Errorf("tile %d cmd = %d, want %d", i, cmd, protocol.CmdDraw)
		}
		if got, want := len(tile)-6, wdt*h*2; got != want {
			t.Errorf("tile %d payload len = %d, want %d", i, got, want)
		}
		sumH += h
	}
	if sumH != 100 {
		t.Errorf("sum of tile heights = %d, want 100", sumH)
	}

	// Shadow must now equal the submitted overlay.
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if got := shadow.At(x, y); got != 0xFFFF {
				t.Fatalf("shadow(%d,%d) = %#04x, want 0xffff", x, y, got)
			}
		}
	}
}

func TestRectangleSoftwareRotation(t *testing.T) {
	// Landscape: logical surface is 480 x 320 on a 320 x 480 physical
	// panel. A single 480-wide, 1-tall horizontal line at logical (0,0)
	// must produce a physical (0,0,1,480) header (spec.md scenario 5).
	shadow := framebuffer.New(480, 320)
	s := make([]color565.Color, 480)
	for i := range s {
		s[i] = 0xF800
	}
	res := diff.Scan(s, 480, 1, shadow, 0, 0)

	w := &recordingWriter{}
	if err := Rectangle(w, s, 480, shadow, 0, 0, res, true); err != nil {
		t.Fatalf("Rectangle() failed: %v", err)
	}
	if len(w.writes) != 1 {
		t.Fatalf("got %d tiles, want 1", len(w.writes))
	}
	x, y, ex, ey, cmd := protocol.DecodeHeader(w.writes[0])
	if x != 0 || y != 0 || ex != 0 || ey != 479 {
		t.Fatalf("header = (%d,%d)-(%d,%d), want (0,0)-(0,479)", x, y, ex, ey)
	}
	if cmd != protocol.CmdDraw {
		t.Fatalf("cmd = %d, want %d", cmd, protocol.CmdDraw)
	}
	payload := w.writes[0][6:]
	if len(payload) != 480*2 {
		t.Fatalf("payload len = %d, want %d", len(payload), 480*2)
	}
	for i := 0; i < 480; i++ {
		lo, hi := payload[i*2], payload[i*2+1]
		c := color565.Color(lo) | color565.Color(hi)<<8
		if c != 0xF800 {
			t.Fatalf("payload[%d] = %#04x, want 0xf800", i, c)
		}
	}
}

func TestFullRedrawTiling(t *testing.T) {
	shadow := framebuffer.New(320, 480)
	shadow.ClearColor(0x1234)

	w := &recordingWriter{}
	if err := FullRedraw(w, shadow, false); err != nil {
		t.Fatalf("FullRedraw() failed: %v", err)
	}
	totalRows := 0
	for _, tile := range w.writes {
		x, y, ex, ey, _ := protocol.DecodeHeader(tile)
		if x != 0 || ex != 319 {
			t.Fatalf("tile width wrong: x=%d ex=%d", x, ex)
		}
		totalRows += ey - y + 1
	}
	if totalRows != 480 {
		t.Fatalf("total rows redrawn = %d, want 480", totalRows)
	}
}
