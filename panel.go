// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package usbpanel

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"

	"github.com/periphextra/usbpanel/color565"
	"github.com/periphextra/usbpanel/diff"
	"github.com/periphextra/usbpanel/framebuffer"
	"github.com/periphextra/usbpanel/protocol"
	"github.com/periphextra/usbpanel/strategy"
	"github.com/periphextra/usbpanel/transmit"
)

// Driver is the panel's public operations, orientation state machine,
// brightness, and shadow framebuffer (spec.md §4.8). It is designed for a
// single-threaded caller (spec.md §5); concurrent calls on one Driver are
// undefined. The link it owns is internally synchronized, since recovery
// may be triggered from inside any write.
type Driver struct {
	link *protocol.Link

	orientation Orientation
	width       int
	height      int
	rotated     bool
	brightness  int
	shadow      *framebuffer.ScreenBuffer
}

// Open connects via dial, and initializes the driver to Portrait, logical
// 320x480, brightness 100 (spec.md §4.8 open).
func Open(dial protocol.Dialer) (*Driver, error) {
	link, err := protocol.NewLink(dial)
	if err != nil {
		return nil, err
	}
	d := &Driver{
		link:        link,
		orientation: Portrait,
		width:       protocol.PanelWidth,
		height:      protocol.PanelHeight,
		brightness:  100,
		shadow:      framebuffer.New(protocol.PanelWidth, protocol.PanelHeight),
	}
	link.Recover = d.recover
	return d, nil
}

// Close releases the link. Repeated Close is idempotent.
func (d *Driver) Close() error {
	return d.link.Close()
}

// Halt implements conn.Resource by turning the screen off.
func (d *Driver) Halt() error {
	return d.ScreenOff()
}

// String implements conn.Resource.
func (d *Driver) String() string {
	return fmt.Sprintf("usbpanel.Driver{%s, %dx%d, brightness %d}", d.orientation, d.width, d.height, d.brightness)
}

// Reset sends the Reset command, closes the link, and reconnects with a
// 5s timeout (spec.md §4.8 reset). Unlike failure recovery, it does not
// re-emit Clear/Brightness/Orientation/redraw: the device-side reset and
// this explicit caller-driven reopen are a distinct path from §4.9.
func (d *Driver) Reset() error {
	var scratch protocol.Scratch
	protocol.ShortCommand(scratch.Header(), protocol.CmdReset)
	if err := d.link.WriteAll(scratch.Header()); err != nil {
		return err
	}
	return d.link.Reopen(5 * time.Second)
}

// Clear sends the Clear command and fills the shadow with White.
func (d *Driver) Clear() error {
	var scratch protocol.Scratch
	protocol.ShortCommand(scratch.Header(), protocol.CmdClear)
	if err := d.link.WriteAll(scratch.Header()); err != nil {
		return err
	}
	d.shadow.ClearColor(color565.White)
	return nil
}

// ScreenOn sends the ScreenOn command. It has no shadow effect.
func (d *Driver) ScreenOn() error {
	return d.shortCommand(protocol.CmdScreenOn)
}

// ScreenOff sends the ScreenOff command. It has no shadow effect.
func (d *Driver) ScreenOff() error {
	return d.shortCommand(protocol.CmdScreenOff)
}

func (d *Driver) shortCommand(cmd byte) error {
	var scratch protocol.Scratch
	protocol.ShortCommand(scratch.Header(), cmd)
	return d.link.WriteAll(scratch.Header())
}

// SetBrightness clamps level to [0, 100], records it as the last
// brightness (used to restore state on recovery), and emits Brightness.
// Out-of-range levels are clamped silently, per spec.md §7.
func (d *Driver) SetBrightness(level int) error {
	if level < 0 {
		level = 0
	} else if level > 100 {
		level = 100
	}
	var scratch protocol.Scratch
	protocol.BrightnessCommand(scratch.Header(), level)
	if err := d.link.WriteAll(scratch.Header()); err != nil {
		return err
	}
	d.brightness = level
	return nil
}

// SetOrientation emits the Orientation command, then on success updates
// logical dimensions, toggles software rotation, allocates a fresh shadow
// at the new dimensions, and clears it (spec.md §4.8). A failing
// SetOrientation leaves the driver in its prior state: the Orientation
// write happens before any state mutation, and if the closing Clear fails
// the previous orientation, dimensions and shadow are put back.
func (d *Driver) SetOrientation(o Orientation) error {
	if !o.valid() {
		return fmt.Errorf("usbpanel: %w: orientation %d", protocol.ErrInvalidArgument, int(o))
	}
	var scratch protocol.Scratch
	protocol.OrientationCommand(scratch.Orientation(), int(o))
	if err := d.link.WriteAll(scratch.Orientation()); err != nil {
		return err
	}

	prevO, prevW, prevH, prevRot, prevShadow := d.orientation, d.width, d.height, d.rotated, d.shadow
	d.orientation = o
	d.width, d.height = o.logicalDims()
	d.rotated = o.rotated()
	d.shadow = framebuffer.New(d.width, d.height)
	if err := d.Clear(); err != nil {
		d.orientation, d.width, d.height, d.rotated, d.shadow = prevO, prevW, prevH, prevRot, prevShadow
		return err
	}
	return nil
}

// SetPixel converts (r, g, b) with round-to-nearest, shadow-sets it, and
// emits a single pixel Draw command at the corresponding physical
// coordinate (spec.md §4.8, sparse path with one cell).
func (d *Driver) SetPixel(x, y int, r, g, b uint8) error {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return fmt.Errorf("usbpanel: %w: pixel (%d,%d) outside %dx%d surface", protocol.ErrInvalidArgument, x, y, d.width, d.height)
	}
	c := color565.Round(r, g, b)
	d.shadow.Set(x, y, c)

	px, py := d.toPhysical(x, y)
	var scratch protocol.Scratch
	protocol.EncodeHeader(scratch.Header(), px, py, 1, 1, protocol.CmdDraw)
	lo, hi := c.Split()
	pix := scratch.Pixel()
	pix[0], pix[1] = lo, hi

	return d.link.WriteAll(scratch.Full()[:8])
}

// DisplayBuffer dispatches the full diff/strategy/transmit pipeline
// (spec.md §4.4-4.7) for buf submitted at logical (x, y).
func (d *Driver) DisplayBuffer(x, y int, buf *framebuffer.ScreenBuffer) error {
	w, h := buf.Width(), buf.Height()
	if x < 0 || y < 0 || x+w > d.width || y+h > d.height {
		return fmt.Errorf("usbpanel: %w: region (%d,%d)+%dx%d exceeds %dx%d surface", protocol.ErrInvalidArgument, x, y, w, h, d.width, d.height)
	}

	s := buf.Cells()
	res := diff.Scan(s, w, h, d.shadow, x, y)
	if !res.Changed {
		return nil
	}

	diffW := res.MaxX - res.MinX + 1
	diffH := res.MaxY - res.MinY + 1
	strat, _, _ := strategy.Select(res.ChangeCount, diffW, diffH)

	if strat == strategy.Sparse {
		return transmit.Sparse(d.link, s, w, h, d.shadow, x, y, d.toPhysical)
	}
	return transmit.Rectangle(d.link, s, w, d.shadow, x, y, res, d.rotated)
}

// toPhysical maps a shadow-space (absolute) coordinate to the physical
// panel coordinate a single-cell Draw command must target, reducing
// software rotation to a coordinate swap for 1x1 rectangles.
func (d *Driver) toPhysical(x, y int) (int, int) {
	if d.rotated {
		return y, x
	}
	return x, y
}

// recover implements spec.md §4.9 step 3: Reset, a 50ms settle delay,
// Clear, Brightness(last), Orientation(last, 320, 480), and a full-shadow
// redraw via the rectangle path. It is installed as the link's Recover
// callback, invoked with a raw writer that bypasses the recovery trigger.
func (d *Driver) recover(raw protocol.RawWriter) error {
	var scratch protocol.Scratch

	protocol.ShortCommand(scratch.Header(), protocol.CmdReset)
	if err := raw(scratch.Header()); err != nil {
		return err
	}

	time.Sleep(50 * time.Millisecond)

	protocol.ShortCommand(scratch.Header(), protocol.CmdClear)
	if err := raw(scratch.Header()); err != nil {
		return err
	}

	protocol.BrightnessCommand(scratch.Header(), d.brightness)
	if err := raw(scratch.Header()); err != nil {
		return err
	}

	protocol.OrientationCommand(scratch.Orientation(), int(d.orientation))
	if err := raw(scratch.Orientation()); err != nil {
		return err
	}

	return transmit.FullRedraw(rawTransmitWriter{raw}, d.shadow, d.rotated)
}

// rawTransmitWriter adapts a protocol.RawWriter, a plain func value, to
// transmit.Writer's interface, since methods cannot be attached to a
// named func type from outside its defining package.
type rawTransmitWriter struct {
	raw protocol.RawWriter
}

func (w rawTransmitWriter) WriteAll(parts ...[]byte) error {
	return w.raw(parts...)
}

// ColorModel implements display.Drawer.
func (d *Driver) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer, reporting the current logical surface.
func (d *Driver) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: d.width, Y: d.height}}
}

// Draw implements display.Drawer: it samples src over dstRect (intersected
// with Bounds), converts to RGB565, and dispatches through DisplayBuffer.
func (d *Driver) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	dstRect = dstRect.Intersect(d.Bounds())
	w, h := dstRect.Dx(), dstRect.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	buf := framebuffer.New(w, h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			sp := srcPts.Add(image.Point{X: col, Y: row})
			r16, g16, b16, _ := src.At(sp.X, sp.Y).RGBA()
			buf.Set(col, row, color565.Round(uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)))
		}
	}
	return d.DisplayBuffer(dstRect.Min.X, dstRect.Min.Y, buf)
}

var _ display.Drawer = &Driver{}
var _ conn.Resource = &Driver{}
