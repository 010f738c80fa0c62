// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package usbpanel implements a user-space driver for a family of 3.5"
// USB-attached smart display panels that enumerate on the host as a
// serial (CDC) device with a 320x480 physical framebuffer in 16-bit
// RGB565.
//
// The driver accepts logical framebuffer updates from an application and
// emits a minimal sequence of device commands that reproduce those
// updates on the panel: a diff scanner compares the submitted frame
// against a shadow of device state, a strategy selector picks between
// per-pixel and tiled bulk transmission using a calibrated cost model,
// and a serial link absorbs and recovers from transport failures.
//
// Port enumeration, DTR/RTS lifecycle, and OS-level buffer sizing are the
// caller's responsibility: Open takes a protocol.Dialer, a function that
// returns an open protocol.Sink (anything satisfying io.Writer and
// io.Closer).
package usbpanel
