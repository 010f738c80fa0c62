// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

// Scratch is a reusable 16-byte staging area holding a single packed
// header plus optional short control payload, eliminating per-write
// allocation (spec.md "Command scratch").
type Scratch struct {
	buf [16]byte
}

// Header returns the 6-byte header slice of the scratch buffer.
func (s *Scratch) Header() []byte { return s.buf[:6] }

// Full returns the entire 16-byte scratch buffer.
func (s *Scratch) Full() []byte { return s.buf[:] }

// Orientation returns the 11-byte slice used by OrientationCommand.
func (s *Scratch) Orientation() []byte { return s.buf[:11] }

// Pixel returns a 2-byte slice immediately following the header, used for
// the single-pixel Draw payload.
func (s *Scratch) Pixel() []byte { return s.buf[6:8] }
