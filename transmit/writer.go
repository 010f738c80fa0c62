// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package transmit implements the Sparse and Rectangle send paths
// (spec.md §4.6–4.7): per-pixel commands for scattered changes, tiled bulk
// payloads (with software rotation) for dense ones.
package transmit

// Writer is the narrow contract transmit needs from the serial link: hand
// a sequence of byte slices to the sink as one logical write. Satisfied by
// *protocol.Link.
type Writer interface {
	WriteAll(parts ...[]byte) error
}

// MaxBlockHeight bounds rows per bulk Draw tile (spec.md §4.7): a DMA-size
// ceiling, PanelWidth*MaxBlockHeight staying within the device's 16-bit
// byte counter.
const MaxBlockHeight = 40
