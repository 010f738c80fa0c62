// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transmit

import "sync"

// tilePool recycles tile-payload byte slices, bounding peak residency to
// one tile (spec.md §5) the way videosink's pngEncoderBufferPool recycles
// encode buffers. get/put must be paired on every exit path, including
// error returns.
type tilePool struct {
	pool sync.Pool
}

func (p *tilePool) get(size int) []byte {
	if b, ok := p.pool.Get().([]byte); ok && cap(b) >= size {
		return b[:size]
	}
	return make([]byte, size)
}

func (p *tilePool) put(b []byte) {
	//lint:ignore SA6002 b is []byte and thus pointer-like
	p.pool.Put(b[:0])
}

var payloadPool tilePool
