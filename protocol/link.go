// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Sink is the byte transport a Link writes to: a blocking writer that can
// be closed and reopened. Concrete serial-port implementations (port
// enumeration, DTR/RTS, OS buffer sizing) are an external collaborator,
// per spec.md §1.
type Sink interface {
	io.Writer
	io.Closer
}

// Dialer opens a fresh Sink, e.g. reopening the serial port after a
// failure.
type Dialer func() (Sink, error)

// RawWriter writes pre-built command parts straight to the sink, bypassing
// the recovery trigger. It is handed to a Link's Recover callback so the
// restore sequence can reuse the same write_all primitive without
// recursing back into recovery.
type RawWriter func(parts ...[]byte) error

// Link owns the byte sink and implements the blocking write_all contract
// with recovery (spec.md §4.9). The zero value is not usable; construct
// with NewLink.
type Link struct {
	dial          Dialer
	recoverWindow time.Duration
	retryPause    time.Duration

	mu   sync.Mutex
	sink Sink

	// Recover re-emits whatever device-restore sequence the owner needs
	// (Reset, settle, Clear, Brightness, Orientation, full shadow redraw)
	// using raw, once a fresh sink is in hand. Set by the driver facade,
	// which is the only component that knows the current device state.
	Recover func(raw RawWriter) error
}

// NewLink dials the initial sink and returns a ready Link.
func NewLink(dial Dialer) (*Link, error) {
	sink, err := dial()
	if err != nil {
		return nil, wrap(fmt.Errorf("%w: %v", ErrPortBusy, err))
	}
	return &Link{
		dial:          dial,
		recoverWindow: time.Second,
		retryPause:    50 * time.Millisecond,
		sink:          sink,
	}, nil
}

// WriteAll blocks until every part has been fully handed to the sink, or
// fails. On a mid-write I/O failure it runs recovery once and retries the
// same write; if recovery itself fails, ErrRecoveryExhausted is returned.
func (l *Link) WriteAll(parts ...[]byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sink == nil {
		return wrap(ErrDisconnected)
	}

	if err := l.writeLocked(parts); err == nil {
		return nil
	}

	if err := l.recoverLocked(); err != nil {
		return err
	}

	return l.writeLocked(parts)
}

func (l *Link) writeLocked(parts [][]byte) error {
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		if _, err := l.sink.Write(p); err != nil {
			return wrap(fmt.Errorf("%w: %v", ErrWriteFailed, err))
		}
	}
	return nil
}

// recoverLocked implements spec.md §4.9's four-step recovery protocol. The
// caller must hold l.mu.
func (l *Link) recoverLocked() error {
	if l.sink != nil {
		_ = l.sink.Close()
		l.sink = nil
	}

	if err := l.dialWithin(l.recoverWindow); err != nil {
		return err
	}

	if l.Recover == nil {
		return nil
	}

	raw := RawWriter(func(parts ...[]byte) error { return l.writeLocked(parts) })
	if err := l.Recover(raw); err != nil {
		return wrap(fmt.Errorf("%w: %v", ErrRecoveryExhausted, err))
	}
	return nil
}

// dialWithin redials until success or window elapses, storing the result
// in l.sink. The caller must hold l.mu.
func (l *Link) dialWithin(window time.Duration) error {
	deadline := time.Now().Add(window)
	var lastErr error
	for {
		sink, err := l.dial()
		if err == nil {
			l.sink = sink
			return nil
		}
		lastErr = err
		if time.Now().After(deadline) {
			return wrap(fmt.Errorf("%w: %v", ErrRecoveryExhausted, lastErr))
		}
		time.Sleep(l.retryPause)
	}
}

// Reopen closes the current sink, ignoring errors, and redials within
// window. Unlike the failure-triggered recovery path, it never invokes
// Recover: an explicit caller-requested reset (spec.md §4.8 reset) only
// redials and re-emits no restore sequence.
func (l *Link) Reopen(window time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink != nil {
		_ = l.sink.Close()
		l.sink = nil
	}
	return l.dialWithin(window)
}

// Close releases the sink. Repeated Close is idempotent.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink == nil {
		return nil
	}
	err := l.sink.Close()
	l.sink = nil
	return wrap(err)
}

// Connected reports whether the link currently holds an open sink.
func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sink != nil
}
