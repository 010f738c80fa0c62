// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, spec.md §7. Wrap with fmt.Errorf("protocol: %w", ...)
// so callers can still errors.Is against these.
var (
	ErrDisconnected      = errors.New("protocol: link unavailable at write time")
	ErrWriteFailed       = errors.New("protocol: underlying byte sink reported an I/O failure")
	ErrPortBusy          = errors.New("protocol: sink open failed (permission or lock held)")
	ErrRecoveryExhausted = errors.New("protocol: reopen failed within the recovery window")
	ErrInvalidArgument   = errors.New("protocol: invalid argument")
)

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("protocol: %w", err)
}
