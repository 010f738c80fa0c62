// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuffer

import (
	"testing"

	"github.com/periphextra/usbpanel/color565"
)

func TestNewAllZero(t *testing.T) {
	b := New(4, 3)
	if got, want := len(b.Cells()), 12; got != want {
		t.Fatalf("len(Cells()) = %d, want %d", got, want)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := b.At(x, y); got != 0 {
				t.Errorf("At(%d,%d) = %#04x, want 0", x, y, got)
			}
		}
	}
}

func TestSetGet(t *testing.T) {
	b := New(4, 3)
	b.Set(2, 1, 0xF800)
	if got := b.At(2, 1); got != 0xF800 {
		t.Errorf("At(2,1) = %#04x, want 0xf800", got)
	}
	if got := b.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %#04x, want 0", got)
	}
}

func TestClearColor(t *testing.T) {
	b := New(2, 2)
	b.ClearColor(color565.White)
	for _, c := range b.Cells() {
		if c != color565.White {
			t.Fatalf("cell = %#04x, want white", c)
		}
	}
	b.Clear()
	for _, c := range b.Cells() {
		if c != 0 {
			t.Fatalf("cell = %#04x, want 0 after Clear", c)
		}
	}
}

func TestOutOfRangePanics(t *testing.T) {
	b := New(2, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range access")
		}
	}()
	b.At(2, 0)
}

func TestRowSlice(t *testing.T) {
	b := New(5, 2)
	for x := 0; x < 5; x++ {
		b.Set(x, 1, color565.Color(x))
	}
	row := b.RowSlice(1, 1, 4)
	if len(row) != 3 {
		t.Fatalf("len(row) = %d, want 3", len(row))
	}
	if row[0] != 1 || row[1] != 2 || row[2] != 3 {
		t.Fatalf("row = %v, want [1 2 3]", row)
	}
	row[0] = 99
	if got := b.At(1, 1); got != 99 {
		t.Fatalf("mutating RowSlice should write through, At(1,1) = %d", got)
	}
}
