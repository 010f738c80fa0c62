// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package protocol implements the panel's wire command set: the 6-byte
// header codec, short control commands, the reusable command scratch, and
// the serial Link with its reconnect-and-restore recovery protocol.
package protocol

// Command codes, spec.md §6.
const (
	CmdReset       byte = 101
	CmdClear       byte = 102
	CmdScreenOff   byte = 108
	CmdScreenOn    byte = 109
	CmdBrightness  byte = 110
	CmdOrientation byte = 121
	CmdDraw        byte = 197
)

// PanelWidth and PanelHeight are the panel's native physical axes
// (Portrait/ReversePortrait orientation).
const (
	PanelWidth  = 320
	PanelHeight = 480
)

