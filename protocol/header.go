// Copyright 2020 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package protocol

// EncodeHeader packs a rectangle (x, y) .. (x+w-1, y+h-1) into the 6-byte
// big-endian nibble-packed header described in spec.md §4.3. x, y, w, h
// must keep the resulting ex, ey within [0, 1023].
func EncodeHeader(dst []byte, x, y, w, h int, cmd byte) {
	_ = dst[5] // bounds check hint
	ex := x + w - 1
	ey := y + h - 1
	dst[0] = byte(x >> 2)
	dst[1] = byte((x&0x3)<<6) | byte(y>>4)
	dst[2] = byte((y&0xF)<<4) | byte(ex>>6)
	dst[3] = byte((ex&0x3F)<<2) | byte(ey>>8)
	dst[4] = byte(ey & 0xFF)
	dst[5] = cmd
}

// DecodeHeader is the inverse of EncodeHeader, recovering (x, y, ex, ey,
// cmd). It exists to make EncodeHeader's injectivity independently
// testable.
func DecodeHeader(src []byte) (x, y, ex, ey int, cmd byte) {
	_ = src[5]
	x = int(src[0])<<2 | int(src[1])>>6
	y = int(src[1]&0x3F)<<4 | int(src[2])>>4
	ex = int(src[2]&0xF)<<6 | int(src[3])>>2
	ey = int(src[3]&0x3)<<8 | int(src[4])
	cmd = src[5]
	return
}

// ShortCommand fills dst (len >= 6) with a zero-padded header whose only
// meaningful byte is the command code, used for Reset/Clear/ScreenOff/
// ScreenOn.
func ShortCommand(dst []byte, cmd byte) {
	_ = dst[5]
	dst[0], dst[1], dst[2], dst[3], dst[4] = 0, 0, 0, 0, 0
	dst[5] = cmd
}

// BrightnessCommand fills dst (len >= 6) with the Brightness command
// encoding for level (already clamped to [0, 100]).
func BrightnessCommand(dst []byte, level int) {
	_ = dst[5]
	dst[0] = byte(level >> 2)
	dst[1] = byte((level & 0x3) << 6)
	dst[2], dst[3], dst[4] = 0, 0, 0
	dst[5] = CmdBrightness
}

// OrientationCommand fills dst (len >= 11) with the Orientation command:
// a zeroed 6-byte header with b5=CmdOrientation, followed by ord+100 and
// the native panel width/height as big-endian 16-bit values.
func OrientationCommand(dst []byte, ordinal int) {
	_ = dst[10]
	ShortCommand(dst[:6], CmdOrientation)
	dst[6] = byte(ordinal + 100)
	dst[7] = byte(PanelWidth >> 8)
	dst[8] = byte(PanelWidth & 0xFF)
	dst[9] = byte(PanelHeight >> 8)
	dst[10] = byte(PanelHeight & 0xFF)
}
