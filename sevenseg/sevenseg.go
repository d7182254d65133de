// SPDX-License-Identifier: MIT

// Package sevenseg provides segment patterns for a common cathode seven
// segment display driven from an 8-bit shift register.
//
// Patterns place segments a-g on bits 0-6 and the decimal point on bit 7,
// and are authored for the hc595.MSBFirst bit order. Shifting them LSB
// first produces garbage.
package sevenseg

// Digits holds the segment patterns for the hex digits 0-F.
var Digits = [16]byte{
	0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07,
	0x7f, 0x6f, 0x77, 0x7c, 0x39, 0x5e, 0x79, 0x71,
}

// DP is the decimal point segment.
const DP byte = 0x80

// Faces holds the patterns for the dice faces 1-6.
var Faces = [6]byte{0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d}

// Digit returns the segment pattern for hex digit n.
//
// Digits out of range return a blank display.
func Digit(n int) byte {
	if n < 0 || n >= len(Digits) {
		return 0
	}
	return Digits[n]
}
