/*
 * AGC - 15-bit one's-complement word arithmetic unit
 *
 * Copyright 2026, Virtual AGC Simulator Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package word implements the AGC's 15-bit one's-complement arithmetic.
//
// Every primitive here takes and returns a 15-bit Word and normalizes
// negative zero (0x7FFF) to positive zero (0x0000) on the way out. None
// of them can fail.
package word

import "math/bits"

// Word is a 15-bit one's-complement value, always stored with bits above
// bit 14 clear.
type Word uint16

const (
	// Mask covers the 15 live bits of a Word.
	Mask Word = 0x7FFF
	// SignBit is bit 14, the sign of a one's-complement Word.
	SignBit Word = 0x4000
	// NegativeZero is the bit pattern that must never be stored.
	NegativeZero Word = 0x7FFF
)

// Normalize masks v to 15 bits and folds negative zero to positive zero.
func Normalize(v Word) Word {
	v &= Mask
	if v == NegativeZero {
		return 0
	}
	return v
}

// Add computes a one's-complement sum with end-around carry: a carry out
// of bit 14 is folded back into bit 0 rather than discarded.
func Add(a, b Word) Word {
	s := uint32(a&Mask) + uint32(b&Mask)
	for s&0x8000 != 0 {
		s = (s & uint32(Mask)) + (s >> 15)
	}
	return Normalize(Word(s))
}

// Complement returns the bitwise NOT of v masked to 15 bits. Note that
// Complement(0) == 0x7FFF: callers that store the result must Normalize it.
func Complement(v Word) Word {
	return ^v & Mask
}

// Sub computes a - b as Add(a, Complement(b)).
func Sub(a, b Word) Word {
	return Add(a, Complement(b))
}

// Sign reports the one's-complement sign of v: 0 for either zero, -1 for
// negative, +1 for positive.
func Sign(v Word) int {
	if IsZero(v) {
		return 0
	}
	if IsNegative(v) {
		return -1
	}
	return 1
}

// IsNegative reports whether the sign bit (bit 14) is set.
func IsNegative(v Word) bool {
	return v&SignBit != 0
}

// IsZero reports whether v is either positive or negative zero. Stored
// words should only ever carry the positive form.
func IsZero(v Word) bool {
	return v == 0 || v == NegativeZero
}

// Parity reports odd parity over the 15 live bits: true iff the popcount
// of v is odd.
func Parity(v Word) bool {
	return bits.OnesCount16(uint16(v&Mask))%2 == 1
}
