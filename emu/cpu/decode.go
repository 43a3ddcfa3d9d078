/* AGC instruction decoder

   Copyright 2026, Virtual AGC Simulator Contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

import "github.com/agcsim/agc/emu/word"

// Decoded is the result of decoding one fetched instruction word.
type Decoded struct {
	Mnemonic Mnemonic
	Address  uint16
	Valid    bool
}

// Decode extracts the opcode/address fields of w, interpreting it under
// extended-mode encoding if extended is true and basic-mode encoding
// otherwise, per spec.md §4.7.
//
// Extended: opcode is bits 14..10 (5 bits, codes 0..0o37), address is
// bits 9..0.
// Basic: opcode is bits 14..12 (3 bits), address is bits 11..0; for
// opcode 0, bits 11..10 are a 2-bit subcode selecting among the
// TC-class operations and the address narrows to bits 9..0.
func Decode(w word.Word, extended bool) Decoded {
	w &= word.Mask
	if extended {
		op := uint8(w>>10) & 0o77
		addr := uint16(w) & 0x3FF
		mnem, ok := extendedFromOpcode[op]
		return Decoded{Mnemonic: mnem, Address: addr, Valid: ok}
	}

	op := uint8(w>>12) & 0x7
	if op == 0 {
		sub := uint8(w>>10) & 0x3
		addr := uint16(w) & 0x3FF
		mnem, ok := basicFromOpcodeSubcode[[2]uint8{0, sub}]
		return Decoded{Mnemonic: mnem, Address: addr, Valid: ok}
	}
	addr := uint16(w) & 0xFFF
	mnem, ok := basicFromOpcodeSubcode[[2]uint8{op, 0}]
	return Decoded{Mnemonic: mnem, Address: addr, Valid: ok}
}

// Encode is the inverse of Decode, used by the test fixtures to build
// instruction words. It returns false if mnemonic is not valid in the
// requested mode or its opcode does not fit the extended opcode field.
func Encode(mnemonic Mnemonic, address uint16, extended bool) (word.Word, bool) {
	if extended {
		op, ok := extendedOpcode[mnemonic]
		if !ok || op > 0o37 {
			return 0, false
		}
		return word.Word(op)<<10 | word.Word(address&0x3FF), true
	}
	if op, ok := basicOpcode[mnemonic]; ok {
		if sub, isSub := basicSubcode[mnemonic]; isSub {
			return word.Word(op)<<12 | word.Word(sub)<<10 | word.Word(address&0x3FF), true
		}
		return word.Word(op)<<12 | word.Word(address&0xFFF), true
	}
	return 0, false
}
