/* AGC CPU opcode and mnemonic definitions

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

// Mnemonic names one AGC instruction. The dispatch table in dispatch.go
// is keyed by Mnemonic rather than by raw opcode number, since the
// symbolic instruction interface (the test harness's primary entry
// point) hands instructions to the engine by name.
type Mnemonic string

// Basic-mode mnemonics: TC's 2-bit subcode in bits 11..10 selects among
// TC, CCS, INDEX, and XCH; the remaining basic opcodes occupy the 3-bit
// opcode field directly.
const (
	TC     Mnemonic = "TC"
	CCS    Mnemonic = "CCS"
	INDEX  Mnemonic = "INDEX"
	XCH    Mnemonic = "XCH"
	CA     Mnemonic = "CA"
	CS     Mnemonic = "CS"
	TS     Mnemonic = "TS"
	AD     Mnemonic = "AD"
	MSK    Mnemonic = "MSK"
	EXTEND Mnemonic = "EXTEND"
)

// Extended-mode mnemonics, valid only immediately after EXTEND.
const (
	MP      Mnemonic = "MP"
	DV      Mnemonic = "DV"
	SU      Mnemonic = "SU"
	DCA     Mnemonic = "DCA"
	DCS     Mnemonic = "DCS"
	DAD     Mnemonic = "DAD"
	DAS     Mnemonic = "DAS"
	DSU     Mnemonic = "DSU"
	LXCH    Mnemonic = "LXCH"
	QXCH    Mnemonic = "QXCH"
	INCR    Mnemonic = "INCR"
	AUG     Mnemonic = "AUG"
	DIM     Mnemonic = "DIM"
	BZF     Mnemonic = "BZF"
	BZM     Mnemonic = "BZM"
	RELINT  Mnemonic = "RELINT"
	INHINT  Mnemonic = "INHINT"
	EDRUPT  Mnemonic = "EDRUPT"
	RESUME  Mnemonic = "RESUME"
	CYR     Mnemonic = "CYR"
	SR      Mnemonic = "SR"
	SL      Mnemonic = "SL"
	PINC    Mnemonic = "PINC"
	MINC    Mnemonic = "MINC"
	DXCH    Mnemonic = "DXCH"
	CAF     Mnemonic = "CAF"
	TCAF    Mnemonic = "TCAF"
	RAND    Mnemonic = "RAND"
	MASK    Mnemonic = "MASK"
	READ    Mnemonic = "READ"
	WRITE   Mnemonic = "WRITE"
	NOOP    Mnemonic = "NOOP"
	INOT    Mnemonic = "INOT"  // reserved token, opcode 0o52
	INOTR   Mnemonic = "INOTR" // reserved token, opcode 0o53
)

// basicOpcode and basicSubcode give the bit-level encoding used by the
// fetch-execute decoder for basic-mode mnemonics. Only TC/CCS/INDEX/XCH
// use the subcode field; the rest occupy the opcode field alone.
var basicOpcode = map[Mnemonic]uint8{
	TC:     0,
	CCS:    0,
	INDEX:  0,
	XCH:    0,
	CA:     1,
	CS:     2,
	TS:     3,
	AD:     4,
	MSK:    5,
	EXTEND: 6,
}

var basicSubcode = map[Mnemonic]uint8{
	TC:    0,
	CCS:   1,
	INDEX: 2,
	XCH:   3,
}

var basicFromOpcodeSubcode = invertOpcodeSubcode()

func invertOpcodeSubcode() map[[2]uint8]Mnemonic {
	m := make(map[[2]uint8]Mnemonic)
	for mnem, op := range basicOpcode {
		if op != 0 {
			m[[2]uint8{op, 0}] = mnem
			continue
		}
	}
	for mnem, sub := range basicSubcode {
		m[[2]uint8{0, sub}] = mnem
	}
	return m
}

// extendedOpcode gives the extended-mode opcode for each extended
// mnemonic, including the two reserved tokens at their documented codes
// (0o52, 0o53). The fetched opcode field is 5 bits wide, so codes above
// 0o37 (the two reserved tokens) are reachable only through Execute.
var extendedOpcode = map[Mnemonic]uint8{
	MP:     0o01,
	DV:     0o02,
	SU:     0o03,
	DCA:    0o04,
	DCS:    0o05,
	DAD:    0o06,
	DAS:    0o07,
	DSU:    0o10,
	LXCH:   0o11,
	QXCH:   0o12,
	INCR:   0o13,
	AUG:    0o14,
	DIM:    0o15,
	BZF:    0o16,
	BZM:    0o17,
	RELINT: 0o20,
	INHINT: 0o21,
	EDRUPT: 0o22,
	RESUME: 0o23,
	CYR:    0o24,
	SR:     0o25,
	SL:     0o26,
	PINC:   0o27,
	MINC:   0o30,
	DXCH:   0o31,
	CAF:    0o32,
	TCAF:   0o33,
	RAND:   0o34,
	MASK:   0o35,
	READ:   0o36,
	WRITE:  0o37,
	NOOP:   0o00,
	INOT:   0o52,
	INOTR:  0o53,
}

var extendedFromOpcode = invertExtended()

func invertExtended() map[uint8]Mnemonic {
	m := make(map[uint8]Mnemonic, len(extendedOpcode))
	for mnem, op := range extendedOpcode {
		m[op] = mnem
	}
	return m
}

// Interrupt vector addresses, spec.md §4.5.
const (
	VecT3RUPT   = 0x4004
	VecT4RUPT   = 0x4008
	VecT5RUPT   = 0x400C
	VecDSRUPT   = 0x4010
	VecKEYRUPT  = 0x4014
	VecUPRUPT   = 0x4018
	VecDOWNRUPT = 0x401C
)
