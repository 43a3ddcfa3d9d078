/* AGC CPU dispatch table: one handler per opcode

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

import (
	"log/slog"

	"github.com/agcsim/agc/emu/word"
)

// opcodeInfo is one entry of the dispatch table: the MCT cost charged by
// the execution engine after the handler runs, and the handler itself.
// The handler returns true if it set Z directly (a jump, an index load,
// a taken branch, a resume) — in which case the engine's automatic
// post-instruction increment of Z is skipped. CCS is the exception: its
// zero-operand skip adds one to Z and returns false, so the ordinary
// increment still follows.
type opcodeInfo struct {
	cycles int
	exec   func(m *Machine, addr uint16) bool
}

var dispatch = map[Mnemonic]opcodeInfo{
	TC:     {1, execTC},
	CCS:    {2, execCCS},
	INDEX:  {1, execINDEX},
	XCH:    {2, execXCH},
	CA:     {2, execCA},
	CS:     {2, execCS},
	TS:     {2, execTS},
	AD:     {2, execAD},
	MSK:    {1, execMSK},
	EXTEND: {1, execEXTEND},

	MP:     {6, execMP},
	DV:     {6, execDV},
	SU:     {2, execSU},
	DCA:    {4, execDCA},
	DCS:    {4, execDCS},
	DAD:    {6, execDAD},
	DAS:    {6, execDAS},
	DSU:    {6, execDSU},
	LXCH:   {2, execLXCH},
	QXCH:   {2, execQXCH},
	INCR:   {2, execINCR},
	AUG:    {1, execAUG},
	DIM:    {2, execDIM},
	BZF:    {2, execBZF},
	BZM:    {2, execBZM},
	RELINT: {1, execRELINT},
	INHINT: {1, execINHINT},
	EDRUPT: {1, execEDRUPT},
	RESUME: {1, execRESUME},
	CYR:    {2, execCYR},
	SR:     {2, execSR},
	SL:     {2, execSL},
	PINC:   {2, execPINC},
	MINC:   {2, execMINC},
	DXCH:   {4, execDXCH},
	CAF:    {2, execCAF},
	TCAF:   {2, execTCAF},
	RAND:   {2, execRAND},
	MASK:   {1, execMSK}, // same effect as MSK, different opcode
	READ:   {2, execREAD},
	WRITE:  {2, execWRITE},
	NOOP:   {1, execNOOP},
	INOT:   {1, execNOOP}, // reserved, no defined semantics beyond occupying the slot
	INOTR:  {1, execNOOP}, // reserved, no defined semantics beyond occupying the slot
}

func execTC(m *Machine, addr uint16) bool {
	if m.Z == word.Word(addr) {
		if !m.TCTrap {
			slog.Warn("fault latch set", "fault", "tc_trap", "z", m.Z)
		}
		m.TCTrap = true
	}
	m.Z = word.Word(addr)
	return true
}

func execCCS(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	switch {
	case word.IsZero(v):
		m.Z = word.Add(m.Z, 1)
	case !word.IsNegative(v):
		m.A = word.Normalize(word.Complement(m.A))
	default:
		m.A = m.A &^ word.SignBit
	}
	return false
}

func execINDEX(m *Machine, addr uint16) bool {
	m.Z = word.Normalize(m.Mem.ReadErasable(int(addr)))
	return true
}

func execXCH(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	m.Mem.WriteErasable(int(addr), m.A)
	m.A = word.Normalize(v)
	return false
}

func execCA(m *Machine, addr uint16) bool {
	m.A = word.Normalize(m.Mem.ReadErasable(int(addr)))
	return false
}

func execCS(m *Machine, addr uint16) bool {
	m.A = word.Normalize(word.Complement(m.Mem.ReadErasable(int(addr))))
	return false
}

func execTS(m *Machine, addr uint16) bool {
	m.Mem.WriteErasable(int(addr), m.A)
	m.A = 0
	return false
}

func execAD(m *Machine, addr uint16) bool {
	m.A = word.Add(m.A, m.Mem.ReadErasable(int(addr)))
	return false
}

func execMSK(m *Machine, addr uint16) bool {
	m.A = word.Normalize(m.A & (word.Word(addr) & word.Mask))
	return false
}

func execEXTEND(m *Machine, _ uint16) bool {
	m.ExtendedMode = true
	return false
}

func execMP(m *Machine, addr uint16) bool {
	p := uint32(m.A&word.Mask) * uint32(m.Mem.ReadErasable(int(addr))&word.Mask)
	m.L = word.Normalize(word.Word((p >> 15) & uint32(word.Mask)))
	m.A = word.Normalize(word.Word(p & uint32(word.Mask)))
	return false
}

func execDV(m *Machine, addr uint16) bool {
	dividend := uint32(m.L&word.Mask)<<15 | uint32(m.A&word.Mask)
	d := m.Mem.ReadErasable(int(addr))
	if d == 0 {
		m.A, m.L = 0, 0
		m.Rupt.Trigger("DSRUPT")
		return false
	}
	div := uint32(d & word.Mask)
	m.A = word.Normalize(word.Word(dividend / div))
	m.L = word.Normalize(word.Word(dividend % div))
	return false
}

func execSU(m *Machine, addr uint16) bool {
	m.A = word.Sub(m.A, m.Mem.ReadErasable(int(addr)))
	return false
}

func secondOffset(addr uint16) int {
	return (int(addr) + 1) % 2048
}

func execDCA(m *Machine, addr uint16) bool {
	m.A = word.Normalize(m.Mem.ReadErasable(int(addr)))
	m.L = word.Normalize(m.Mem.ReadErasable(secondOffset(addr)))
	return false
}

func execDCS(m *Machine, addr uint16) bool {
	m.A = word.Normalize(word.Complement(m.Mem.ReadErasable(int(addr))))
	m.L = word.Normalize(word.Complement(m.Mem.ReadErasable(secondOffset(addr))))
	return false
}

// dpAdd computes a double-precision one's-complement add of (aHigh,aLow)
// and (bHigh,bLow): the low words add natively (no end-around carry)
// with any overflow fed as a carry into the end-around high-word add.
func dpAdd(aHigh, aLow, bHigh, bLow word.Word) (highR, lowR word.Word) {
	rawLow := uint32(aLow&word.Mask) + uint32(bLow&word.Mask)
	var carry word.Word
	if rawLow&0x8000 != 0 {
		carry = 1
	}
	lowR = word.Normalize(word.Word(rawLow & uint32(word.Mask)))
	highR = word.Add(word.Add(aHigh, bHigh), carry)
	return highR, lowR
}

// dpSub computes a double-precision one's-complement subtract, mirroring
// dpAdd's native-low-word-then-propagated-borrow shape.
func dpSub(aHigh, aLow, bHigh, bLow word.Word) (highR, lowR word.Word) {
	rawLow := int32(aLow&word.Mask) - int32(bLow&word.Mask)
	var borrow word.Word
	if rawLow < 0 {
		rawLow += 0x8000
		borrow = 1
	}
	lowR = word.Normalize(word.Word(rawLow & int32(word.Mask)))
	highR = word.Sub(word.Sub(aHigh, bHigh), borrow)
	return highR, lowR
}

func execDAD(m *Machine, addr uint16) bool {
	memHigh := m.Mem.ReadErasable(int(addr))
	memLow := m.Mem.ReadErasable(secondOffset(addr))
	m.A, m.L = dpAdd(m.A, m.L, memHigh, memLow)
	return false
}

func execDAS(m *Machine, addr uint16) bool {
	memHigh := m.Mem.ReadErasable(int(addr))
	memLow := m.Mem.ReadErasable(secondOffset(addr))
	sumHigh, sumLow := dpAdd(m.A, m.L, memHigh, memLow)
	m.Mem.WriteErasable(int(addr), sumHigh)
	m.Mem.WriteErasable(secondOffset(addr), sumLow)
	return false
}

func execDSU(m *Machine, addr uint16) bool {
	memHigh := m.Mem.ReadErasable(int(addr))
	memLow := m.Mem.ReadErasable(secondOffset(addr))
	m.A, m.L = dpSub(m.A, m.L, memHigh, memLow)
	return false
}

func execLXCH(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	m.Mem.WriteErasable(int(addr), m.L)
	m.L = word.Normalize(v)
	return false
}

func execQXCH(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	m.Mem.WriteErasable(int(addr), m.Q)
	m.Q = word.Normalize(v)
	return false
}

func execINCR(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	m.Mem.WriteErasable(int(addr), word.Add(v, 1))
	return false
}

func execAUG(m *Machine, _ uint16) bool {
	m.A = word.Add(m.A, 1)
	return false
}

func execDIM(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	if word.Sign(v) > 0 {
		m.Mem.WriteErasable(int(addr), word.Sub(v, 1))
	} else {
		m.Mem.WriteErasable(int(addr), word.Add(v, 1))
	}
	return false
}

func execBZF(m *Machine, addr uint16) bool {
	if !word.IsNegative(m.A) {
		m.Z = word.Word(addr)
		return true
	}
	return false
}

func execBZM(m *Machine, addr uint16) bool {
	if word.IsNegative(m.A) && !word.IsZero(m.A) {
		m.Z = word.Word(addr)
		return true
	}
	return false
}

func execRELINT(m *Machine, _ uint16) bool {
	m.Rupt.Relint()
	return false
}

func execINHINT(m *Machine, _ uint16) bool {
	m.Rupt.Inhint()
	return false
}

func execEDRUPT(m *Machine, addr uint16) bool {
	m.Rupt.Edrupt(word.Word(addr))
	return false
}

func execRESUME(m *Machine, _ uint16) bool {
	m.Z = m.Rupt.Resume()
	return true
}

func execCYR(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	rotated := ((v >> 1) | (v << 14)) & word.Mask
	m.Mem.WriteErasable(int(addr), rotated)
	return false
}

func execSR(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	m.Mem.WriteErasable(int(addr), (v>>1)&word.Mask)
	return false
}

func execSL(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	m.Mem.WriteErasable(int(addr), (v<<1)&word.Mask)
	return false
}

func execPINC(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	if !word.IsNegative(v) {
		m.Mem.WriteErasable(int(addr), word.Add(v, 1))
	}
	return false
}

func execMINC(m *Machine, addr uint16) bool {
	v := m.Mem.ReadErasable(int(addr))
	if word.IsNegative(v) {
		m.Mem.WriteErasable(int(addr), word.Add(v, 1))
	}
	return false
}

func execDXCH(m *Machine, addr uint16) bool {
	highMem := m.Mem.ReadErasable(int(addr))
	lowMem := m.Mem.ReadErasable(secondOffset(addr))
	m.Mem.WriteErasable(int(addr), m.A)
	m.Mem.WriteErasable(secondOffset(addr), m.L)
	m.A = word.Normalize(highMem)
	m.L = word.Normalize(lowMem)
	return false
}

func execCAF(m *Machine, addr uint16) bool {
	m.A = word.Normalize(m.Mem.ReadFixed(int(addr)))
	return false
}

func execTCAF(m *Machine, addr uint16) bool {
	m.A = word.Normalize(m.Mem.ReadFixed(int(addr)))
	m.Z = word.Word(addr)
	return true
}

func execRAND(m *Machine, addr uint16) bool {
	m.A = m.Chan.Peek(int(addr))
	m.Chan.Clear(int(addr))
	return false
}

func execREAD(m *Machine, addr uint16) bool {
	m.A = m.Chan.Read(int(addr))
	return false
}

func execWRITE(m *Machine, addr uint16) bool {
	m.Chan.Write(int(addr), m.A)
	return false
}

func execNOOP(_ *Machine, _ uint16) bool {
	return false
}
