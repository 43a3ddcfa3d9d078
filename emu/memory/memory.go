/*
 * AGC - Fixed and erasable memory, bank-addressed
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

// Package memory implements the AGC's paged fixed (rope) and erasable
// (core) address spaces.
package memory

import (
	"log/slog"

	"github.com/agcsim/agc/emu/word"
)

const (
	// FixedBanks is the number of 1024-word fixed banks.
	FixedBanks = 36
	// FixedBankSize is the number of words per fixed bank.
	FixedBankSize = 1024
	// FixedWords is the total size of the fixed address space.
	FixedWords = FixedBanks * FixedBankSize

	// ErasableBanks is the number of 256-word erasable banks.
	ErasableBanks = 8
	// ErasableBankSize is the number of words per erasable bank.
	ErasableBankSize = 256
	// ErasableWords is the total size of the erasable address space.
	ErasableWords = ErasableBanks * ErasableBankSize

	// EBMask and FBMask bound the live bits of the bank registers.
	EBMask uint8 = 0x07
	FBMask uint8 = 0x1F
)

// Memory holds the fixed and erasable stores along with the bank
// registers that select which page of each is currently addressed.
type Memory struct {
	fixed    [FixedWords]word.Word
	erasable [ErasableWords]word.Word

	EB uint8 // erasable bank, 3 bits
	FB uint8 // fixed bank, 5 bits
	BB uint8 // (FB<<3)|EB, 8 bits live

	// ParityFail latches true on an out-of-range read or an odd-parity
	// write violation. It is observable but never aborts execution.
	ParityFail bool
}

// New returns a Memory with all banks zeroed.
func New() *Memory {
	return &Memory{}
}

// setParityFail latches ParityFail, logging only on the off-to-on
// transition so a sustained fault does not flood the log.
func (m *Memory) setParityFail(reason string, addr int) {
	if !m.ParityFail {
		slog.Warn("fault latch set", "fault", "parity_fail", "reason", reason, "address", addr)
	}
	m.ParityFail = true
}

// updateBB recomputes BB from the current EB/FB; it is the only place the
// invariant BB == (FB<<3)|EB may transiently not hold.
func (m *Memory) updateBB() {
	m.BB = (m.FB << 3) | m.EB
}

// SetBanks loads EB and FB (masked to their live widths) and recomputes BB.
func (m *Memory) SetBanks(eb, fb uint8) {
	m.EB = eb & EBMask
	m.FB = fb & FBMask
	m.updateBB()
}

// ReadFixed reads the word at offset within the currently selected fixed
// bank. An out-of-range offset latches ParityFail and reads as zero.
func (m *Memory) ReadFixed(offset int) word.Word {
	if offset < 0 || offset >= FixedWords {
		m.setParityFail("fixed read out of range", offset)
		return 0
	}
	addr := (int(m.FB)*FixedBankSize + offset) % FixedWords
	return m.fixed[addr]
}

// ReadFixedAbs reads a flat fixed-memory address, bypassing the bank
// register, for inspecting fixed memory (tests, loader checks).
func (m *Memory) ReadFixedAbs(addr int) word.Word {
	if addr < 0 || addr >= FixedWords {
		m.setParityFail("fixed read out of range", addr)
		return 0
	}
	return m.fixed[addr]
}

// WriteFixedAbs writes a flat fixed-memory address, used by the program
// loader. Fixed memory is ROM on real hardware; this simulator allows
// writes for loading. No opcode writes fixed memory.
func (m *Memory) WriteFixedAbs(addr int, v word.Word) {
	if addr < 0 || addr >= FixedWords {
		m.setParityFail("fixed write out of range", addr)
		return
	}
	m.write(&m.fixed[addr], v)
}

// ReadErasable reads the word at offset within the currently selected
// erasable bank. An out-of-range offset latches ParityFail and reads as
// zero.
func (m *Memory) ReadErasable(offset int) word.Word {
	if offset < 0 || offset >= ErasableWords {
		m.setParityFail("erasable read out of range", offset)
		return 0
	}
	addr := (int(m.EB)*ErasableBankSize + offset) % ErasableWords
	return m.erasable[addr]
}

// WriteErasable writes the word at offset within the currently selected
// erasable bank, normalizing negative zero and checking parity.
func (m *Memory) WriteErasable(offset int, v word.Word) {
	if offset < 0 || offset >= ErasableWords {
		m.setParityFail("erasable write out of range", offset)
		return
	}
	addr := (int(m.EB)*ErasableBankSize + offset) % ErasableWords
	m.write(&m.erasable[addr], v)
}

// ReadErasableAbs reads a flat erasable address (addr mod ErasableWords),
// bypassing the bank register.
func (m *Memory) ReadErasableAbs(addr int) word.Word {
	addr = ((addr % ErasableWords) + ErasableWords) % ErasableWords
	return m.erasable[addr]
}

// WriteErasableAbs writes a flat erasable address (addr mod ErasableWords).
func (m *Memory) WriteErasableAbs(addr int, v word.Word) {
	addr = ((addr % ErasableWords) + ErasableWords) % ErasableWords
	m.write(&m.erasable[addr], v)
}

// write normalizes v, stores it, and checks parity.
func (m *Memory) write(slot *word.Word, v word.Word) {
	v = word.Normalize(v)
	*slot = v
	if !word.Parity(v) {
		m.setParityFail("odd parity on write", -1)
	}
}
