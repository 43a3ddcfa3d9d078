/* AGC execution engine: machine state, fetch-execute, symbolic interface

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

// Package cpu implements the AGC instruction decoder and execution
// engine: the dispatch table of dispatch.go driven either by fetching
// words from fixed memory at Z, or by the symbolic instruction interface
// used by the test harness and the loader-free scripting path.
package cpu

import (
	"fmt"
	"log/slog"

	"github.com/agcsim/agc/emu/channel"
	"github.com/agcsim/agc/emu/dsky"
	"github.com/agcsim/agc/emu/interrupt"
	"github.com/agcsim/agc/emu/memory"
	"github.com/agcsim/agc/emu/timer"
	"github.com/agcsim/agc/emu/word"
)

// Machine holds every piece of AGC state: the accumulator/index/return
// registers, the collaborating components, and the execution-engine
// latches (extended-mode, cycle count, fault flags).
type Machine struct {
	A word.Word
	L word.Word
	Q word.Word
	Z word.Word

	Mem   *memory.Memory
	Chan  *channel.File
	Rupt  *interrupt.Controller
	Timer *timer.Block
	DSKY  *dsky.DSKY

	ExtendedMode bool
	CycleCount   uint64

	TCTrap bool

	runner runner
}

// New wires a fresh Machine: interrupt controller first (the DSKY, channel
// file, and timer hold a reference to it), then memory, DSKY, channel
// file, and timer,
// matching the dependency order spelled out in spec.md §2's data-flow
// diagram (decoder -> engine -> word/memory/io/timers/interrupts/dsky).
func New() *Machine {
	rupt := interrupt.New()
	mem := memory.New()
	d := dsky.New(rupt)
	ch := channel.New(mem, rupt, d)
	tm := timer.New(rupt)
	return &Machine{
		Mem:   mem,
		Chan:  ch,
		Rupt:  rupt,
		Timer: tm,
		DSKY:  d,
	}
}

// Faults is a read-only snapshot of the machine's observable fault
// latches and interrupt backlog, for the console and tests to inspect
// without reaching into Machine's collaborators directly.
type Faults struct {
	ParityFail   bool
	TCTrap       bool
	RuptLock     bool
	PendingRupts int
}

// Snapshot returns the current fault/telemetry state.
func (m *Machine) Snapshot() Faults {
	return Faults{
		ParityFail:   m.Mem.ParityFail,
		TCTrap:       m.TCTrap,
		RuptLock:     m.Rupt.RuptLock,
		PendingRupts: m.Rupt.PendingCount(),
	}
}

// Step fetches the instruction word at Z from fixed memory, decodes it
// under the current extended-mode flag, dispatches it, and runs the
// post-instruction bookkeeping of spec.md §4.8: PC advance, extended-mode
// clearing, one drained interrupt, and cycle accounting.
//
// It returns false if the fetched word decoded to an unknown opcode — the
// fetch-execute path has no caller to report a programmer error to, so it
// logs and treats the instruction as a NOOP for cycle-accounting purposes.
func (m *Machine) Step() bool {
	instrWord := m.Mem.ReadFixed(int(m.Z))
	dec := Decode(instrWord, m.ExtendedMode)
	if !dec.Valid {
		slog.Warn("unknown opcode at fetch", "z", m.Z, "word", instrWord, "extended", m.ExtendedMode)
		m.finishInstruction(NOOP, false)
		return false
	}
	m.execute(dec.Mnemonic, dec.Address)
	return true
}

// Execute runs one instruction via the symbolic interface: mnemonic plus
// operand address, bypassing the fetch-decode step entirely. It returns
// an error for an unrecognized mnemonic (spec.md §7's programmer-error
// signal) rather than silently treating it as a NOOP, since a caller is
// present to receive the error.
func (m *Machine) Execute(mnemonic Mnemonic, address uint16) error {
	if _, ok := dispatch[mnemonic]; !ok {
		return fmt.Errorf("cpu: unknown mnemonic %q", mnemonic)
	}
	m.execute(mnemonic, address)
	return nil
}

// execute runs mnemonic's handler and the shared post-instruction
// bookkeeping; both Step and Execute funnel through here.
func (m *Machine) execute(mnemonic Mnemonic, address uint16) {
	info, ok := dispatch[mnemonic]
	if !ok {
		m.finishInstruction(NOOP, false)
		return
	}
	wasExtended := m.ExtendedMode
	jumped := info.exec(m, address)
	m.finishPostExec(mnemonic, jumped, wasExtended, info.cycles)
}

// finishInstruction is a fallback path for an unrecognized fetched word:
// it still advances Z and charges one MCT, so a corrupted rope does not
// wedge the fetch loop.
func (m *Machine) finishInstruction(mnemonic Mnemonic, jumped bool) {
	m.finishPostExec(mnemonic, jumped, m.ExtendedMode, 1)
}

// finishPostExec implements spec.md §4.8's four post-instruction steps.
// Per spec.md §9's decided branch-increment open question, a handler
// that sets Z directly (jumped == true: TC, INDEX, a taken BZF/BZM,
// RESUME, TCAF) is never additionally post-incremented.
func (m *Machine) finishPostExec(mnemonic Mnemonic, jumped, wasExtended bool, cycles int) {
	if mnemonic != TC && !jumped {
		m.Z = word.Add(m.Z, 1)
	}
	if wasExtended && mnemonic != EXTEND {
		m.ExtendedMode = false
	}
	if vec, ok := m.Rupt.ProcessInterrupts(m.Z); ok {
		m.Z = vec
	}
	m.CycleCount += uint64(cycles)
}

// LoadRope writes prog sequentially into fixed memory starting at offset
// 0 of bank, interpreting it as big-endian 16-bit words masked to 15
// bits each, per spec.md §6. An odd trailing byte is dropped with a
// logged warning rather than aborting the load, matching the teacher's
// tolerant sequential-device-read behavior.
func (m *Machine) LoadRope(prog []byte, bank uint8) {
	if len(prog)%2 != 0 {
		slog.Warn("rope image has odd byte count, dropping trailing byte", "bytes", len(prog))
		prog = prog[:len(prog)-1]
	}
	base := int(bank) * memory.FixedBankSize
	for i := 0; i+1 < len(prog); i += 2 {
		v := word.Word(prog[i])<<8 | word.Word(prog[i+1])
		m.Mem.WriteFixedAbs(base+i/2, word.Normalize(v))
	}
}
