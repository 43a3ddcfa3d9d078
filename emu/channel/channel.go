/*
 * AGC - I/O channel file
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

// Package channel implements the AGC's 33-channel I/O file: a flat array
// of words with a handful of channels wired to side effects (DSKY
// aliasing, bank-register loading, uplink/downlink interrupts).
package channel

import "github.com/agcsim/agc/emu/word"

const (
	// NumChannels is the number of addressable I/O channels.
	NumChannels = 33

	// ChanDskyVerb and ChanDskyNoun alias the DSKY verb/noun latches.
	ChanDskyVerb = 10
	ChanDskyNoun = 11
	// ChanBank decomposes into EB/FB on write.
	ChanBank = 12
	// ChanUplink raises UPRUPT on read.
	ChanUplink = 30
	// ChanDownlink raises DOWNRUPT on read.
	ChanDownlink = 31
)

// BankLoader is implemented by emu/memory.Memory; kept as a narrow
// interface so channel does not need to import memory's full API.
type BankLoader interface {
	SetBanks(eb, fb uint8)
}

// Raiser lets the channel file pend an interrupt without importing the
// full interrupt controller API.
type Raiser interface {
	Trigger(kind string)
}

// DSKYPort is the slice of DSKY behavior the channel file needs for
// channels 10/11.
type DSKYPort interface {
	Verb() word.Word
	Noun() word.Word
	SetVerb(word.Word)
	SetNoun(word.Word)
}

// File is the 33-channel I/O file.
type File struct {
	channels [NumChannels]word.Word

	Banks BankLoader
	Rupt  Raiser
	DSKY  DSKYPort
}

// New returns an empty channel file wired to the given collaborators.
// Any of them may be nil if the caller does not need that side effect
// (useful in isolated tests of the channel file itself).
func New(banks BankLoader, rupt Raiser, dsky DSKYPort) *File {
	return &File{Banks: banks, Rupt: rupt, DSKY: dsky}
}

// Read returns the value of channel i, applying the read-side side
// effects of channels 10, 11, 30, and 31. Out-of-range indices return
// the absent sentinel (zero).
func (f *File) Read(i int) word.Word {
	if i < 0 || i >= NumChannels {
		return 0
	}
	switch i {
	case ChanDskyVerb:
		if f.DSKY != nil {
			return f.DSKY.Verb()
		}
	case ChanDskyNoun:
		if f.DSKY != nil {
			return f.DSKY.Noun()
		}
	case ChanUplink:
		if f.Rupt != nil {
			f.Rupt.Trigger("UPRUPT")
		}
	case ChanDownlink:
		if f.Rupt != nil {
			f.Rupt.Trigger("DOWNRUPT")
		}
	}
	return f.channels[i]
}

// Write stores v & 0x7FFF into channel i. Channel 12 additionally
// decomposes the value into EB/FB bank registers. Out-of-range indices
// are silently ignored.
func (f *File) Write(i int, v word.Word) {
	if i < 0 || i >= NumChannels {
		return
	}
	v &= word.Mask
	f.channels[i] = v
	switch i {
	case ChanBank:
		if f.Banks != nil {
			eb := uint8(v>>3) & 0o7
			fb := uint8(v>>9) & 0o37
			f.Banks.SetBanks(eb, fb)
		}
	case ChanDskyVerb:
		if f.DSKY != nil {
			f.DSKY.SetVerb(v)
		}
	case ChanDskyNoun:
		if f.DSKY != nil {
			f.DSKY.SetNoun(v)
		}
	}
}

// Clear zeros channel i without invoking any side effects; used by the
// RAND opcode, which reads-then-clears.
func (f *File) Clear(i int) {
	if i < 0 || i >= NumChannels {
		return
	}
	f.channels[i] = 0
}

// Peek returns the raw stored value of channel i with no side effects,
// for inspection (tests, telemetry).
func (f *File) Peek(i int) word.Word {
	if i < 0 || i >= NumChannels {
		return 0
	}
	return f.channels[i]
}
