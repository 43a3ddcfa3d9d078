/*
 * AGC - DSKY (display/keyboard) operator interface
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

// Package dsky implements the AGC's Display/Keyboard operator interface:
// verb/noun latches, an input buffer, a six-row display bank, status
// lights, and decimal/octal display formatting.
package dsky

import (
	"fmt"

	"github.com/agcsim/agc/emu/word"
)

// Mode selects decimal or octal display formatting.
type Mode int

const (
	DEC Mode = iota
	OCT
)

// Light names the boolean indicator lamps on the DSKY panel.
type Light string

const (
	UplinkActy Light = "UPLINK_ACTY"
	NoAtt      Light = "NO_ATT"
	Stby       Light = "STBY"
	KeyRel     Light = "KEY_REL"
	OprErr     Light = "OPR_ERR"
	Temp       Light = "TEMP"
	GimbalLock Light = "GIMBAL_LOCK"
	Prog       Light = "PROG"
)

// allLights lists every lamp so New can initialize the map.
var allLights = []Light{UplinkActy, NoAtt, Stby, KeyRel, OprErr, Temp, GimbalLock, Prog}

const vnMask = 0x7F // 7 live bits of a verb or noun

// entry is one pending (verb, noun) pair in the input buffer.
type entry struct {
	verb, noun uint16
}

// Raiser lets the DSKY pend KEYRUPT on input without importing the full
// interrupt controller API.
type Raiser interface {
	Trigger(kind string)
}

// DSKY is the display/keyboard unit.
type DSKY struct {
	verb, noun uint16
	buffer     []entry
	display    [6]string
	lights     map[Light]bool
	Mode       Mode

	Rupt Raiser
}

// New returns a DSKY with all lights off, display blank, and DEC mode.
func New(rupt Raiser) *DSKY {
	d := &DSKY{
		Rupt:   rupt,
		Mode:   DEC,
		lights: make(map[Light]bool, len(allLights)),
	}
	for i := range d.display {
		d.display[i] = "00000"
	}
	for _, l := range allLights {
		d.lights[l] = false
	}
	return d
}

// Input latches a (verb, noun) pair from the keyboard. Either value
// exceeding 7 bits sets OPR_ERR and raises KEYRUPT but does not buffer
// the pair. A valid pair is masked to 7 bits, stored in the verb/noun
// latches, appended to the buffer, and raises KEYRUPT with KEY_REL lit.
func (d *DSKY) Input(verb, noun uint16) {
	if verb > vnMask || noun > vnMask {
		d.setLight(OprErr, true)
		d.raise("KEYRUPT")
		return
	}
	verb &= vnMask
	noun &= vnMask
	d.verb = verb
	d.noun = noun
	d.buffer = append(d.buffer, entry{verb, noun})
	d.setLight(KeyRel, true)
	d.raise("KEYRUPT")
}

// Output pops the oldest buffered (verb, noun) pair and formats it into
// the display. It returns false if the buffer was empty.
func (d *DSKY) Output() ([6]string, bool) {
	if len(d.buffer) == 0 {
		return d.display, false
	}
	e := d.buffer[0]
	d.buffer = d.buffer[1:]

	d.display[0] = d.format(e.verb)
	d.display[1] = d.format(e.noun)
	for i := 2; i < 6; i++ {
		d.display[i] = "00000"
	}
	d.setLight(Prog, true)
	return d.display, true
}

// SetMode accepts DEC or OCT; any other value sets OPR_ERR and leaves
// the mode unchanged.
func (d *DSKY) SetMode(m Mode) {
	if m != DEC && m != OCT {
		d.setLight(OprErr, true)
		return
	}
	d.Mode = m
}

// Light reports whether the named lamp is lit.
func (d *DSKY) Light(l Light) bool {
	return d.lights[l]
}

func (d *DSKY) setLight(l Light, on bool) {
	d.lights[l] = on
}

func (d *DSKY) raise(kind string) {
	if d.Rupt != nil {
		d.Rupt.Trigger(kind)
	}
}

func (d *DSKY) format(v uint16) string {
	if d.Mode == OCT {
		return fmt.Sprintf("%05o", v)
	}
	return fmt.Sprintf("%05d", v)
}

// Verb and Noun satisfy channel.DSKYPort's read side (channels 10/11).
func (d *DSKY) Verb() word.Word { return word.Word(d.verb) }
func (d *DSKY) Noun() word.Word { return word.Word(d.noun) }

// SetVerb and SetNoun satisfy channel.DSKYPort's write side.
func (d *DSKY) SetVerb(v word.Word) { d.verb = uint16(v) & vnMask }
func (d *DSKY) SetNoun(v word.Word) { d.noun = uint16(v) & vnMask }
