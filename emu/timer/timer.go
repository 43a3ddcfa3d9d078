/*
 * AGC - Timer counters
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

// Package timer implements the AGC's hardware timer counters: TIME1,
// TIME3, TIME4, TIME5, and TIME6 (TIME2 does not exist on Block II).
//
// The machine is single-threaded and cooperative (spec-mandated): unlike
// the teacher's goroutine-driven ticker, this Block's clock is advanced
// synchronously by the execution engine calling Tick or TickMCTs, never
// by an independently running goroutine.
package timer

import (
	"time"

	"github.com/agcsim/agc/emu/word"
)

// mctDuration is one Memory Cycle Time: 1/1.024MHz.
const mctDuration = time.Second / 1024000

// Raiser lets the timer block pend an interrupt on TIME3/4/5 overflow
// without importing the full interrupt controller API.
type Raiser interface {
	Trigger(kind string)
}

// Block holds the five timer counters and the wall-clock anchor used to
// derive elapsed MCTs for the real-time Tick path.
type Block struct {
	Time1 word.Word
	Time3 word.Word
	Time4 word.Word
	Time5 word.Word
	Time6 word.Word

	Rupt Raiser

	lastTick  time.Time
	remainder time.Duration // sub-MCT carry between Tick calls
}

// New returns a Block with all counters zeroed, anchored to now.
func New(rupt Raiser) *Block {
	return &Block{Rupt: rupt, lastTick: time.Now()}
}

// Tick advances the counters by however many whole MCTs have elapsed on
// the monotonic clock since the last call (or since New), carrying any
// fractional remainder forward. It is a best-effort real-time pacer:
// drift is tolerable per spec.
func (b *Block) Tick(now time.Time) {
	elapsed := now.Sub(b.lastTick) + b.remainder
	n := int(elapsed / mctDuration)
	b.remainder = elapsed - time.Duration(n)*mctDuration
	b.lastTick = now
	if n > 0 {
		b.TickMCTs(n)
	}
}

// TickMCTs advances every counter by n Memory Cycle Times, raising
// T3RUPT/T4RUPT/T5RUPT on each increment whose pre-increment value is
// 0x7FFF (the end-around carry then leaves the counter at 1). A counter
// that only counts up wraps from 0x7FFE to 0 and raises nothing. This is
// the deterministic entry point tests should use in place of wall-clock
// Tick.
func (b *Block) TickMCTs(n int) {
	for i := 0; i < n; i++ {
		b.Time1 = word.Add(b.Time1, 1)
		b.step(&b.Time3, "T3RUPT")
		b.step(&b.Time4, "T4RUPT")
		b.step(&b.Time5, "T5RUPT")
		b.Time6 = word.Add(b.Time6, 1)
	}
}

// step increments *counter by one, raising kind if the pre-increment
// value was 0x7FFF (the overflow point).
func (b *Block) step(counter *word.Word, kind string) {
	overflowed := *counter == word.NegativeZero
	*counter = word.Add(*counter, 1)
	if overflowed && b.Rupt != nil {
		b.Rupt.Trigger(kind)
	}
}
