/*
 * AGC - Interrupt controller
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

// Package interrupt implements the AGC's priority-driven interrupt
// controller: a small bounded, priority-sorted pending list, an
// enable/inhibit flag, an active-service flag, and the RUPT-LOCK fault.
package interrupt

import (
	"log/slog"
	"sort"

	"github.com/agcsim/agc/emu/word"
)

// Kind names one of the AGC's interrupt sources.
type Kind string

const (
	T3RUPT   Kind = "T3RUPT"
	T4RUPT   Kind = "T4RUPT"
	T5RUPT   Kind = "T5RUPT"
	DSRUPT   Kind = "DSRUPT"
	KEYRUPT  Kind = "KEYRUPT"
	UPRUPT   Kind = "UPRUPT"
	DOWNRUPT Kind = "DOWNRUPT"
	EDRUPT   Kind = "EDRUPT"
)

// vector maps each interrupt kind to its fixed entry address.
var vector = map[Kind]word.Word{
	T3RUPT:   0x4004,
	T4RUPT:   0x4008,
	T5RUPT:   0x400C,
	DSRUPT:   0x4010,
	KEYRUPT:  0x4014,
	UPRUPT:   0x4018,
	DOWNRUPT: 0x401C,
}

// priority maps each interrupt kind to its servicing priority: higher
// values are serviced first. EDRUPT is synthesized directly by Edrupt,
// not looked up here.
var priority = map[Kind]int{
	T3RUPT:   3,
	T4RUPT:   2,
	DSRUPT:   2,
	T5RUPT:   1,
	KEYRUPT:  1,
	UPRUPT:   1,
	DOWNRUPT: 1,
	EDRUPT:   1,
}

// lockThreshold is the pending count above which RUPT-LOCK latches: the
// hardware tolerates at most five unserviced interrupts at once.
const lockThreshold = 5

// pending is one entry in the priority queue.
type pending struct {
	kind     Kind
	priority int
	vector   word.Word
	seq      int // arrival order, for stable tie-breaking
}

// Controller is the AGC interrupt controller.
type Controller struct {
	Enabled bool // INHINT/RELINT flag
	Active  bool // an interrupt is currently being serviced
	RuptLock bool

	Return word.Word // Z saved on vector entry, restored by RESUME

	queue   []pending
	arrival int
}

// New returns a Controller with interrupts enabled, matching the AGC's
// power-on state.
func New() *Controller {
	return &Controller{Enabled: true}
}

// Trigger pends an interrupt of the given kind. It is a no-op if
// interrupts are disabled or kind is not a known vector. Pending more
// than five unserviced interrupts latches RuptLock.
func (c *Controller) Trigger(kindStr string) {
	kind := Kind(kindStr)
	vec, ok := vector[kind]
	if !ok || !c.Enabled {
		return
	}
	c.push(kind, priority[kind], vec)
}

// Edrupt synthesizes a pending EDRUPT entry at the given vector address,
// if interrupts are enabled.
func (c *Controller) Edrupt(vec word.Word) {
	if !c.Enabled {
		return
	}
	c.push(EDRUPT, priority[EDRUPT], vec)
}

func (c *Controller) push(kind Kind, pri int, vec word.Word) {
	c.queue = append(c.queue, pending{kind: kind, priority: pri, vector: vec, seq: c.arrival})
	c.arrival++
	sort.SliceStable(c.queue, func(i, j int) bool {
		return c.queue[i].priority > c.queue[j].priority
	})
	if len(c.queue) > lockThreshold {
		c.RuptLock = true
		slog.Warn("RUPT-LOCK: pending interrupts exceeded threshold", "fault", "rupt_lock", "pending", len(c.queue))
	}
}

// ProcessInterrupts services the highest-priority pending interrupt if
// interrupts are enabled and none is currently active. It returns the
// vector address to jump to and true, or (0, false) if nothing was
// serviced.
func (c *Controller) ProcessInterrupts(currentZ word.Word) (word.Word, bool) {
	if !c.Enabled || c.Active || len(c.queue) == 0 {
		return 0, false
	}
	next := c.queue[0]
	c.queue = c.queue[1:]
	c.Return = currentZ
	c.Active = true
	slog.Debug("interrupt vector entry", "kind", string(next.kind), "vector", next.vector, "z", currentZ)
	return next.vector, true
}

// Resume services a RESUME instruction: clears the active-service flag
// and RuptLock, and returns the PC to restore.
func (c *Controller) Resume() word.Word {
	c.Active = false
	c.RuptLock = false
	return c.Return
}

// Inhint clears the enable flag (INHINT opcode).
func (c *Controller) Inhint() {
	c.Enabled = false
}

// Relint sets the enable flag (RELINT opcode).
func (c *Controller) Relint() {
	c.Enabled = true
}

// PendingCount reports how many interrupts are currently queued,
// for telemetry.
func (c *Controller) PendingCount() int {
	return len(c.queue)
}
