/* AGC execution engine: background run loop and serialized DSKY access

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
	"sync"
	"time"
)

// runner adds the machinery to drive Step/Timer.Tick from a background
// goroutine (the shape of the teacher's core.Core.Start/Stop, grounded
// on its done-channel-plus-WaitGroup convention) while still honoring
// spec.md §5: the instruction stream itself is single-threaded and
// cooperative, so a console goroutine that wants to inject DSKY input
// concurrently must go through InputDSKY/PeekDisplay below rather than
// reaching into m.DSKY directly — the one form of external injection the
// spec leaves to the host to serialize.
type runner struct {
	mu   sync.Mutex
	wg   sync.WaitGroup
	done chan struct{}
}

// Start runs Step in a loop, pacing the timer block off the wall clock,
// until Stop is called. It is safe to call InputDSKY/PeekDisplay from
// another goroutine while Start's loop is running.
func (m *Machine) Start() {
	m.runner.done = make(chan struct{})
	m.runner.wg.Add(1)
	go func() {
		defer m.runner.wg.Done()
		for {
			select {
			case <-m.runner.done:
				return
			default:
			}
			m.runner.mu.Lock()
			m.Step()
			m.Timer.Tick(time.Now())
			m.runner.mu.Unlock()
		}
	}()
}

// Stop signals the run loop to exit and waits for it to do so.
func (m *Machine) Stop() {
	if m.runner.done == nil {
		return
	}
	close(m.runner.done)
	m.runner.wg.Wait()
}

// InputDSKY submits a (verb, noun) pair to the DSKY, serialized against
// a concurrently running Start loop.
func (m *Machine) InputDSKY(verb, noun uint16) {
	m.runner.mu.Lock()
	defer m.runner.mu.Unlock()
	m.DSKY.Input(verb, noun)
}

// PeekDisplay drains one buffered display update, serialized against a
// concurrently running Start loop.
func (m *Machine) PeekDisplay() ([6]string, bool) {
	m.runner.mu.Lock()
	defer m.runner.mu.Unlock()
	return m.DSKY.Output()
}

// RunSteps runs exactly n instructions synchronously (batch mode, no
// background goroutine) for scripted or test use.
func (m *Machine) RunSteps(n int) {
	for i := 0; i < n; i++ {
		m.Step()
	}
}
