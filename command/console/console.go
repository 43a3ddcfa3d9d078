/* AGC - DSKY operator console

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

// Package console drives the DSKY from a terminal: a raw single-keystroke
// keypad mode when stdin is a TTY, falling back to a line-buffered mode
// built on peterh/liner when it is not (piped input, scripting, tests).
//
// Grounded on the teacher's command/reader (liner.Prompt/AppendHistory
// loop) for the line-buffered path, and on davecheney-pdp11's term.go
// (raw termios around a read loop) and aryanA101a-lulu's vm/io.go
// (golang.org/x/term raw-mode polling feeding a channel) for the raw
// keypad path — using golang.org/x/term's MakeRaw/Restore in place of
// either example's hand-rolled ioctls, since the higher-level API covers
// the same need without reimplementing termios plumbing.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/agcsim/agc/emu/cpu"
)

// keyEnter, keyVerb, keyNoun, and keyClear are the DSKY keypad keys this
// console maps from single keystrokes: digits 0-9 plus V(erb), N(oun),
// E(nter), and C(lear).
const (
	keyVerb  = 'v'
	keyNoun  = 'n'
	keyEnter = '\r'
	keyClear = 'c'
)

// pendingField tracks which of verb/noun the next run of digits fills.
type pendingField int

const (
	fieldNone pendingField = iota
	fieldVerb
	fieldNoun
)

// Run drives m's DSKY from r/w: raw keypad mode if r is a terminal,
// otherwise the line-buffered liner fallback. It returns when r reaches
// EOF or the user aborts (Ctrl-C in either mode).
func Run(m *cpu.Machine, r *os.File, w io.Writer) error {
	if term.IsTerminal(int(r.Fd())) {
		return runKeypad(m, r, w)
	}
	return runLine(m, r, w)
}

// runKeypad puts r into raw mode and reads single keystrokes, assembling
// a pending (verb, noun) pair and submitting it to the DSKY on Enter.
func runKeypad(m *cpu.Machine, r *os.File, w io.Writer) error {
	fd := int(r.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("console: entering raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, state); err != nil {
			slog.Warn("console: failed to restore terminal state", "error", err)
		}
	}()

	var verbDigits, nounDigits string
	field := fieldNone

	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if n == 0 {
			continue
		}
		c := buf[0]
		switch {
		case c == 3: // Ctrl-C
			return nil
		case c == keyVerb || c == 'V':
			field = fieldVerb
			verbDigits = ""
		case c == keyNoun || c == 'N':
			field = fieldNoun
			nounDigits = ""
		case c == keyClear || c == 'C':
			verbDigits, nounDigits = "", ""
			field = fieldNone
		case c == keyEnter || c == '\n' || c == 'e' || c == 'E':
			verb, _ := strconv.Atoi(verbDigits)
			noun, _ := strconv.Atoi(nounDigits)
			m.InputDSKY(uint16(verb), uint16(noun))
			printDisplay(m, w)
			verbDigits, nounDigits = "", ""
			field = fieldNone
		case c >= '0' && c <= '9':
			switch field {
			case fieldVerb:
				verbDigits += string(c)
			case fieldNoun:
				nounDigits += string(c)
			}
		}
	}
}

// runLine falls back to line-buffered "V<nn> N<nn>" entry via liner,
// for non-TTY stdin (scripts, piped input, tests).
func runLine(m *cpu.Machine, r *os.File, w io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	reader := bufio.NewReader(r)
	for {
		cmd, err := line.Prompt("DSKY> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			// liner needs a real terminal; fall back to a bare scanner
			// read so piped/non-interactive input still works.
			text, rerr := reader.ReadString('\n')
			if rerr != nil {
				return nil
			}
			cmd = strings.TrimSpace(text)
		}
		line.AppendHistory(cmd)
		verb, noun, ok := parseVerbNoun(cmd)
		if !ok {
			fmt.Fprintf(w, "usage: V<verb> N<noun>\n")
			continue
		}
		m.InputDSKY(verb, noun)
		printDisplay(m, w)
	}
}

// parseVerbNoun accepts "V16 N25" (case-insensitive, any order, any
// amount of whitespace) and reports the decoded pair.
func parseVerbNoun(cmd string) (verb, noun uint16, ok bool) {
	fields := strings.Fields(cmd)
	var haveVerb, haveNoun bool
	for _, f := range fields {
		if len(f) < 2 {
			return 0, 0, false
		}
		n, err := strconv.Atoi(f[1:])
		if err != nil {
			return 0, 0, false
		}
		switch f[0] {
		case 'V', 'v':
			verb, haveVerb = uint16(n), true
		case 'N', 'n':
			noun, haveNoun = uint16(n), true
		default:
			return 0, 0, false
		}
	}
	return verb, noun, haveVerb && haveNoun
}

// printDisplay drains one buffered (verb, noun) pair and writes the
// resulting display rows to w, or a placeholder line if none was buffered.
func printDisplay(m *cpu.Machine, w io.Writer) {
	disp, ok := m.PeekDisplay()
	if !ok {
		fmt.Fprintln(w, "(no pending display)")
		return
	}
	fmt.Fprintf(w, "%s %s %s %s %s %s\n", disp[0], disp[1], disp[2], disp[3], disp[4], disp[5])
}
