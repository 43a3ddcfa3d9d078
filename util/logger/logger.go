/*
 * AGC - Wrapper for slog
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

package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"sync"
)

type LogHandler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	debug bool
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{h: h.h.WithAttrs(attrs), mu: h.mu, out: h.out, debug: h.debug}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{h: h.h.WithGroup(name), mu: h.mu, out: h.out, debug: h.debug}
}

// octalKeys names the attribute keys that carry AGC words or addresses,
// which the console and rope listings always show in octal rather than
// decimal. A log line reporting an interrupt vector in decimal would not
// match anything a reader could look up against a listing.
var octalKeys = map[string]bool{
	"z": true, "vector": true, "address": true, "addr": true,
	"bank": true, "word": true, "pc": true,
}

// Handle formats r as a single line: timestamp, level, message, then
// key=value attributes. Attributes named in octalKeys are rendered as
// 5-digit zero-padded octal, the AGC's native radix for a 15-bit word,
// instead of slog's default decimal. A record carrying a "fault"
// attribute is echoed to stderr unconditionally: a latched fault
// (parity_fail, tc_trap, rupt_lock) is a condition an operator needs to
// see whether or not the run was started with --debug.
func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, level, r.Message}

	isFault := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "fault" {
			isFault = true
		}
		strs = append(strs, a.Key+"="+formatAttr(a))
		return true
	})

	result := strings.Join(strs, " ") + "\n"
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}

	if h.debug || r.Level > slog.LevelDebug || isFault {
		_, err = os.Stderr.Write(b)
	}
	return err
}

// formatAttr renders a single attribute's value, switching to octal for
// the keys in octalKeys when the underlying value is some integer kind
// (word.Word, uint16, int, ...); anything else falls back to slog's
// default String().
func formatAttr(a slog.Attr) string {
	if octalKeys[a.Key] {
		if n, ok := asInt(a.Value.Any()); ok {
			return fmt.Sprintf("%05o", n)
		}
	}
	return a.Value.String()
}

// asInt extracts an int64 from any integer-kinded value, including named
// types like word.Word that wrap a uint16, without this package
// importing the domain package that defines them.
func asInt(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	default:
		return 0, false
	}
}

func (h *LogHandler) SetDebug(debug *bool) {
	h.debug = *debug
}

func NewHandler(file io.Writer, opts *slog.HandlerOptions, debug *bool) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: file,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu:    &sync.Mutex{},
		debug: *debug,
	}
}
