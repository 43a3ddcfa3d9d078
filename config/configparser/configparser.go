/*
 * AGC - Configuration file parser
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

// Package configparser reads the simulator's run configuration file: a
// flat line-oriented format in the style of the teacher's multi-device
// config reader (# comments, one directive per line, tokenized with
// bufio.Scanner), simplified to a single key-value grammar since the AGC
// has exactly one fixed set of components to configure rather than a
// pluggable device catalog.
package configparser

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agcsim/agc/emu/dsky"
)

/* Configuration file format:
 *
 * '#' indicates a comment; the rest of the line is ignored.
 * Blank lines are ignored.
 * <line> := <key> <whitespace> <value>
 * <key>  := "rope" | "bank" | "logfile" | "debug" | "mode"
 *
 * rope    <path>       -- rope image to load into fixed memory at start
 * bank    <octal|dec>  -- fixed bank the rope is loaded into (default 0)
 * logfile <path>       -- log destination (default: stderr only)
 * debug   true|false   -- also echo Debug-level log lines to stderr (default false)
 * mode    DEC|OCT      -- initial DSKY display mode (default DEC)
 */

// Config holds the decoded contents of a configuration file.
type Config struct {
	RopePath string
	Bank     uint8
	LogPath  string
	Debug    bool
	Mode     dsky.Mode
}

// Default returns the configuration the simulator starts with when no
// file is given: no rope, bank 0, no log file, debug off, DEC mode.
func Default() Config {
	return Config{Mode: dsky.DEC}
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return parse(f)
}

func parse(f *os.File) (Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(f)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		value := ""
		if len(fields) > 1 {
			value = strings.Join(fields[1:], " ")
		}
		if err := cfg.apply(key, value); err != nil {
			return Config{}, fmt.Errorf("configparser: line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// stripComment drops everything from the first '#' onward.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func (cfg *Config) apply(key, value string) error {
	switch key {
	case "rope":
		if value == "" {
			return fmt.Errorf("rope requires a path")
		}
		cfg.RopePath = value
	case "bank":
		n, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("bank: %w", err)
		}
		cfg.Bank = uint8(n)
	case "logfile":
		cfg.LogPath = value
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("debug: %w", err)
		}
		cfg.Debug = b
	case "mode":
		switch strings.ToUpper(value) {
		case "DEC":
			cfg.Mode = dsky.DEC
		case "OCT":
			cfg.Mode = dsky.OCT
		default:
			return fmt.Errorf("mode: %q is not DEC or OCT", value)
		}
	default:
		return fmt.Errorf("unknown directive %q", key)
	}
	return nil
}
