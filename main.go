/*
 * AGC - Main process.
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

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/agcsim/agc/command/console"
	config "github.com/agcsim/agc/config/configparser"
	"github.com/agcsim/agc/emu/cpu"
	logger "github.com/agcsim/agc/util/logger"
)

func main() {
	optRope := getopt.StringLong("rope", 'r', "", "Rope image to load into fixed memory")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := config.Default()
	if *optConfig != "" {
		loaded, err := config.Load(*optConfig)
		if err != nil {
			slog.Error("loading configuration file", "path", *optConfig, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logPath := cfg.LogPath
	if *optLogFile != "" {
		logPath = *optLogFile
	}
	debug := cfg.Debug || *optDebug

	var file *os.File
	if logPath != "" {
		var err error
		file, err = os.Create(logPath)
		if err != nil {
			slog.Error("creating log file", "path", logPath, "error", err)
			os.Exit(1)
		}
		defer file.Close()
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, &debug))
	slog.SetDefault(log)

	log.Info("AGC simulator started")

	m := cpu.New()
	m.DSKY.Mode = cfg.Mode

	ropePath := cfg.RopePath
	if *optRope != "" {
		ropePath = *optRope
	}
	if ropePath != "" {
		rope, err := os.ReadFile(ropePath)
		if err != nil {
			log.Error("reading rope image", "path", ropePath, "error", err)
			os.Exit(1)
		}
		m.LoadRope(rope, cfg.Bank)
		log.Info("rope image loaded", "path", ropePath, "bank", cfg.Bank, "words", len(rope)/2)
	}

	m.Start()
	if err := console.Run(m, os.Stdin, os.Stdout); err != nil {
		log.Error("console exited with error", "error", err)
		m.Stop()
		os.Exit(1)
	}
	m.Stop()

	log.Info("AGC simulator stopped")
}
