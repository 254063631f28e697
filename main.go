package main

/*
 * TX2  - main process
 *
 * Copyright 2025, Richard Cornwell
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

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/TX2/command/reader"
	config "github.com/rcornwell/TX2/config/configparser"
	machine "github.com/rcornwell/TX2/config/machine"
	core "github.com/rcornwell/TX2/emu/core"
	master "github.com/rcornwell/TX2/emu/master"
	timer "github.com/rcornwell/TX2/emu/timer"
	logger "github.com/rcornwell/TX2/util/logger"

	_ "github.com/rcornwell/TX2/config/debugconfig"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "TX2.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(log)

	log.Info("TX2 Started")
	if optConfig == nil {
		log.Error("Please specify a configuration file")
		os.Exit(0)
	}

	_, err := os.Stat(*optConfig)
	if os.IsNotExist(err) {
		log.Error("Configuration file " + *optConfig + " can't be found")
		os.Exit(0)
	}

	masterChannel := make(chan master.Packet)

	// Build the machine, then let the configuration populate it.
	cpu := core.New(masterChannel)
	machine.Register(cpu)

	err = config.LoadConfigFile(*optConfig)
	if err != nil {
		log.Error(err.Error())
		os.Exit(0)
	}

	// Interval timer feeds the clock sequence.
	clock := timer.NewTimer(masterChannel)
	clock.Start()

	// Start main emulator.
	go cpu.Start()

	msg := make(chan string, 1)
	go func() {
		reader.ConsoleReader(cpu)
		msg <- ""
	}()

	// Wait on shutdown option
	<-msg

	cpu.Stop()
	clock.Shutdown()
	log.Info("Emulator stopped.")
}
