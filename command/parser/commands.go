package parser

/*
 * TX2  - console commands
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
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	command "github.com/rcornwell/TX2/command/command"
	"github.com/rcornwell/TX2/emu/control"
	core "github.com/rcornwell/TX2/emu/core"
	"github.com/rcornwell/TX2/emu/io"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/util/debug"
)

var cmdList = []cmd{
	{Name: "attach", Min: 2, Process: attach, Complete: unitComplete},
	{Name: "detach", Min: 3, Process: detach, Complete: unitComplete},
	{Name: "rewind", Min: 3, Process: rewind, Complete: unitComplete},
	{Name: "codabo", Min: 2, Process: codabo},
	{Name: "reset", Min: 5, Process: reset},
	{Name: "startover", Min: 5, Process: startover},
	{Name: "start", Min: 4, Process: start},
	{Name: "continue", Min: 1, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "step", Min: 4, Process: step},
	{Name: "examine", Min: 2, Process: examine},
	{Name: "deposit", Min: 3, Process: deposit},
	{Name: "type", Min: 2, Process: typeOut},
	{Name: "show", Min: 2, Process: show, Complete: showComplete},
	{Name: "set", Min: 3, Process: setDebug},
	{Name: "unset", Min: 1, Process: unsetDebug},
	{Name: "quit", Min: 1, Process: quit},
}

// Find the named unit for attach style commands.
func getUnit(line *cmdLine, core *core.Core) (io.Unit, error) {
	name := line.getWord()
	if name == "" {
		return nil, errors.New("command requires a unit name")
	}
	unit, _, err := core.Devices().Find(name)
	return unit, err
}

// Handle attach command: attach petr boot.tape
func attach(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Attach")

	unit, err := getUnit(line, core)
	if err != nil {
		return false, err
	}
	att, ok := unit.(command.Attacher)
	if !ok {
		return false, errors.New(unit.Name() + " does not take files")
	}
	fileName := line.rest()
	if fileName == "" {
		return false, errors.New("attach requires a file name")
	}
	return false, att.Attach(fileName)
}

// Handle detach command.
func detach(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Detach")

	unit, err := getUnit(line, core)
	if err != nil {
		return false, err
	}
	att, ok := unit.(command.Attacher)
	if !ok {
		return false, errors.New(unit.Name() + " does not take files")
	}
	return false, att.Detach()
}

// Rewind a unit with tape media.
func rewind(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Rewind")

	unit, err := getUnit(line, core)
	if err != nil {
		return false, err
	}
	rew, ok := unit.(command.Rewinder)
	if !ok {
		return false, errors.New(unit.Name() + " cannot rewind")
	}
	return false, rew.Rewind()
}

// Parse a start point for codabo and reset: tsp or a digit 0 to 7.
func getResetMode(line *cmdLine) (control.ResetMode, error) {
	word := line.getWord()
	switch {
	case word == "" || word == "tsp":
		return control.ResetTSP, nil
	case len(word) == 1 && word[0] >= '0' && word[0] <= '7':
		return control.Reset0 + control.ResetMode(word[0]-'0'), nil
	}
	return 0, errors.New("start point must be tsp or 0 to 7")
}

// Press a CODABO button.
func codabo(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Codabo")

	mode, err := getResetMode(line)
	if err != nil {
		return false, err
	}
	core.SendCodabo(mode)
	return false, nil
}

// Press a RESET button.
func reset(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Reset")

	mode, err := getResetMode(line)
	if err != nil {
		return false, err
	}
	core.SendReset(mode)
	return false, nil
}

// Press STARTOVER.
func startover(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Startover")
	core.SendStartover()
	return false, nil
}

// Start the machine.
func start(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	core.SendStart()
	return false, nil
}

// Stop the machine.
func stop(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	core.SendStop()
	return false, nil
}

// Run a few instructions and stop.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")

	count := 1
	if word := line.getWord(); word != "" {
		n, err := strconv.Atoi(word)
		if err != nil || n < 1 {
			return false, errors.New("step count must be a positive number")
		}
		count = n
	}
	core.SendStep(count)
	return false, nil
}

// Show machine state: show cpu | flags | units
func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")

	switch what := line.getWord(); what {
	case "", "cpu":
		fmt.Println(core.State())
	case "flags":
		cu := core.ControlUnit()
		bits := cu.FlagBits()
		if bits == 0 {
			fmt.Println("no flags raised")
			break
		}
		for seq := control.SequenceNumber(0); seq < control.NumSequences; seq++ {
			if bits&(1<<uint(seq)) != 0 {
				fmt.Printf("flag %02o raised\n", uint8(seq))
			}
		}
	case "memory":
		fmt.Printf("S memory %06o-%06o\n", uint32(memory.SMemBase), uint32(memory.SMemTop))
		fmt.Printf("T memory %06o-%06o\n", uint32(memory.TMemBase), uint32(memory.TMemTop))
		fmt.Printf("toggle   %06o-%06o\n", uint32(memory.ToggleBase), uint32(memory.ToggleTop))
		fmt.Printf("plugboard %06o-%06o read only\n", uint32(memory.PlugboardBase), uint32(memory.PlugboardTop))
	case "units":
		for seq := control.SequenceNumber(0); seq < control.NumSequences; seq++ {
			unit := core.Devices().Unit(seq)
			if unit == nil {
				continue
			}
			att := ""
			if a, ok := unit.(command.Attacher); ok && a.Attached() != "" {
				att = " " + a.Attached()
			}
			fmt.Printf("%02o %s%s\n", uint8(seq), unit.Name(), att)
		}
	default:
		return false, errors.New("show must be cpu, flags, memory or units")
	}
	return false, nil
}

// Turn a debug option on: set <module> <option>
func setDebug(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Set")

	module := line.getWord()
	option := line.getWord()
	if module == "" || option == "" {
		return false, errors.New("set requires a module and an option")
	}
	return false, debug.Debug(module, option)
}

// Turn a debug option back off: unset <module> <option>
func unsetDebug(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Unset")

	module := line.getWord()
	option := line.getWord()
	if module == "" || option == "" {
		return false, errors.New("unset requires a module and an option")
	}
	return false, debug.NoDebug(module, option)
}

// Exit the console.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
