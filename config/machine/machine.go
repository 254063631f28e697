package machine

/*
 * TX2  - machine configuration models
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
	"fmt"
	"strconv"
	"strings"

	config "github.com/rcornwell/TX2/config/configparser"
	"github.com/rcornwell/TX2/emu/control"
	"github.com/rcornwell/TX2/emu/core"
	"github.com/rcornwell/TX2/emu/petr"
	"github.com/rcornwell/TX2/emu/word"
)

// Register wires the machine models to one core instance. Must run
// before the configuration file is loaded. Unlike the DEBUGFILE and
// DEBUG options these need the built machine, so they cannot register
// from init.
func Register(c *core.Core) {
	config.RegisterModel("PETR", config.TypeModel, createPetr(c))
	config.RegisterOption("TSP", setTSP(c))
	config.RegisterOption("METABIT", setMetabit(c))
	config.RegisterOption("SPEED", setSpeed(c))
	config.RegisterSwitch("TRAP", setTrap(c))
}

// Create the paper tape reader, for example:
//
//	PETR 52 file="boot.tape"
func createPetr(c *core.Core) func(uint16, string, []config.Option) error {
	return func(seq uint16, _ string, options []config.Option) error {
		unit := petr.New(c.ControlUnit(), c.Memory())
		if err := c.Devices().AddUnit(control.SequenceNumber(seq), unit); err != nil {
			return err
		}
		for _, opt := range options {
			switch strings.ToUpper(opt.Name) {
			case "FILE":
				if opt.EqualOpt == "" {
					return fmt.Errorf("PETR file option requires a name")
				}
				if err := unit.Attach(opt.EqualOpt); err != nil {
					return err
				}
			default:
				return fmt.Errorf("PETR does not support option %s", opt.Name)
			}
		}
		return nil
	}
}

// Move the toggle start point, for example: TSP 377750
func setTSP(c *core.Core) func(uint16, string, []config.Option) error {
	return func(_ uint16, value string, _ []config.Option) error {
		addr, err := strconv.ParseUint(value, 8, 17)
		if err != nil {
			return fmt.Errorf("TSP requires an octal address: %s", value)
		}
		c.ControlUnit().SetTSP(word.Address(addr))
		return nil
	}
}

// Select the metabit tracing mode: never, instructions, deferred or
// operands.
func setMetabit(c *core.Core) func(uint16, string, []config.Option) error {
	return func(_ uint16, value string, _ []config.Option) error {
		var mode control.MetabitMode
		switch strings.ToUpper(value) {
		case "NEVER":
			mode = control.MetabitNever
		case "INSTRUCTIONS":
			mode = control.MetabitInstructions
		case "DEFERRED":
			mode = control.MetabitDeferred
		case "OPERANDS":
			mode = control.MetabitOperands
		default:
			return fmt.Errorf("invalid metabit mode: %s", value)
		}
		c.ControlUnit().SetMetabitMode(mode)
		return nil
	}
}

// Slow the machine toward hardware speed. 1 is hardware speed, 0 runs
// as fast as the host allows.
func setSpeed(c *core.Core) func(uint16, string, []config.Option) error {
	return func(_ uint16, value string, _ []config.Option) error {
		m, err := strconv.ParseFloat(value, 64)
		if err != nil || m < 0 {
			return fmt.Errorf("invalid speed multiplier: %s", value)
		}
		c.SetMultiplier(m)
		return nil
	}
}

// Turn on trap on change of sequence.
func setTrap(c *core.Core) func(uint16, string, []config.Option) error {
	return func(_ uint16, _ string, _ []config.Option) error {
		c.ControlUnit().SetTrapOnChangeSequence(true)
		return nil
	}
}
