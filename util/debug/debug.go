package debug

/*
 * TX2  - log debug data to a file
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
	"os"
	"strings"

	config "github.com/rcornwell/TX2/config/configparser"
)

var logFile *os.File

// Per module debug masks and the option names that set their bits.
var (
	masks   = map[string]int{}
	options = map[string]map[string]int{}
)

// RegisterOptions declares the debug option bits a module supports.
// Called from init functions.
func RegisterOptions(module string, opts map[string]int) {
	options[strings.ToUpper(module)] = opts
}

// Debug turns one debug option on for a module.
func Debug(module string, option string) error {
	module = strings.ToUpper(module)
	opts, ok := options[module]
	if !ok {
		return fmt.Errorf("no debug options registered for %s", module)
	}
	bit, ok := opts[strings.ToUpper(option)]
	if !ok {
		return fmt.Errorf("invalid debug option %s for %s", option, module)
	}
	masks[module] |= bit
	return nil
}

// NoDebug turns one debug option back off for a module.
func NoDebug(module string, option string) error {
	module = strings.ToUpper(module)
	opts, ok := options[module]
	if !ok {
		return fmt.Errorf("no debug options registered for %s", module)
	}
	bit, ok := opts[strings.ToUpper(option)]
	if !ok {
		return fmt.Errorf("invalid debug option %s for %s", option, module)
	}
	masks[module] &^= bit
	return nil
}

// Generic debug message.
func Debugf(module string, level int, format string, a ...interface{}) {
	if logFile == nil {
		return
	}
	if (masks[strings.ToUpper(module)] & level) != 0 {
		fmt.Fprintf(logFile, module+": "+format+"\n", a...)
	}
}

// Sequence tagged debug message.
func DebugSeqf(seq uint8, module string, level int, format string, a ...interface{}) {
	if logFile == nil {
		return
	}
	if (masks[strings.ToUpper(module)] & level) != 0 {
		fmt.Fprintf(logFile, "%02o: "+format+"\n", append([]interface{}{seq}, a...)...)
	}
}

// register the debug file option on initialize.
func init() {
	config.RegisterFile("DEBUGFILE", create)
}

// Open the debug output file.
func create(_ uint16, fileName string, _ []config.Option) error {
	if logFile != nil {
		return fmt.Errorf("can't have more than one debug file, previous: %s", logFile.Name())
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}

	logFile = file
	return nil
}
