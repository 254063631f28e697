package parser

/*
 * TX2  - console command completion
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
	"slices"
	"strings"

	"github.com/rcornwell/TX2/emu/control"
	core "github.com/rcornwell/TX2/emu/core"
)

// Called to complete a command line, during line editing.
func CompleteCmd(commandLine string, core *core.Core) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	// Whitespace after the command name, hand off to the command.
	if line.pos < len(line.line) {
		match := matchList(name)
		if len(match) != 1 || match[0].Complete == nil {
			return nil
		}
		return match[0].Complete(&line, core)
	}

	// Still typing the command name.
	var matches []string
	for _, m := range cmdList {
		if strings.HasPrefix(m.Name, name) {
			matches = append(matches, m.Name+" ")
		}
	}
	slices.Sort(matches)
	return matches
}

// Complete the partial word at the current position against a list
// of candidates, keeping the text already typed.
func (line *cmdLine) matchWord(candidates []string) []string {
	line.skipSpace()
	leading := line.line[:line.pos]
	partial := strings.ToLower(strings.TrimSpace(line.line[line.pos:]))

	var matches []string
	for _, name := range candidates {
		if strings.HasPrefix(name, partial) {
			matches = append(matches, leading+name+" ")
		}
	}
	slices.Sort(matches)
	return matches
}

// Complete commands that take a unit name.
func unitComplete(line *cmdLine, core *core.Core) []string {
	var names []string
	for seq := control.SequenceNumber(0); seq < control.NumSequences; seq++ {
		unit := core.Devices().Unit(seq)
		if unit == nil {
			continue
		}
		names = append(names, strings.ToLower(unit.Name()))
	}
	return line.matchWord(names)
}

// Complete the show command argument.
func showComplete(line *cmdLine, _ *core.Core) []string {
	return line.matchWord([]string{"cpu", "flags", "memory", "units"})
}
