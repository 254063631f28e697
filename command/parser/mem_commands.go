package parser

/*
 * TX2  - console memory commands
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

	core "github.com/rcornwell/TX2/emu/core"
	"github.com/rcornwell/TX2/emu/word"
	"github.com/rcornwell/TX2/util/lincoln"
	"github.com/rcornwell/TX2/util/octal"
)

// Parse address and optional word count for examine and type.
func getRange(line *cmdLine) (word.Address, int, error) {
	text := line.getWord()
	if text == "" {
		return 0, 0, errors.New("command requires an octal address")
	}
	addr, err := octal.ParseAddress(text)
	if err != nil {
		return 0, 0, err
	}
	count := 1
	if text = line.getWord(); text != "" {
		n, cerr := strconv.ParseUint(text, 8, 17)
		if cerr != nil || n == 0 {
			return 0, 0, errors.New("count must be a positive octal number")
		}
		count = int(n)
	}
	return addr, count, nil
}

// Print memory words in octal: examine <addr> [count]
func examine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Examine")

	addr, count, err := getRange(line)
	if err != nil {
		return false, err
	}
	for n := 0; n < count; n++ {
		v, err := core.Examine(addr)
		if err != nil {
			return false, err
		}
		fmt.Printf("%s: %s\n", octal.FormatAddress(addr), octal.FormatWord(v))
		addr++
	}
	return false, nil
}

// Store words into memory: deposit <addr> <word>...
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deposit")

	text := line.getWord()
	if text == "" {
		return false, errors.New("deposit requires an octal address")
	}
	addr, err := octal.ParseAddress(text)
	if err != nil {
		return false, err
	}
	stored := 0
	for text = line.getWord(); text != ""; text = line.getWord() {
		v, err := octal.ParseWord(text)
		if err != nil {
			return false, err
		}
		if err = core.Deposit(addr, v); err != nil {
			return false, err
		}
		addr++
		stored++
	}
	if stored == 0 {
		return false, errors.New("deposit requires at least one octal word")
	}
	return false, nil
}

// Print memory as Lincoln Writer text, six frames per word with the
// high frame first: type <addr> [count]
func typeOut(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Type")

	addr, count, err := getRange(line)
	if err != nil {
		return false, err
	}
	codes := make([]byte, 0, count*6)
	for n := 0; n < count; n++ {
		v, err := core.Examine(addr)
		if err != nil {
			return false, err
		}
		for frame := 5; frame >= 0; frame-- {
			codes = append(codes, byte((uint64(v)>>(frame*6))&0o77))
		}
		addr++
	}
	fmt.Println(lincoln.ToUnicodeLossy(codes))
	return false, nil
}
