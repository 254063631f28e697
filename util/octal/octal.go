package octal

/*
 * TX2  - octal word and address formatting
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

// Everything on the console is octal, the way the front panel was
// labeled. Words print as four quarters, addresses as six digits.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/TX2/emu/word"
)

// ParseAddress reads an 18 bit octal address. A leading * sets the
// mark bit, the listing notation for a deferred reference.
func ParseAddress(text string) (word.Address, error) {
	mark := false
	if strings.HasPrefix(text, "*") {
		mark = true
		text = text[1:]
	}
	v, err := strconv.ParseUint(text, 8, 17)
	if err != nil {
		return 0, fmt.Errorf("invalid octal address: %s", text)
	}
	addr := word.Address(v)
	if mark {
		addr = addr.WithMark(true)
	}
	return addr, nil
}

// ParseWord reads a 36 bit octal word.
func ParseWord(text string) (word.Word, error) {
	v, err := strconv.ParseUint(text, 8, 36)
	if err != nil {
		return 0, fmt.Errorf("invalid octal word: %s", text)
	}
	return word.Word(v), nil
}

// FormatWord prints a word as four 9 bit quarters.
func FormatWord(w word.Word) string {
	return fmt.Sprintf("%03o %03o %03o %03o",
		w.Quarter(3), w.Quarter(2), w.Quarter(1), w.Quarter(0))
}

// FormatAddress prints an address with its mark bit as *.
func FormatAddress(a word.Address) string {
	if a.Marked() {
		return fmt.Sprintf("*%06o", uint32(a.Physical()))
	}
	return fmt.Sprintf("%06o", uint32(a))
}
