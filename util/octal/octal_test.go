package octal

/*
 * TX2  - octal formatting test cases
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
	"testing"

	"github.com/rcornwell/TX2/emu/word"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("377750")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if addr != 0o377750 {
		t.Errorf("address not correct got: %06o expected: %06o", uint32(addr), 0o377750)
	}

	addr, err = ParseAddress("*100")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !addr.Marked() || addr.Physical() != 0o100 {
		t.Errorf("marked address not correct got: %06o", uint32(addr))
	}

	_, err = ParseAddress("800")
	if err == nil {
		t.Error("parse of 800 should fail")
	}
	_, err = ParseAddress("477750")
	if err == nil {
		t.Error("address over 17 bits should fail")
	}
}

func TestParseWord(t *testing.T) {
	w, err := ParseWord("123456701234")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if w != 0o123456701234 {
		t.Errorf("word not correct got: %012o expected: %012o", uint64(w), uint64(0o123456701234))
	}
	_, err = ParseWord("1777777777777")
	if err == nil {
		t.Error("word over 36 bits should fail")
	}
}

func TestFormat(t *testing.T) {
	got := FormatWord(word.Word(0o123456701234))
	if got != "123 456 701 234" {
		t.Errorf("format not correct got: %s expected: %s", got, "123 456 701 234")
	}
	got = FormatAddress(word.Address(0o100).WithMark(true))
	if got != "*000100" {
		t.Errorf("format not correct got: %s expected: %s", got, "*000100")
	}
	got = FormatAddress(word.Address(0o377750))
	if got != "377750" {
		t.Errorf("format not correct got: %s expected: %s", got, "377750")
	}
}
