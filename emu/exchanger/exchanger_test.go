package exchanger

/*
 * TX2  - Exchange element, configuration driven subword update
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

// Configuration 0 replaces the whole word.
func TestExchangeFull(t *testing.T) {
	in := word.Word(0o111_222_333_444)
	old := word.Word(0o555_666_777_000)
	if r := Exchange(0, in, old); r != in {
		t.Errorf("Exchange not correct got: %012o expected: %012o", r, in)
	}
}

// Only masked quarters change.
func TestExchangeMask(t *testing.T) {
	in := word.Word(0o111_222_333_444)
	old := word.Word(0o555_666_777_000)
	// Quarter 0 only.
	if r := Exchange(0o01, in, old); r != 0o555_666_777_444 {
		t.Errorf("Exchange q0 not correct got: %012o expected: %012o", r, word.Word(0o555_666_777_444))
	}
	// Quarters 1 and 3.
	if r := Exchange(0o12, in, old); r != 0o111_666_333_000 {
		t.Errorf("Exchange q1,q3 not correct got: %012o expected: %012o", r, word.Word(0o111_666_333_000))
	}
}

// Rotation shifts the incoming word right by quarters before masking.
func TestExchangeRotate(t *testing.T) {
	in := word.Word(0o111_222_333_444)
	old := word.Word(0)
	// Rotate right one quarter, all quarters active.
	if r := Exchange(0o20, in, old); r != 0o444_111_222_333 {
		t.Errorf("Exchange rotate not correct got: %012o expected: %012o", r, word.Word(0o444_111_222_333))
	}
	// Rotate right two, only quarter 0 active.
	if r := Exchange(0o41, in, old); r != 0o000_000_000_222 {
		t.Errorf("Exchange rotate mask not correct got: %012o expected: %012o", r, word.Word(0o222))
	}
}

// The existing word is never modified in place.
func TestExchangePure(t *testing.T) {
	old := word.Word(0o123_123_123_123)
	keep := old
	_ = Exchange(0o03, 0o777_777_777_777, old)
	if old != keep {
		t.Error("Exchange modified its argument")
	}
}
