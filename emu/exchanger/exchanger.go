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
	"github.com/rcornwell/TX2/emu/word"
)

// SystemConfiguration is a 9 bit value from an F memory register.
// Low 4 bits select active quarters, a zero mask meaning all four.
// Bits 4-5 rotate the incoming word right by that many quarters
// before the mask is applied.
type SystemConfiguration uint32

const cfgMask SystemConfiguration = 0o777

// Mask returns the active quarter selection, one bit per quarter.
func (c SystemConfiguration) Mask() uint32 {
	m := uint32(c) & 0o17
	if m == 0 {
		m = 0o17
	}
	return m
}

// Rotation returns the right rotation amount in quarters.
func (c SystemConfiguration) Rotation() uint {
	return uint(c>>4) & 3
}

// rotateRight rotates a 36 bit word right by n quarters.
func rotateRight(w word.Word, n uint) word.Word {
	n = (n & 3) * 9
	if n == 0 {
		return w
	}
	return (w>>n | w<<(36-n)) & word.WordMask
}

// Exchange merges an incoming word into an existing one. Active
// quarters of the result come from the rotated incoming word, the
// rest stay as they were. The operation is pure; configuration 0
// replaces the whole word.
func Exchange(cfg SystemConfiguration, incoming, existing word.Word) word.Word {
	cfg &= cfgMask
	in := rotateRight(incoming, cfg.Rotation())
	mask := cfg.Mask()
	out := existing
	for q := 0; q < 4; q++ {
		if mask&(1<<uint(q)) != 0 {
			out = out.WithQuarter(q, in.Quarter(q))
		}
	}
	return out
}
