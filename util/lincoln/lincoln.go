package lincoln

/*
 * TX2  - Lincoln Writer character set conversion
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

// The Lincoln Writer used a 6 bit code with shift characters for
// case, script and colour. Codes 0o63..0o67 and 0o74/0o75 change
// state and print nothing. A few codes (READ IN, BEGIN, NO, YES,
// WORD EXAM, STOP) have no text equivalent.

import (
	"fmt"
	"strings"
)

// Script selects normal, superscript or subscript printing.
type Script int

const (
	Normal Script = iota
	Super
	Sub
)

// Colour of the typewriter ribbon.
type Colour int

const (
	Black Colour = iota
	Red
)

// State carries the shift state between characters.
type State struct {
	Script    Script
	Uppercase bool
	Colour    Colour
}

// NewState starts upper case, normal script, black ribbon.
func NewState() State {
	return State{Uppercase: true}
}

// Upper and lower case forms for each code. A zero rune means the
// code prints nothing or has no text equivalent.
var upperCase = [64]rune{
	'0', '1', '2', '3', '4', '5', '6', '7',
	'8', '9', '_', '○', 0, 0, 0, 0,
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H',
	'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P',
	'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X',
	'Y', 'Z', '(', ')', '+', '-', ',', '.',
	'\r', '\t', '\b', 0, 0, 0, 0, 0,
	' ', 0, '\n', '', 0, 0, 0, '',
}

var lowerCase = [64]rune{
	'☛', 'Σ', '|', '‖', '/', '×', '#', '→',
	'<', '>', '‾', '□', 0, 0, 0, 0,
	'≈', '⊂', '∨', 'q', 'γ', 't', 'w', 'x',
	'i', 'y', 'z', '?', '∪', '∩', 'j', 'k',
	'a', 'Δ', 'p', '∈', 'h', '⊃', 'ϐ', '^',
	'λ', '~', '{', '}', '≡', '=', '\'', '*',
	'\r', '\t', '\b', 0, 0, 0, 0, 0,
	' ', 0, '\n', '', 0, 0, 0, '',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'-': '₋', '.': '.',
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'A': 'ᴬ', 'B': 'ᴮ', 'C': 'ꟲ', 'D': 'ᴰ', 'E': 'ᴱ',
	'F': 'ꟳ', 'G': 'ᴳ', 'H': 'ᴴ', 'I': 'ᴵ', 'J': 'ᴶ',
	'K': 'ᴷ', 'L': 'ᴸ', 'M': 'ᴹ', 'N': 'ᴺ', 'O': 'ᴼ',
	'P': 'ᴾ', 'Q': 'ꟴ', 'R': 'ᴿ', 'S': 'ₛ', 'T': 'ᵀ',
	'U': 'ᵁ', 'V': 'ⱽ', 'W': 'ᵂ', 'X': 'ₓ',
}

// Decode converts one 6 bit code. The returned rune is zero when the
// code only changes state or has no text form.
func Decode(code byte, state *State) (rune, error) {
	if code > 0o77 {
		return 0, fmt.Errorf("code %03o does not fit in 6 bits", code)
	}
	switch code {
	case 0o63:
		state.Colour = Black
		return 0, nil
	case 0o64:
		state.Script = Super
		return 0, nil
	case 0o65:
		state.Script = Normal
		return 0, nil
	case 0o66:
		state.Script = Sub
		return 0, nil
	case 0o67:
		state.Colour = Red
		return 0, nil
	case 0o74:
		state.Uppercase = false
		return 0, nil
	case 0o75:
		state.Uppercase = true
		return 0, nil
	}

	var base rune
	if state.Uppercase {
		base = upperCase[code]
	} else {
		base = lowerCase[code]
	}
	if base == 0 {
		return 0, fmt.Errorf("code %03o has no text equivalent", code)
	}

	switch state.Script {
	case Super:
		if sup, ok := superscripts[base]; ok {
			return sup, nil
		}
		return 0, fmt.Errorf("no superscript form of %q", base)
	case Sub:
		if sub, ok := subscripts[base]; ok {
			return sub, nil
		}
		return 0, fmt.Errorf("no subscript form of %q", base)
	}
	return base, nil
}

// ToUnicode converts a stream of 6 bit codes, failing on any code
// with no mapping.
func ToUnicode(codes []byte) (string, error) {
	var b strings.Builder
	state := NewState()
	for _, code := range codes {
		ch, err := Decode(code, &state)
		if err != nil {
			return "", err
		}
		if ch != 0 {
			b.WriteRune(ch)
		}
	}
	return b.String(), nil
}

// ToUnicodeLossy converts a stream of 6 bit codes for display,
// printing a middle dot for anything unmappable.
func ToUnicodeLossy(codes []byte) string {
	var b strings.Builder
	state := NewState()
	for _, code := range codes {
		ch, err := Decode(code, &state)
		if err != nil {
			b.WriteRune('·')
			continue
		}
		if ch != 0 {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// Mapping converts Unicode back to Lincoln Writer codes.
type Mapping struct {
	codes map[rune]encoded
}

type encoded struct {
	code    byte
	upper   bool
	neutral bool // Same glyph in both cases, no shift needed.
}

// NewMapping builds the reverse character table.
func NewMapping() *Mapping {
	m := &Mapping{codes: make(map[rune]encoded)}
	for code := 0o77; code >= 0; code-- {
		// Prefer the upper case form when a rune appears twice.
		if ch := lowerCase[code]; ch != 0 {
			m.codes[ch] = encoded{code: byte(code), upper: false}
		}
		if ch := upperCase[code]; ch != 0 {
			neutral := lowerCase[code] == ch
			m.codes[ch] = encoded{code: byte(code), upper: true, neutral: neutral}
		}
	}
	return m
}

// ToLincoln encodes a string, inserting case shifts as needed.
func (m *Mapping) ToLincoln(s string) ([]byte, error) {
	var out []byte
	upper := true
	for _, ch := range s {
		enc, ok := m.codes[ch]
		if !ok {
			return nil, fmt.Errorf("no Lincoln Writer code for %q", ch)
		}
		if !enc.neutral && enc.upper != upper {
			if enc.upper {
				out = append(out, 0o75)
			} else {
				out = append(out, 0o74)
			}
			upper = enc.upper
		}
		out = append(out, enc.code)
	}
	return out, nil
}
