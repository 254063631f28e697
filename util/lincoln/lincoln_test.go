package lincoln

/*
 * TX2  - Lincoln Writer character set test cases
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

import "testing"

func TestToUnicode(t *testing.T) {
	got, err := ToUnicode([]byte{0o27, 0o24, 0o33, 0o33, 0o36})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "HELLO" {
		t.Errorf("string not correct got: %s expected: %s", got, "HELLO")
	}
}

func TestSuperscript(t *testing.T) {
	got, err := ToUnicode([]byte{0o64, 0o27, 0o24, 0o33, 0o33, 0o36})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "ᴴᴱᴸᴸᴼ" {
		t.Errorf("string not correct got: %s expected: %s", got, "ᴴᴱᴸᴸᴼ")
	}
}

func TestSubscript(t *testing.T) {
	got, err := ToUnicode([]byte{0o65, 0o27, 0o66, 0o02, 0o65, 0o36})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "H₂O" {
		t.Errorf("string not correct got: %s expected: %s", got, "H₂O")
	}
}

func TestCaseShift(t *testing.T) {
	got, err := ToUnicode([]byte{0o74, 0o52, 0o53, 0o75, 0o52, 0o53})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if got != "{}()" {
		t.Errorf("string not correct got: %s expected: %s", got, "{}()")
	}
}

func TestNoMapping(t *testing.T) {
	_, err := ToUnicode([]byte{0o14})
	if err == nil {
		t.Error("READ IN code should have no text equivalent")
	}
	got := ToUnicodeLossy([]byte{0o27, 0o14, 0o30})
	if got != "H·I" {
		t.Errorf("string not correct got: %s expected: %s", got, "H·I")
	}
}

func TestRoundTrip(t *testing.T) {
	m := NewMapping()
	codes, err := m.ToLincoln("TX2 {a}")
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := ToUnicode(codes)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != "TX2 {a}" {
		t.Errorf("round trip not correct got: %s expected: %s", got, "TX2 {a}")
	}

	_, err = m.ToLincoln("TX2é")
	if err == nil {
		t.Error("encode of unmapped rune should fail")
	}
}
