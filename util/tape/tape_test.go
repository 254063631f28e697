package tape

/*
 * TX2  - paper tape image test cases
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
	"bytes"
	"errors"
	"testing"

	"github.com/rcornwell/TX2/emu/word"
)

func TestEncodeDecode(t *testing.T) {
	image := &Image{
		Blocks: []Block{
			{Origin: 0o100, Words: []word.Word{0o123456701234, 0o777777777777}},
			{Origin: 0o200000, Words: []word.Word{0o5}},
		},
		Entry: 0o100,
	}
	var buf bytes.Buffer
	err := Encode(&buf, image)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if buf.Len() != 6*6 {
		t.Errorf("image size not correct got: %d expected: %d", buf.Len(), 6*6)
	}

	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Entry != 0o100 {
		t.Errorf("entry not correct got: %06o expected: %06o", uint32(got.Entry), 0o100)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("block count not correct got: %d expected: %d", len(got.Blocks), 2)
	}
	if got.Blocks[0].Origin != 0o100 {
		t.Errorf("origin not correct got: %06o expected: %06o", uint32(got.Blocks[0].Origin), 0o100)
	}
	if got.Blocks[0].Words[1] != 0o777777777777 {
		t.Errorf("word not correct got: %012o expected: %012o", uint64(got.Blocks[0].Words[1]), uint64(0o777777777777))
	}
	if got.Words() != 3 {
		t.Errorf("word count not correct got: %d expected: %d", got.Words(), 3)
	}
}

func TestDecodeTruncated(t *testing.T) {
	image := &Image{
		Blocks: []Block{{Origin: 0o40, Words: []word.Word{1, 2, 3}}},
	}
	var buf bytes.Buffer
	err := Encode(&buf, image)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	short := buf.Bytes()[:buf.Len()-8]
	_, err = Decode(bytes.NewReader(short))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error not correct got: %v expected: %v", err, ErrFormat)
	}
}

func TestReader(t *testing.T) {
	image := &Image{
		Blocks: []Block{
			{Origin: 0o10, Words: []word.Word{0o111, 0o222}},
			{Origin: 0o30, Words: []word.Word{0o333}},
		},
		Entry: 0o10,
	}
	rdr := NewReader(image)
	want := []struct {
		addr word.Address
		v    word.Word
	}{
		{0o10, 0o111},
		{0o11, 0o222},
		{0o30, 0o333},
	}
	for i, w := range want {
		addr, v, err := rdr.Next()
		if err != nil {
			t.Fatalf("read %d failed: %v", i, err)
		}
		if addr != w.addr {
			t.Errorf("address %d not correct got: %06o expected: %06o", i, uint32(addr), uint32(w.addr))
		}
		if v != w.v {
			t.Errorf("word %d not correct got: %012o expected: %012o", i, uint64(v), uint64(w.v))
		}
	}
	if !rdr.Done() {
		t.Error("reader should be at end of tape")
	}
	_, _, err := rdr.Next()
	if !errors.Is(err, ErrEOT) {
		t.Errorf("error not correct got: %v expected: %v", err, ErrEOT)
	}

	rdr.Rewind()
	addr, v, err := rdr.Next()
	if err != nil {
		t.Fatalf("read after rewind failed: %v", err)
	}
	if addr != 0o10 || v != 0o111 {
		t.Errorf("rewind not correct got: %06o %012o expected: %06o %012o",
			uint32(addr), uint64(v), 0o10, 0o111)
	}
}
