package tape

/*
 * TX2  - paper tape image handling
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

// A tape image is a sequence of blocks. Each block starts with a header
// word whose left half is the word count and whose right half is the load
// origin. A header with a zero count ends the image; its right half holds
// the entry address (zero when the tape has no start address). Each 36 bit
// word is stored as six frames of six bits, most significant frame first.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rcornwell/TX2/emu/word"
)

const (
	framesPerWord = 6
	frameMask     = 0o77
)

var (
	ErrFormat = errors.New("tape format error") // Truncated or malformed image.
	ErrEOT    = errors.New("end of tape")       // No more blocks to read.
)

// Block is one load unit from a tape image.
type Block struct {
	Origin word.Address // Address the first word loads at.
	Words  []word.Word  // Words in the block.
}

// Image holds a whole paper tape.
type Image struct {
	Blocks []Block      // Load blocks in tape order.
	Entry  word.Address // Start address, zero if none given.
}

// Reader feeds an image one word at a time, the way the reader
// hardware presents it to the machine.
type Reader struct {
	image *Image
	block int
	pos   int
}

// Attach opens a tape image file and decodes it.
func Attach(fileName string) (*Image, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads a tape image from a stream of frames.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	image := &Image{}
	pos := 0
	next := func() (word.Word, error) {
		if pos+framesPerWord > len(data) {
			return 0, ErrFormat
		}
		var w word.Word
		for i := 0; i < framesPerWord; i++ {
			w = (w << 6) | word.Word(data[pos]&frameMask)
			pos++
		}
		return w, nil
	}
	for {
		header, err := next()
		if err != nil {
			return nil, err
		}
		count := header.Left()
		origin := word.Address(header.Right())
		if count == 0 {
			image.Entry = origin
			break
		}
		block := Block{Origin: origin, Words: make([]word.Word, 0, count)}
		for i := uint32(0); i < count; i++ {
			w, err := next()
			if err != nil {
				return nil, fmt.Errorf("block at %06o: %w", uint32(origin), err)
			}
			block.Words = append(block.Words, w)
		}
		image.Blocks = append(image.Blocks, block)
	}
	return image, nil
}

// Encode writes an image out as frames.
func Encode(w io.Writer, image *Image) error {
	emit := func(v word.Word) error {
		var frames [framesPerWord]byte
		for i := framesPerWord - 1; i >= 0; i-- {
			frames[i] = byte(v & frameMask)
			v >>= 6
		}
		_, err := w.Write(frames[:])
		return err
	}
	for _, block := range image.Blocks {
		header := word.JoinHalves(uint32(len(block.Words)), uint32(block.Origin))
		if err := emit(header); err != nil {
			return err
		}
		for _, v := range block.Words {
			if err := emit(v); err != nil {
				return err
			}
		}
	}
	return emit(word.JoinHalves(0, uint32(image.Entry)))
}

// Words counts the loadable words on the tape.
func (image *Image) Words() int {
	n := 0
	for _, block := range image.Blocks {
		n += len(block.Words)
	}
	return n
}

// NewReader starts reading an image from its first block.
func NewReader(image *Image) *Reader {
	return &Reader{image: image}
}

// Rewind puts the reader back at the start of the tape.
func (rdr *Reader) Rewind() {
	rdr.block = 0
	rdr.pos = 0
}

// Next returns the load address and value of the next word on the tape.
// At end of tape it returns ErrEOT.
func (rdr *Reader) Next() (word.Address, word.Word, error) {
	for rdr.block < len(rdr.image.Blocks) {
		block := rdr.image.Blocks[rdr.block]
		if rdr.pos < len(block.Words) {
			addr := block.Origin
			for i := 0; i < rdr.pos; i++ {
				addr = addr.Succ()
			}
			v := block.Words[rdr.pos]
			rdr.pos++
			return addr, v, nil
		}
		rdr.block++
		rdr.pos = 0
	}
	return 0, 0, ErrEOT
}

// Done reports whether the whole tape has been read.
func (rdr *Reader) Done() bool {
	block, pos := rdr.block, rdr.pos
	for block < len(rdr.image.Blocks) {
		if pos < len(rdr.image.Blocks[block].Words) {
			return false
		}
		block++
		pos = 0
	}
	return true
}
