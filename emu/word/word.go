package word

/*
 * TX2  - 36 bit word and 18 bit address types
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

// Word is one 36 bit machine word held in the low 36 bits of a uint64.
// A word divides into two 18 bit halves or four 9 bit quarters. Quarter 0
// is the least significant.
type Word uint64

// Address is an 18 bit value. Bit 17 is not part of the physical address:
// in the program counter it is the mark bit, in an instruction operand
// field it is the defer bit. Only the low 17 bits select a memory cell.
type Address uint32

// Signed18 holds an index register value sign extended from 18 bits.
type Signed18 int32

const (
	// WordMask covers all 36 bits of a machine word.
	WordMask Word = 0o777777777777
	// HalfMask covers one 18 bit half word.
	HalfMask uint32 = 0o777777
	// QuarterMask covers one 9 bit quarter.
	QuarterMask uint32 = 0o777

	// AddrMask covers the full 18 bit address including the mark bit.
	AddrMask Address = 0o777777
	// PhysMask covers the 17 physical address bits.
	PhysMask Address = 0o377777
	// MarkBit is bit 17 of an address.
	MarkBit Address = 0o400000
)

// Left returns the high 18 bits of a word.
func (w Word) Left() uint32 {
	return uint32(w>>18) & HalfMask
}

// Right returns the low 18 bits of a word.
func (w Word) Right() uint32 {
	return uint32(w) & HalfMask
}

// Quarter returns 9 bit quarter n, n = 0 least significant.
func (w Word) Quarter(n int) uint32 {
	return uint32(w>>(9*uint(n&3))) & QuarterMask
}

// WithQuarter returns the word with 9 bit quarter n replaced by q.
func (w Word) WithQuarter(n int, q uint32) Word {
	shift := 9 * uint(n&3)
	w &= ^(Word(QuarterMask) << shift)
	return w | Word(q&QuarterMask)<<shift
}

// JoinHalves builds a word from two 18 bit halves.
func JoinHalves(left, right uint32) Word {
	return Word(left&HalfMask)<<18 | Word(right&HalfMask)
}

// JoinQuarters builds an 18 bit half from two 9 bit quarters.
func JoinQuarters(hi, lo uint32) uint32 {
	return (hi&QuarterMask)<<9 | lo&QuarterMask
}

// Physical returns the 17 bit cell number, dropping the mark bit.
func (a Address) Physical() Address {
	return a & PhysMask
}

// Marked reports whether bit 17 of the address is set.
func (a Address) Marked() bool {
	return a&MarkBit != 0
}

// Split separates an address into its mark bit and physical part.
func (a Address) Split() (bool, Address) {
	return a.Marked(), a.Physical()
}

// WithMark returns the address with bit 17 set or cleared.
func (a Address) WithMark(mark bool) Address {
	if mark {
		return a | MarkBit
	}
	return a &^ MarkBit
}

// Succ returns the next program counter value. The 17 physical bits
// wrap modulo 2^17 and the mark bit is kept as it was.
func (a Address) Succ() Address {
	return (a + 1) & PhysMask | a&MarkBit
}

// Index adds a signed index value to the address in the full 18 bit
// modular ring.
func (a Address) Index(x Signed18) Address {
	return Address(uint32(a)+uint32(x)) & AddrMask
}

// SignExtend18 interprets the low 18 bits of v as a two's complement
// value.
func SignExtend18(v uint32) Signed18 {
	v &= uint32(AddrMask)
	if v&uint32(MarkBit) != 0 {
		return Signed18(int32(v) - 0o1000000)
	}
	return Signed18(v)
}

// Bits returns the low 18 bits of the two's complement encoding of s.
func (s Signed18) Bits() uint32 {
	return uint32(s) & uint32(AddrMask)
}
