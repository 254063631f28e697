package control

/*
 * TX2  - Control element register file and sequence flags
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
	"fmt"
	"math/bits"

	"github.com/rcornwell/TX2/emu/exchanger"
	"github.com/rcornwell/TX2/emu/instruction"
	"github.com/rcornwell/TX2/emu/word"
)

// SequenceNumber identifies one of the 64 sequences. Lower numbers
// have higher priority.
type SequenceNumber uint8

const (
	// NumSequences is the size of the flag register and X memory.
	NumSequences = 64
	// TrapSequence handles sequence change traps.
	TrapSequence SequenceNumber = 0o52
)

// SequenceFlags is the 64 bit flag register, one run request bit per
// sequence.
type SequenceFlags struct {
	bits uint64
}

func checkSeq(seq SequenceNumber) {
	if seq >= NumSequences {
		panic(fmt.Sprintf("sequence number %o out of range", seq))
	}
}

// Raise sets the flag for seq.
func (f *SequenceFlags) Raise(seq SequenceNumber) {
	checkSeq(seq)
	f.bits |= 1 << seq
}

// Lower clears the flag for seq.
func (f *SequenceFlags) Lower(seq SequenceNumber) {
	checkSeq(seq)
	f.bits &^= 1 << seq
}

// LowerAll clears every flag, leaving the machine in Limbo.
func (f *SequenceFlags) LowerAll() {
	f.bits = 0
}

// Raised reports whether the flag for seq is set.
func (f *SequenceFlags) Raised(seq SequenceNumber) bool {
	checkSeq(seq)
	return f.bits&(1<<seq) != 0
}

// HighestPriority returns the lowest numbered raised flag. The second
// result is false when no flag is raised.
func (f *SequenceFlags) HighestPriority() (SequenceNumber, bool) {
	if f.bits == 0 {
		return 0, false
	}
	return SequenceNumber(bits.TrailingZeros64(f.bits)), true
}

// Bits returns the raw flag register for display.
func (f *SequenceFlags) Bits() uint64 {
	return f.bits
}

// registers is the register file of one control element. One instance
// per control unit, never shared.
type registers struct {
	e word.Word // sequence change audit word
	p word.Address
	q word.Address // most recent memory reference

	// N register: the fetched word plus its decoded form, which is
	// only meaningful when nValid is set.
	n      word.Word
	nInst  instruction.Instruction
	nValid bool

	// K register. kValid false means Limbo, so the first CODABO is
	// seen as a sequence change.
	k      SequenceNumber
	kValid bool

	// Start point register, loaded only by RESET and CODABO.
	// Sequence 0 takes its program counter from here since index
	// register 0 is pinned at zero.
	spr word.Address

	// X memory. Registers 40-77 double as sequence program counters.
	index [NumSequences]word.Signed18
	// F memory, the system configuration registers.
	fmem [32]exchanger.SystemConfiguration

	flags SequenceFlags

	// Set while the active sequence may keep running with its own
	// flag down (IOS 40000 lowers the flag without dismissing).
	runnable bool
}

func newRegisters() *registers {
	return &registers{}
}

// previousHold reports whether the last fetched instruction asked to
// hold the current sequence.
func (r *registers) previousHold() bool {
	return r.nValid && r.nInst.Held
}

// indexRegister reads Xj. X0 always reads zero.
func (r *registers) indexRegister(j uint8) word.Signed18 {
	if j >= NumSequences {
		panic(fmt.Sprintf("index register %o out of range", j))
	}
	return r.index[j]
}

// indexRegisterAsAddress reads Xj reinterpreted as an 18 bit address.
func (r *registers) indexRegisterAsAddress(j uint8) word.Address {
	return word.Address(r.indexRegister(j).Bits())
}

// setIndexRegister writes Xj. Writing X0 is a programming error in the
// emulator itself, the machine has no path that does it.
func (r *registers) setIndexRegister(j uint8, value word.Signed18) {
	if j == 0 {
		panic("index register 0 is fixed at 0")
	}
	if j >= NumSequences {
		panic(fmt.Sprintf("index register %o out of range", j))
	}
	r.index[j] = value
}

// setIndexRegisterFromAddress saves an address, usually a program
// counter, into Xj.
func (r *registers) setIndexRegisterFromAddress(j uint8, addr word.Address) {
	r.setIndexRegister(j, word.SignExtend18(uint32(addr)))
}

// fMem reads configuration register n. F0 always reads zero.
func (r *registers) fMem(n uint32) exchanger.SystemConfiguration {
	return r.fmem[n&0o37]
}

// setFMem writes configuration register n. Writes to F0 are dropped,
// configuration 0 stays "full word".
func (r *registers) setFMem(n uint32, cfg exchanger.SystemConfiguration) {
	n &= 0o37
	if n == 0 {
		return
	}
	r.fmem[n] = cfg & 0o777
}
