package control

/*
 * TX2  - Front panel access to control element state
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
	"strings"

	"github.com/rcornwell/TX2/emu/word"
)

// PC returns the P register including the mark bit.
func (cu *ControlUnit) PC() word.Address {
	return cu.regs.p
}

// LastReference returns the Q register, the most recent operand
// address.
func (cu *ControlUnit) LastReference() word.Address {
	return cu.regs.q
}

// AuditWord returns the E register written at the last sequence
// change.
func (cu *ControlUnit) AuditWord() word.Word {
	return cu.regs.e
}

// Sequence returns the active sequence. The second result is false in
// Limbo after construction.
func (cu *ControlUnit) Sequence() (SequenceNumber, bool) {
	return cu.regs.k, cu.regs.kValid
}

// FlagBits returns the raw 64 bit flag register.
func (cu *ControlUnit) FlagBits() uint64 {
	return cu.regs.flags.Bits()
}

// RaiseFlag requests a run of seq. Devices call this when they have
// work for their service sequence.
func (cu *ControlUnit) RaiseFlag(seq SequenceNumber) {
	cu.regs.flags.Raise(seq)
}

// LowerFlag withdraws a run request.
func (cu *ControlUnit) LowerFlag(seq SequenceNumber) {
	cu.regs.flags.Lower(seq)
}

// IndexRegister reads Xj for display.
func (cu *ControlUnit) IndexRegister(j uint8) word.Signed18 {
	return cu.regs.indexRegister(j)
}

// SetSequenceAddress plants a start address for a sequence, the way a
// hardware readin leaves the entry point in the reader's own index
// register. Panics for sequence 0, whose start point is SPR.
func (cu *ControlUnit) SetSequenceAddress(seq SequenceNumber, addr word.Address) {
	cu.regs.setIndexRegisterFromAddress(uint8(seq), addr)
}

// State formats the register file for the show cpu command.
func (cu *ControlUnit) State() string {
	var b strings.Builder
	seq := "Limbo"
	if cu.regs.kValid {
		seq = fmt.Sprintf("%02o", cu.regs.k)
	}
	fmt.Fprintf(&b, "K: %s  P: %06o  Q: %06o  SPR: %06o\n", seq, cu.regs.p, cu.regs.q, cu.regs.spr)
	fmt.Fprintf(&b, "E: %012o  N: %012o", cu.regs.e, cu.regs.n)
	if cu.regs.nValid {
		fmt.Fprintf(&b, "  (%s)", cu.regs.nInst)
	}
	fmt.Fprintf(&b, "\nFlags: %022o\n", cu.regs.flags.Bits())
	for j := 0; j < NumSequences; j += 8 {
		fmt.Fprintf(&b, "X%02o:", j)
		for i := 0; i < 8; i++ {
			fmt.Fprintf(&b, " %06o", cu.regs.indexRegister(uint8(j+i)).Bits())
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
