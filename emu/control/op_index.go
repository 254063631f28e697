package control

/*
 * TX2  - Index class opcodes: SKX and DPX
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
	"github.com/rcornwell/TX2/emu/alarm"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
)

// opSkx loads, adjusts or negates index register j from the operand
// field taken as an immediate. No memory access and no indexing takes
// place. Configuration bits 3 and 4 raise or lower flag j, which is
// how a program starts and stops other sequences.
func (cu *ControlUnit) opSkx() error {
	inst := cu.regs.nInst
	if inst.Operand.Deferred {
		return alarm.RoundTuit(cu.regs.n, "deferred SKX is not implemented yet")
	}
	// Dismiss before the flag bits take effect so a sequence can
	// re-raise itself.
	cu.dismissUnlessHeld()

	value := word.SignExtend18(uint32(inst.Operand.Address))
	if inst.Index != 0 {
		old := cu.regs.indexRegister(inst.Index)
		switch inst.Config & 0o3 {
		case 0:
			// Load.
		case 1:
			value = word.SignExtend18(old.Bits() + value.Bits())
		case 2:
			value = word.SignExtend18(old.Bits() - value.Bits())
		case 3:
			value = word.SignExtend18(-value.Bits())
		}
		cu.regs.setIndexRegister(inst.Index, value)
	}
	if inst.Config&0o10 != 0 {
		cu.regs.flags.Raise(SequenceNumber(inst.Index))
	}
	if inst.Config&0o20 != 0 {
		cu.regs.flags.Lower(SequenceNumber(inst.Index))
	}
	return nil
}

// opDpx deposits index register j, sign extended to a full word, at
// the operand address through the exchange element. The address is
// indexed by Xj itself, so a deferred or self indexed deposit walks
// memory.
func (cu *ControlUnit) opDpx(mem *memory.Unit) error {
	addr, err := cu.resolveOperand(mem)
	if err != nil {
		return err
	}
	value := signExtendToWord(cu.regs.indexRegister(cu.regs.nInst.Index))
	existing, _, err := cu.fetchOperand(mem, addr)
	if err != nil {
		return err
	}
	if err := cu.storeExchanged(mem, addr, value, existing); err != nil {
		return err
	}
	cu.dismissUnlessHeld()
	return nil
}

// signExtendToWord widens an index value to 36 bits, filling the left
// half with the sign.
func signExtendToWord(v word.Signed18) word.Word {
	left := uint32(0)
	if v < 0 {
		left = word.HalfMask
	}
	return word.JoinHalves(left, v.Bits())
}
