package control

/*
 * TX2  - Jump class opcodes: JMP, JPX and JNX
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
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
)

// Jump opcodes pass index override 0 to address resolution: their j
// field names the link or test register, not an address index.

// opJmp jumps to the operand address. With a nonzero j the return
// address, the already advanced P, is saved in Xj as a subroutine
// link. The mark bit of P is preserved across the jump.
func (cu *ControlUnit) opJmp(mem *memory.Unit) error {
	target, err := cu.resolveOperandWith(mem, 0)
	if err != nil {
		return err
	}
	if j := cu.regs.nInst.Index; j != 0 {
		cu.regs.setIndexRegisterFromAddress(j, cu.regs.p)
	}
	cu.dismissUnlessHeld()
	cu.pcJump(target)
	return nil
}

// jumpDelta reads the configuration field as a signed 5 bit index
// adjustment, 0o37 meaning -1.
func jumpDelta(cfg uint32) word.Signed18 {
	d := word.Signed18(cfg & 0o37)
	if d >= 0o20 {
		d -= 0o40
	}
	return d
}

// opJpx jumps when Xj is positive, adjusting Xj by the configuration
// delta when the jump is taken.
func (cu *ControlUnit) opJpx(mem *memory.Unit) error {
	return cu.opJumpOnIndex(mem, func(x word.Signed18) bool { return x > 0 })
}

// opJnx jumps when Xj is negative, adjusting Xj by the configuration
// delta when the jump is taken.
func (cu *ControlUnit) opJnx(mem *memory.Unit) error {
	return cu.opJumpOnIndex(mem, func(x word.Signed18) bool { return x < 0 })
}

func (cu *ControlUnit) opJumpOnIndex(mem *memory.Unit, take func(word.Signed18) bool) error {
	inst := cu.regs.nInst
	target, err := cu.resolveOperandWith(mem, 0)
	if err != nil {
		return err
	}
	x := cu.regs.indexRegister(inst.Index)
	cu.dismissUnlessHeld()
	if !take(x) {
		return nil
	}
	if inst.Index != 0 {
		next := word.SignExtend18(x.Bits() + jumpDelta(inst.Config).Bits())
		cu.regs.setIndexRegister(inst.Index, next)
	}
	cu.pcJump(target)
	return nil
}
