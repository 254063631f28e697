package control

/*
 * TX2  - Operand address resolution, deferred addressing and indexing
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

	"github.com/rcornwell/TX2/emu/alarm"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
)

// resolveOperand resolves the current instruction's operand address
// using the instruction's own index field.
func (cu *ControlUnit) resolveOperand(mem *memory.Unit) (word.Address, error) {
	return cu.resolveOperandWith(mem, cu.regs.nInst.Index)
}

// resolveOperandWith resolves the operand address indexing by Xj for
// the given j. Jump and skip opcodes pass 0 since their index field
// names the register under test, making them indexable only through
// deferred addressing.
//
// Deferred addressing chases the chain in the N register itself: the
// right half of each fetched word replaces the low 18 bits of N and
// the result is reclassified. The loop is unbounded, a cyclic chain
// spins forever just like the hardware did. Indexing happens once,
// after the final indirection, and the result lands in Q as the most
// recent memory reference.
func (cu *ControlUnit) resolveOperandWith(mem *memory.Unit, j uint8) (word.Address, error) {
	for cu.regs.nInst.Operand.Deferred {
		addr := cu.regs.nInst.Operand.Address
		meta := memory.MetaNone
		if cu.metabitMode == MetabitDeferred {
			meta = memory.MetaSet
		}
		w, _, err := mem.Fetch(addr, meta)
		if err != nil {
			return 0, alarm.Qsal(cu.regs.n, addr,
				fmt.Sprintf("deferred address fetch failed: %v", err))
		}
		// Splice the fetched right half into N and reclassify. The
		// opcode bits are untouched so decode cannot fail here.
		if err := cu.updateN(word.JoinHalves(cu.regs.n.Left(), w.Right())); err != nil {
			return 0, err
		}
	}
	addr := cu.regs.nInst.Operand.Address
	cu.regs.q = addr.Index(cu.regs.indexRegister(j))
	return cu.regs.q, nil
}
