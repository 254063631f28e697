package control

/*
 * TX2  - Configuration class opcodes: SKM and SPG
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
	"github.com/rcornwell/TX2/emu/exchanger"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
)

// SKM configuration bits.
const (
	skmModMask    = 0o3  // 0 none, 1 set, 2 clear, 3 complement
	skmSkipOnOne  = 0o4  // skip next instruction if the bit was one
	skmSkipOnZero = 0o10 // skip next instruction if the bit was zero
	skmCycle      = 0o20 // rotate the word right one bit afterwards
)

// opSkm examines, modifies and skips on a single bit of the operand
// word. The j field is not an index: its high two bits select the
// quarter and its low four bits the bit within (1-9 data, 0 metabit),
// so SKM is indexable only through deferred addressing.
func (cu *ControlUnit) opSkm(mem *memory.Unit) error {
	inst := cu.regs.nInst
	addr, err := cu.resolveOperandWith(mem, 0)
	if err != nil {
		return err
	}
	quarter := int(inst.Index>>4) & 3
	bit := uint32(inst.Index) & 0o17
	if bit > 9 {
		return alarm.RoundTuit(cu.regs.n,
			fmt.Sprintf("SKM bit selector %02o is not implemented yet", inst.Index))
	}

	w, extra, err := cu.fetchOperand(mem, addr)
	if err != nil {
		return err
	}

	var was bool
	if bit == 0 {
		was = extra.Meta
	} else {
		was = w&(word.Word(1)<<(uint(quarter)*9+uint(bit)-1)) != 0
	}

	now := was
	switch inst.Config & skmModMask {
	case 1:
		now = true
	case 2:
		now = false
	case 3:
		now = !was
	}

	if bit == 0 {
		if now != was {
			if err := mem.SetMetaBit(addr, now); err != nil {
				return alarm.Qsal(cu.regs.n, addr,
					fmt.Sprintf("metabit store failed: %v", err))
			}
		}
	} else {
		mask := word.Word(1) << (uint(quarter)*9 + uint(bit) - 1)
		if now {
			w |= mask
		} else {
			w &^= mask
		}
	}
	if inst.Config&skmCycle != 0 {
		w = (w>>1 | w<<35) & word.WordMask
	}
	if bit != 0 || inst.Config&skmCycle != 0 {
		if inst.Config&(skmModMask|skmCycle) != 0 {
			if err := cu.storeOperand(mem, addr, w); err != nil {
				return err
			}
		}
	}

	cu.dismissUnlessHeld()
	if (was && inst.Config&skmSkipOnOne != 0) || (!was && inst.Config&skmSkipOnZero != 0) {
		cu.pcAdvance()
	}
	return nil
}

// opSpg loads four configuration registers from the quarters of the
// operand word, starting at the register named by the configuration
// field. Quarter 0 goes to the first register. F0 stays zero, writes
// to it are dropped.
func (cu *ControlUnit) opSpg(mem *memory.Unit) error {
	inst := cu.regs.nInst
	addr, err := cu.resolveOperand(mem)
	if err != nil {
		return err
	}
	w, _, err := cu.fetchOperand(mem, addr)
	if err != nil {
		return err
	}
	for q := 0; q < 4; q++ {
		cu.regs.setFMem((inst.Config+uint32(q))&0o37, exchanger.SystemConfiguration(w.Quarter(q)))
	}
	cu.dismissUnlessHeld()
	return nil
}
