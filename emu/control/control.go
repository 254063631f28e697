package control

/*
 * TX2  - Control element: fetch, dispatch and sequence changing
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
	"log/slog"

	"github.com/rcornwell/TX2/emu/alarm"
	"github.com/rcornwell/TX2/emu/exchanger"
	"github.com/rcornwell/TX2/emu/instruction"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
)

// MetabitMode selects which memory accesses set the metabit of the
// touched cell, a hardware tracing aid.
type MetabitMode int

const (
	MetabitNever MetabitMode = iota
	MetabitInstructions
	MetabitDeferred
	MetabitOperands
)

// ResetMode selects the start point loaded by RESET and CODABO. The
// eight fixed modes read their start point from toggle registers
// 377710-377717, TSP uses the toggle start point.
type ResetMode int

const (
	ResetTSP ResetMode = iota
	Reset0
	Reset1
	Reset2
	Reset3
	Reset4
	Reset5
	Reset6
	Reset7
)

// Address returns the fixed start point for the mode. The second
// result is false for ResetTSP.
func (m ResetMode) Address() (word.Address, bool) {
	if m >= Reset0 && m <= Reset7 {
		return word.Address(0o377710 + int(m-Reset0)), true
	}
	return 0, false
}

// DeviceHandler connects the IOS opcode to the device manager. A nil
// handler turns connect and disconnect into no-ops.
type DeviceHandler interface {
	Connect(seq SequenceNumber, mode uint32) error
	Disconnect(seq SequenceNumber) error
}

// ControlUnit is one control element. All state is owned by the
// instance; run several machines by building several units. Not safe
// for concurrent use, the driver serializes access.
type ControlUnit struct {
	regs    *registers
	devices DeviceHandler

	trapChangeSequence bool
	metabitMode        MetabitMode
	toggleStart        word.Address
}

// New builds a control unit in Limbo with all registers zero.
func New() *ControlUnit {
	return &ControlUnit{regs: newRegisters()}
}

// SetDeviceHandler wires the IOS connect and disconnect paths.
func (cu *ControlUnit) SetDeviceHandler(handler DeviceHandler) {
	cu.devices = handler
}

// SetTrapOnChangeSequence enables the sequence change trap.
func (cu *ControlUnit) SetTrapOnChangeSequence(on bool) {
	cu.trapChangeSequence = on
}

// SetMetabitMode selects the metabit tracing mode.
func (cu *ControlUnit) SetMetabitMode(mode MetabitMode) {
	cu.metabitMode = mode
}

// Codabo presses one of the CODABO buttons: drop every sequence,
// reset the start point, raise sequence 0 and hand it control.
func (cu *ControlUnit) Codabo(mode ResetMode) {
	cu.Reset(mode)
	cu.regs.flags.LowerAll()
	cu.regs.runnable = false
	cu.regs.nValid = false
	cu.Startover()
	// Hand control to sequence 0 right away rather than waiting for
	// the next fetch, so the front panel shows the start point.
	prev, prevValid := cu.regs.k, cu.regs.kValid
	if !prevValid || prev != 0 {
		cu.changeSequence(prev, prevValid, 0)
	} else {
		cu.pcSequenceChange(0)
	}
	slog.Debug("CODABO", "mode", int(mode), "start", fmt.Sprintf("%06o", cu.regs.p))
}

// Reset loads the start point register and changes nothing else.
func (cu *ControlUnit) Reset(mode ResetMode) {
	if addr, ok := mode.Address(); ok {
		cu.regs.spr = addr
		return
	}
	cu.regs.spr = cu.tsp()
}

// Startover raises sequence 0.
func (cu *ControlUnit) Startover() {
	cu.regs.flags.Raise(0)
}

// SetTSP moves the toggle start point.
func (cu *ControlUnit) SetTSP(addr word.Address) {
	cu.toggleStart = addr
}

// tsp returns the toggle start point. It defaults to the plugboard
// memory smear program.
func (cu *ControlUnit) tsp() word.Address {
	if cu.toggleStart != 0 {
		return cu.toggleStart
	}
	return memory.StandardProgramClearMemory
}

// changeSequence hands control from prev to next. prevValid false
// means the unit was in Limbo. A marked placeholder (negative index
// register) on the target diverts control to the trap sequence when
// trapping is enabled, unless the trap sequence itself is giving up
// control or the target outranks it.
func (cu *ControlUnit) changeSequence(prev SequenceNumber, prevValid bool, next SequenceNumber) {
	if prevValid && prev == next {
		return
	}

	trap := cu.trapChangeSequence &&
		cu.regs.indexRegister(uint8(next)) < 0 &&
		!(cu.regs.kValid && cu.regs.k == TrapSequence) &&
		next > TrapSequence

	// Audit word: previous and next sequence in the left half,
	// outgoing program counter in the right.
	prevNum := SequenceNumber(0)
	if prevValid {
		prevNum = prev
	}
	cu.regs.e = word.JoinHalves(
		word.JoinQuarters(uint32(prevNum), uint32(next)),
		uint32(cu.regs.p))

	if trap {
		cu.regs.flags.Raise(TrapSequence)
		next = TrapSequence
	}
	cu.regs.k = next
	cu.regs.kValid = true
	cu.regs.runnable = true
	if prevValid && prev != 0 {
		// Save the outgoing program counter so the sequence can
		// resume later. Sequence 0 restarts from SPR instead.
		cu.regs.setIndexRegisterFromAddress(uint8(prev), cu.regs.p)
	}
	cu.pcSequenceChange(next)
	slog.Debug("sequence change", "prev", fmt.Sprintf("%02o", prevNum),
		"next", fmt.Sprintf("%02o", next), "p", fmt.Sprintf("%06o", cu.regs.p))
}

// pcSequenceChange loads P for a new sequence. This is the only place
// the mark bit of P can change.
func (cu *ControlUnit) pcSequenceChange(next SequenceNumber) {
	if next != 0 {
		cu.regs.p = cu.regs.indexRegisterAsAddress(uint8(next))
	} else {
		cu.regs.p = cu.regs.spr
	}
}

// pcAdvance steps P to the next instruction. The 17 physical bits
// wrap, the mark bit is untouched.
func (cu *ControlUnit) pcAdvance() {
	cu.regs.p = cu.regs.p.Succ()
}

// pcJump loads a new address into P keeping the old mark bit.
func (cu *ControlUnit) pcJump(target word.Address) {
	cu.regs.p = target.Physical() | cu.regs.p&word.MarkBit
}

// FetchInstruction runs the scheduler and reads one instruction into
// the N register. It returns false without touching memory when the
// unit is in Limbo. P is already advanced when a decode alarm comes
// back.
func (cu *ControlUnit) FetchInstruction(mem *memory.Unit) (bool, error) {
	// A held instruction keeps its sequence; the flags are not even
	// scanned.
	if !cu.regs.previousHold() {
		seq, any := cu.regs.flags.HighestPriority()
		switch {
		case !any:
			// Flag already down. Keep running only if the current
			// sequence lowered its own flag without dismissing.
			if !cu.regs.runnable {
				return false, nil
			}
		case cu.regs.kValid && seq == cu.regs.k:
			// Carry on. The raised flag makes the sequence runnable
			// again even if it was dismissed and re-raised.
			cu.regs.runnable = true
		default:
			cu.changeSequence(cu.regs.k, cu.regs.kValid, seq)
		}
	}

	fetchAddr := cu.regs.p.Physical()
	cu.pcAdvance()

	meta := memory.MetaNone
	if cu.metabitMode == MetabitInstructions {
		meta = memory.MetaSet
	}
	w, _, err := mem.Fetch(fetchAddr, meta)
	if err != nil {
		return false, alarm.Psal(fetchAddr, "instruction fetch address not mapped")
	}
	if err := cu.updateN(w); err != nil {
		return false, err
	}
	return true, nil
}

// updateN loads a word into the N register and decodes it.
func (cu *ControlUnit) updateN(w word.Word) error {
	cu.regs.n = w
	cu.regs.nInst = instruction.Decode(w)
	cu.regs.nValid = cu.regs.nInst.Opcode.Valid()
	if !cu.regs.nValid {
		return cu.invalidOpcode()
	}
	return nil
}

func (cu *ControlUnit) invalidOpcode() error {
	return alarm.Ocsal(cu.regs.n, fmt.Sprintf("invalid opcode %02o", uint8(cu.regs.nInst.Opcode)))
}

// ExecuteInstruction runs the instruction in the N register. P already
// points at the next instruction.
func (cu *ControlUnit) ExecuteInstruction(mem *memory.Unit) error {
	if !cu.regs.nValid {
		return cu.invalidOpcode()
	}
	switch cu.regs.nInst.Opcode {
	case instruction.OpSKX:
		return cu.opSkx()
	case instruction.OpDPX:
		return cu.opDpx(mem)
	case instruction.OpJMP:
		return cu.opJmp(mem)
	case instruction.OpJPX:
		return cu.opJpx(mem)
	case instruction.OpJNX:
		return cu.opJnx(mem)
	case instruction.OpSKM:
		return cu.opSkm(mem)
	case instruction.OpSPG:
		return cu.opSpg(mem)
	case instruction.OpIOS:
		return cu.opIos()
	}
	return alarm.RoundTuit(cu.regs.n,
		fmt.Sprintf("opcode %s is not implemented yet", cu.regs.nInst.Opcode))
}

// getConfig reads the F memory register selected by the current
// instruction's configuration field.
func (cu *ControlUnit) getConfig() exchanger.SystemConfiguration {
	return cu.regs.fMem(cu.regs.nInst.Config)
}

// fetchOperand reads the word at an already resolved operand address.
func (cu *ControlUnit) fetchOperand(mem *memory.Unit, addr word.Address) (word.Word, memory.ExtraBits, error) {
	meta := memory.MetaNone
	if cu.metabitMode == MetabitOperands {
		meta = memory.MetaSet
	}
	w, extra, err := mem.Fetch(addr, meta)
	if err != nil {
		return 0, extra, alarm.Qsal(cu.regs.n, addr,
			fmt.Sprintf("operand fetch failed: %v", err))
	}
	return w, extra, nil
}

// storeOperand writes a word to an already resolved operand address.
func (cu *ControlUnit) storeOperand(mem *memory.Unit, addr word.Address, w word.Word) error {
	meta := memory.MetaNone
	if cu.metabitMode == MetabitOperands {
		meta = memory.MetaSet
	}
	if err := mem.Store(addr, w, meta); err != nil {
		return alarm.Qsal(cu.regs.n, addr,
			fmt.Sprintf("operand store failed: %v", err))
	}
	return nil
}

// storeExchanged merges a value into existing memory content through
// the exchange element and stores the result.
func (cu *ControlUnit) storeExchanged(mem *memory.Unit, addr word.Address, value, existing word.Word) error {
	return cu.storeOperand(mem, addr, exchanger.Exchange(cu.getConfig(), value, existing))
}

// dismissUnlessHeld drops the active sequence after a non held
// instruction. The sequence resumes when something raises its flag
// again.
func (cu *ControlUnit) dismissUnlessHeld() {
	if !cu.regs.nInst.Held && cu.regs.kValid {
		cu.regs.flags.Lower(cu.regs.k)
		cu.regs.runnable = false
	}
}
