package control

/*
 * TX2  - IOS opcode, the in-out select instruction
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
)

// IOS command encodings, from the operand address field.
const (
	iosDisconnect  = 0o20000
	iosConnect     = 0o30000 // low bits carry the device mode
	iosConnectMask = 0o170000
	iosModeMask    = 0o07777
	iosLowerFlag   = 0o40000
	iosRaiseFlag   = 0o50000
)

// opIos selects in-out unit j. Lowering its own flag does not stop
// the active sequence: it keeps running until some other flag comes
// up, which is how a device sequence waits for its hardware. Deferred
// addressing does not apply, the operand field is the command.
func (cu *ControlUnit) opIos() error {
	inst := cu.regs.nInst
	if inst.Operand.Deferred {
		return alarm.RoundTuit(cu.regs.n, "deferred IOS is not implemented yet")
	}
	// Dismissal happens before the command so IOS can re-raise its
	// own flag.
	cu.dismissUnlessHeld()

	seq := SequenceNumber(inst.Index)
	cmd := uint32(inst.Operand.Address)
	switch {
	case cmd == iosLowerFlag:
		cu.regs.flags.Lower(seq)
	case cmd == iosRaiseFlag:
		cu.regs.flags.Raise(seq)
	case cmd == iosDisconnect:
		if cu.devices != nil {
			if err := cu.devices.Disconnect(seq); err != nil {
				return alarm.RoundTuit(cu.regs.n,
					fmt.Sprintf("disconnect unit %02o: %v", seq, err))
			}
		}
	case cmd&iosConnectMask == iosConnect:
		if cu.devices != nil {
			if err := cu.devices.Connect(seq, cmd&iosModeMask); err != nil {
				return alarm.RoundTuit(cu.regs.n,
					fmt.Sprintf("connect unit %02o: %v", seq, err))
			}
		}
	default:
		return alarm.RoundTuit(cu.regs.n,
			fmt.Sprintf("IOS command %06o is not implemented yet", cmd))
	}
	return nil
}
