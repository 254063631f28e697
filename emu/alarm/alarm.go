package alarm

/*
 * TX2  - Alarm conditions raised by the control unit
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
	"errors"
	"fmt"

	"github.com/rcornwell/TX2/emu/word"
)

// Kind names the alarm circuit that fired. The names follow the original
// hardware mnemonics.
type Kind int

const (
	// PSAL fires on an unmapped or otherwise bad instruction fetch
	// address in the P register.
	PSAL Kind = iota
	// QSAL fires on a bad operand or deferred address.
	QSAL
	// OCSAL fires on an opcode the machine does not define.
	OCSAL
	// ROUNDTUITAL fires on a defined opcode the emulator does not
	// implement yet.
	ROUNDTUITAL
)

var kindNames = map[Kind]string{
	PSAL:        "PSAL",
	QSAL:        "QSAL",
	OCSAL:       "OCSAL",
	ROUNDTUITAL: "ROUNDTUITAL",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("alarm(%d)", int(k))
}

// Alarm is the error type for all machine check conditions. Execution
// stops when one is raised but machine state stays intact so the
// operator can examine it.
type Alarm struct {
	Kind    Kind
	Address word.Address // offending address for PSAL and QSAL
	Inst    word.Word    // instruction word for QSAL, OCSAL, ROUNDTUITAL
	Detail  string
}

func (a *Alarm) Error() string {
	switch a.Kind {
	case PSAL:
		return fmt.Sprintf("PSAL: instruction fetch from %06o: %s", a.Address, a.Detail)
	case QSAL:
		return fmt.Sprintf("QSAL: %012o operand address %06o: %s", a.Inst, a.Address, a.Detail)
	case OCSAL:
		return fmt.Sprintf("OCSAL: %012o: %s", a.Inst, a.Detail)
	case ROUNDTUITAL:
		return fmt.Sprintf("ROUNDTUITAL: %012o: %s", a.Inst, a.Detail)
	}
	return a.Detail
}

// Psal reports a bad instruction fetch address.
func Psal(addr word.Address, detail string) error {
	return &Alarm{Kind: PSAL, Address: addr, Detail: detail}
}

// Qsal reports a bad operand or deferred address.
func Qsal(inst word.Word, addr word.Address, detail string) error {
	return &Alarm{Kind: QSAL, Inst: inst, Address: addr, Detail: detail}
}

// Ocsal reports an undefined opcode.
func Ocsal(inst word.Word, detail string) error {
	return &Alarm{Kind: OCSAL, Inst: inst, Detail: detail}
}

// RoundTuit reports a defined but unimplemented operation.
func RoundTuit(inst word.Word, detail string) error {
	return &Alarm{Kind: ROUNDTUITAL, Inst: inst, Detail: detail}
}

// Is reports whether err is an alarm of the given kind.
func Is(err error, kind Kind) bool {
	var a *Alarm
	if errors.As(err, &a) {
		return a.Kind == kind
	}
	return false
}
