package core

/*
 * TX2  - core loop test cases
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
	"testing"
	"time"

	"github.com/rcornwell/TX2/emu/control"
	"github.com/rcornwell/TX2/emu/instruction"
	"github.com/rcornwell/TX2/emu/master"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
)

// Wait for the machine to go idle, with a deadline.
func waitStopped(t *testing.T, core *Core) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for core.Running() {
		if time.Now().After(deadline) {
			t.Fatal("machine did not stop")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunSmallProgram(t *testing.T) {
	masterChannel := make(chan master.Packet)
	core := New(masterChannel)
	core.SetMultiplier(0)

	// Load index register 1 and drop the flag, leaving Limbo.
	seq := control.SequenceNumber(0o40)
	prog := []word.Word{
		instruction.Build(instruction.OpSKX, 0, 1, false, 5, true),
		instruction.Build(instruction.OpIOS, 0, uint8(seq), false, 0o40000, false),
	}
	for i, w := range prog {
		if err := core.Deposit(word.Address(0o100+i), w); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
	}
	core.ControlUnit().SetSequenceAddress(seq, 0o100)
	core.ControlUnit().RaiseFlag(seq)

	go core.Start()
	core.SendStep(2)
	waitStopped(t, core)

	x := core.ControlUnit().IndexRegister(1)
	if x != 5 {
		t.Errorf("index register not correct got: %d expected: %d", x, 5)
	}
	if core.ControlUnit().FlagBits() != 0 {
		t.Errorf("flags not correct got: %012o expected: %012o", core.ControlUnit().FlagBits(), uint64(0))
	}
	core.Stop()
}

func TestStopPacket(t *testing.T) {
	masterChannel := make(chan master.Packet)
	core := New(masterChannel)
	core.SetMultiplier(0)

	go core.Start()
	// No flags raised: the machine idles in Limbo while running.
	core.SendStart()
	core.SendStop()
	waitStopped(t, core)
	core.Stop()
}

func TestTimeClockRaisesFlag(t *testing.T) {
	masterChannel := make(chan master.Packet)
	core := New(masterChannel)
	core.SetMultiplier(0)

	go core.Start()
	masterChannel <- master.Packet{Msg: master.TimeClock, Seq: 0o54}
	core.SendStop()
	waitStopped(t, core)
	if core.ControlUnit().FlagBits()&(1<<0o54) == 0 {
		t.Error("interval timer flag should be raised")
	}
	core.Stop()
}

func TestExamineDeposit(t *testing.T) {
	core := New(make(chan master.Packet))
	if err := core.Deposit(0o200, 0o1234); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	v, err := core.Examine(0o200)
	if err != nil {
		t.Fatalf("examine failed: %v", err)
	}
	if v != 0o1234 {
		t.Errorf("word not correct got: %012o expected: %012o", uint64(v), uint64(0o1234))
	}
	if err := core.Deposit(0o377740, 0); err != memory.ErrReadOnly {
		t.Errorf("error not correct got: %v expected: %v", err, memory.ErrReadOnly)
	}
}
