package parser

/*
 * TX2  - console command tests
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
	"os"
	"path/filepath"
	"slices"
	"testing"

	core "github.com/rcornwell/TX2/emu/core"
	"github.com/rcornwell/TX2/emu/master"
	"github.com/rcornwell/TX2/emu/petr"
	"github.com/rcornwell/TX2/emu/word"
	"github.com/rcornwell/TX2/util/tape"
)

func testCore(t *testing.T) *core.Core {
	t.Helper()
	c := core.New(make(chan master.Packet, 16))
	unit := petr.New(c.ControlUnit(), c.Memory())
	if err := c.Devices().AddUnit(petr.Sequence, unit); err != nil {
		t.Fatalf("AddUnit failed: %v", err)
	}
	return c
}

func TestParseUnknown(t *testing.T) {
	c := testCore(t)
	if _, err := ProcessCommand("bogus", c); err == nil {
		t.Error("unknown command should fail")
	}
}

func TestParseAmbiguous(t *testing.T) {
	c := testCore(t)
	// "st" matches both startover and stop below minimum length.
	if _, err := ProcessCommand("st", c); err == nil {
		t.Error("ambiguous command should fail")
	}
}

func TestParseQuit(t *testing.T) {
	c := testCore(t)
	done, err := ProcessCommand("q", c)
	if err != nil {
		t.Errorf("quit failed: %v", err)
	}
	if !done {
		t.Error("quit should end the console")
	}
}

func TestParseEmpty(t *testing.T) {
	c := testCore(t)
	done, err := ProcessCommand("   ", c)
	if err != nil {
		t.Errorf("blank line failed: %v", err)
	}
	if done {
		t.Error("blank line should not end the console")
	}
}

func TestDepositExamine(t *testing.T) {
	c := testCore(t)
	if _, err := ProcessCommand("deposit 100 001002003004", c); err != nil {
		t.Errorf("deposit failed: %v", err)
	}
	v, err := c.Examine(word.Address(0o100))
	if err != nil {
		t.Errorf("examine failed: %v", err)
	}
	if v != word.Word(0o001002003004) {
		t.Errorf("Memory not correct got: %012o expected: %012o", uint64(v), uint64(0o001002003004))
	}
	if _, err := ProcessCommand("examine 100", c); err != nil {
		t.Errorf("examine command failed: %v", err)
	}
}

func TestDepositBadAddress(t *testing.T) {
	c := testCore(t)
	if _, err := ProcessCommand("deposit 999 1", c); err == nil {
		t.Error("deposit with bad address should fail")
	}
	if _, err := ProcessCommand("deposit 100", c); err == nil {
		t.Error("deposit without data should fail")
	}
}

func TestStepCommand(t *testing.T) {
	c := testCore(t)
	if _, err := ProcessCommand("step 5", c); err != nil {
		t.Errorf("step failed: %v", err)
	}
	if _, err := ProcessCommand("step zero", c); err == nil {
		t.Error("step with bad count should fail")
	}
}

func TestCodaboArguments(t *testing.T) {
	c := testCore(t)
	for _, cmd := range []string{"codabo", "codabo tsp", "codabo 0", "codabo 7"} {
		if _, err := ProcessCommand(cmd, c); err != nil {
			t.Errorf("%q failed: %v", cmd, err)
		}
	}
	if _, err := ProcessCommand("codabo 8", c); err == nil {
		t.Error("codabo 8 should fail")
	}
}

func TestAttachRewindDetach(t *testing.T) {
	c := testCore(t)
	fileName := filepath.Join(t.TempDir(), "boot.tape")
	file, err := os.Create(fileName)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	image := &tape.Image{
		Blocks: []tape.Block{{Origin: 0o100, Words: []word.Word{5}}},
	}
	if err = tape.Encode(file, image); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	file.Close()

	if _, err := ProcessCommand("attach petr "+fileName, c); err != nil {
		t.Errorf("attach failed: %v", err)
	}
	if _, err := ProcessCommand("rewind petr", c); err != nil {
		t.Errorf("rewind failed: %v", err)
	}
	if _, err := ProcessCommand("detach petr", c); err != nil {
		t.Errorf("detach failed: %v", err)
	}
	if _, err := ProcessCommand("attach petr", c); err == nil {
		t.Error("attach without file should fail")
	}
	if _, err := ProcessCommand("attach tape x", c); err == nil {
		t.Error("attach to unknown unit should fail")
	}
}

func TestSetUnsetDebug(t *testing.T) {
	c := testCore(t)
	if _, err := ProcessCommand("set cpu fetch", c); err != nil {
		t.Errorf("set failed: %v", err)
	}
	if _, err := ProcessCommand("unset cpu fetch", c); err != nil {
		t.Errorf("unset failed: %v", err)
	}
	if _, err := ProcessCommand("set cpu bogus", c); err == nil {
		t.Error("set with bad option should fail")
	}
	if _, err := ProcessCommand("set nomod fetch", c); err == nil {
		t.Error("set with bad module should fail")
	}
}

func TestCompleteCommand(t *testing.T) {
	c := testCore(t)
	matches := CompleteCmd("sta", c)
	expect := []string{"start ", "startover "}
	if !slices.Equal(matches, expect) {
		t.Errorf("Completion not correct got: %v expected: %v", matches, expect)
	}
}

func TestCompleteUnit(t *testing.T) {
	c := testCore(t)
	matches := CompleteCmd("attach p", c)
	expect := []string{"attach petr "}
	if !slices.Equal(matches, expect) {
		t.Errorf("Completion not correct got: %v expected: %v", matches, expect)
	}
}

func TestCompleteShow(t *testing.T) {
	c := testCore(t)
	matches := CompleteCmd("show ", c)
	expect := []string{"show cpu ", "show flags ", "show memory ", "show units "}
	if !slices.Equal(matches, expect) {
		t.Errorf("Completion not correct got: %v expected: %v", matches, expect)
	}
}
