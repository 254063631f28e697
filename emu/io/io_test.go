package io

/*
 * TX2  - device manager test cases
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

	"github.com/rcornwell/TX2/emu/control"
)

type fakeUnit struct {
	name        string
	connects    []uint32
	disconnects int
	polls       int
}

func (u *fakeUnit) Name() string { return u.name }

func (u *fakeUnit) Connect(mode uint32) error {
	u.connects = append(u.connects, mode)
	return nil
}

func (u *fakeUnit) Disconnect() error {
	u.disconnects++
	return nil
}

func (u *fakeUnit) Poll() {
	u.polls++
}

func TestManagerRouting(t *testing.T) {
	mgr := NewManager()
	petr := &fakeUnit{name: "PETR"}
	err := mgr.AddUnit(0o52, petr)
	if err != nil {
		t.Fatalf("add unit failed: %v", err)
	}

	err = mgr.Connect(0o52, 0o104)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if len(petr.connects) != 1 || petr.connects[0] != 0o104 {
		t.Errorf("connect mode not correct got: %v expected: [0o104]", petr.connects)
	}

	err = mgr.Disconnect(0o52)
	if err != nil {
		t.Fatalf("disconnect failed: %v", err)
	}
	if petr.disconnects != 1 {
		t.Errorf("disconnect count not correct got: %d expected: %d", petr.disconnects, 1)
	}

	err = mgr.Connect(0o30, 0)
	if err == nil {
		t.Error("connect to empty sequence should fail")
	}
}

func TestManagerDuplicate(t *testing.T) {
	mgr := NewManager()
	err := mgr.AddUnit(0o52, &fakeUnit{name: "PETR"})
	if err != nil {
		t.Fatalf("add unit failed: %v", err)
	}
	err = mgr.AddUnit(0o52, &fakeUnit{name: "OTHER"})
	if err == nil {
		t.Error("second unit on same sequence should fail")
	}
}

func TestManagerFind(t *testing.T) {
	mgr := NewManager()
	petr := &fakeUnit{name: "PETR"}
	if err := mgr.AddUnit(0o52, petr); err != nil {
		t.Fatalf("add unit failed: %v", err)
	}
	unit, seq, err := mgr.Find("petr")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if unit != petr {
		t.Error("find returned wrong unit")
	}
	if seq != control.SequenceNumber(0o52) {
		t.Errorf("sequence not correct got: %02o expected: %02o", uint8(seq), 0o52)
	}
	_, _, err = mgr.Find("lw")
	if err == nil {
		t.Error("find of unknown unit should fail")
	}
}

func TestManagerPoll(t *testing.T) {
	mgr := NewManager()
	a := &fakeUnit{name: "A"}
	b := &fakeUnit{name: "B"}
	_ = mgr.AddUnit(0o46, a)
	_ = mgr.AddUnit(0o52, b)
	mgr.Poll()
	mgr.Poll()
	if a.polls != 2 || b.polls != 2 {
		t.Errorf("poll count not correct got: %d %d expected: 2 2", a.polls, b.polls)
	}
}
