package memory

/*
 * TX2  - Core, toggle and plugboard storage
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
	"testing"

	"github.com/rcornwell/TX2/emu/instruction"
	"github.com/rcornwell/TX2/emu/word"
)

// Store then fetch through each mapped region.
func TestStoreFetch(t *testing.T) {
	unit := New()
	for _, addr := range []word.Address{0, 0o012345, SMemTop, TMemBase, 0o203456, TMemTop, ToggleBase, ToggleTop} {
		want := word.Word(0o123456_000000) | word.Word(addr)
		if err := unit.Store(addr, want, MetaNone); err != nil {
			t.Errorf("Store %06o failed: %v", addr, err)
			continue
		}
		got, _, err := unit.Fetch(addr, MetaNone)
		if err != nil {
			t.Errorf("Fetch %06o failed: %v", addr, err)
			continue
		}
		if got != want {
			t.Errorf("Memory %06o not correct got: %012o expected: %012o", addr, got, want)
		}
	}
}

// Memory is word addressed; cells start zero.
func TestFetchZero(t *testing.T) {
	unit := New()
	got, extra, err := unit.Fetch(0o100, MetaNone)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Fresh cell not correct got: %012o expected: %012o", got, word.Word(0))
	}
	if extra.Meta {
		t.Error("Fresh cell should not have metabit set")
	}
}

// Addresses between T memory and V memory are unmapped.
func TestNotMapped(t *testing.T) {
	unit := New()
	for _, addr := range []word.Address{0o210000, 0o300000, 0o377577} {
		if _, _, err := unit.Fetch(addr, MetaNone); !errors.Is(err, ErrNotMapped) {
			t.Errorf("Fetch %06o error not correct got: %v expected: %v", addr, err, ErrNotMapped)
		}
		if err := unit.Store(addr, 1, MetaNone); !errors.Is(err, ErrNotMapped) {
			t.Errorf("Store %06o error not correct got: %v expected: %v", addr, err, ErrNotMapped)
		}
	}
}

// Only the 17 physical bits select a cell.
func TestMarkBitIgnored(t *testing.T) {
	unit := New()
	if err := unit.Store(0o000200, 0o42, MetaNone); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	got, _, err := unit.Fetch(word.Address(0o400200), MetaNone)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got != 0o42 {
		t.Errorf("Marked fetch not correct got: %012o expected: %012o", got, word.Word(0o42))
	}
}

// Plugboard cells reject stores but read back the wired program.
func TestPlugboardReadOnly(t *testing.T) {
	unit := New()
	if err := unit.Store(PlugboardBase, 1, MetaNone); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Plugboard store error not correct got: %v expected: %v", err, ErrReadOnly)
	}
	got, _, err := unit.Fetch(StandardProgramClearMemory, MetaNone)
	if err != nil {
		t.Fatalf("Plugboard fetch failed: %v", err)
	}
	inst := instruction.Decode(got)
	if inst.Opcode != instruction.OpSKX {
		t.Errorf("Plugboard program not correct got: %s expected: %s", inst.Opcode, instruction.OpSKX)
	}
	if !inst.Held {
		t.Error("Plugboard program first word should be held")
	}
}

// The metabit rides along with fetches and stores.
func TestMetaBit(t *testing.T) {
	unit := New()
	addr := word.Address(0o1000)
	if _, extra, _ := unit.Fetch(addr, MetaSet); extra.Meta {
		t.Error("Metabit should read clear before set")
	}
	if _, extra, _ := unit.Fetch(addr, MetaNone); !extra.Meta {
		t.Error("Metabit should be set after MetaSet fetch")
	}
	// Plain store keeps the metabit.
	if err := unit.Store(addr, 0o7, MetaNone); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, extra, _ := unit.Fetch(addr, MetaNone); !extra.Meta {
		t.Error("Store should not clear the metabit")
	}
	if err := unit.SetMetaBit(addr, false); err != nil {
		t.Fatalf("SetMetaBit failed: %v", err)
	}
	got, extra, _ := unit.Fetch(addr, MetaNone)
	if extra.Meta {
		t.Error("SetMetaBit false did not clear the metabit")
	}
	if got != 0o7 {
		t.Errorf("Data bits not correct got: %012o expected: %012o", got, word.Word(0o7))
	}
}
