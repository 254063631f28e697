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

	"github.com/rcornwell/TX2/emu/instruction"
	"github.com/rcornwell/TX2/emu/word"
)

// Memory map, physical word addresses.
const (
	SMemBase word.Address = 0o000000
	SMemTop  word.Address = 0o177777
	TMemBase word.Address = 0o200000
	TMemTop  word.Address = 0o207777
	VMemBase word.Address = 0o377600
	VMemTop  word.Address = 0o377777

	// V memory splits into console toggle registers and the two
	// read only plugboards.
	ToggleBase    word.Address = 0o377600
	ToggleTop     word.Address = 0o377737
	PlugboardBase word.Address = 0o377740
	PlugboardTop  word.Address = 0o377777

	// StandardProgramClearMemory is the plugboard entry point of the
	// wired in memory smear loop.
	StandardProgramClearMemory word.Address = 0o377750
)

// Each cell keeps its metabit above the 36 data bits.
const metaBit uint64 = 1 << 36

var (
	ErrNotMapped = errors.New("address not mapped")
	ErrReadOnly  = errors.New("address read only")
)

// MetaBitChange selects the metabit side effect of an access.
type MetaBitChange int

const (
	// MetaNone leaves the cell's metabit alone.
	MetaNone MetaBitChange = iota
	// MetaSet sets the cell's metabit as part of the access.
	MetaSet
)

// ExtraBits carries the non data bits read along with a word.
type ExtraBits struct {
	Meta bool
}

// Unit is one memory element. It is not safe for concurrent use; the
// driver serializes console and cycle access.
type Unit struct {
	smem [SMemTop - SMemBase + 1]uint64
	tmem [TMemTop - TMemBase + 1]uint64
	vmem [VMemTop - VMemBase + 1]uint64
}

// New builds a memory unit with the plugboard programs wired in.
func New() *Unit {
	unit := &Unit{}
	unit.wirePlugboard()
	return unit
}

// cell maps a physical address to its backing cell. The second result
// reports whether the cell is writable.
func (u *Unit) cell(addr word.Address) (*uint64, bool, error) {
	addr = addr.Physical()
	switch {
	case addr <= SMemTop:
		return &u.smem[addr], true, nil
	case addr >= TMemBase && addr <= TMemTop:
		return &u.tmem[addr-TMemBase], true, nil
	case addr >= VMemBase && addr <= VMemTop:
		return &u.vmem[addr-VMemBase], addr < PlugboardBase, nil
	}
	return nil, false, ErrNotMapped
}

// Fetch reads the word at addr, returning its metabit and applying the
// requested metabit change to the cell.
func (u *Unit) Fetch(addr word.Address, meta MetaBitChange) (word.Word, ExtraBits, error) {
	cell, _, err := u.cell(addr)
	if err != nil {
		return 0, ExtraBits{}, err
	}
	extra := ExtraBits{Meta: *cell&metaBit != 0}
	if meta == MetaSet {
		*cell |= metaBit
	}
	return word.Word(*cell) & word.WordMask, extra, nil
}

// Store writes the word at addr. The cell's metabit is kept unless the
// change asks to set it. Plugboard cells reject stores.
func (u *Unit) Store(addr word.Address, w word.Word, meta MetaBitChange) error {
	cell, writable, err := u.cell(addr)
	if err != nil {
		return err
	}
	if !writable {
		return ErrReadOnly
	}
	*cell = *cell&metaBit | uint64(w&word.WordMask)
	if meta == MetaSet {
		*cell |= metaBit
	}
	return nil
}

// SetMetaBit changes just the metabit of a cell. Works on plugboard
// cells too since the metabit is not wired.
func (u *Unit) SetMetaBit(addr word.Address, on bool) error {
	cell, _, err := u.cell(addr)
	if err != nil {
		return err
	}
	if on {
		*cell |= metaBit
	} else {
		*cell &^= metaBit
	}
	return nil
}

// wirePlugboard loads plugboard B with the standard memory smear: fill
// S and T memory from the top down, then dismiss.
func (u *Unit) wirePlugboard() {
	prog := []struct {
		addr word.Address
		w    word.Word
	}{
		// X1 = top of T memory.
		{StandardProgramClearMemory, instruction.Build(instruction.OpSKX, 0, 1, false, TMemTop, true)},
		// Smear the E register image over cell X1.
		{StandardProgramClearMemory + 1, instruction.Build(instruction.OpDPX, 0, 1, false, 0, true)},
		// Count X1 down and loop while positive.
		{StandardProgramClearMemory + 2, instruction.Build(instruction.OpJPX, 0o37, 1, false, StandardProgramClearMemory + 1, true)},
		// Done, dismiss this sequence.
		{StandardProgramClearMemory + 3, instruction.Build(instruction.OpIOS, 0, 0, false, 0o40000, false)},
	}
	for _, p := range prog {
		u.vmem[p.addr-VMemBase] = uint64(p.w)
	}
}
