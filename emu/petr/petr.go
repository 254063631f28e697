package petr

/*
 * TX2  - photoelectric paper tape reader
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
	"log/slog"
	"sync"

	"github.com/rcornwell/TX2/emu/control"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/util/debug"
	"github.com/rcornwell/TX2/util/tape"
)

// Sequence the reader reports to. It shares a number with the trap
// handler, as the hardware sequence assignments had it.
const Sequence control.SequenceNumber = 0o52

// Debug option bit for tape transfers.
const dbgIO = 1

func init() {
	debug.RegisterOptions("PETR", map[string]int{"IO": dbgIO})
}

// Petr is the paper tape reader. While the motor runs each poll loads
// one tape word into memory. When the tape runs out the reader plants
// the entry address in its sequence's index register and raises the
// flag so the loaded program starts.
type Petr struct {
	mu      sync.Mutex
	cu      *control.ControlUnit
	mem     *memory.Unit
	image   *tape.Image
	rdr     *tape.Reader
	file    string
	running bool
}

func New(cu *control.ControlUnit, mem *memory.Unit) *Petr {
	return &Petr{cu: cu, mem: mem}
}

func (p *Petr) Name() string {
	return "PETR"
}

// Attach mounts a tape image file on the reader.
func (p *Petr) Attach(fileName string) error {
	image, err := tape.Attach(fileName)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.image = image
	p.rdr = tape.NewReader(image)
	p.file = fileName
	p.running = false
	slog.Info("petr: tape attached", "file", fileName, "words", image.Words())
	return nil
}

// Load mounts an already decoded image. Used by tests and the config file.
func (p *Petr) Load(image *tape.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.image = image
	p.rdr = tape.NewReader(image)
	p.file = ""
	p.running = false
}

// Detach removes the mounted tape.
func (p *Petr) Detach() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.image == nil {
		return errors.New("petr: no tape attached")
	}
	p.image = nil
	p.rdr = nil
	p.file = ""
	p.running = false
	return nil
}

// Rewind puts the mounted tape back at its start.
func (p *Petr) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rdr == nil {
		return errors.New("petr: no tape attached")
	}
	p.rdr.Rewind()
	return nil
}

// Attached reports the mounted file name, empty if none.
func (p *Petr) Attached() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.file
}

// Connect starts the reader motor. The mode field is unused; the
// hardware mode bits selected splayed or assembled reading.
func (p *Petr) Connect(mode uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.image == nil {
		return errors.New("petr: no tape attached")
	}
	p.running = true
	return nil
}

// Disconnect stops the reader motor.
func (p *Petr) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	return nil
}

// Poll advances the reader one machine cycle: one tape word into
// memory, or the end of tape handoff.
func (p *Petr) Poll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || p.rdr == nil {
		return
	}
	addr, v, err := p.rdr.Next()
	if err != nil {
		p.running = false
		entry := p.image.Entry
		if entry != 0 {
			p.cu.SetSequenceAddress(Sequence, entry)
			p.cu.RaiseFlag(Sequence)
			slog.Info("petr: tape read, starting program", "entry", fmt.Sprintf("%06o", uint32(entry)))
		} else {
			slog.Info("petr: tape read, no entry address")
		}
		return
	}
	debug.DebugSeqf(uint8(Sequence), "PETR", dbgIO, "read %06o %012o", uint32(addr), uint64(v))
	if err := p.mem.Store(addr, v, memory.MetaNone); err != nil {
		p.running = false
		slog.Warn("petr: store failed", "addr", fmt.Sprintf("%06o", uint32(addr)), "err", err)
	}
}
