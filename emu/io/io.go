package io

/*
 * TX2  - sequence numbered peripheral units
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
	"strings"

	"github.com/rcornwell/TX2/emu/control"
)

// Unit is one peripheral, owned by the sequence it reports to.
type Unit interface {
	Name() string              // Unit name for the console.
	Connect(mode uint32) error // IOS connect with its mode field.
	Disconnect() error
	Poll() // Advance pending work one machine cycle.
}

// Manager maps sequence numbers to units and routes IOS connect and
// disconnect commands.
type Manager struct {
	units [control.NumSequences]Unit
}

func NewManager() *Manager {
	return &Manager{}
}

// AddUnit registers a unit under its sequence number.
func (m *Manager) AddUnit(seq control.SequenceNumber, unit Unit) error {
	if int(seq) >= len(m.units) {
		return fmt.Errorf("sequence %02o out of range", uint8(seq))
	}
	if m.units[seq] != nil {
		return fmt.Errorf("sequence %02o already has unit %s", uint8(seq), m.units[seq].Name())
	}
	m.units[seq] = unit
	return nil
}

// Unit returns the unit on a sequence, nil if none.
func (m *Manager) Unit(seq control.SequenceNumber) Unit {
	if int(seq) >= len(m.units) {
		return nil
	}
	return m.units[seq]
}

// Find looks a unit up by name for console commands.
func (m *Manager) Find(name string) (Unit, control.SequenceNumber, error) {
	for i, unit := range m.units {
		if unit != nil && strings.EqualFold(unit.Name(), name) {
			return unit, control.SequenceNumber(i), nil
		}
	}
	return nil, 0, fmt.Errorf("no unit named %s", name)
}

// Connect routes an IOS connect to the unit on the sequence.
func (m *Manager) Connect(seq control.SequenceNumber, mode uint32) error {
	unit := m.Unit(seq)
	if unit == nil {
		return fmt.Errorf("no unit on sequence %02o", uint8(seq))
	}
	return unit.Connect(mode)
}

// Disconnect routes an IOS disconnect to the unit on the sequence.
func (m *Manager) Disconnect(seq control.SequenceNumber) error {
	unit := m.Unit(seq)
	if unit == nil {
		return fmt.Errorf("no unit on sequence %02o", uint8(seq))
	}
	return unit.Disconnect()
}

// Poll gives every unit a machine cycle of work.
func (m *Manager) Poll() {
	for _, unit := range m.units {
		if unit != nil {
			unit.Poll()
		}
	}
}
