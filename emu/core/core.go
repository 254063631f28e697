package core

/*
 * TX2  - core emulator loop
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
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/TX2/emu/alarm"
	"github.com/rcornwell/TX2/emu/clock"
	"github.com/rcornwell/TX2/emu/control"
	"github.com/rcornwell/TX2/emu/event"
	"github.com/rcornwell/TX2/emu/io"
	"github.com/rcornwell/TX2/emu/master"
	"github.com/rcornwell/TX2/emu/memory"
	"github.com/rcornwell/TX2/emu/word"
	"github.com/rcornwell/TX2/util/debug"
)

// Rough time of one memory cycle on the hardware.
const cycleTime = 6400 * time.Nanosecond

// Debug option bits for the CPU module.
const (
	dbgFetch = 1 << iota
	dbgExecute
)

func init() {
	debug.RegisterOptions("CPU", map[string]int{
		"FETCH":   dbgFetch,
		"EXECUTE": dbgExecute,
	})
}

// Core owns the machine and runs the cycle loop. Console commands and
// device events arrive as packets on the master channel.
type Core struct {
	wg       sync.WaitGroup
	mu       sync.Mutex    // Guards machine state against console access.
	done     chan struct{} // Signal to shutdown simulator.
	running  bool
	stepping bool // Stop again after stepsLeft instructions.
	steps    int
	Master   chan master.Packet

	cu      *control.ControlUnit
	mem     *memory.Unit
	devices *io.Manager
	events  *event.List
	clk     *clock.BasicClock
	sleeper *clock.MinimalSleeper

	// Simulated nanoseconds per host nanosecond. Zero runs flat out.
	multiplier float64
}

// Build the machine around a master channel.
func New(masterChannel chan master.Packet) *Core {
	core := &Core{
		Master:     masterChannel,
		done:       make(chan struct{}),
		cu:         control.New(),
		mem:        memory.New(),
		devices:    io.NewManager(),
		events:     event.New(),
		clk:        clock.NewBasicClock(),
		sleeper:    clock.NewMinimalSleeper(2 * time.Millisecond),
		multiplier: 1.0,
	}
	core.cu.SetDeviceHandler(core.devices)
	return core
}

// ControlUnit exposes the processor for the console and devices.
func (core *Core) ControlUnit() *control.ControlUnit {
	return core.cu
}

// Memory exposes storage for the console and devices.
func (core *Core) Memory() *memory.Unit {
	return core.mem
}

// Devices exposes the unit manager so main can register peripherals.
func (core *Core) Devices() *io.Manager {
	return core.devices
}

// Events exposes the delta queue to devices.
func (core *Core) Events() *event.List {
	return core.events
}

// SetMultiplier slows the machine down toward real hardware speed.
// Zero runs as fast as the host allows.
func (core *Core) SetMultiplier(m float64) {
	core.mu.Lock()
	defer core.mu.Unlock()
	core.multiplier = m
}

// Run the cycle loop until Stop. Called on its own goroutine.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	for {
		if core.running {
			core.cycle()
		}
		select {
		case <-core.done:
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		default:
			if !core.running {
				// Nothing to do until the next packet.
				select {
				case <-core.done:
					return
				case packet := <-core.Master:
					core.processPacket(packet)
				}
			}
		}
	}
}

// Stop a running simulator.
func (core *Core) Stop() {
	slog.Info("Shutting down simulator")
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for simulator to finish.")
		return
	}
}

// One machine cycle: fetch and execute an instruction, let simulated
// time pass, give the devices a turn. Alarms halt the run.
func (core *Core) cycle() {
	core.mu.Lock()
	defer core.mu.Unlock()

	fetched, err := core.cu.FetchInstruction(core.mem)
	if err != nil {
		core.haltOnAlarm(err)
		return
	}
	if fetched {
		debug.Debugf("CPU", dbgFetch, "fetch  %06o %012o", uint32(core.cu.PC()), uint64(core.cu.AuditWord()))
		if err := core.cu.ExecuteInstruction(core.mem); err != nil {
			core.haltOnAlarm(err)
			return
		}
		debug.Debugf("CPU", dbgExecute, "state %s", core.cu.State())
	}
	clock.TimePasses(core.clk, core.sleeper, cycleTime, core.multiplier)
	core.events.Advance(1)
	core.devices.Poll()

	if core.stepping && fetched {
		core.steps--
		if core.steps <= 0 {
			core.running = false
			core.stepping = false
			slog.Info("Step done", "state", core.cu.State())
		}
	}
}

func (core *Core) haltOnAlarm(err error) {
	core.running = false
	core.stepping = false
	var alrm *alarm.Alarm
	if errors.As(err, &alrm) {
		slog.Error("Alarm raised, machine stopped", "alarm", alrm.Kind.String(), "detail", alrm.Error())
	} else {
		slog.Error("Machine stopped", "err", err)
	}
}

// Process a packet sent to the simulator.
func (core *Core) processPacket(packet master.Packet) {
	core.mu.Lock()
	defer core.mu.Unlock()
	switch packet.Msg {
	case master.Start:
		core.running = true
	case master.Stop:
		core.running = false
		core.stepping = false
	case master.Step:
		core.steps = packet.Count
		if core.steps < 1 {
			core.steps = 1
		}
		core.stepping = true
		core.running = true
	case master.Codabo:
		core.cu.Codabo(control.ResetMode(packet.Mode))
		core.running = true
	case master.Reset:
		core.cu.Reset(control.ResetMode(packet.Mode))
	case master.Startover:
		core.cu.Startover()
	case master.TimeClock, master.DeviceRaise:
		core.cu.RaiseFlag(control.SequenceNumber(packet.Seq))
	}
}

// Start the machine.
func (core *Core) SendStart() {
	core.Master <- master.Packet{Msg: master.Start}
}

// Halt the machine, state stays intact.
func (core *Core) SendStop() {
	core.Master <- master.Packet{Msg: master.Stop}
}

// Run count instructions and halt.
func (core *Core) SendStep(count int) {
	core.Master <- master.Packet{Msg: master.Step, Count: count}
}

// Press a CODABO button.
func (core *Core) SendCodabo(mode control.ResetMode) {
	core.Master <- master.Packet{Msg: master.Codabo, Mode: int(mode)}
}

// Press a RESET button.
func (core *Core) SendReset(mode control.ResetMode) {
	core.Master <- master.Packet{Msg: master.Reset, Mode: int(mode)}
}

// Press STARTOVER.
func (core *Core) SendStartover() {
	core.Master <- master.Packet{Msg: master.Startover}
}

// Examine reads memory for the console.
func (core *Core) Examine(addr word.Address) (word.Word, error) {
	core.mu.Lock()
	defer core.mu.Unlock()
	v, _, err := core.mem.Fetch(addr, memory.MetaNone)
	return v, err
}

// Deposit writes memory for the console.
func (core *Core) Deposit(addr word.Address, v word.Word) error {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.mem.Store(addr, v, memory.MetaNone)
}

// State formats the register file for the console.
func (core *Core) State() string {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.cu.State()
}

// Running reports whether the cycle loop is executing instructions.
func (core *Core) Running() bool {
	core.mu.Lock()
	defer core.mu.Unlock()
	return core.running
}
