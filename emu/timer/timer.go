package timer

/*
 * TX2  - interval timer
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
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/TX2/emu/control"
	"github.com/rcornwell/TX2/emu/master"
)

// Sequence the interval timer raises on each tick.
const Sequence control.SequenceNumber = 0o54

// Tick rate of the interval timer.
const tickInterval = 10 * time.Millisecond

// Timer turns wall clock ticks into master channel packets that raise
// the interval timer sequence.
type Timer struct {
	wg      sync.WaitGroup
	running bool // Ticks are delivered only while running.
	master  chan master.Packet
	enable  chan bool     // Enable or disable ticks.
	done    chan struct{} // Stop timer task.
	ticker  *time.Ticker
}

// Create the interval timer and start its tick routine.
func NewTimer(masterChannel chan master.Packet) *Timer {
	timer := &Timer{
		master:  masterChannel,
		running: false,
		enable:  make(chan bool, 1),
		done:    make(chan struct{}),
	}
	timer.wg.Add(1)
	go timer.run()
	return timer
}

// Start delivering ticks on the master channel.
func (timer *Timer) Start() {
	timer.enable <- true
}

// Stop delivering ticks.
func (timer *Timer) Stop() {
	timer.enable <- false
}

// Shutdown the tick routine.
func (timer *Timer) Shutdown() {
	close(timer.done)
	done := make(chan struct{})
	go func() {
		timer.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for timer to finish.")
		return
	}
}

// Tick routine, posts interval timer events on the master channel.
func (timer *Timer) run() {
	defer timer.wg.Done()
	timer.ticker = time.NewTicker(tickInterval)
	defer timer.ticker.Stop()
	timer.running = false

	for {
		select {
		case <-timer.ticker.C:
			if timer.running {
				timer.master <- master.Packet{Msg: master.TimeClock, Seq: uint8(Sequence)}
			}
		case timer.running = <-timer.enable:
			if timer.running {
				timer.ticker.Reset(tickInterval)
			}
		case <-timer.done:
			return
		}
	}
}
