package master

/*
 * TX2  - Messages between console, devices and the core loop
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

// Message selects what a packet asks the core to do.
type Message int

const (
	// Start runs the machine.
	Start Message = iota + 1
	// Stop halts the cycle loop, state stays intact.
	Stop
	// Step runs Count instructions and halts again.
	Step
	// Codabo presses a CODABO button, Mode selects the start point.
	Codabo
	// Reset presses a RESET button.
	Reset
	// Startover raises sequence 0.
	Startover
	// TimeClock is a tick from the interval timer.
	TimeClock
	// DeviceRaise asks the core to raise flag Seq for a device.
	DeviceRaise
)

// Packet is one message on the master channel.
type Packet struct {
	Msg   Message
	Seq   uint8 // sequence number for DeviceRaise
	Mode  int   // reset mode for Codabo and Reset
	Count int   // instruction count for Step
}
