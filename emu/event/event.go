package event

/*
 * TX2  - Delta queue of pending device events
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

// Callback runs when an event comes due.
type Callback = func(iarg int)

// event times are relative to the previous list entry, so advancing
// the queue only touches the head.
type event struct {
	time  int // cycles to event, relative to prev
	owner any // who scheduled it, used by Cancel
	cb    Callback
	iarg  int
	prev  *event
	next  *event
}

// List is one machine's pending event queue. Each core owns one.
type List struct {
	head *event
	tail *event
}

func New() *List {
	return &List{}
}

// Add schedules cb to run after time cycles. A zero time runs it
// right away.
func (l *List) Add(owner any, cb Callback, time int, iarg int) {
	if time == 0 {
		cb(iarg)
		return
	}

	ev := &event{owner: owner, cb: cb, time: time, iarg: iarg}

	evptr := l.head
	if evptr == nil {
		l.head = ev
		l.tail = ev
		return
	}

	// Scan for the spot, keeping times relative.
	for evptr != nil {
		if ev.time <= evptr.time {
			evptr.time -= ev.time
			ev.prev = evptr.prev
			ev.next = evptr
			evptr.prev = ev
			if ev.prev != nil {
				ev.prev.next = ev
			} else {
				l.head = ev
			}
			return
		}
		ev.time -= evptr.time
		evptr = evptr.next
	}

	ev.prev = l.tail
	l.tail.next = ev
	l.tail = ev
}

// Cancel removes the first pending event matching owner and iarg.
func (l *List) Cancel(owner any, iarg int) {
	for evptr := l.head; evptr != nil; evptr = evptr.next {
		if evptr.owner != owner || evptr.iarg != iarg {
			continue
		}
		if nxt := evptr.next; nxt != nil {
			// Give our remaining time to the next event.
			nxt.time += evptr.time
			nxt.prev = evptr.prev
		} else {
			l.tail = evptr.prev
		}
		if evptr.prev != nil {
			evptr.prev.next = evptr.next
		} else {
			l.head = evptr.next
		}
		return
	}
}

// Advance moves time forward by t cycles, firing everything that
// comes due.
func (l *List) Advance(t int) {
	evptr := l.head
	if evptr == nil {
		return
	}
	evptr.time -= t
	for evptr != nil && evptr.time <= 0 {
		cb, iarg := evptr.cb, evptr.iarg
		over := evptr.time
		l.head = evptr.next
		if l.head != nil {
			l.head.prev = nil
			// Pass on any overshoot.
			l.head.time += over
		} else {
			l.tail = nil
		}
		cb(iarg)
		evptr = l.head
	}
}

// Empty reports whether anything is pending.
func (l *List) Empty() bool {
	return l.head == nil
}
