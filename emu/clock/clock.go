package clock

/*
 * TX2  - Simulated time and sleep debt rate limiting
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
	"time"
)

// Clock tracks simulated machine time. It may run faster or slower
// than wall time, correctness never depends on it.
type Clock interface {
	// Now returns the elapsed simulated time.
	Now() time.Duration
	// Consume advances the simulated time by one instruction or
	// device interval.
	Consume(interval time.Duration)
}

// BasicClock is a simple accumulating simulated clock.
type BasicClock struct {
	elapsed time.Duration
}

func NewBasicClock() *BasicClock {
	return &BasicClock{}
}

func (c *BasicClock) Now() time.Duration {
	return c.elapsed
}

func (c *BasicClock) Consume(interval time.Duration) {
	c.elapsed += interval
}

// MinimalSleeper sleeps the requested amount of time on average while
// keeping the syscall count low: debt accumulates and only a debt
// above the minimum triggers a real sleep.
type MinimalSleeper struct {
	minSleep time.Duration
	owed     time.Duration
	total    time.Duration

	// sleep is swappable for tests.
	sleep func(time.Duration) time.Duration
}

func NewMinimalSleeper(minSleep time.Duration) *MinimalSleeper {
	return &MinimalSleeper{
		minSleep: minSleep,
		sleep: func(d time.Duration) time.Duration {
			start := time.Now()
			time.Sleep(d)
			return time.Since(start)
		},
	}
}

// Sleep adds to the sleep debt and really sleeps once it exceeds the
// minimum. Oversleeping leaves a negative debt that later calls pay
// down.
func (s *MinimalSleeper) Sleep(d time.Duration) {
	s.owed += d
	if s.owed > s.minSleep {
		slept := s.sleep(s.owed)
		s.total += slept
		s.owed -= slept
	}
}

// TotalSleep reports the cumulative real sleep time.
func (s *MinimalSleeper) TotalSleep() time.Duration {
	return s.total
}

// TimePasses couples the clock and the sleeper for the driver loop:
// the simulated clock advances by d while the host pays d scaled by
// the slowdown multiplier. A zero multiplier runs flat out.
func TimePasses(clk Clock, sleeper *MinimalSleeper, d time.Duration, multiplier float64) {
	clk.Consume(d)
	if sleeper != nil && multiplier > 0 {
		sleeper.Sleep(time.Duration(float64(d) * multiplier))
	}
}
