// File: core/concurrency/backoff.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Caller-side backoff for polling non-blocking rings.

package concurrency

import (
	"runtime"
	"time"
)

const (
	backoffSpins    = 64
	backoffMinSleep = time.Microsecond
	backoffMaxSleep = time.Millisecond
)

// Backoff yields first and then sleeps with exponential growth capped at
// one millisecond. The zero value is ready to use. Not safe for concurrent use.
type Backoff struct {
	spins int
	sleep time.Duration
}

// Wait pauses the caller for the next backoff step.
func (b *Backoff) Wait() {
	if b.spins < backoffSpins {
		b.spins++
		runtime.Gosched()
		return
	}
	if b.sleep == 0 {
		b.sleep = backoffMinSleep
	}
	time.Sleep(b.sleep)
	b.sleep *= 2
	if b.sleep > backoffMaxSleep {
		b.sleep = backoffMaxSleep
	}
}

// Reset returns to the spinning phase after progress was made.
func (b *Backoff) Reset() {
	b.spins = 0
	b.sleep = 0
}
