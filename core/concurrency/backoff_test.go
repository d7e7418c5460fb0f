package concurrency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_Progression(t *testing.T) {
	var b Backoff
	for i := 0; i < backoffSpins; i++ {
		b.Wait()
	}
	assert.Equal(t, backoffSpins, b.spins)
	assert.Zero(t, b.sleep, "spinning phase never sleeps")

	b.Wait()
	assert.Equal(t, 2*backoffMinSleep, b.sleep)

	for i := 0; i < 20; i++ {
		b.Wait()
	}
	assert.Equal(t, backoffMaxSleep, b.sleep)

	b.Reset()
	assert.Zero(t, b.spins)
	assert.Zero(t, b.sleep)
}

func TestBackoff_SleepIsBounded(t *testing.T) {
	b := Backoff{spins: backoffSpins, sleep: backoffMaxSleep}
	start := time.Now()
	b.Wait()
	assert.Less(t, time.Since(start), time.Second)
}
