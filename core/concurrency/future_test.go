package concurrency

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-exec/api"
)

func TestFuture_ResolveOnce(t *testing.T) {
	p, f := NewPromise[int]()

	res, ok := f.Poll()
	assert.False(t, ok)
	assert.ErrorIs(t, res.Err, api.ErrNotReady)
	assert.False(t, f.Ready())

	require.True(t, p.Resolve(42))
	assert.False(t, p.Resolve(43), "second write must be refused")
	assert.False(t, p.Reject(errors.New("late")), "second write must be refused")

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	res, ok = f.Poll()
	require.True(t, ok)
	assert.True(t, res.Ok())
	assert.Equal(t, 42, res.Value)
}

func TestFuture_Reject(t *testing.T) {
	p, f := NewPromise[string]()
	boom := errors.New("boom")
	require.True(t, p.Reject(boom))

	_, err := f.Get()
	assert.ErrorIs(t, err, boom)
}

func TestFuture_RejectNil(t *testing.T) {
	p, f := NewPromise[int]()
	require.True(t, p.Reject(nil))

	_, err := f.Get()
	assert.ErrorIs(t, err, ErrNilFailure)
}

func TestFuture_GetBlocksUntilResolved(t *testing.T) {
	p, f := NewPromise[int]()

	go func() {
		time.Sleep(20 * time.Millisecond)
		p.Resolve(9)
	}()

	v, err := f.Get()
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestFuture_ManyReaders(t *testing.T) {
	p, f := NewPromise[int]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := f.Get()
			assert.NoError(t, err)
			assert.Equal(t, 5, v)
		}()
	}
	p.Resolve(5)
	wg.Wait()
}

func TestFuture_ConcurrentWritersOneWins(t *testing.T) {
	p, f := NewPromise[int]()

	var wg sync.WaitGroup
	wins := make(chan int, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if p.Resolve(v) {
				wins <- v
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	require.Len(t, wins, 1)
	winner := <-wins
	v, _ := f.Get()
	assert.Equal(t, winner, v)
}

func TestFuture_GetContext(t *testing.T) {
	_, f := NewPromise[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.GetContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	p, f := NewPromise[int]()
	p.Resolve(1)
	v, err := f.GetContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestFuture_WaitFor(t *testing.T) {
	p, f := NewPromise[struct{}]()
	assert.False(t, f.WaitFor(10*time.Millisecond))

	p.Resolve(struct{}{})
	assert.True(t, f.WaitFor(0))
	select {
	case <-f.Done():
	default:
		t.Fatal("Done not closed after resolution")
	}
}
