package concurrency_test

import (
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/momentics/hioload-exec/core/concurrency"
)

// One producer, one consumer: SPSCRing against a single-shard MPSC ring
// and a buffered channel of the same capacity.

func BenchmarkCompare_SPSCRing(b *testing.B) {
	r := concurrency.NewSPSCRing[int](1024)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				r.TryDequeue()
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !r.TryEnqueue(i) {
		}
	}
	b.StopTimer()
	close(done)
}

func BenchmarkCompare_ShardedRing1(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		b.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				r.TryRead()
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !r.Write(0, i) {
		}
	}
	b.StopTimer()
	close(done)
}

func BenchmarkCompare_Channel(b *testing.B) {
	ch := make(chan int, 1024)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ch:
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch <- i
	}
	b.StopTimer()
	close(done)
}
