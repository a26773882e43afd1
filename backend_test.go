package ufunc

import (
	"sync/atomic"
	"testing"
)

func TestGoroutineBackend(t *testing.T) {
	var b GoroutineBackend
	var calls int32

	for i := 0; i < 10; i++ {
		b.Go(func() {
			atomic.AddInt32(&calls, 1)
		})
	}
	b.Wait()

	if calls != 10 {
		t.Errorf("expected 10 calls, got %d", calls)
	}

	if _, ok := interface{}(&b).(Starter); ok {
		t.Error("GoroutineBackend should not implement Starter")
	}
}

func TestSemaphoreBackend(t *testing.T) {
	b := NewSemaphoreBackend(2)
	var active, maxActive int32

	for i := 0; i < 6; i++ {
		b.Go(func() {
			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			atomic.AddInt32(&active, -1)
		})
	}
	b.Wait()

	if atomic.LoadInt32(&maxActive) > 2 {
		t.Errorf("semaphore allowed %d concurrent workers, want <= 2", maxActive)
	}
}
