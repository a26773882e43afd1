package ufunc

import (
	"sync"
	"testing"
)

func TestWorkQueue(t *testing.T) {
	t.Run("Claim Own Drains In Order", func(t *testing.T) {
		var q WorkQueue
		q.init(0, 5)

		for want := 0; want < 5; want++ {
			item, ok := q.claimOwn()
			if !ok {
				t.Fatalf("claimOwn() returned !ok at item %d", want)
			}
			if item != want {
				t.Errorf("expected item %d, got %d", want, item)
			}
		}

		if _, ok := q.claimOwn(); ok {
			t.Error("claimOwn() on exhausted queue should report !ok")
		}
	})

	t.Run("Claim Steal Takes From The Top", func(t *testing.T) {
		var q WorkQueue
		q.init(0, 3)

		item, ok := q.claimSteal()
		if !ok || item != 2 {
			t.Fatalf("expected steal of 2, got item=%d ok=%v", item, ok)
		}

		item, ok = q.claimSteal()
		if !ok || item != 1 {
			t.Fatalf("expected steal of 1, got item=%d ok=%v", item, ok)
		}

		item, ok = q.claimOwn()
		if !ok || item != 0 {
			t.Fatalf("expected own-claim of 0, got item=%d ok=%v", item, ok)
		}

		if _, ok := q.claimSteal(); ok {
			t.Error("claimSteal() on empty queue should report !ok")
		}
	})

	t.Run("Empty Queue Claims Nothing", func(t *testing.T) {
		var q WorkQueue
		q.init(4, 4)

		if _, ok := q.claimOwn(); ok {
			t.Error("claimOwn() on empty range should report !ok")
		}
		if _, ok := q.claimSteal(); ok {
			t.Error("claimSteal() on empty range should report !ok")
		}
	})

	t.Run("Concurrent Claims Never Double Deliver", func(t *testing.T) {
		const n = 5000
		var q WorkQueue
		q.init(0, n)

		seen := make([]int32, n)
		var mu sync.Mutex
		record := func(item int) {
			mu.Lock()
			seen[item]++
			mu.Unlock()
		}

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					if item, ok := q.claimOwn(); ok {
						record(item)
						continue
					}
					if item, ok := q.claimSteal(); ok {
						record(item)
						continue
					}
					return
				}
			}()
		}
		wg.Wait()

		for i, c := range seen {
			if c != 1 {
				t.Fatalf("index %d delivered %d times, want 1", i, c)
			}
		}
	})

	t.Run("Double Unlock Panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic on double unlock")
			}
		}()
		var q WorkQueue
		q.init(0, 1)
		q.unlockQueue()
	})
}
