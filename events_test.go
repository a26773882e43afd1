package ufunc

import (
	"context"
	"sync"
	"testing"
	"unsafe"
)

func TestDispatcherEvents(t *testing.T) {
	t.Run("OnSteal Registers And Dispatch Completes", func(t *testing.T) {
		const n = 64
		d := NewDispatcher(4)
		defer d.Close()

		var mu sync.Mutex
		var steals []DispatchEvent
		if err := d.OnSteal(func(_ context.Context, e DispatchEvent) error {
			mu.Lock()
			steals = append(steals, e)
			mu.Unlock()
			return nil
		}); err != nil {
			t.Fatalf("OnSteal: %v", err)
		}

		indices := make([]int, n)
		for i := range indices {
			indices[i] = i
		}

		kernel := func(args []unsafe.Pointer, data unsafe.Pointer) {
			// Uniform cost per index; any steals come only from scheduling
			// skew between workers.
			*(*int)(args[0])++
		}

		d.Dispatch(kernel,
			[]unsafe.Pointer{unsafe.Pointer(&indices[0])},
			[]int{n},
			[]int{int(unsafe.Sizeof(indices[0]))},
			nil,
		)

		// Stealing is opportunistic; this only asserts the hook machinery
		// does not error, not that a steal necessarily occurred for this
		// kernel shape.
		mu.Lock()
		defer mu.Unlock()
		_ = steals
	})

	t.Run("OnAudit Fires Exactly Once Per Dispatch", func(t *testing.T) {
		d := NewDispatcher(3)
		defer d.Close()

		var calls int
		var mu sync.Mutex
		if err := d.OnAudit(func(_ context.Context, e DispatchEvent) error {
			mu.Lock()
			calls++
			mu.Unlock()
			if e.Expected != e.Actual {
				t.Errorf("expected audit match, got expected=%d actual=%d", e.Expected, e.Actual)
			}
			return nil
		}); err != nil {
			t.Fatalf("OnAudit: %v", err)
		}

		data := make([]int, 100)
		d.Dispatch(func(args []unsafe.Pointer, data unsafe.Pointer) {
			*(*int)(args[0]) = 1
		},
			[]unsafe.Pointer{unsafe.Pointer(&data[0])},
			[]int{len(data)},
			[]int{int(unsafe.Sizeof(data[0]))},
			nil,
		)

		mu.Lock()
		defer mu.Unlock()
		if calls != 1 {
			t.Errorf("expected exactly 1 audit event, got %d", calls)
		}
	})
}
