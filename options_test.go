package ufunc

import (
	"testing"

	"github.com/zoobzio/clockz"
)

func TestOptions(t *testing.T) {
	t.Run("WithClock Overrides Default", func(t *testing.T) {
		clock := clockz.NewFakeClock()
		d := NewDispatcher(1, WithClock(clock))
		if d.now() != clock.Now() {
			t.Error("expected dispatcher clock to be the injected fake clock")
		}
	})

	t.Run("WithBackend Overrides Default", func(t *testing.T) {
		backend := &GoroutineBackend{}
		d := NewDispatcher(1, WithBackend(backend))
		if d.backend != backend {
			t.Error("expected dispatcher backend to be the injected backend")
		}
	})

	t.Run("DisableAudit Sets Flag", func(t *testing.T) {
		d := NewDispatcher(1, DisableAudit())
		if !d.auditDisabled {
			t.Error("expected auditDisabled to be true")
		}
	})

	t.Run("NewDispatcher Panics On Nonpositive ThreadCount", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic for threadCount < 1")
			}
		}()
		NewDispatcher(0)
	})
}
