package ufunc

import "github.com/zoobzio/clockz"

// Option configures a Dispatcher at construction time. ThreadCount itself
// is a required constructor argument, not an Option, because it is fixed
// for the Dispatcher's lifetime (spec.md §9's "metaclass-style
// specialization by ThreadCount" becomes a constructor argument here, not
// a mutable setting — unlike the teacher's WorkerPool.SetWorkerCount,
// which can change a pool's concurrency ceiling between calls).
type Option func(*Dispatcher)

// WithClock sets the clock used for dispatch-duration measurement and
// event timestamps. Defaults to clockz.RealClock; tests inject a fake
// clock to assert on durations deterministically, mirroring the teacher's
// WithClock builder methods.
func WithClock(clock clockz.Clock) Option {
	return func(d *Dispatcher) {
		d.clock = clock
	}
}

// WithBackend overrides the ThreadBackend used to launch and join workers.
// Defaults to a fresh *GoroutineBackend per dispatch.
func WithBackend(backend ThreadBackend) Option {
	return func(d *Dispatcher) {
		d.backend = backend
	}
}

// DisableAudit turns off the post-join completed-sum check. spec.md §9
// permits this only for builds whose spinlock and stealing logic have
// already been verified externally; this implementation keeps the audit
// on by default, and a Dispatcher constructed with this option emits a
// one-time warning signal on its first Dispatch call so a disabled audit
// is never silent in logs.
func DisableAudit() Option {
	return func(d *Dispatcher) {
		d.auditDisabled = true
	}
}
