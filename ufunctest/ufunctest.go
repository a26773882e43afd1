// Package ufunctest provides kernels for exercising a ufunc.Dispatcher in
// tests: a recorder that proves coverage-without-duplication, a counting
// kernel for throughput assertions, and a chaos kernel that injects random
// jitter to pressure the spinlock and stealing logic.
package ufunctest

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	mathrand "math/rand"
)

// Recorder counts how many times each index in [0, N) was visited. A
// correct Dispatcher visits every index exactly once, so AssertCoverage
// reports the first index that was missed or double-run.
type Recorder struct {
	mu     sync.Mutex
	counts []int32
}

// NewRecorder creates a Recorder sized for an iteration space of n.
func NewRecorder(n int) *Recorder {
	return &Recorder{counts: make([]int32, n)}
}

// Kernel returns a ufunc.Kernel closure recording the item passed via args[0],
// which must hold an address into an []int populated with 0..n-1 — the
// standard "index kernel" shape used across the package's own dispatch
// tests.
func (r *Recorder) Kernel() func(args []unsafe.Pointer, data unsafe.Pointer) {
	return func(args []unsafe.Pointer, data unsafe.Pointer) {
		item := *(*int)(args[0])
		atomic.AddInt32(&r.counts[item], 1)
	}
}

// Counts returns a copy of the per-index visit counts.
func (r *Recorder) Counts() []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int32, len(r.counts))
	copy(out, r.counts)
	return out
}

// AssertCoverage reports whether every index was visited exactly once.
// On failure it returns the first offending index and its observed count.
func (r *Recorder) AssertCoverage() (ok bool, badIndex int, badCount int32) {
	for i, c := range r.Counts() {
		if c != 1 {
			return false, i, c
		}
	}
	return true, -1, 0
}

// CountingKernel is a minimal kernel that only tallies total invocations,
// for tests that care about throughput rather than per-index identity.
type CountingKernel struct {
	calls int64
}

// Kernel returns the underlying callable.
func (c *CountingKernel) Kernel() func(args []unsafe.Pointer, data unsafe.Pointer) {
	return func(args []unsafe.Pointer, data unsafe.Pointer) {
		atomic.AddInt64(&c.calls, 1)
	}
}

// Calls returns the total number of invocations observed so far.
func (c *CountingKernel) Calls() int64 {
	return atomic.LoadInt64(&c.calls)
}

// ChaosKernel sleeps a random jitter in [0, MaxDelay) on every call before
// delegating to an embedded Recorder, to widen the window in which a
// racing claimOwn/claimSteal pair could corrupt a queue if the spinlock
// were broken. MaxDelay defaults to zero (no jitter) unless set.
type ChaosKernel struct {
	Recorder *Recorder
	MaxDelay time.Duration

	rngMu sync.Mutex
	rng   *mathrand.Rand
}

// NewChaosKernel creates a ChaosKernel recording into a fresh Recorder
// sized for n, with jitter bounded by maxDelay.
func NewChaosKernel(n int, maxDelay time.Duration) *ChaosKernel {
	return &ChaosKernel{
		Recorder: NewRecorder(n),
		MaxDelay: maxDelay,
		rng:      mathrand.New(mathrand.NewSource(1)),
	}
}

// Kernel returns the underlying callable.
func (c *ChaosKernel) Kernel() func(args []unsafe.Pointer, data unsafe.Pointer) {
	inner := c.Recorder.Kernel()
	return func(args []unsafe.Pointer, data unsafe.Pointer) {
		if c.MaxDelay > 0 {
			c.rngMu.Lock()
			d := time.Duration(c.rng.Int63n(int64(c.MaxDelay)))
			c.rngMu.Unlock()
			time.Sleep(d)
		}
		inner(args, data)
	}
}
