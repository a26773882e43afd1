package ufunc

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ThreadBackend abstracts the create/join contract a Dispatcher uses to
// launch and wait for its workers. Any backend meeting this contract —
// native OS threads, a goroutine pool, a fiber library with true
// parallelism — is acceptable; spec.md §6 leaves the concrete mechanism to
// the implementation.
//
// Go(fn) must eventually run fn exactly once, concurrently with the
// caller and with every other Go call made before the matching Wait.
// Wait blocks until every fn passed to Go since the last Wait has
// returned.
type ThreadBackend interface {
	Go(fn func())
	Wait()
}

// Starter is an optional capability a ThreadBackend may implement to
// report that it could not guarantee all requested workers will run. A
// Dispatcher checks for this interface after launching workers and, if it
// reports an error, panics with a *DispatchError{Phase: PhaseBackend}
// rather than proceeding with a broken workqueue-to-worker mapping (see
// spec.md §7).
type Starter interface {
	StartErr() error
}

// GoroutineBackend is the reference ThreadBackend: one goroutine per
// worker, joined with a sync.WaitGroup. This is the idiomatic Go analog of
// "OS threads with create/join" — goroutines are scheduled by the Go
// runtime across GOMAXPROCS OS threads, which gives genuine parallelism for
// the CPU-bound kernels this engine assumes. Go can never fail to "start" a
// goroutine the way a native pthread_create can fail, so GoroutineBackend
// does not implement Starter.
type GoroutineBackend struct {
	wg sync.WaitGroup
}

// Go launches fn in a new goroutine tracked by the backend's WaitGroup.
func (b *GoroutineBackend) Go(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

// Wait blocks until every goroutine started since construction (or the
// last Wait) has returned.
func (b *GoroutineBackend) Wait() {
	b.wg.Wait()
}

// SemaphoreBackend launches every worker immediately, like
// GoroutineBackend — the dispatch protocol needs all numWorkers workers
// live to make its stealing guarantees — but gates each worker's actual
// execution behind a caller-supplied weighted semaphore, following the
// acquire/release pattern sclevine/xsum uses to cap concurrent file
// hashing below runtime.NumCPU(). This is useful when a process runs many
// independent Dispatch calls and wants to cap total OS-thread-backed
// parallelism across all of them, rather than per-dispatch.
type SemaphoreBackend struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewSemaphoreBackend creates a SemaphoreBackend that allows at most max
// workers across all Dispatch calls sharing it to run concurrently.
func NewSemaphoreBackend(max int64) *SemaphoreBackend {
	return &SemaphoreBackend{sem: semaphore.NewWeighted(max)}
}

// Go launches fn in a new goroutine that blocks on the semaphore before
// running fn and releases it on return.
func (b *SemaphoreBackend) Go(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		// A dispatch-scoped backend has no natural cancellation point;
		// background is correct here since the only way to unblock is
		// another worker releasing its slot.
		_ = b.sem.Acquire(context.Background(), 1)
		defer b.sem.Release(1)
		fn()
	}()
}

// Wait blocks until every goroutine started since construction (or the
// last Wait) has returned.
func (b *SemaphoreBackend) Wait() {
	b.wg.Wait()
}
