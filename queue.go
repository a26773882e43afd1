package ufunc

import (
	"runtime"
	"sync/atomic"
)

const (
	lockFree  uint32 = 0
	lockHeld  uint32 = 1
	spinUntil        = 64 // spins before yielding to the scheduler
)

// WorkQueue is a half-open range [Next, Last) of iteration indices owned by
// one worker but readable and mutable by thieves. At rest (lock free),
// Next <= Last always; the queue is empty iff Next >= Last.
//
// Every read-modify-write of Next or Last happens under lock. The lock is
// the sole synchronization edge protecting the pair: no atomic operations
// on Next/Last themselves are required or performed.
type WorkQueue struct {
	lock uint32 // 0 = free, 1 = held
	next int
	last int
}

// lockQueue spins, attempting to transition lock from free to held with
// acquire ordering, until it succeeds. No back-off is mandated by the
// protocol; a bounded spin hint is an acceptable refinement that does not
// alter the contract.
func (q *WorkQueue) lockQueue() {
	spins := 0
	for !atomic.CompareAndSwapUint32(&q.lock, lockFree, lockHeld) {
		spins++
		if spins >= spinUntil {
			runtime.Gosched()
			spins = 0
		}
	}
}

// unlockQueue atomically transitions lock from held to free with release
// ordering. Observing anything but held here means a double-unlock or a
// concurrent unlock by a party that never held the lock — a fatal
// programming error. Go has no portable "unreachable" trap, so this
// mirrors the standard library's own convention for the same class of bug
// (sync.Mutex/sync.RWMutex panic on an unlock of an unlocked lock): panic,
// uncaught, terminates the process.
func (q *WorkQueue) unlockQueue() {
	if !atomic.CompareAndSwapUint32(&q.lock, lockHeld, lockFree) {
		panic(&DispatchError{
			Phase: PhaseInvariant,
			Err:   errDoubleUnlock,
		})
	}
}

// claimOwn attempts the owner-side claim: read next, advance it, read last.
// Returns the claimed index and whether it is in range (item < last). The
// caller must treat an out-of-range result as "queue drained" and stop
// Phase A.
func (q *WorkQueue) claimOwn() (item int, ok bool) {
	q.lockQueue()
	item = q.next
	q.next = item + 1
	last := q.last
	q.unlockQueue()
	return item, item < last
}

// claimSteal attempts a single thief-side claim against a peer queue: if
// the peer has work (next < last), decrement last and return the newly
// exposed index. Stealing one index per call, rather than draining the
// peer, limits time spent under its lock.
func (q *WorkQueue) claimSteal() (item int, ok bool) {
	q.lockQueue()
	if q.next < q.last {
		q.last--
		item = q.last
		ok = true
	}
	q.unlockQueue()
	return item, ok
}

// init sets the queue's initial range and unlocks it. Called only by the
// Dispatcher before any worker starts.
func (q *WorkQueue) init(next, last int) {
	q.next = next
	q.last = last
	q.lock = lockFree
}
