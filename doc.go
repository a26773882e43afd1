// Package ufunc implements a parallel execution engine for elementwise
// array operations ("ufuncs"). Given a kernel function and a flat iteration
// space [0, N), the dispatcher partitions the space across a fixed pool of
// workers, each draining a private range and then stealing single indices
// from peers until the whole space is exhausted.
//
// # Core concepts
//
// The engine is built around four pieces:
//
//   - WorkQueue: a per-worker half-open range [next, last) of iteration
//     indices, guarded by a single spinlock. The owner advances next from
//     the bottom; thieves decrement last from the top.
//   - Kernel: the opaque per-iteration callable, invoked once per index with
//     that index's element addresses already computed.
//   - ThreadBackend: the abstract create/join contract a Dispatcher uses to
//     launch and join its workers. GoroutineBackend is the default.
//   - Dispatcher: partitions [0, N) into worker ranges, initializes queues
//     and contexts, launches workers through a ThreadBackend, joins them,
//     and audits that every index ran exactly once.
//
// # Guarantees
//
// A completed Dispatch call guarantees every index in [0, N) was executed
// by exactly one worker, with no data race on any WorkQueue and no
// deadlock: a worker holds at most one queue lock at any instant, and locks
// are never composed. Kernels must be independent across indices; the
// engine does not serialize or order execution across workers.
//
// # Failure model
//
// There is no caller-visible error channel. A Dispatch call either returns
// (success) or panics with a *DispatchError (an unrecoverable invariant
// violation: a thread backend that could not start every worker, a
// double-unlock, or a post-join audit mismatch). Each indicates
// memory corruption or a bug in the engine or a misbehaving kernel, not a
// condition a caller should try to recover from.
package ufunc
