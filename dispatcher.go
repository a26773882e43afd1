package ufunc

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// DispatchStartedSpan names the single span wrapping a whole Dispatch
// call. Spans are per-dispatch, never per-iteration, for the same reason
// metrics are updated once per dispatch after the join: the hot path must not acquire
// anything beyond its own queue's spinlock.
const DispatchStartedSpan = tracez.Key("ufunc.dispatch")

// Dispatcher partitions an iteration space across a fixed number of
// workers and runs a Kernel over every index exactly once. ThreadCount is
// fixed for the Dispatcher's lifetime (see options.go); a Dispatcher value
// is safe for reuse across any number of Dispatch calls, and safe for
// concurrent use by multiple goroutines calling Dispatch simultaneously —
// each call allocates its own queues, contexts, and (by default) backend.
type Dispatcher struct {
	threadCount   int
	backend       ThreadBackend // nil -> fresh *GoroutineBackend per Dispatch
	clock         clockz.Clock
	auditDisabled bool
	auditWarned   atomic.Bool

	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[DispatchEvent]
}

// NewDispatcher creates a Dispatcher specialized to threadCount workers.
// threadCount must be >= 1.
func NewDispatcher(threadCount int, opts ...Option) *Dispatcher {
	if threadCount < 1 {
		panic(fmt.Sprintf("ufunc: NewDispatcher: threadCount must be >= 1, got %d", threadCount))
	}

	d := &Dispatcher{
		threadCount: threadCount,
		clock:       clockz.RealClock,
		metrics:     newMetricsRegistry(),
		tracer:      tracez.New(),
		hooks:       hookz.New[DispatchEvent](),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Metrics returns the registry backing this Dispatcher's counters.
func (d *Dispatcher) Metrics() *metricz.Registry { return d.metrics }

// Tracer returns the tracer backing this Dispatcher's dispatch spans.
func (d *Dispatcher) Tracer() *tracez.Tracer { return d.tracer }

// Close releases observability resources held by the Dispatcher. Safe to
// call once a Dispatcher is no longer needed; not required for correctness.
func (d *Dispatcher) Close() error {
	d.tracer.Close()
	d.hooks.Close()
	return nil
}

func (d *Dispatcher) now() time.Time {
	if d.clock == nil {
		return clockz.RealClock.Now()
	}
	return d.clock.Now()
}

// Dispatch executes kernel for every iteration item in [0, dimensions[0]).
// args holds one base address per kernel argument slot; steps holds the
// matching byte stride for each slot; data is passed through to the kernel
// unchanged. Dispatch returns once every iteration has run exactly once
// across all workers.
//
// Dispatch never returns an error. The only failure modes — a thread
// backend that could not start all workers, or a post-join audit
// mismatch — are unrecoverable invariant violations; Dispatch panics with
// a *DispatchError for both, per spec.md §7.
func (d *Dispatcher) Dispatch(kernel Kernel, args []unsafe.Pointer, dimensions []int, steps []int, data unsafe.Pointer) {
	start := d.now()
	spanCtx, span := d.tracer.StartSpan(context.Background(), DispatchStartedSpan)
	defer span.Finish()

	n := dimensions[0]
	span.SetTag(tracez.Tag("ufunc.n"), fmt.Sprintf("%d", n))

	numWorkers, chunkSize := d.partition(n)
	span.SetTag(tracez.Tag("ufunc.worker_count"), fmt.Sprintf("%d", numWorkers))

	d.metrics.Counter(MetricDispatchTotal).Inc()
	capitan.Info(spanCtx, SignalDispatchStarted,
		FieldIterations.Field(n),
		FieldWorkerCount.Field(numWorkers),
		FieldVectorWidth.Field(VectorWidth()),
	)

	if numWorkers == 0 {
		d.audit(spanCtx, start, n, 0)
		d.finish(spanCtx, start, 0, 0)
		return
	}

	queues := make([]WorkQueue, numWorkers)
	contexts := make([]WorkerContext, numWorkers)
	shared := &sharedContext{
		kernel:  kernel,
		args:    args,
		steps:   steps,
		data:    data,
		queues:  queues,
		workers: numWorkers,
	}
	d.populateQueues(queues, n, chunkSize, numWorkers)
	d.populateContexts(contexts, shared, numWorkers)

	backend := d.backend
	if backend == nil {
		backend = &GoroutineBackend{}
	}

	for i := range contexts {
		wctx := &contexts[i]
		backend.Go(func() {
			d.runWorker(spanCtx, wctx)
		})
	}

	if starter, ok := backend.(Starter); ok {
		if err := starter.StartErr(); err != nil {
			capitan.Error(spanCtx, SignalBackendFailed,
				FieldWorkerCount.Field(numWorkers),
			)
			panic(&DispatchError{
				Phase:    PhaseBackend,
				Err:      err,
				Duration: d.now().Sub(start),
			})
		}
	}

	backend.Wait()

	completed := 0
	steals := 0
	for i := range contexts {
		completed += contexts[i].Completed
		steals += contexts[i].steals
	}

	d.audit(spanCtx, start, n, completed)
	d.finish(spanCtx, start, completed, steals)
}

// partition computes the effective worker count and per-worker chunk size
// for an iteration space of size n, exactly per spec.md §4.2:
//
//   - chunkSize := n / threadCount (integer division)
//   - if chunkSize == 0 (n < threadCount): chunkSize := 1, numWorkers := n
//   - else: numWorkers := threadCount
func (d *Dispatcher) partition(n int) (numWorkers, chunkSize int) {
	chunkSize = n / d.threadCount
	if chunkSize == 0 {
		return n, 1
	}
	return d.threadCount, chunkSize
}

// populateQueues writes every worker's initial [next, last) range. Worker
// i gets [i*chunkSize, (i+1)*chunkSize); the last worker's range is
// widened to absorb any remainder so the union of ranges is exactly
// [0, n).
func (d *Dispatcher) populateQueues(queues []WorkQueue, n, chunkSize, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		queues[i].init(i*chunkSize, (i+1)*chunkSize)
	}
	queues[numWorkers-1].last = n
}

// populateContexts writes every worker's WorkerContext before any worker
// starts.
func (d *Dispatcher) populateContexts(contexts []WorkerContext, shared *sharedContext, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		contexts[i] = WorkerContext{common: shared, id: i}
	}
}

// audit checks that every iteration ran exactly once. A mismatch means a
// race occurred in the locking or stealing logic: per spec.md §4.2 and §9
// this check is always on in this implementation (DisableAudit exists only
// as a documented, logged escape hatch), and a failure is unrecoverable.
func (d *Dispatcher) audit(spanCtx context.Context, start time.Time, expected, actual int) {
	if d.auditDisabled {
		if d.auditWarned.CompareAndSwap(false, true) {
			capitan.Warn(spanCtx, SignalAuditDisabled,
				FieldExpectedTotal.Field(expected),
			)
		}
		return
	}

	if d.hooks != nil {
		_ = d.hooks.Emit(spanCtx, EventAudit, DispatchEvent{
			Expected:  expected,
			Actual:    actual,
			Timestamp: d.now(),
		})
	}

	if actual == expected {
		return
	}

	d.metrics.Counter(MetricAuditFailureTotal).Inc()
	capitan.Error(spanCtx, SignalAuditFailed,
		FieldExpectedTotal.Field(expected),
		FieldActualTotal.Field(actual),
	)
	panic(&DispatchError{
		Phase:    PhaseAudit,
		Err:      errAuditMismatch,
		Duration: d.now().Sub(start),
	})
}

func (d *Dispatcher) finish(spanCtx context.Context, start time.Time, completed, steals int) {
	d.metrics.Counter(MetricIterationsTotal).Add(float64(completed))
	d.metrics.Counter(MetricStealsTotal).Add(float64(steals))
	capitan.Info(spanCtx, SignalDispatchFinished,
		FieldCompleted.Field(completed),
		FieldDurationMS.Field(float64(d.now().Sub(start).Milliseconds())),
	)
}
