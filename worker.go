package ufunc

import "context"

// runWorker executes the two-phase loop for a single worker: drain its own
// queue (Phase A), then scan peers for stealable work until a full
// ascending scan finds nothing left anywhere (Phase B). It is invoked once
// per worker by the Dispatcher's ThreadBackend.
func (d *Dispatcher) runWorker(ctx context.Context, wctx *WorkerContext) {
	common := wctx.common
	queue := &common.queues[wctx.id]

	d.drainOwn(ctx, queue, common, wctx)
	d.stealUntilQuiescent(ctx, common, wctx)
}

// drainOwn is Phase A: claim ascending indices from the worker's own queue
// until it observes next >= last.
func (d *Dispatcher) drainOwn(ctx context.Context, queue *WorkQueue, common *sharedContext, wctx *WorkerContext) {
	for {
		item, ok := queue.claimOwn()
		if !ok {
			break
		}
		invokeKernel(common, item, wctx)
	}

	if d.hooks != nil {
		_ = d.hooks.Emit(ctx, EventDrained, DispatchEvent{
			WorkerID:  wctx.id,
			Completed: wctx.Completed,
			Timestamp: d.now(),
		})
	}
}

// stealUntilQuiescent is Phase B: repeat full ascending scans over every
// other worker's queue, stealing exactly one index per peer per scan,
// until a complete scan steals nothing. At that point global work is
// exhausted — every non-empty queue would have produced another
// successful steal and kept the scan going.
func (d *Dispatcher) stealUntilQuiescent(ctx context.Context, common *sharedContext, wctx *WorkerContext) {
	for {
		stoleAny := false
		for j := 0; j < common.workers; j++ {
			if j == wctx.id {
				continue
			}
			peer := &common.queues[j]
			item, ok := peer.claimSteal()
			if !ok {
				continue
			}
			invokeKernel(common, item, wctx)
			wctx.steals++
			stoleAny = true

			if d.hooks != nil {
				_ = d.hooks.Emit(ctx, EventSteal, DispatchEvent{
					WorkerID:  wctx.id,
					StolenFor: j,
					Completed: wctx.Completed,
					Timestamp: d.now(),
				})
			}
		}
		if !stoleAny {
			return
		}
	}
}

// invokeKernel computes each argument slot's element address for item and
// calls the kernel, then records completion. The queue lock is always
// released before this runs (claimOwn/claimSteal release it before
// returning), so no lock is ever held across a kernel call.
func invokeKernel(common *sharedContext, item int, wctx *WorkerContext) {
	common.kernel(common.elementArgs(item), common.data)
	wctx.Completed++
}
