package ufunc

import (
	"context"
	"time"

	"github.com/zoobzio/hookz"
)

// Event keys for dispatcher hooks.
const (
	EventSteal     = hookz.Key("ufunc.steal")
	EventDrained   = hookz.Key("ufunc.drained")
	EventAudit     = hookz.Key("ufunc.audit")
	EventBackendOK = hookz.Key("ufunc.backend_ok")
)

// DispatchEvent is the payload delivered to hook handlers registered via
// OnSteal, OnDrained, and OnAudit. Not every field is populated for every
// event kind: steal and drained events carry WorkerID and Completed, steal
// events also StolenFor, audit events carry Expected and Actual, and every
// event carries Timestamp.
type DispatchEvent struct {
	WorkerID  int
	StolenFor int // set only for EventSteal: the id of the queue stolen from
	Completed int
	Expected  int // set only for EventAudit
	Actual    int // set only for EventAudit
	Timestamp time.Time
}

// OnSteal registers a handler invoked, asynchronously, each time a worker
// successfully steals one index from a peer queue.
func (d *Dispatcher) OnSteal(handler func(context.Context, DispatchEvent) error) error {
	_, err := d.hooks.Hook(EventSteal, handler)
	return err
}

// OnDrained registers a handler invoked when a worker's own queue (Phase A)
// is first observed empty, before it begins stealing.
func (d *Dispatcher) OnDrained(handler func(context.Context, DispatchEvent) error) error {
	_, err := d.hooks.Hook(EventDrained, handler)
	return err
}

// OnAudit registers a handler invoked once per dispatch with the final
// completed-sum audit result, whether or not it matched. A Dispatcher built
// with DisableAudit never invokes it.
func (d *Dispatcher) OnAudit(handler func(context.Context, DispatchEvent) error) error {
	_, err := d.hooks.Hook(EventAudit, handler)
	return err
}
