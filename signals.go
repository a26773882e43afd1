package ufunc

import "github.com/zoobzio/capitan"

// Signal constants for dispatcher lifecycle events. Signals follow the
// pattern: <component>.<event>, matching the teacher's
// "<connector-type>.<event>" convention.
const (
	SignalDispatchStarted  capitan.Signal = "dispatcher.started"
	SignalDispatchFinished capitan.Signal = "dispatcher.finished"
	SignalWorkerDrained    capitan.Signal = "worker.drained"
	SignalWorkerStole      capitan.Signal = "worker.stole"
	SignalAuditFailed      capitan.Signal = "dispatcher.audit_failed"
	SignalAuditDisabled    capitan.Signal = "dispatcher.audit_disabled"
	SignalBackendFailed    capitan.Signal = "dispatcher.backend_failed"
)

// Field keys used across dispatcher signals.
var (
	FieldIterations    = capitan.NewIntKey("iterations")
	FieldWorkerCount   = capitan.NewIntKey("worker_count")
	FieldWorkerID      = capitan.NewIntKey("worker_id")
	FieldCompleted     = capitan.NewIntKey("completed")
	FieldStolenFrom    = capitan.NewIntKey("stolen_from")
	FieldExpectedTotal = capitan.NewIntKey("expected_total")
	FieldActualTotal   = capitan.NewIntKey("actual_total")
	FieldDurationMS    = capitan.NewFloat64Key("duration_ms")
	FieldVectorWidth   = capitan.NewStringKey("vector_width")
)
