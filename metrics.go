package ufunc

import "github.com/zoobzio/metricz"

// Metric keys for dispatcher observability. Updated once per dispatch,
// after every worker has been joined, never once per iteration —
// incrementing a shared counter on every single index would force
// queue-lock-style contention onto the hot path the work-stealing design
// exists to avoid. MetricActiveWorkers is registered but Dispatch does not
// update it.
const (
	MetricDispatchTotal     = metricz.Key("ufunc.dispatch.total")
	MetricIterationsTotal   = metricz.Key("ufunc.iterations.completed.total")
	MetricStealsTotal       = metricz.Key("ufunc.steals.total")
	MetricActiveWorkers     = metricz.Key("ufunc.dispatch.active_workers")
	MetricAuditFailureTotal = metricz.Key("ufunc.audit.failures.total")
)

// newMetricsRegistry builds a registry with every dispatcher counter
// pre-registered, mirroring the teacher's NewFilter pattern of registering
// all of a component's counters up front in its constructor.
func newMetricsRegistry() *metricz.Registry {
	r := metricz.New()
	r.Counter(MetricDispatchTotal)
	r.Counter(MetricIterationsTotal)
	r.Counter(MetricStealsTotal)
	r.Counter(MetricActiveWorkers)
	r.Counter(MetricAuditFailureTotal)
	return r
}
