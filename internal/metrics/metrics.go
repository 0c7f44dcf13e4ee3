package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg           *prometheus.Registry
	StoreOps      *prometheus.CounterVec
	StoreLatency  *prometheus.HistogramVec
	DegradedLoads *prometheus.CounterVec
	Mutations     *prometheus.CounterVec
	Reports       *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	storeOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_store_ops_total",
		Help: "Store adapter calls by operation, table and result.",
	}, []string{"op", "table", "result"})
	storeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_store_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	degraded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_degraded_loads_total",
		Help: "Loads that fell back to an empty table.",
	}, []string{"table"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_mutations_total",
	}, []string{"entity", "action", "result"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_reports_total",
	}, []string{"kind"})

	r.MustRegister(storeOps, storeLatency, degraded, mutations, reports)
	return &Registry{
		reg:           r,
		StoreOps:      storeOps,
		StoreLatency:  storeLatency,
		DegradedLoads: degraded,
		Mutations:     mutations,
		Reports:       reports,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Result labels an outcome for the counters above.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
