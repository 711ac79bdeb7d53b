package librev

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/2x3systems/gorev/rev"
)

var (
	// OpsTotal counts the operations applied, by op name
	OpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gorev_ops_total",
			Help: "Total number of graph operations applied",
		},
		[]string{"op"},
	)

	// FactorCacheLookups counts factorization cache lookups, by result (hit or miss)
	FactorCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gorev_factor_cache_lookups_total",
			Help: "Total number of factorization cache lookups",
		},
		[]string{"result"},
	)

	// ColorsAllocated counts extended colors handed out to newly seen primes
	ColorsAllocated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gorev_colors_allocated_total",
			Help: "Total number of extended colors allocated",
		},
	)

	// UnknownColors counts distinct unknown colors skipped while encoding
	UnknownColors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gorev_unknown_colors_total",
			Help: "Total number of unknown colors skipped during encoding",
		},
	)
)

func init() {
	prometheus.MustRegister(OpsTotal)
	prometheus.MustRegister(FactorCacheLookups)
	prometheus.MustRegister(ColorsAllocated)
	prometheus.MustRegister(UnknownColors)
}

// ObserveOp counts one application of op.
func ObserveOp(op rev.Op) {
	OpsTotal.WithLabelValues(string(op)).Inc()
}

// ObserveCacheLookup is suitable for factor.EngineOpts.OnLookup.
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	FactorCacheLookups.WithLabelValues(result).Inc()
}

// ObserveColorAllocation is suitable for palette.RegistryOpts.OnAllocate.
func ObserveColorAllocation(color string) {
	ColorsAllocated.Inc()
}

func ObserveUnknownColor() {
	UnknownColors.Inc()
}
