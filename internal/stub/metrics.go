package stub

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "erpstub"

// LoginsTotal counts login attempts by result ("ok", "rejected"). Registered
// per router so the counters land on the same registry /metrics gathers.
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProductMutationsTotal counts product writes by action
// ("create", "update", "deactivate").
var ProductMutationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product mutations, by action.",
	},
	[]string{"action"},
)
