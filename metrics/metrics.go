// Package metrics adapts github.com/prometheus/client_golang to the
// grasp.Metrics interface, and exposes a promhttp handler for scraping.
//
// The monitoring example this module's dependency is lifted from
// (prometheus/client.go) is a *query* client, reading an already-running
// Prometheus server. This package is the other half of the same
// dependency: the instrumentation side, registering counters and gauges
// that a Prometheus server would scrape from this process.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements grasp.Metrics against a dedicated prometheus registry,
// so multiple independent Solve runs in one process can each own their
// counters without colliding on the default global registry.
type Metrics struct {
	registry *prometheus.Registry

	iterations     prometheus.Counter
	constructors   prometheus.Counter
	localSearches  prometheus.Counter
	relinks        *prometheus.CounterVec
	poolAdmissions prometheus.Counter
	poolPurges     prometheus.Counter
	bestCost       prometheus.Gauge
}

// New builds a Metrics with a fresh registry and the given constant labels
// (e.g. {"instance": "nug12"}) applied to every metric.
func New(constLabels prometheus.Labels) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qapgrasp",
			Name:        "iterations_total",
			Help:        "Number of GRASP+path-relink iterations started.",
			ConstLabels: constLabels,
		}),
		constructors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qapgrasp",
			Name:        "constructor_calls_total",
			Help:        "Number of greedy randomized constructions performed.",
			ConstLabels: constLabels,
		}),
		localSearches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qapgrasp",
			Name:        "local_search_calls_total",
			Help:        "Number of extra local search passes performed.",
			ConstLabels: constLabels,
		}),
		relinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "qapgrasp",
			Name:        "path_relink_calls_total",
			Help:        "Number of path-relink walks executed, by direction.",
			ConstLabels: constLabels,
		}, []string{"direction"}),
		poolAdmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qapgrasp",
			Name:        "pool_admissions_total",
			Help:        "Number of elite pool admissions.",
			ConstLabels: constLabels,
		}),
		poolPurges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qapgrasp",
			Name:        "pool_purges_total",
			Help:        "Number of elite pool stagnation purges.",
			ConstLabels: constLabels,
		}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "qapgrasp",
			Name:        "best_cost",
			Help:        "Cost of the best solution found so far.",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		m.iterations, m.constructors, m.localSearches,
		m.relinks, m.poolAdmissions, m.poolPurges, m.bestCost,
	)
	return m
}

func (m *Metrics) IterationStarted()       { m.iterations.Inc() }
func (m *Metrics) ConstructorCalled()      { m.constructors.Inc() }
func (m *Metrics) LocalSearchCalled()      { m.localSearches.Inc() }
func (m *Metrics) PoolAdmitted()           { m.poolAdmissions.Inc() }
func (m *Metrics) PoolPurged()             { m.poolPurges.Inc() }
func (m *Metrics) BestCostUpdated(c int64) { m.bestCost.Set(float64(c)) }

func (m *Metrics) PathRelinkCalled(direction string) {
	m.relinks.WithLabelValues(direction).Inc()
}

// Handler returns an http.Handler serving this Metrics' registry in the
// Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
