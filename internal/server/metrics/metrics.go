// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "botofarm"

// Lease operation outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeAlreadyLocked = "already_locked"
	OutcomeNotFound      = "not_found"
	OutcomeError         = "error"
)

type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	leases          *prometheus.CounterVec
	accountsCreated prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		leases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lease_operations_total",
			Help:      "Count of lock and unlock attempts by outcome",
		}, []string{"op", "outcome"}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_created_total",
			Help:      "Count of accounts registered",
		}),
	}

	reg.MustRegister(m.requests, m.requestDuration, m.leases, m.accountsCreated)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLease counts a lock ("acquire") or unlock ("release") attempt.
func (m *Metrics) ObserveLease(op, outcome string) {
	m.leases.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) AccountCreated() {
	m.accountsCreated.Inc()
}
