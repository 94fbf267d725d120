package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "busdash"

var (
	once sync.Once

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Requests sent to the booking backend by method, collection and outcome.",
		},
		[]string{"method", "collection", "outcome"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of booking backend requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "collection"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Dashboard HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications shown to the operator by kind.",
		},
		[]string{"kind"},
	)

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Successful create, update and delete operations by entity.",
		},
		[]string{"entity", "op"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(backendRequests, backendDuration, httpRequests, notifications, mutations)
	})
}

// ObserveBackend records one backend round-trip.
func ObserveBackend(method, collection, outcome string, took time.Duration) {
	backendRequests.WithLabelValues(method, collection, outcome).Inc()
	backendDuration.WithLabelValues(method, collection).Observe(took.Seconds())
}

// IncHTTP increments the counter for a route label and status code.
func IncHTTP(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// IncNotification counts a notification of the given kind.
func IncNotification(kind string) {
	notifications.WithLabelValues(kind).Inc()
}

// IncMutation counts a mutation the backend accepted.
func IncMutation(entity, op string) {
	mutations.WithLabelValues(entity, op).Inc()
}
