package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Notification pipeline metrics
	NotificationsCreated   *prometheus.CounterVec
	NotificationsCoalesced prometheus.Counter
	NotificationsDeferred  prometheus.Counter
	NotificationsReleased  prometheus.Counter
	PushFailures           prometheus.Counter
	DispatchLatency        prometheus.Histogram
	FanoutLatency          prometheus.Histogram
	ConnectedClients       prometheus.Gauge

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		NotificationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_created_total",
			Help:      "Total number of notification records created",
		}, []string{"kind"}),
		NotificationsCoalesced: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_coalesced_total",
			Help:      "Total number of notifications folded into an existing record",
		}),
		NotificationsDeferred: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_deferred_total",
			Help:      "Total number of notifications deferred by quiet hours",
		}),
		NotificationsReleased: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_released_total",
			Help:      "Total number of scheduled notifications released",
		}),
		PushFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "push_failures_total",
			Help:      "Total number of push channel delivery failures",
		}),
		DispatchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching one event intent",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		FanoutLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fanout_duration_seconds",
			Help:      "Time spent delivering one envelope to the real-time channel",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2},
		}),
		ConnectedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "connected_clients",
			Help:      "Current number of websocket sessions",
		}),

		DatabaseOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		RedisOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "redis_operations_total",
			Help:      "Total number of Redis operations",
		}, []string{"operation", "status"}),
	}
}

// NewTestMetrics returns unregistered metrics for use in tests so
// parallel packages do not collide on the default registry.
func NewTestMetrics() *Metrics {
	return &Metrics{
		NotificationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_notifications_created_total",
		}, []string{"kind"}),
		NotificationsCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "test_notifications_coalesced_total",
		}),
		NotificationsDeferred: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "test_notifications_deferred_total",
		}),
		NotificationsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "test_notifications_released_total",
		}),
		PushFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "test_push_failures_total",
		}),
		DispatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "test_dispatch_duration_seconds",
		}),
		FanoutLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "test_fanout_duration_seconds",
		}),
		ConnectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "test_connected_clients",
		}),
		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_database_operations_total",
		}, []string{"operation", "status"}),
		DatabaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "test_database_operation_duration_seconds",
		}, []string{"operation"}),
		RedisOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "test_redis_operations_total",
		}, []string{"operation", "status"}),
	}
}
