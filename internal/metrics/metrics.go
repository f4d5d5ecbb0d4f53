package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the SDK-side instrumentation. Host applications that expose
// a prometheus registry pick these up automatically since they register
// against the default registry.
type Metrics struct {
	// Message content fetches
	MessageFetchTotal    *prometheus.CounterVec
	MessageFetchDuration *prometheus.HistogramVec

	// Merchant profile cache and refreshes
	ProfileCacheTotal *prometheus.CounterVec
	ProfileFetchTotal *prometheus.CounterVec

	// Modal lander loads
	ModalLoadTotal *prometheus.CounterVec

	// Telemetry envelope flushes
	EventFlushTotal *prometheus.CounterVec
}

var (
	globalMetrics *Metrics
	metricsMutex  sync.Mutex
)

// New returns the process-wide Metrics instance, creating and registering it
// on first use.
func New() *Metrics {
	metricsMutex.Lock()
	defer metricsMutex.Unlock()

	if globalMetrics != nil {
		return globalMetrics
	}

	m := &Metrics{
		MessageFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_messages_fetch_total",
			Help: "Total number of message content fetches",
		}, []string{"status"}),

		MessageFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paypal_messages_fetch_duration_seconds",
			Help:    "Message content fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),

		ProfileCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_messages_profile_cache_total",
			Help: "Merchant profile cache lookups by outcome",
		}, []string{"outcome"}),

		ProfileFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_messages_profile_fetch_total",
			Help: "Merchant profile network fetches",
		}, []string{"status"}),

		ModalLoadTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_messages_modal_load_total",
			Help: "Modal lander loads",
		}, []string{"status"}),

		EventFlushTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_messages_event_flush_total",
			Help: "Telemetry envelope flushes",
		}, []string{"status"}),
	}

	registerMetrics(m)
	globalMetrics = m

	return m
}

// registerMetrics registers all metrics with the default registry.
func registerMetrics(m *Metrics) {
	registerOrGet(m.MessageFetchTotal)
	registerOrGet(m.MessageFetchDuration)
	registerOrGet(m.ProfileCacheTotal)
	registerOrGet(m.ProfileFetchTotal)
	registerOrGet(m.ModalLoadTotal)
	registerOrGet(m.EventFlushTotal)
}

// registerOrGet tries to register a metric, returning the existing collector
// when it was already registered (e.g. two SDK surfaces in one process).
func registerOrGet(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
	}
	return c
}
