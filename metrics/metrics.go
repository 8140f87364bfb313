package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	actorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homeserve",
			Name:      "actor_calls_total",
			Help:      "Remote actor calls by method and outcome.",
		},
		[]string{"method", "outcome"},
	)

	actorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "homeserve",
			Name:      "actor_call_seconds",
			Help:      "Latency of remote actor calls.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homeserve",
			Name:      "query_cache_lookups_total",
			Help:      "Query cache lookups by resource key and result.",
		},
		[]string{"key", "result"},
	)

	cacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homeserve",
			Name:      "query_cache_invalidations_total",
			Help:      "Resource keys invalidated by successful mutations.",
		},
		[]string{"key"},
	)

	ivrWebhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "homeserve",
			Name:      "ivr_webhooks_total",
			Help:      "Inbound IVR webhooks by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(actorCalls, actorLatency, cacheLookups, cacheInvalidations, ivrWebhooks)
	})
}

func ObserveActorCall(method, outcome string, seconds float64) {
	actorCalls.WithLabelValues(method, outcome).Inc()
	actorLatency.WithLabelValues(method).Observe(seconds)
}

func IncCacheLookup(key, result string) {
	cacheLookups.WithLabelValues(key, result).Inc()
}

func IncCacheInvalidation(key string) {
	cacheInvalidations.WithLabelValues(key).Inc()
}

func IncIVRWebhook(outcome string) {
	ivrWebhooks.WithLabelValues(outcome).Inc()
}
