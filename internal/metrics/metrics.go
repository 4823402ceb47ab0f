package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Fast cache request/hit/miss counters, labelled by procedure
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of fast cache requests",
		},
		[]string{"operation"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of fast cache hits",
		},
		[]string{"operation", "level"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of fast cache misses",
		},
		[]string{"operation"},
	)

	CacheSets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_sets_total",
			Help: "Total number of fast cache writes",
		},
		[]string{"cache_tier", "result"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of swallowed fast cache errors",
		},
		[]string{"level", "kind"}, // kind: encode, decode, upstream
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Duration of fast cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "level"},
	)

	// L1 capacity metrics only (L1 is in-memory)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheUsed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_used_bytes",
			Help: "L1 cache used space in bytes",
		},
		[]string{"level"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of entries held by a cache level",
		},
		[]string{"level"},
	)

	SnapshotReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_reads_total",
			Help: "Snapshot cache reads by result",
		},
		[]string{"dataset", "result"}, // result: hit, miss, error
	)

	BackgroundTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_tasks_total",
			Help: "Background tasks by outcome",
		},
		[]string{"task", "status"}, // status: success, error, skipped
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream provider requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint", "status"},
	)

	ProcedureRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procedure_requests_total",
			Help: "Procedure calls by outcome",
		},
		[]string{"procedure", "code"},
	)
)

// RecordCacheRequest records a fast cache lookup
func RecordCacheRequest(operation string) {
	CacheRequests.WithLabelValues(operation).Inc()
}

// RecordCacheHit records a fast cache hit served by the given level
func RecordCacheHit(operation string, level string) {
	CacheHits.WithLabelValues(operation, level).Inc()
}

// RecordCacheMiss records a fast cache miss
func RecordCacheMiss(operation string) {
	CacheMisses.WithLabelValues(operation).Inc()
}

func RecordCacheSet(tier string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	CacheSets.WithLabelValues(tier, result).Inc()
}

// RecordCacheError records an error that was absorbed at a cache level
func RecordCacheError(level string, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// UpdateL1CacheCapacity updates L1 cache capacity metrics
func UpdateL1CacheCapacity(capacity, used int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
	CacheUsed.WithLabelValues("l1").Set(float64(used))
}

func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// TimeCacheOperation returns a timer function for measuring a cache operation
func TimeCacheOperation(operation, level string) func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues(operation, level))
	return func() {
		timer.ObserveDuration()
	}
}

func RecordSnapshotRead(dataset, result string) {
	SnapshotReads.WithLabelValues(dataset, result).Inc()
}

func RecordBackgroundTask(task, status string) {
	BackgroundTasks.WithLabelValues(task, status).Inc()
}

// ObserveUpstreamRequest records how long an upstream call took
func ObserveUpstreamRequest(provider, endpoint, status string, d time.Duration) {
	UpstreamRequestDuration.WithLabelValues(provider, endpoint, status).Observe(d.Seconds())
}

func RecordProcedureRequest(procedure, code string) {
	ProcedureRequests.WithLabelValues(procedure, code).Inc()
}
