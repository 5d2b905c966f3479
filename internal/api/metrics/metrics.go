// Package metrics defines and registers all custom Prometheus metrics for the
// message board API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init through promauto and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "board"

// ── Board metrics ─────────────────────────────────────────────────────────────

// MessagesPostedTotal counts messages successfully stored.
var MessagesPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_posted_total",
		Help:      "Total number of messages posted to the board.",
	},
)

// FeedReadsTotal counts message listings served.
// Labels:
//   - mode: "with_author" or "without_author" (the join fell back)
//   - viewer: "member", "non_member" or "anonymous"
var FeedReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_reads_total",
		Help:      "Total number of message listings served, by feed mode and viewer kind.",
	},
	[]string{"mode", "viewer"},
)

// ElevationAttemptsTotal counts membership elevation requests.
// Label:
//   - result: "granted", "rejected", "already_member" or "error"
var ElevationAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "elevation_attempts_total",
		Help:      "Total number of membership elevation attempts, by result.",
	},
	[]string{"result"},
)

// ── Activity log metrics ──────────────────────────────────────────────────────

// ActivityQueueDepth tracks the current number of entries waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long persisting a single entry takes.
// Label:
//   - kind: the activity kind, e.g. "login"
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ActivityErrorsTotal counts entries that could not be persisted or were dropped.
// Label:
//   - reason: "persist_failed" or "queue_full"
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity entries that failed processing.",
	},
	[]string{"reason"},
)
