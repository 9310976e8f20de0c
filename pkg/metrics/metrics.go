// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contractmask"

var (
	RuleMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_matches_total",
			Help:      "Matches replaced per masking rule",
		},
		[]string{"rule"},
	)

	RuleTimeouts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_timeouts_total",
			Help:      "Rule applications skipped after exceeding the rule budget",
		},
		[]string{"rule"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent per masking stage and unit",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"stage"},
	)

	EntitySpans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_spans_total",
			Help:      "Tagger spans by outcome",
		},
		[]string{"outcome"},
	)

	TaggerCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tagger_calls_total",
			Help:      "Tagger round trips by transport and mode",
		},
		[]string{"transport", "mode"},
	)

	TaggerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tagger_failures_total",
			Help:      "Failed tagger round trips by transport",
		},
		[]string{"transport"},
	)

	TaggerCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tagger_cache_lookups_total",
			Help:      "Tagger cache lookups by result",
		},
		[]string{"result"},
	)

	Units = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Masked units by outcome (ok, degraded, excluded)",
		},
		[]string{"outcome"},
	)

	Sentences = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segmenter_sentences_total",
			Help:      "Segmenter candidates by outcome",
		},
		[]string{"outcome"},
	)

	Documents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Documents processed by status",
		},
		[]string{"status"},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of a batch run",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)
