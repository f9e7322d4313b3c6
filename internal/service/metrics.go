package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitscan"

// Line results recorded by splitscan_lines_total.
const (
	resultItem     = "item"
	resultFiltered = "filtered"
	resultUnparsed = "unparsed"
)

type metrics struct {
	lines      *prometheus.CounterVec
	duplicates prometheus.Counter
	payloads   *prometheus.CounterVec
	splits     *prometheus.CounterVec
	parseItems prometheus.Histogram
}

// newMetrics registers the engine collectors on reg. A nil reg leaves them
// unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		lines: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Receipt text lines seen, by classification result.",
		}, []string{"result"}),
		duplicates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_total",
			Help:      "Line items dropped as near-duplicates.",
		}),
		payloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_total",
			Help:      "Scanned payloads, by the decoding step that produced a record.",
		}, []string{"kind"}),
		splits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_total",
			Help:      "Split calculations, by strategy.",
		}, []string{"strategy"}),
		parseItems: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_items",
			Help:      "Line items kept per parsed receipt.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
	}
}
