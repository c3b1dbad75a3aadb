package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	batches   *prometheus.CounterVec
	documents prometheus.Counter
	duration  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schemagen",
			Name:      "batches_total",
			Help:      "Batches received, by outcome.",
		}, []string{"outcome"}),
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schemagen",
			Name:      "documents_total",
			Help:      "Documents folded into a finished batch.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "schemagen",
			Name:      "build_duration_seconds",
			Help:      "Time spent turning a batch into a document.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.batches, m.documents, m.duration)
	return m
}
