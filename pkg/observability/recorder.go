package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/strata"
)

// Recorder collects construction and coercion metrics.
// It implements prometheus.Collector.
type Recorder struct {
	defined     *prometheus.CounterVec
	constructed *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	coercions   *prometheus.CounterVec
}

// NewRecorder creates a recorder whose metrics use namespace as prefix.
// An empty namespace defaults to "strata".
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = "strata"
	}
	return &Recorder{
		defined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "types_defined_total",
				Help:      "Total number of value types defined",
			},
			[]string{"parent"},
		),
		constructed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "constructions_total",
				Help:      "Total number of construction attempts",
			},
			[]string{"type", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "construction_duration_seconds",
				Help:      "Duration of construction attempts",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"type"},
		),
		coercions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "coercions_total",
				Help:      "Total number of coerced attribute values",
			},
			[]string{"type", "attribute", "strategy"},
		),
	}
}

// Hooks returns catalog hooks feeding the recorder.
func (r *Recorder) Hooks() strata.Hooks {
	return strata.Hooks{
		OnDefine: func(e *strata.DefineEvent) {
			r.defined.WithLabelValues(e.Parent).Inc()
		},
		OnConstruct: func(e *strata.ConstructEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			r.constructed.WithLabelValues(e.Type, result).Inc()
			r.duration.WithLabelValues(e.Type).Observe(e.Duration.Seconds())
		},
		OnCoerce: func(e *strata.CoerceEvent) {
			r.coercions.WithLabelValues(e.Type, e.Attribute, e.Strategy).Inc()
		},
	}
}

// Describe implements prometheus.Collector.
func (r *Recorder) Describe(ch chan<- *prometheus.Desc) {
	r.defined.Describe(ch)
	r.constructed.Describe(ch)
	r.duration.Describe(ch)
	r.coercions.Describe(ch)
}

// Collect implements prometheus.Collector.
func (r *Recorder) Collect(ch chan<- prometheus.Metric) {
	r.defined.Collect(ch)
	r.constructed.Collect(ch)
	r.duration.Collect(ch)
	r.coercions.Collect(ch)
}
