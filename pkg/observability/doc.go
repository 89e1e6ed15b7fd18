/*
Package observability records catalog activity as Prometheus metrics.

A Recorder turns strata lifecycle hooks into counters and histograms:

	rec := observability.NewRecorder("billing")
	prometheus.MustRegister(rec)
	cat := strata.New(strata.WithHooks(rec.Hooks()))

Exposing the registry (promhttp or otherwise) is left to the host.
*/
package observability
