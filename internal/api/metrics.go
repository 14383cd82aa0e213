package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherpa_evaluations_total",
		Help: "Number of scoring evaluations performed.",
	})
	frameworkSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherpa_framework_saves_total",
		Help: "Number of framework documents written.",
	})
	compassSavesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherpa_compass_saves_total",
		Help: "Number of compass documents written.",
	})
	tableImportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sherpa_table_imports_total",
		Help: "Number of subnet table imports.",
	})
)
