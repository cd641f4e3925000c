// Package metrics exposes Prometheus collectors for the chat pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onestop_chat_turns_total",
			Help: "Chat turns handled, by how the reply was produced",
		},
		[]string{"source"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onestop_generations_total",
			Help: "Calls to the generative-text service",
		},
		[]string{"status"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "onestop_generation_duration_seconds",
			Help:    "Time spent waiting for a full model reply",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80, 120},
		},
	)

	HistoryWriteErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onestop_history_write_errors_total",
			Help: "Chat exchanges that could not be persisted",
		},
	)

	WarmupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onestop_model_warmups_total",
			Help: "Model warm-up attempts at startup",
		},
		[]string{"status"},
	)
)

func ObserveGeneration(d time.Duration, err error) {
	GenerationDuration.Observe(d.Seconds())
	GenerationsTotal.WithLabelValues(status(err)).Inc()
}

func ObserveTurn(source string) {
	ChatTurnsTotal.WithLabelValues(source).Inc()
}

func ObserveWarmup(err error) {
	WarmupsTotal.WithLabelValues(status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
