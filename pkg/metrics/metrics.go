package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignalsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_emitted_total", Help: "Signal records persisted by the orchestrator"},
		[]string{"signal_type", "action"},
	)
	SignalErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signal_errors_total", Help: "Errors recorded in orchestrator summaries"},
		[]string{"stage"},
	)
	AlertsSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_sent_total", Help: "Alerts delivered to the alert sink"},
		[]string{"signal_type"},
	)
	PriceBarsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "price_bars_ingested_total", Help: "Price bars written by the ingestion job"},
		[]string{"ticker"},
	)
	SignalRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signal_run_duration_seconds",
			Help:    "Duration of a single run_for_ticker invocation",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(SignalsEmittedTotal, SignalErrorsTotal, AlertsSentTotal, PriceBarsIngestedTotal, SignalRunDuration)
}

// Register mounts the prometheus handler on the echo instance.
func Register(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
