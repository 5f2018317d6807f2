package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal       *prometheus.CounterVec
	readingsStored     prometheus.Counter
	notificationsTotal *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec
	indicatorValue     *prometheus.GaugeVec
	signalState        *prometheus.GaugeVec
	latency            *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_fred_fetches_total",
				Help: "Total number of FRED series fetches",
			},
			[]string{"series", "result"},
		),
		readingsStored: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "macropulse_readings_stored_total",
				Help: "Total number of macro readings written to storage",
			},
		),
		notificationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_notifications_total",
				Help: "Total number of push notifications attempted",
			},
			[]string{"result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		indicatorValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_indicator_value",
				Help: "Last fetched value for a macro indicator",
			},
			[]string{"indicator"},
		),
		signalState: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macropulse_signal_state",
				Help: "Current trading signal (1 for the active action, 0 otherwise)",
			},
			[]string{"action"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records a FRED series fetch outcome.
func (r *Recorder) RecordFetch(series, result string) {
	r.fetchesTotal.WithLabelValues(series, result).Inc()
}

// RecordReadingStored records a reading written to storage.
func (r *Recorder) RecordReadingStored() {
	r.readingsStored.Inc()
}

// RecordNotification records a notification attempt.
func (r *Recorder) RecordNotification(result string) {
	r.notificationsTotal.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordIndicator records the last value for a macro indicator.
func (r *Recorder) RecordIndicator(indicator string, value float64) {
	r.indicatorValue.WithLabelValues(indicator).Set(value)
}

// RecordSignal records the active trading signal.
func (r *Recorder) RecordSignal(action string) {
	for _, a := range []string{"BUY", "SELL", "HOLD"} {
		v := 0.0
		if a == action {
			v = 1.0
		}
		r.signalState.WithLabelValues(a).Set(v)
	}
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
