package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversion metrics
	conversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ttsdesk_conversions_total",
		Help: "Total number of text-to-speech conversions",
	}, []string{"status"}) // status: "success", "invalid" or "error"

	conversionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ttsdesk_conversion_latency_seconds",
		Help:    "End-to-end conversion latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	})

	audioBytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ttsdesk_audio_bytes_total",
		Help: "Total audio bytes written to the output directory",
	})

	// Catalog metrics
	catalogLanguages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ttsdesk_catalog_languages",
		Help: "Number of languages in the loaded catalog",
	})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ttsdesk_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})
)

// Conversion status labels
const (
	StatusSuccess = "success"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// ConversionTimer tracks metrics for a single conversion
type ConversionTimer struct {
	start time.Time
}

// StartConversion begins timing a conversion
func StartConversion() *ConversionTimer {
	return &ConversionTimer{start: time.Now()}
}

// Finish records the conversion outcome and returns the elapsed time
func (t *ConversionTimer) Finish(status string) time.Duration {
	elapsed := time.Since(t.start)
	conversionsTotal.WithLabelValues(status).Inc()
	if status != StatusInvalid {
		conversionLatency.Observe(elapsed.Seconds())
	}
	return elapsed
}

// RecordAudioBytes records audio bytes written to disk
func RecordAudioBytes(n int) {
	audioBytesWritten.Add(float64(n))
}

// SetCatalogSize records the number of loaded languages
func SetCatalogSize(n int) {
	catalogLanguages.Set(float64(n))
}

// RecordError records an error
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}
