package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	telegramRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_requests_total",
			Help: "Telegram Bot API requests by method and outcome.",
		},
		[]string{"method", "success"},
	)

	telegramRequestDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telegram_request_duration_ms",
			Help:    "Telegram Bot API request latency in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 2000, 3000},
		},
		[]string{"method"},
	)
)

// MustRegister registers the collectors with reg. Only the first call has an effect.
func MustRegister(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(telegramRequestsTotal, telegramRequestDurationMs)
	})
}

// WriteTextfile dumps everything gathered by g into path in the node_exporter
// textfile collector format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

func ObserveTelegramRequest(method string, success bool, elapsed time.Duration) {
	telegramRequestsTotal.WithLabelValues(method, strconv.FormatBool(success)).Inc()
	telegramRequestDurationMs.WithLabelValues(method).
		Observe(float64(elapsed.Milliseconds()))
}
