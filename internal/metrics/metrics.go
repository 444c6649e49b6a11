package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики обработки входящих обновлений.
var (
	UpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bot",
		Subsystem: "updates",
		Name:      "total", // Общее количество обработанных обновлений.
	})
	HandleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bot",
		Subsystem: "updates",
		Name:      "handle_duration_seconds", // Время обработки обновления.
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	})
)

// Serve публикует метрики на addr. Блокирует, запускать в горутине.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
