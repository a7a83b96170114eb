// Package metrics содержит метрики Prometheus для генерации расписаний.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result.
const (
	ResultOK                = "ok"
	ResultGenerationFailed  = "generation_failed"
	ResultPersistenceFailed = "persistence_failed"
)

// Recorder пишет метрики генерации расписаний.
type Recorder struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "study_scheduler_generations_total",
			Help: "Schedule generation attempts by result.",
		}, []string{"result"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "study_scheduler_generation_duration_seconds",
			Help:    "Time from form submission to committed schedule.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		}),
	}
}

// ObserveGeneration учитывает одну попытку генерации.
func (r *Recorder) ObserveGeneration(result string, elapsed time.Duration) {
	r.generations.WithLabelValues(result).Inc()
	r.duration.Observe(elapsed.Seconds())
}
