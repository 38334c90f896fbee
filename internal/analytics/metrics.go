package analytics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelEvent  = "event"
	labelValue  = "value"
	labelResult = "result"
)

// Metrics is the Prometheus backed analytics hook
type Metrics struct {
	events        *prometheus.CounterVec
	tagsRendered  prometheus.Counter
	fetchDuration *prometheus.SummaryVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kbarticle_analytics_events_total",
				Help: "Page events reported to analytics.",
			},
			[]string{labelEvent, labelValue},
		),
		tagsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kbarticle_navtags_rendered_total",
			Help: "Number of nav tags rendered into article pages.",
		}),
		fetchDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "kbarticle_navtags_fetch_duration_seconds",
				Help:       "Article API fetch duration for nav tags.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{labelResult},
		),
	}

	registerer.MustRegister(m.events, m.tagsRendered, m.fetchDuration)
	return m
}

func (m *Metrics) AssignEvents(_ context.Context, event Event) error {
	m.events.WithLabelValues(event.Name, event.Value).Inc()
	if event.Name == EventNavTagsRendered {
		m.tagsRendered.Add(float64(event.Count))
	}
	return nil
}

// ObserveFetch records how long a nav tag fetch took and whether it succeeded
func (m *Metrics) ObserveFetch(started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.fetchDuration.WithLabelValues(result).Observe(time.Since(started).Seconds())
}
