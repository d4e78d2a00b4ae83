package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// API holds metrics for calls to the search service.
type API struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewAPI registers the API metrics on reg, reusing collectors that are
// already registered. A nil reg returns nil, which Observe accepts.
func NewAPI(reg prometheus.Registerer) (*API, error) {
	if reg == nil {
		return nil, nil
	}
	m := &API{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ragclient",
			Name:      "api_requests_total",
			Help:      "Search service requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ragclient",
			Name:      "api_request_duration_seconds",
			Help:      "Search service request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
	}
	if err := registerOrReuse(reg, &m.Requests); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.Duration); err != nil {
		return nil, err
	}
	return m, nil
}

// Observe records one call to endpoint that started at start.
func (m *API) Observe(endpoint string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Requests.WithLabelValues(endpoint, status).Inc()
	m.Duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("register metric: %w", err)
	}
	return nil
}
