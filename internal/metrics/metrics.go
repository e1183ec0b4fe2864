// Package metrics holds the Prometheus collectors for the booth service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns its own prometheus.Registry so tests can build as many as
// they like without colliding on the default registerer.
type Registry struct {
	reg *prometheus.Registry

	SignupAttempts  *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ProviderLatency *prometheus.HistogramVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		SignupAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booth_signup_attempts_total",
				Help: "Signup submissions by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booth_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "booth_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "booth_signup_provider_duration_seconds",
				Help:    "Latency of outbound mailing-list calls",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"provider"},
		),
	}
	r.reg.MustRegister(
		r.SignupAttempts,
		r.HTTPRequests,
		r.HTTPDuration,
		r.ProviderLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveSignup counts one submission attempt. A nil Registry is a no-op.
func (r *Registry) ObserveSignup(provider, outcome string) {
	if r == nil {
		return
	}
	r.SignupAttempts.WithLabelValues(provider, outcome).Inc()
}

// ObserveProvider records the latency of one outbound call.
func (r *Registry) ObserveProvider(provider string, d time.Duration) {
	if r == nil {
		return
	}
	r.ProviderLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (r *Registry) ObserveHTTP(method, route string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
