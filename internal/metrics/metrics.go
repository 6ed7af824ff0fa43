// Package metrics exposes record-service counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hospital_data"

// Recorder observes record operations. It owns its registry so tests and
// multiple servers in one process do not collide on the default one.
type Recorder struct {
	registry     *prometheus.Registry
	submitted    *prometheus.CounterVec
	filtered     *prometheus.CounterVec
	draftUpdates *prometheus.CounterVec
	stored       *prometheus.GaugeVec
	requests     *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_submitted_total",
			Help:      "Records added through a create form.",
		}, []string{"collection"}),
		filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_requests_total",
			Help:      "Filtered list requests, split by whether a query was given.",
		}, []string{"collection", "query"}),
		draftUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_updates_total",
			Help:      "Draft field updates by outcome.",
		}, []string{"collection", "result"}),
		stored: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_stored",
			Help:      "Records currently held in memory.",
		}, []string{"collection"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		r.submitted, r.filtered, r.draftUpdates, r.stored, r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Submitted(collection string, stored int) {
	r.submitted.WithLabelValues(collection).Inc()
	r.stored.WithLabelValues(collection).Set(float64(stored))
}

// Stored sets the current size of a collection, used for seeds at startup.
func (r *Recorder) Stored(collection string, n int) {
	r.stored.WithLabelValues(collection).Set(float64(n))
}

func (r *Recorder) Filtered(collection, query string) {
	label := "all"
	if query != "" {
		label = "query"
	}
	r.filtered.WithLabelValues(collection, label).Inc()
}

func (r *Recorder) DraftUpdated(collection string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	r.draftUpdates.WithLabelValues(collection, result).Inc()
}

func (r *Recorder) Request(method, route string, status int, d time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
