package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	OutcomeCacheHit    = "cache_hit"
	OutcomeSigned      = "signed"
	OutcomeEmptyKey    = "empty_key"
	OutcomeMissing     = "missing"
	OutcomeSignFailure = "sign_failure"
)

// Metrics holds the gallery's Prometheus instruments. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	resolutions     *prometheus.CounterVec
	probes          *prometheus.CounterVec
	pageFetches     *prometheus.CounterVec
	listingRequests *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the gallery instruments on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_url_resolutions_total",
			Help: "Signed URL resolutions by outcome.",
		}, []string{"outcome"}),
		probes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_existence_probes_total",
			Help: "Storage existence probes by result.",
		}, []string{"result"}),
		pageFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_page_fetches_total",
			Help: "Listing page fetches issued by the pager by result.",
		}, []string{"result"}),
		listingRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gallery_listing_requests_total",
			Help: "Listing API requests by route and HTTP status.",
		}, []string{"route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveResolution counts one resolver outcome.
func (m *Metrics) ObserveResolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

// ObserveProbe counts one existence probe.
func (m *Metrics) ObserveProbe(found bool, err error) {
	if m == nil {
		return
	}
	result := "missing"
	switch {
	case err != nil:
		result = "error"
	case found:
		result = "found"
	}
	m.probes.WithLabelValues(result).Inc()
}

// ObservePageFetch counts one pager fetch.
func (m *Metrics) ObservePageFetch(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.pageFetches.WithLabelValues(result).Inc()
}

// ObserveListingRequest counts one listing API response.
func (m *Metrics) ObserveListingRequest(route string, status int) {
	if m == nil {
		return
	}
	m.listingRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveRequest records HTTP latency.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
