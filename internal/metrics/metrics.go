package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	SignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "signups_total",
		Help:      "Total accounts created.",
	})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	// Wishlist metrics

	WishlistMutationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "wishlist_mutations_total",
		Help:      "Total wishlist mutations, by operation.",
	}, []string{"op"})

	// Digest metrics

	DigestEmailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "digest_emails_total",
		Help:      "Total wishlist reminder emails, by outcome.",
	}, []string{"outcome"})

	DigestRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wardrobe",
		Name:      "digest_run_duration_seconds",
		Help:      "Time taken for one digest run.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wardrobe",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardrobe",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		SignupsTotal,
		LoginsTotal,
		WishlistMutationsTotal,
		DigestEmailsTotal,
		DigestRunDuration,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// Checker exposes health endpoints next to /metrics.
type Checker interface {
	LivenessHandler() http.Handler
	ReadinessHandler() http.Handler
}

func NewServer(addr string, checker Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", checker.LivenessHandler())
	mux.Handle("/readyz", checker.ReadinessHandler())
	return &http.Server{Addr: addr, Handler: mux}
}
