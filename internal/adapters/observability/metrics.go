package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "hotel"

func counter(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
}

func histogram(name, help string, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: name, Help: help, Buckets: prometheus.DefBuckets,
	}, labels)
}

var (
	HTTPRequests     = counter("http_requests_total", "HTTP requests.", "route", "method", "status")
	HTTPLatency      = histogram("http_request_duration_seconds", "HTTP request duration seconds.", "route", "method")
	ExternalRequests = counter("external_requests_total", "Outbound requests.", "service", "endpoint", "status")
	ExternalLatency  = histogram("external_request_duration_seconds", "Outbound request duration seconds.", "service", "endpoint")

	// event: hit|miss|set|del|error
	CacheEvents = counter("cache_events_total", "Cache events.", "cache", "event")

	// outcome: created|unavailable|error
	Reservations = counter("reservations_total", "Reservation attempts by outcome.", "hotel", "outcome")

	// outcome: ok|conflict|noop
	Stays = counter("stays_total", "Check-ins and check-outs by outcome.", "event", "outcome")

	RoomsOccupied = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "rooms_occupied", Help: "Currently occupied rooms per hotel."},
		[]string{"hotel"},
	)
)

// Serve exposes reg on a side port. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		Reservations, Stays, RoomsOccupied)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveReservation(hotel, outcome string) {
	Reservations.WithLabelValues(hotel, outcome).Inc()
}

func ObserveStay(event, outcome string) {
	Stays.WithLabelValues(event, outcome).Inc()
}

func SetOccupied(hotel string, n int) {
	RoomsOccupied.WithLabelValues(hotel).Set(float64(n))
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
