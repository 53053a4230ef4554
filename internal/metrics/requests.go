package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lightnode",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Control surface requests by route and status code",
	}, []string{"route", "code"})

	connectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lightnode",
		Subsystem: "http",
		Name:      "connections_active",
		Help:      "Open client connections",
	})

	connectionsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lightnode",
		Subsystem: "http",
		Name:      "connections_dropped_total",
		Help:      "Connections closed without a response during shutdown",
	})
)

// IncRequest counts a handled request. Route is "ajax", "static" or "other".
func IncRequest(route string, code int) {
	requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// ConnectionOpened and ConnectionClosed track live sockets.
func ConnectionOpened() { connectionsActive.Inc() }

// ConnectionClosed decrements the live socket gauge.
func ConnectionClosed() { connectionsActive.Dec() }

// IncDropped counts a connection refused while not listening.
func IncDropped() { connectionsDropped.Inc() }
