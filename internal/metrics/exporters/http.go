// Package exporters serves the Prometheus registry on its own listener,
// separate from the control surface.
package exporters

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/lightnode/internal/logging"
)

// HTTPHandler returns the Prometheus metrics HTTP handler.
// This collects all promauto-registered metrics automatically.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsServer exposes /metrics on a dedicated address.
type MetricsServer struct {
	srv    *http.Server
	ln     net.Listener
	logger logging.Logger
}

// NewMetricsServer creates a server for addr. Call Start to listen.
func NewMetricsServer(addr string, logger logging.Logger) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", HTTPHandler())
	return &MetricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens and serves in the background.
func (m *MetricsServer) Start() error {
	ln, err := net.Listen("tcp", m.srv.Addr)
	if err != nil {
		return err
	}
	m.ln = ln
	m.logger.Info("Metrics server started", "addr", ln.Addr().String())

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error("Metrics server failed", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or nil before Start.
func (m *MetricsServer) Addr() net.Addr {
	if m.ln == nil {
		return nil
	}
	return m.ln.Addr()
}

// Stop shuts the server down, waiting up to two seconds for scrapes.
func (m *MetricsServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.srv.Shutdown(ctx)
}
