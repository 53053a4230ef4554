package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/smazurov/lightnode/internal/logging"
	"github.com/smazurov/lightnode/internal/metrics"
)

const (
	defaultReadTimeout     = 5 * time.Second
	defaultMaxRequestBytes = 8 << 10
	defaultShutdownGrace   = 2 * time.Second
)

// Options configures a Server.
type Options struct {
	Router *Router

	// ReadTimeout bounds how long a client may take to send its request.
	ReadTimeout time.Duration
	// MaxRequestBytes caps how much of a request is read.
	MaxRequestBytes int
	// ShutdownGrace is how long Stop waits for in-flight requests before
	// closing their sockets.
	ShutdownGrace time.Duration

	Logger logging.Logger
}

// Server accepts TCP connections and answers one request on each.
// Requests are dispatched one at a time, so commands from successive
// requests reach the engine in the order the requests were handled.
type Server struct {
	router      *Router
	readTimeout time.Duration
	maxRequest  int
	grace       time.Duration
	logger      logging.Logger

	listener net.Listener
	conns    map[net.Conn]struct{}
	closed   bool
	mu       sync.Mutex

	dispatch sync.Mutex
	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a server. Call Start to begin listening.
func New(opts Options) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = defaultMaxRequestBytes
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = defaultShutdownGrace
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger("server")
	}
	return &Server{
		router:      opts.Router,
		readTimeout: opts.ReadTimeout,
		maxRequest:  opts.MaxRequestBytes,
		grace:       opts.ShutdownGrace,
		logger:      opts.Logger,
		conns:       make(map[net.Conn]struct{}),
		done:        make(chan struct{}),
	}
}

// Start begins listening for connections on addr.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server already stopped")
	}
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("Control server started", "addr", ln.Addr().String())

	s.wg.Add(1)
	go s.acceptLoop(ln)

	return nil
}

// Addr returns the listening address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listening reports whether new connections are being serviced.
func (s *Server) Listening() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listener != nil && !s.closed
}

// Done is closed once Stop has finished.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// acceptLoop accepts incoming connections.
func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if !s.Listening() || errors.Is(err, net.ErrClosed) {
				return // Server is shutting down
			}
			s.logger.Error("Failed to accept connection", "error", err)
			continue
		}

		if !s.track(conn) {
			metrics.IncDropped()
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConn(conn)
		}()
	}
}

// track registers conn, refusing it once the server is closed.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	metrics.ConnectionOpened()
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	if _, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		metrics.ConnectionClosed()
	}
	s.mu.Unlock()
	conn.Close()
}

// handleConn runs a single request/response cycle.
func (s *Server) handleConn(conn net.Conn) {
	remote := conn.RemoteAddr().String()

	if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
		s.logger.Debug("Failed to set read deadline", "remote", remote, "error", err)
	}
	raw, err := readRequest(conn, s.maxRequest)
	if len(raw) == 0 {
		if err != nil {
			s.logger.Debug("Client sent no request", "remote", remote, "error", err)
		}
		return
	}

	s.dispatch.Lock()
	resp := s.router.Handle(raw, remote)
	s.dispatch.Unlock()

	if len(resp) == 0 {
		return
	}
	if err := conn.SetWriteDeadline(time.Now().Add(s.readTimeout)); err != nil {
		s.logger.Debug("Failed to set write deadline", "remote", remote, "error", err)
	}
	if _, err := conn.Write(resp); err != nil {
		s.logger.Debug("Failed to write response", "remote", remote, "error", err)
	}
}

// Stop closes the listener, lets in-flight requests finish for up to the
// shutdown grace period, then closes any sockets still open. Safe to call
// more than once.
func (s *Server) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		ln := s.listener
		s.mu.Unlock()

		if ln != nil {
			if closeErr := ln.Close(); closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
				err = closeErr
			}
		}

		finished := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(s.grace):
			s.mu.Lock()
			for conn := range s.conns {
				conn.Close()
			}
			s.mu.Unlock()
			<-finished
		}

		close(s.done)
		s.logger.Info("Control server stopped")
	})
	return err
}
