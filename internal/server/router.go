package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/smazurov/lightnode/internal/engine"
	"github.com/smazurov/lightnode/internal/events"
	"github.com/smazurov/lightnode/internal/logging"
	"github.com/smazurov/lightnode/internal/metrics"
)

const ajaxPrefix = "/ajax"

// Notifier accepts parameter commands. *engine.Engine satisfies it.
type Notifier interface {
	Notify(cmd engine.Command) error
}

// Resolver maps a URL path to a static response.
type Resolver interface {
	Resolve(path string) (Response, error)
}

// Router turns raw request bytes into raw response bytes.
type Router struct {
	engine Notifier
	static Resolver
	bus    *events.Bus
	logger logging.Logger
}

// NewRouter creates a router that sends control commands to n and serves
// every other GET from static.
func NewRouter(n Notifier, static Resolver, bus *events.Bus, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.GetLogger("server")
	}
	return &Router{engine: n, static: static, bus: bus, logger: logger}
}

// Handle processes one request. A nil result means the request gets an
// empty reply (POST and methods other than GET).
func (rt *Router) Handle(raw []byte, remote string) []byte {
	req, err := ParseRequest(raw)
	if err != nil {
		rt.logger.Warn("Failed to parse request", "remote", remote, "error", err)
		rt.record("", "", "other", http.StatusInternalServerError, remote)
		return internalError().Bytes()
	}

	switch req.Method {
	case http.MethodGet:
		route, resp := rt.serveGet(req)
		rt.record(req.Method, req.Path, route, resp.Code, remote)
		return resp.Bytes()

	case http.MethodPost:
		rt.logger.Debug("POST received", "path", req.Path, "remote", remote, "body", string(req.Body))
		rt.record(req.Method, req.Path, "other", 0, remote)
		return nil

	default:
		// Other methods get no reply at all.
		rt.logger.Debug("Unsupported method", "method", req.Method, "path", req.Path, "remote", remote)
		rt.record(req.Method, req.Path, "other", 0, remote)
		return nil
	}
}

func (rt *Router) serveGet(req *Request) (string, Response) {
	if isAjax(req.Path) {
		if err := rt.dispatchAjax(req.Path); err != nil {
			rt.logger.Warn("Ajax command failed", "path", req.Path, "error", err)
			return "ajax", rt.errorResponse(req.Path, err)
		}
		return "ajax", Response{Code: http.StatusOK, ContentType: contentTypeJSON}
	}

	resp, err := rt.static.Resolve(req.Path)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			rt.logger.Error("Static file failed", "path", req.Path, "error", err)
		}
		return "static", rt.errorResponse(req.Path, err)
	}
	return "static", resp
}

// dispatchAjax handles /ajax/<command>/<int>.
func (rt *Router) dispatchAjax(path string) error {
	parts := strings.Split(strings.TrimPrefix(path, ajaxPrefix+"/"), "/")
	if len(parts) != 2 {
		return fmt.Errorf("%w: want /ajax/<command>/<int>, got %q", ErrAjaxDispatch, path)
	}

	arg, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return fmt.Errorf("%w: argument %q is not an integer", ErrAjaxDispatch, parts[1])
	}

	cmd, err := engine.ParseCommand(parts[0], arg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAjaxDispatch, err)
	}
	if err := rt.engine.Notify(cmd); err != nil {
		return fmt.Errorf("%w: %w", ErrAjaxDispatch, err)
	}

	rt.logger.Info("Command queued", "command", cmd.String())
	return nil
}

// errorResponse collapses every failure into 404 or 500.
func (rt *Router) errorResponse(path string, err error) Response {
	if errors.Is(err, ErrNotFound) {
		return notFound(path)
	}
	return internalError()
}

func (rt *Router) record(method, path, route string, code int, remote string) {
	metrics.IncRequest(route, code)
	rt.bus.Publish(events.RequestHandledEvent{
		Method: method,
		Path:   path,
		Code:   code,
		Remote: remote,
	})
}

func isAjax(path string) bool {
	return path == ajaxPrefix || strings.HasPrefix(path, ajaxPrefix+"/")
}
