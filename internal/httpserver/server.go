package httpserver

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"
)

// ShutdownTimeout bounds how long in-flight requests may run once a
// shutdown has been requested.
var ShutdownTimeout = 10 * time.Second

// Server wraps http.Server with the timeouts the service runs with.
type Server struct {
	inner *http.Server
}

// New constructs a server listening on the given port.
func New(port int, handler http.Handler) *Server {
	inner := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return &Server{inner: inner}
}

// Start serves HTTP traffic until the listener closes.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
