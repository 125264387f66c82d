package edge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ksysoev/traceid/pkg/edge/middleware"
	"github.com/ksysoev/traceid/pkg/traceid"
)

type Config struct {
	Listen string `mapstructure:"listen"`
	// ClientLimit caps concurrent requests per client address, 0 disables the cap.
	ClientLimit int `mapstructure:"client_limit"`
}

// HTTPServer is a demo server showing the trace id layer in front of a few handlers.
type HTTPServer struct {
	layer   *traceid.Layer[string]
	metrics middleware.MetricService
	isReady chan struct{}
	addr    string
	config  Config
}

func New(cfg Config, layer *traceid.Layer[string], metrics middleware.MetricService) (*HTTPServer, error) {
	if layer == nil {
		return nil, errors.New("trace id layer is required")
	}

	if metrics == nil {
		return nil, errors.New("metric service is required")
	}

	return &HTTPServer{
		config:  cfg,
		layer:   layer,
		metrics: metrics,
		isReady: make(chan struct{}),
	}, nil
}

// Handler builds the middleware chain in front of the routes.
// Request metrics run first so rejected requests are counted too, and the trace id layer runs last.
func (s *HTTPServer) Handler() http.Handler {
	mw := []func(next http.Handler) http.Handler{
		middleware.Metrics(s.metrics),
		middleware.ClientIP(),
		middleware.LimitClients(s.config.ClientLimit),
		s.layer.Middleware(),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", traceid.Extract(s.handleTraceID))
	mux.Handle("GET /inspect", traceid.Extract(s.handleInspect))
	mux.Handle("GET /ws", traceid.Extract(s.handleWS))

	var handler http.Handler = mux

	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}

	return handler
}

// Run starts listening on the configured address and serves requests until ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		close(s.isReady)
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}

	s.addr = ln.Addr().String()

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		_ = server.Close()
	}()

	close(s.isReady)

	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Addr waits for the server to be ready and returns the bound address in "host:port" format.
// It returns an empty string if the listener could not be created.
func (s *HTTPServer) Addr() string {
	<-s.isReady
	return s.addr
}
