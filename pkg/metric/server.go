package metric

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Listen string `mapstructure:"listen"`
}

type Server struct {
	gatherer prometheus.Gatherer
	isReady  chan struct{}
	addr     string
	config   Config
}

func New(cfg Config, gatherer prometheus.Gatherer) *Server {
	return &Server{
		config:   cfg,
		gatherer: gatherer,
		isReady:  make(chan struct{}),
	}
}

// Run serves the collected metrics on /metrics until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		close(s.isReady)
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}

	s.addr = ln.Addr().String()

	router := http.NewServeMux()
	router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
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

// Addr blocks until the server is listening and returns its address.
func (s *Server) Addr() string {
	<-s.isReady
	return s.addr
}
