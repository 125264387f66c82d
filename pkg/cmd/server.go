package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ksysoev/traceid/pkg/edge"
	"github.com/ksysoev/traceid/pkg/metric"
	"github.com/ksysoev/traceid/pkg/traceid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// RunServerCommand initializes and starts the demo HTTP server and, when configured, the metrics server.
// It takes ctx of type context.Context for managing the server lifecycle and args of type *args to load configuration.
// It returns an error if the configuration fails to load, servers cannot start, or any runtime error occurs.
func RunServerCommand(ctx context.Context, args *args) error {
	if err := initLogger(args); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpServ, err := newHTTPServer(cfg, metric.NewMetricService(reg))
	if err != nil {
		return err
	}

	logAttrs := []any{
		"http", cfg.HTTP.Listen,
		"generator", cfg.Trace.Generator,
		"header", cfg.Trace.Header,
	}

	metricsEnabled := cfg.Metrics.Listen != ""
	if metricsEnabled {
		logAttrs = append(logAttrs, "metrics", cfg.Metrics.Listen)
	} else {
		logAttrs = append(logAttrs, "metrics", "disabled")
	}

	slog.InfoContext(ctx, "server started", logAttrs...)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return httpServ.Run(ctx) })

	if metricsEnabled {
		metricServ := metric.New(cfg.Metrics, reg)
		eg.Go(func() error { return metricServ.Run(ctx) })
	}

	return eg.Wait()
}

// newHTTPServer wires the configured generator and header into a trace id layer and builds the demo server around it.
func newHTTPServer(cfg *appConfig, metrics metric.MetricService) (*edge.HTTPServer, error) {
	gen, err := traceid.Lookup(cfg.Trace.Generator)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace id generator: %w", err)
	}

	layer, err := traceid.New(gen,
		traceid.WithHeader(cfg.Trace.Header),
		traceid.WithRecorder(metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace id layer: %w", err)
	}

	httpServ, err := edge.New(cfg.HTTP, layer, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create http server: %w", err)
	}

	return httpServ, nil
}
