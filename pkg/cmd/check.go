package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// RunHealthCheck checks that the locally running demo server attaches trace ids.
// It loads the configuration to find the HTTP listen address and the trace id header, then calls checkServer.
// Returns an error if the logger fails to initialize, the configuration cannot be loaded, the listen address is
// invalid, or the check itself fails.
func RunHealthCheck(ctx context.Context, arg *args) error {
	if err := initLogger(arg); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(arg)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	host, port, err := net.SplitHostPort(cfg.HTTP.Listen)
	if err != nil {
		return fmt.Errorf("invalid HTTP listen address format: %s: %w", cfg.HTTP.Listen, err)
	}

	if host == "" {
		host = "localhost"
	}

	cl := &http.Client{
		Timeout: 5 * time.Second,
	}

	return checkServer(ctx, cl, "http://"+net.JoinHostPort(host, port), cfg.Trace.Header)
}

// checkServer requests the root endpoint at baseURL and verifies the handler saw a trace id.
// When header is not empty, the response header must carry the same id the handler reported.
func checkServer(ctx context.Context, cl *http.Client, baseURL, header string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := cl.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform health check: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status code: %d", resp.StatusCode)
	}

	id, ok := strings.CutPrefix(string(body), "TraceId=")
	if !ok || id == "" {
		return fmt.Errorf("unexpected response body: %q", body)
	}

	if header == "" {
		return nil
	}

	if got := resp.Header.Get(header); got != id {
		return fmt.Errorf("trace id header %s is %q, handler saw %q", header, got, id)
	}

	return nil
}
