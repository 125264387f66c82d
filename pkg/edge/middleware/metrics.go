package middleware

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

const (
	metricRequests        = "http_requests_total"
	metricRequestDuration = "http_request_duration_seconds"
)

// MetricService is the subset of metric.MetricService used by Metrics.
type MetricService interface {
	IncrementCounter(metricName string, by uint, tags map[string]string)
	RecordDuration(metricName string, tags map[string]string, fn func())
}

type respWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

// WriteHeader sets the HTTP status code for the response and writes it to the underlying ResponseWriter.
func (rw *respWriter) WriteHeader(status int) {
	if !rw.wroteHeader {
		rw.status = status
		rw.wroteHeader = true
	}

	rw.ResponseWriter.WriteHeader(status)
}

func (rw *respWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack records the connection takeover as 101 and passes it to the underlying ResponseWriter.
func (rw *respWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}

	if !rw.wroteHeader {
		rw.status = http.StatusSwitchingProtocols
		rw.wroteHeader = true
	}

	return hj.Hijack()
}

func (rw *respWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Metrics wraps an HTTP handler to log request details such as duration, status code, and path.
// Each request also feeds a latency histogram in svc tagged with the method, and a request
// counter tagged with the method and response status.
// Returns an HTTP handler middleware for recording request metrics.
func Metrics(svc MetricService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()

			rw := &respWriter{
				ResponseWriter: w,
				status:         http.StatusOK, // Initialize with a default status.
			}

			svc.RecordDuration(metricRequestDuration, map[string]string{"method": r.Method}, func() {
				next.ServeHTTP(rw, r)
			})

			svc.IncrementCounter(metricRequests, 1, map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(rw.status),
			})

			slog.InfoContext(r.Context(), "edge request",
				slog.Duration("duration", time.Since(now)),
				slog.Int("status", rw.status),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		})
	}
}
