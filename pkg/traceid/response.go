package traceid

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// respWriter sets the trace id header on the response right before it is committed.
type respWriter struct {
	http.ResponseWriter
	header      string
	value       string
	wroteHeader bool
}

// WriteHeader adds the trace id header and forwards the status code to the underlying ResponseWriter.
// Informational statuses other than 101 do not commit the response, so the header is added again on
// the final status.
func (rw *respWriter) WriteHeader(status int) {
	rw.ResponseWriter.Header().Set(rw.header, rw.value)

	if status >= 200 || status == http.StatusSwitchingProtocols {
		rw.wroteHeader = true
	}

	rw.ResponseWriter.WriteHeader(status)
}

// Write commits the response with an implicit 200 status if WriteHeader was not called yet.
func (rw *respWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}

	return rw.ResponseWriter.Write(b)
}

// finish sets the header for handlers that returned without writing anything,
// leaving net/http to send the implicit 200.
func (rw *respWriter) finish() {
	if !rw.wroteHeader {
		rw.ResponseWriter.Header().Set(rw.header, rw.value)
	}
}

func (rw *respWriter) Flush() {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}

	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack hands over the underlying connection, which websocket upgrades rely on.
func (rw *respWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}

	rw.wroteHeader = true

	return hj.Hijack()
}

// Unwrap lets http.ResponseController reach the underlying ResponseWriter.
func (rw *respWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
