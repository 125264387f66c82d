package traceid

import (
	"context"
	"errors"
	"net/http"
)

const missingTraceIDMessage = "Unable to extract TraceId: Missing TraceId extension."

// ErrMissingTraceID is returned when no Layer for the requested identifier type
// ran before the caller.
var ErrMissingTraceID = errors.New("missing trace id")

// ctxKey is distinct for every identifier type, so layers for different types
// never see each other's values.
type ctxKey[T any] struct{}

// NewContext returns a copy of ctx carrying id, replacing any trace id of the
// same type set earlier.
func NewContext[T any](ctx context.Context, id TraceID[T]) context.Context {
	return context.WithValue(ctx, ctxKey[T]{}, id)
}

// FromContext returns the trace id of type T stored in ctx.
// It returns ErrMissingTraceID if there is none.
func FromContext[T any](ctx context.Context) (TraceID[T], error) {
	if ctx == nil {
		return TraceID[T]{}, ErrMissingTraceID
	}

	id, ok := ctx.Value(ctxKey[T]{}).(TraceID[T])
	if !ok {
		return TraceID[T]{}, ErrMissingTraceID
	}

	return id, nil
}

// FromRequest returns the trace id of type T attached to the request context.
func FromRequest[T any](r *http.Request) (TraceID[T], error) {
	return FromContext[T](r.Context())
}

// Extract adapts a handler that needs a trace id into an http.Handler.
// When the request carries no trace id of type T the pipeline is misconfigured,
// so the request is answered with 500 and a fixed message and fn is not called.
func Extract[T any](fn func(w http.ResponseWriter, r *http.Request, id TraceID[T])) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := FromRequest[T](r)
		if err != nil {
			writeMissingTraceID(w)
			return
		}

		fn(w, r, id)
	})
}

// writeMissingTraceID writes the fixed rejection. The body must match
// missingTraceIDMessage exactly, http.Error would append a newline.
func writeMissingTraceID(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusInternalServerError)

	_, _ = w.Write([]byte(missingTraceIDMessage))
}
