// Package traceid attaches a per-request correlation identifier to net/http requests.
//
// A Layer generates a fresh TraceID for every request, stores it in the request
// context under a key typed by the identifier type, and optionally mirrors it
// into a request and response header. Downstream handlers read it back with
// FromContext, FromRequest or Extract.
package traceid

import "fmt"

// Unavailable is used in place of an identifier that cannot be produced or
// cannot be encoded as a header value.
const Unavailable = "unavailable"

// Generator produces trace identifiers of type T.
// Generate is called once per request from concurrent goroutines, so
// implementations must not rely on unsynchronized shared state. It cannot fail:
// a generator that hits an error returns a fallback value instead.
type Generator[T any] interface {
	Generate() T
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc[T any] func() T

// Generate calls f.
func (f GeneratorFunc[T]) Generate() T {
	return f()
}

// TraceID is the identifier attached to a single request.
// It is a plain value and is copied whenever it is read from a context.
type TraceID[T any] struct {
	ID T
}

// String renders the identifier. Types implementing fmt.Stringer control their
// own rendering, everything else uses the default fmt formatting.
func (t TraceID[T]) String() string {
	return fmt.Sprint(t.ID)
}

// newTraceID asks gen for a fresh identifier.
func newTraceID[T any](gen Generator[T]) TraceID[T] {
	return TraceID[T]{ID: gen.Generate()}
}
