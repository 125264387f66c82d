package traceid

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

const (
	metricGenerated       = "trace_ids_generated_total"
	metricHeaderFallbacks = "trace_id_header_fallbacks_total"
)

var ErrInvalidHeaderName = errors.New("invalid trace id header name")

// Recorder receives counters from a Layer. metric.MetricService satisfies it.
type Recorder interface {
	IncrementCounter(metricName string, by uint, tags map[string]string)
}

type nopRecorder struct{}

func (nopRecorder) IncrementCounter(string, uint, map[string]string) {}

type options struct {
	recorder Recorder
	header   string
}

// Option configures a Layer.
type Option func(*options)

// WithHeader enables mirroring the trace id into the named request and response header.
func WithHeader(name string) Option {
	return func(o *options) {
		o.header = name
	}
}

// WithRecorder sets the sink for the layer's counters.
func WithRecorder(rec Recorder) Option {
	return func(o *options) {
		o.recorder = rec
	}
}

// Layer attaches a TraceID[T] to every request passing through it.
// It is immutable once created and safe for concurrent use.
type Layer[T any] struct {
	gen      Generator[T]
	recorder Recorder
	header   string
}

// New creates a Layer that uses gen to produce identifiers.
// It returns ErrInvalidHeaderName if WithHeader was given a name that is not a
// valid HTTP header field name.
func New[T any](gen Generator[T], opts ...Option) (*Layer[T], error) {
	if gen == nil {
		return nil, errors.New("trace id generator is required")
	}

	o := options{recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.header != "" && !httpguts.ValidHeaderFieldName(o.header) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHeaderName, o.header)
	}

	if o.recorder == nil {
		o.recorder = nopRecorder{}
	}

	return &Layer[T]{
		gen:      gen,
		header:   http.CanonicalHeaderKey(o.header),
		recorder: o.recorder,
	}, nil
}

// Header returns the canonical name of the mirrored header, or an empty string
// if header mirroring is disabled.
func (l *Layer[T]) Header() string {
	return l.header
}

// Middleware returns the layer in the func(next http.Handler) http.Handler form
// used for middleware chains.
func (l *Layer[T]) Middleware() func(next http.Handler) http.Handler {
	return l.Handler
}

// Handler wraps next. For every request it generates a new trace id and stores it in the
// request context, replacing any trace id of the same type set upstream. When a header is
// configured, next receives a request whose header carries the rendered id and the same value
// is set on the response once next commits it. Ids that are not valid header values are
// replaced with Unavailable. A panic in next propagates unchanged.
func (l *Layer[T]) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := newTraceID(l.gen)
		l.recorder.IncrementCounter(metricGenerated, 1, nil)

		r = r.WithContext(NewContext(r.Context(), id))

		if l.header == "" {
			next.ServeHTTP(w, r)
			return
		}

		value := l.headerValue(r, id)

		hdr := r.Header.Clone()
		if hdr == nil {
			hdr = make(http.Header)
		}

		hdr.Set(l.header, value)
		r.Header = hdr

		rw := &respWriter{
			ResponseWriter: w,
			header:         l.header,
			value:          value,
		}

		next.ServeHTTP(rw, r)
		rw.finish()
	})
}

// headerValue renders id for use as a header value.
func (l *Layer[T]) headerValue(r *http.Request, id TraceID[T]) string {
	value := id.String()
	if httpguts.ValidHeaderFieldValue(value) {
		return value
	}

	slog.DebugContext(r.Context(), "trace id is not a valid header value", slog.String("header", l.header))
	l.recorder.IncrementCounter(metricHeaderFallbacks, 1, nil)

	return Unavailable
}
