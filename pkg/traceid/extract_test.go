package traceid

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		wantErr error
		name    string
		want    string
	}{
		{
			name: "trace id present",
			ctx:  NewContext(context.Background(), TraceID[string]{ID: "abc"}),
			want: "abc",
		},
		{
			name:    "trace id missing",
			ctx:     context.Background(),
			wantErr: ErrMissingTraceID,
		},
		{
			name:    "trace id of another type",
			ctx:     NewContext(context.Background(), TraceID[mockTraceID]{ID: mockTraceID{id: "abc"}}),
			wantErr: ErrMissingTraceID,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: ErrMissingTraceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := FromContext[string](tt.ctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id.ID)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, id.ID)
		})
	}
}

func TestExtract_MissingTraceID(t *testing.T) {
	called := false

	handler := Extract(func(http.ResponseWriter, *http.Request, TraceID[string]) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	resp := rec.Result()
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Unable to extract TraceId: Missing TraceId extension.", string(body))
}

func TestExtract_StringTraceID(t *testing.T) {
	layer, err := New(UUID())
	require.NoError(t, err)

	handler := layer.Handler(Extract(func(w http.ResponseWriter, _ *http.Request, id TraceID[string]) {
		_, _ = io.WriteString(w, "TraceId="+id.String())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Regexp(t, `^TraceId=[0-9a-f-]{36}$`, rec.Body.String())
	assert.Empty(t, rec.Header().Get(testHeader))
}

func TestExtract_CustomTraceID(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantHeader string
	}{
		{name: "without header", header: "", wantHeader: ""},
		{name: "with header", header: testHeader, wantHeader: "mock_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer, err := New[mockTraceID](mockGenerator(), WithHeader(tt.header))
			require.NoError(t, err)

			handler := layer.Handler(Extract(func(w http.ResponseWriter, _ *http.Request, id TraceID[mockTraceID]) {
				_, _ = io.WriteString(w, "TraceId="+id.String())
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "TraceId=mock_id", rec.Body.String())
			assert.Equal(t, tt.wantHeader, rec.Header().Get(testHeader))
		})
	}
}

func TestExtract_WrongType(t *testing.T) {
	layer, err := New[mockTraceID](mockGenerator())
	require.NoError(t, err)

	handler := layer.Handler(Extract(func(w http.ResponseWriter, _ *http.Request, _ TraceID[string]) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, missingTraceIDMessage, rec.Body.String())
}
