package metric

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Run(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetricService(reg).IncrementCounter("served_total", 4, nil)

	srv := New(Config{Listen: "localhost:0"}, reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Run(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "traceid_served_total 4")

	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestServer_RunListenError(t *testing.T) {
	srv := New(Config{Listen: "invalid-address"}, prometheus.NewRegistry())

	err := srv.Run(context.Background())

	assert.Error(t, err)
	assert.Empty(t, srv.Addr())
}
