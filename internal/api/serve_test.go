package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAndServe_StopsWithContext(t *testing.T) {
	srv, _ := newTestServer(t, false)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "server did not shut down")
	}
}

func TestListenAndServe_ReportsListenError(t *testing.T) {
	srv, _ := newTestServer(t, false)
	err := srv.ListenAndServe(context.Background(), "127.0.0.1:-1")
	assert.Error(t, err)
}
