package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_RunStopsOnCancel(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	s := NewServer("127.0.0.1:0", h, time.Second, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunBadAddress(t *testing.T) {
	s := NewServer("256.0.0.1:-1", http.NotFoundHandler(), time.Second, logging.Discard())
	require.Error(t, s.Run(context.Background()))
}
