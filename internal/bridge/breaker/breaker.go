// Package breaker puts a circuit breaker in front of a remote bridge so a
// dead Redis/Postgres/S3 backend costs one fast error per call instead of a
// timeout. The stores already fail open on bridge errors.
package breaker

import (
	"context"
	"time"

	"github.com/dmitrijs2005/furnistore/internal/bridge"
	"github.com/dmitrijs2005/furnistore/internal/logging"
	"github.com/sony/gobreaker/v2"
)

// Settings tune the breaker. Zero values pick the defaults below.
type Settings struct {
	Name             string
	FailureThreshold uint32        // consecutive failures that open the breaker (default 5)
	OpenTimeout      time.Duration // time spent open before probing again (default 30s)
	HalfOpenRequests uint32        // probes allowed while half-open (default 1)
}

type Bridge struct {
	b  bridge.Bridge
	cb *gobreaker.CircuitBreaker[[]byte]
}

var _ bridge.Batcher = (*Bridge)(nil)

func Wrap(b bridge.Bridge, st Settings, log logging.Logger) *Bridge {
	threshold := st.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := st.OpenTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	halfOpen := st.HalfOpenRequests
	if halfOpen == 0 {
		halfOpen = 1
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        st.Name,
		MaxRequests: halfOpen,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "bridge breaker state changed",
				"bridge", name, "from", from.String(), "to", to.String())
		},
	})

	return &Bridge{b: b, cb: cb}
}

// State exposes the breaker state for diagnostics.
func (w *Bridge) State() gobreaker.State {
	return w.cb.State()
}

func (w *Bridge) Get(ctx context.Context, key string) ([]byte, error) {
	return w.cb.Execute(func() ([]byte, error) {
		return w.b.Get(ctx, key)
	})
}

func (w *Bridge) Set(ctx context.Context, key string, value []byte) error {
	_, err := w.cb.Execute(func() ([]byte, error) {
		return nil, w.b.Set(ctx, key, value)
	})
	return err
}

func (w *Bridge) Delete(ctx context.Context, key string) error {
	_, err := w.cb.Execute(func() ([]byte, error) {
		return nil, w.b.Delete(ctx, key)
	})
	return err
}

func (w *Bridge) SetMany(ctx context.Context, entries []bridge.Entry) error {
	_, err := w.cb.Execute(func() ([]byte, error) {
		return nil, bridge.SetAll(ctx, w.b, entries)
	})
	return err
}

func (w *Bridge) DeleteMany(ctx context.Context, keys []string) error {
	_, err := w.cb.Execute(func() ([]byte, error) {
		return nil, bridge.DeleteAll(ctx, w.b, keys...)
	})
	return err
}
