package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarhub/scholarship-crawler/internal/resilience"
)

func TestGet_ReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><h1>Scholarship</h1></html>")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Options{})
	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Scholarship")
}

func TestGet_SendsRotatingUserAgent(t *testing.T) {
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.UserAgent())
	}))
	defer srv.Close()

	c := New(Options{UserAgents: []string{"agent-a", "agent-b"}})
	for range 10 {
		_, err := c.Get(context.Background(), srv.URL)
		require.NoError(t, err)
	}

	for _, ua := range agents {
		assert.Contains(t, []string{"agent-a", "agent-b"}, ua)
	}
}

func TestGet_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok")) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(Options{Retries: 3, RetryBackoffMs: 1})

	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{Retries: 3})
	_, err := c.Get(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "404 is permanent, no retries")
}

func TestGet_PerHostDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := New(Options{Delay: 50 * time.Millisecond})
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		_, err := c.Get(ctx, srv.URL)
		require.NoError(t, err)
	}
	// First request is immediate, the next two wait a slot each.
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestGet_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := New(Options{})
	_, err := c.Get(ctx, srv.URL)
	assert.Error(t, err)
}

func TestGet_BadURL(t *testing.T) {
	c := New(Options{})
	_, err := c.Get(context.Background(), "://not-a-url")
	assert.Error(t, err)
}

func TestGet_CircuitBreakerOpensForDarkHost(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Options{
		Retries:        1,
		RetryBackoffMs: 1,
		Breaker:        resilience.CircuitBreakerConfig{FailureThreshold: 2},
	})
	ctx := context.Background()

	_, err := c.Get(ctx, srv.URL)
	assert.Error(t, err)
	_, err = c.Get(ctx, srv.URL)
	assert.Error(t, err)

	// Breaker is open now; the host is not contacted again.
	_, err = c.Get(ctx, srv.URL)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_ClientErrorsDoNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{Breaker: resilience.CircuitBreakerConfig{FailureThreshold: 2}})
	ctx := context.Background()

	for range 5 {
		_, err := c.Get(ctx, srv.URL)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, resilience.ErrCircuitOpen)
	}
}
