package portraits

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stumpline/cricket-auction/internal/platform/logging"
	"github.com/stumpline/cricket-auction/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg ClientConfig) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	cfg.Logger = logging.NewNop()
	return NewClient(cfg)
}

func TestClient_PortraitURL(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("name") != "Virat Kohli" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://img.example/kohli.png"}`))
	}, ClientConfig{})

	ctx := t.Context()
	got, err := client.PortraitURL(ctx, "Virat Kohli")
	if err != nil {
		t.Fatalf("portrait url: %v", err)
	}
	if got != "https://img.example/kohli.png" {
		t.Fatalf("unexpected url %q", got)
	}

	// Unknown players resolve to an empty url, not an error.
	missing, err := client.PortraitURL(ctx, "Nobody")
	if err != nil {
		t.Fatalf("missing portrait: %v", err)
	}
	if missing != "" {
		t.Fatalf("expected empty url for unknown player, got %q", missing)
	}

	if _, err := client.PortraitURL(ctx, "  "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"url":"https://img.example/p.png"}`))
	}, ClientConfig{MaxRetries: 3})

	got, err := client.PortraitURL(t.Context(), "Rohit Sharma")
	if err != nil {
		t.Fatalf("portrait url after retries: %v", err)
	}
	if got != "https://img.example/p.png" {
		t.Fatalf("unexpected url %q", got)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", hits.Load())
	}
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, ClientConfig{
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	ctx := t.Context()
	for i := 0; i < 2; i++ {
		if _, err := client.PortraitURL(ctx, "Player A"); err == nil {
			t.Fatal("expected upstream failure")
		}
	}

	_, err := client.PortraitURL(ctx, "Player B")
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
}

func TestClient_BatchPortraitURLs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "Missing Player" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"url":"https://img.example/` + name + `.png"}`))
	}, ClientConfig{BatchSize: 2})

	got := client.BatchPortraitURLs(t.Context(), []string{"A", "B", "Missing Player", "C"})
	if len(got) != 3 {
		t.Fatalf("expected 3 resolved portraits, got %d: %+v", len(got), got)
	}
	if got["A"] == "" || got["Missing Player"] != "" {
		t.Fatalf("unexpected batch result: %+v", got)
	}
}
