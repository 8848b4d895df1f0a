package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestEnsureRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if id == "" {
		t.Fatal("EnsureRequestID() returned an empty id")
	}
	if got, ok := RequestID(ctx); !ok || got != id {
		t.Errorf("RequestID() = %q, %v, want %q", got, ok, id)
	}

	same, again := EnsureRequestID(ctx)
	if again != id || same != ctx {
		t.Error("EnsureRequestID() should keep an existing id")
	}

	if _, ok := RequestID(context.Background()); ok {
		t.Error("RequestID() on an empty context should report false")
	}
}

func TestTransportSendsRequestID(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.Header.Get(RequestIDHeader))
		mu.Unlock()
	}))
	defer server.Close()

	client := NewClient(0, nil)
	ctx := WithRequestID(context.Background(), "op-1")
	for range 2 {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Do() failed: %v", err)
		}
		resp.Body.Close()
		if req.Header.Get(RequestIDHeader) != "" {
			t.Error("transport modified the caller's request")
		}
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() failed: %v", err)
	}
	resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 || got[0] != "op-1" || got[1] != "op-1" || got[2] != "" {
		t.Errorf("request ids = %q", got)
	}
}
