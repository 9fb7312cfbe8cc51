package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIFetcherDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"notifications":[{"id":"n1","name":"Asha","productName":"Linen Dress","joinedAt":"2026-09-01T10:00:00Z"}]}`))
	}))
	defer srv.Close()

	fetcher := NewAPIFetcher(srv.URL, srv.Client())
	got, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].DisplayName != "Asha" || got[0].ProductName != "Linen Dress" {
		t.Fatalf("decoded notification mismatch: %+v", got[0])
	}
}

func TestAPIFetcherRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	fetcher := NewAPIFetcher(srv.URL, srv.Client())
	if _, err := fetcher.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
