package tase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClosingPrice_HappyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v1/securities/1234567/eod") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("dateFrom") != "2025-09-15" {
			t.Errorf("unexpected dateFrom: %s", r.URL.Query().Get("dateFrom"))
		}
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("missing api key header")
		}
		w.Write([]byte(`{"result":[{"securityId":"1234567","tradeDate":"2025-09-15","closingPrice":105.3}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	date := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	price, ok, err := client.ClosingPrice(context.Background(), "1234567", date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a price")
	}
	if price != 105.3 {
		t.Errorf("unexpected price: %v", price)
	}
}

func TestClosingPrice_NoData(t *testing.T) {
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":[]}`))
	}))
	defer empty.Close()

	client := NewClientWithBaseURL("test-key", empty.URL)
	_, ok, err := client.ClosingPrice(context.Background(), "1234567", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no price for an empty result")
	}

	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	client = NewClientWithBaseURL("test-key", notFound.URL)
	_, ok, err = client.ClosingPrice(context.Background(), "1234567", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no price for a 404")
	}
}

func TestClosingPrice_RetriesOnceOnRateLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"result":[{"closingPrice":50}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	price, ok, err := client.ClosingPrice(context.Background(), "1234567", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || price != 50 {
		t.Fatalf("expected the retried price, got ok=%v price=%v", ok, price)
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 calls, got %d", calls)
	}
}

func TestClosingPrice_PersistentRateLimitFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	_, _, err := client.ClosingPrice(context.Background(), "1234567", time.Now())
	if err == nil {
		t.Fatal("expected an error after the second rate limit")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status in error, got: %v", err)
	}
}

func TestClosingPrice_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL)
	_, _, err := client.ClosingPrice(context.Background(), "1234567", time.Now())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status in error, got: %v", err)
	}
}
