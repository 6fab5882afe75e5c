package taskrunner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRunAndWait_PollsToSuccess(t *testing.T) {
	var polls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token")
		}
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/v2/acts/actor1/runs"):
			var input map[string]any
			if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
				t.Errorf("unreadable input body: %v", err)
			}
			if input["url"] != "https://example.test" {
				t.Errorf("unexpected input: %+v", input)
			}
			w.Write([]byte(`{"data":{"id":"run1","status":"RUNNING","defaultDatasetId":"ds1","defaultKeyValueStoreId":"kv1"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v2/actor-runs/run1":
			polls++
			status := "RUNNING"
			if polls >= 2 {
				status = "SUCCEEDED"
			}
			w.Write([]byte(`{"data":{"id":"run1","status":"` + status + `","defaultDatasetId":"ds1","defaultKeyValueStoreId":"kv1"}}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	client.pollInterval = time.Millisecond

	run, err := client.RunAndWait(context.Background(), "actor1", map[string]any{"url": "https://example.test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.DefaultDatasetID != "ds1" || run.DefaultKeyValueStoreID != "kv1" {
		t.Errorf("unexpected run: %+v", run)
	}
	if polls < 2 {
		t.Errorf("expected at least 2 polls, got %d", polls)
	}
}

func TestRunAndWait_FailedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"data":{"id":"run1","status":"RUNNING"}}`))
			return
		}
		w.Write([]byte(`{"data":{"id":"run1","status":"FAILED"}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	client.pollInterval = time.Millisecond

	_, err := client.RunAndWait(context.Background(), "actor1", nil)
	if err == nil {
		t.Fatal("expected an error for a failed run")
	}
	if !strings.Contains(err.Error(), "FAILED") {
		t.Errorf("expected status in error, got: %v", err)
	}
}

func TestRunAndWait_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"run1","status":"RUNNING"}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	client.pollInterval = time.Millisecond
	client.waitTimeout = 10 * time.Millisecond

	_, err := client.RunAndWait(context.Background(), "actor1", nil)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDatasetItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/datasets/ds1/items" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`[{"fileBase64":"aGVsbG8=","reportName":"דוח"}]`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	items, err := client.DatasetItems(context.Background(), "ds1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0]["fileBase64"] != "aGVsbG8=" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestKeyValueRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/key-value-stores/kv1/records/report.csv" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte("raw,csv,bytes"))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-token", server.URL)
	data, err := client.KeyValueRecord(context.Background(), "kv1", "report.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "raw,csv,bytes" {
		t.Errorf("unexpected record: %q", string(data))
	}
}

func TestDoRequest_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("bad-token", server.URL)
	_, err := client.DatasetItems(context.Background(), "ds1")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got: %v", err)
	}
}
