// Package taskrunner is a client for the hosted browser-automation
// platform that downloads the monthly report artifacts. Scrape jobs are
// published there as actors; a run produces a dataset of JSON items and a
// key-value store of raw files.
package taskrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.apify.com"

const (
	defaultPollInterval = 3 * time.Second
	defaultWaitTimeout  = 180 * time.Second
)

// Terminal run statuses.
const (
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
	StatusAborted   = "ABORTED"
	StatusTimedOut  = "TIMED-OUT"
)

// Client is an HTTP client for the task-runner API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client

	pollInterval time.Duration
	waitTimeout  time.Duration
}

// NewClient creates a new task-runner client.
func NewClient(token string) *Client {
	return NewClientWithBaseURL(token, defaultBaseURL)
}

// NewClientWithBaseURL creates a new task-runner client with a custom base URL (for testing)
func NewClientWithBaseURL(token, baseURL string) *Client {
	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval: defaultPollInterval,
		waitTimeout:  defaultWaitTimeout,
	}
}

// Run is the state of one actor run.
type Run struct {
	ID                     string `json:"id"`
	Status                 string `json:"status"`
	DefaultDatasetID       string `json:"defaultDatasetId"`
	DefaultKeyValueStoreID string `json:"defaultKeyValueStoreId"`
}

type runResponse struct {
	Data Run `json:"data"`
}

// RunAndWait starts an actor run and polls it until it reaches a terminal
// status. Any terminal status other than SUCCEEDED is an error, as is
// exceeding the overall wait timeout.
func (c *Client) RunAndWait(ctx context.Context, actorID string, input any) (*Run, error) {
	return c.RunAndWaitFor(ctx, actorID, input, c.waitTimeout)
}

// RunAndWaitFor is RunAndWait with a per-run wait cap, for actors slower
// than the default.
func (c *Client) RunAndWaitFor(ctx context.Context, actorID string, input any, wait time.Duration) (*Run, error) {
	if input == nil {
		input = map[string]any{}
	}
	body, err := c.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("/v2/acts/%s/runs?timeout=%d", actorID, int(wait.Seconds())), input)
	if err != nil {
		return nil, fmt.Errorf("failed to start actor %s: %w", actorID, err)
	}
	var started runResponse
	if err := json.Unmarshal(body, &started); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run response: %w", err)
	}

	run := started.Data
	deadline := time.Now().Add(wait)
	for {
		switch run.Status {
		case StatusSucceeded:
			return &run, nil
		case StatusFailed, StatusAborted, StatusTimedOut:
			return nil, fmt.Errorf("actor %s finished with status %s", actorID, run.Status)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("timed out waiting for actor %s run %s", actorID, run.ID)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		body, err := c.doRequest(ctx, http.MethodGet, "/v2/actor-runs/"+run.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to poll run %s: %w", run.ID, err)
		}
		var polled runResponse
		if err := json.Unmarshal(body, &polled); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run response: %w", err)
		}
		run = polled.Data
	}
}

// DatasetItems fetches the JSON items of a run's dataset.
func (c *Client) DatasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/v2/datasets/%s/items", datasetID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset %s: %w", datasetID, err)
	}
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset items: %w", err)
	}
	return items, nil
}

// KeyValueRecord fetches one raw record, e.g. a downloaded CSV artifact.
func (c *Client) KeyValueRecord(ctx context.Context, storeID, key string) ([]byte, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/v2/key-value-stores/%s/records/%s", storeID, key), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record %s from store %s: %w", key, storeID, err)
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return data, nil
}
