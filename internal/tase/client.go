package tase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TASE is the Tel Aviv Stock Exchange data API, used here for official
// end-of-day prices. Access requires a subscription API key.
// https://www.tase.co.il/en/content/apis
const defaultBaseURL = "https://datawise.tase.co.il"

// rateLimitBackoff is how long to wait before the single re-attempt after
// the API signals rate limiting.
const rateLimitBackoff = 500 * time.Millisecond

// Client is an HTTP client for the TASE data API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new TASE client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new TASE client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// EODResponse represents the securities end-of-day trading response.
type EODResponse struct {
	Result []EODEntry `json:"result"`
}

// EODEntry is one trading day of one security.
type EODEntry struct {
	SecurityID   string  `json:"securityId"`
	TradeDate    string  `json:"tradeDate"`
	ClosingPrice float64 `json:"closingPrice"`
	Turnover     float64 `json:"turnover"`
}

// ClosingPrice fetches the official closing price of a security on a given
// trading day. ok is false when the exchange has no data for that security
// and date, which is not an error: non-traded days and off-exchange
// instruments are expected inputs.
func (c *Client) ClosingPrice(ctx context.Context, securityID string, date time.Time) (price float64, ok bool, err error) {
	params := url.Values{}
	params.Set("dateFrom", date.Format("2006-01-02"))
	params.Set("dateTo", date.Format("2006-01-02"))

	reqURL := fmt.Sprintf("%s/v1/securities/%s/eod?%s", c.baseURL, url.PathEscape(securityID), params.Encode())
	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read response: %w", err)
	}

	var eod EODResponse
	if err := json.Unmarshal(body, &eod); err != nil {
		return 0, false, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(eod.Result) == 0 {
		return 0, false, nil
	}
	return eod.Result[0].ClosingPrice, true, nil
}

// doRequest performs a GET with the API key header. A rate-limited request
// is re-attempted once after a short fixed backoff.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	resp, err := c.send(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		select {
		case <-time.After(rateLimitBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return c.send(ctx, reqURL)
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
