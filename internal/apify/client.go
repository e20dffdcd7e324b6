package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.apify.com/v2"

	// How long the run endpoint is asked to block waiting for the actor,
	// in seconds. The HTTP client timeout leaves a small buffer on top.
	waitForFinishSeconds = 300
)

// RawAd is one as-received record from the scraper dataset. The schema is
// not stable across actor versions, so it stays a loose map until the
// normalizer maps it onto the canonical shape.
type RawAd map[string]any

// SearchQuery describes one scraping run.
type SearchQuery struct {
	SearchTerms string
	Country     string
	MaxAds      int
}

// Client talks to the Apify actor-run API.
type Client struct {
	baseURL    string
	actorID    string
	token      string
	httpClient *http.Client
}

// NewClient creates an Apify client for the given actor. The token may be
// empty; FetchAds reports it as a configuration error at call time.
func NewClient(token, actorID string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		actorID: actorID,
		token:   token,
		httpClient: &http.Client{
			Timeout: (waitForFinishSeconds + 10) * time.Second,
		},
	}
}

type actorInput struct {
	SearchTerm   string `json:"searchTerm"`
	Country      string `json:"country"`
	MaxAds       int    `json:"maxAds"`
	ActiveStatus string `json:"activeStatus"`
	MediaType    string `json:"mediaType"`
	Language     string `json:"language"`
}

type runResponse struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

// FetchAds starts an actor run, waits for it to finish, and returns the
// items of its default dataset.
func (c *Client) FetchAds(ctx context.Context, q SearchQuery) ([]RawAd, error) {
	if c.token == "" {
		return nil, errors.New("APIFY_API_TOKEN is not configured")
	}

	run, err := c.startRun(ctx, q)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, errors.New("scraper timeout: try reducing maxAds or try again later")
		}
		return nil, err
	}

	return c.datasetItems(ctx, run.Data.DefaultDatasetID)
}

func (c *Client) startRun(ctx context.Context, q SearchQuery) (*runResponse, error) {
	input := actorInput{
		SearchTerm:   q.SearchTerms,
		Country:      q.Country,
		MaxAds:       q.MaxAds,
		ActiveStatus: "ALL",
		MediaType:    "ALL",
		Language:     "ALL",
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/runs?token=%s&waitForFinish=%d",
		c.baseURL, c.actorID, url.QueryEscape(c.token), waitForFinishSeconds)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("start actor run: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("start actor run: %s: %s", resp.Status, readErrorBody(resp.Body))
	}

	var run runResponse
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		return nil, fmt.Errorf("decode run response: %w", err)
	}
	if run.Data.DefaultDatasetID == "" {
		return nil, errors.New("actor run returned no dataset")
	}

	return &run, nil
}

func (c *Client) datasetItems(ctx context.Context, datasetID string) ([]RawAd, error) {
	endpoint := fmt.Sprintf("%s/datasets/%s/items?token=%s",
		c.baseURL, datasetID, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch dataset items: %s: %s", resp.Status, readErrorBody(resp.Body))
	}

	var items []RawAd
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode dataset items: %w", err)
	}

	return items, nil
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(b) == 0 {
		return "(no body)"
	}
	return string(b)
}
