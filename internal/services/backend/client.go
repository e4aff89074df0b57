// Package backend talks to the completions API served by `etsytrack serve`.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// maxBodyBytes bounds how much of a response is read
const maxBodyBytes = 1 << 20

// Client reads and writes week records over HTTP
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new backend client with dependency injection
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// wireRecord mirrors the JSON body. Stats stay raw so a malformed stats
// member defaults on its own without losing the completions.
type wireRecord struct {
	Completions *domain.CompletionRecord `json:"completions"`
	Stats       json.RawMessage          `json:"stats"`
}

// wireStats accepts any JSON number for a counter
type wireStats struct {
	Listed  json.Number `json:"listed"`
	Sales   json.Number `json:"sales"`
	Revenue json.Number `json:"revenue"`
}

func (w wireStats) stats() domain.Stats {
	return domain.Stats{
		Listed:  statNumber(w.Listed),
		Sales:   statNumber(w.Sales),
		Revenue: statNumber(w.Revenue),
	}
}

// statNumber truncates fractions toward zero and clamps into the stat range
func statNumber(n json.Number) int {
	if n == "" {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return int(max(0, min(i, domain.MaxStatValue)))
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return int(max(0, min(math.Trunc(f), domain.MaxStatValue)))
}

// Fetch loads a week record, returning a *domain.BackendError on failure.
// Members absent from the response fall back to their defaults.
func (c *Client) Fetch(ctx context.Context, weekKey string) (domain.WeekRecord, error) {
	c.logger.Debug("fetching week", "week", weekKey)

	body, err := c.do(ctx, "load", weekKey, http.MethodGet, c.completionsURL(weekKey), nil)
	if err != nil {
		return domain.WeekRecord{}, err
	}

	var wire wireRecord
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.WeekRecord{}, &domain.BackendError{Op: "load", WeekKey: weekKey, Err: fmt.Errorf("decode response: %w", err)}
	}

	rec := domain.DefaultWeekRecord()
	if wire.Completions != nil && *wire.Completions != nil {
		rec.Completions = *wire.Completions
	}
	if len(wire.Stats) > 0 {
		var stats wireStats
		if err := json.Unmarshal(wire.Stats, &stats); err != nil {
			c.logger.Warn("ignoring malformed stats", "week", weekKey, "error", err)
		} else {
			rec.Stats = stats.stats()
		}
	}

	c.logger.Debug("fetched week", "week", weekKey, "completions", len(rec.Completions))
	return rec, nil
}

// Push stores a week record, returning a *domain.BackendError on failure
func (c *Client) Push(ctx context.Context, weekKey string, rec domain.WeekRecord) error {
	c.logger.Debug("saving week", "week", weekKey, "completions", len(rec.Completions))

	if rec.Completions == nil {
		rec.Completions = domain.CompletionRecord{}
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return &domain.BackendError{Op: "save", WeekKey: weekKey, Err: err}
	}

	if _, err := c.do(ctx, "save", weekKey, http.MethodPost, c.completionsURL(weekKey), payload); err != nil {
		return err
	}

	c.logger.Debug("week saved", "week", weekKey)
	return nil
}

// Load returns the stored record, or the default record when the backend
// cannot be reached or answers with anything unusable. It never fails.
func (c *Client) Load(ctx context.Context, weekKey string) domain.WeekRecord {
	rec, err := c.Fetch(ctx, weekKey)
	if err != nil {
		c.logger.Warn("load failed, using defaults", "week", weekKey, "error", err)
		return domain.DefaultWeekRecord()
	}
	return rec
}

// Save pushes a record and only logs failures
func (c *Client) Save(ctx context.Context, weekKey string, rec domain.WeekRecord) {
	if err := c.Push(ctx, weekKey, rec); err != nil {
		c.logger.Error("save failed", "week", weekKey, "error", err)
	}
}

// Summary fetches the totals across every stored week
func (c *Client) Summary(ctx context.Context) (domain.Summary, error) {
	body, err := c.do(ctx, "summary", "", http.MethodGet, c.baseURL+"/api/stats/summary", nil)
	if err != nil {
		return domain.Summary{}, err
	}

	var s domain.Summary
	if err := json.Unmarshal(body, &s); err != nil {
		return domain.Summary{}, &domain.BackendError{Op: "summary", Err: fmt.Errorf("decode response: %w", err)}
	}
	return s, nil
}

// Ping checks the health endpoint
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, "ping", "", http.MethodGet, c.baseURL+"/", nil)
	return err
}

func (c *Client) completionsURL(weekKey string) string {
	return c.baseURL + "/api/completions/" + url.PathEscape(weekKey)
}

func (c *Client) do(ctx context.Context, op, weekKey, method, target string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &domain.BackendError{Op: op, WeekKey: weekKey, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.BackendError{Op: op, WeekKey: weekKey, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.BackendError{Op: op, WeekKey: weekKey, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.BackendError{Op: op, WeekKey: weekKey, Status: resp.StatusCode}
	}
	return body, nil
}
