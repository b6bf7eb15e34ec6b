// Package api is an HTTP client for the ScoutAPM REST API (read-only).
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scoutapm/scout-cli/internal/buildinfo"
	"github.com/scoutapm/scout-cli/internal/timeutil"
)

const DefaultBaseURL = "https://scoutapm.com/api/v0"

// MaxRangeSecs caps from/to queries at two weeks, matching the API contract.
const MaxRangeSecs = 14 * 24 * 3600

// ValidMetrics are the metric types the API serves time series for.
var ValidMetrics = []string{
	"apdex",
	"response_time",
	"response_time_95th",
	"errors",
	"throughput",
	"queue_time",
}

// ValidInsights are the insight categories the API exposes.
var ValidInsights = []string{"n_plus_one", "memory_bloat", "slow_query"}

type Client struct {
	APIKey    string
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:    apiKey,
		BaseURL:   DefaultBaseURL,
		UserAgent: "scout-cli/" + buildinfo.Version,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// ListApps lists applications accessible with the API key. When activeSince
// is non-empty, apps whose last_reported_at predates it are dropped.
func (c *Client) ListApps(ctx context.Context, activeSince string) ([]any, error) {
	res, err := c.get(ctx, "/apps", nil)
	if err != nil {
		return nil, err
	}
	apps := arrayAt(res, "results", "apps")
	if activeSince == "" {
		return apps, nil
	}
	since, err := timeutil.ParseTime(activeSince)
	if err != nil {
		return nil, err
	}
	filtered := make([]any, 0, len(apps))
	for _, app := range apps {
		raw, _ := stringAt(app, "last_reported_at")
		t, err := timeutil.ParseTime(raw)
		if err == nil && !t.Before(since) {
			filtered = append(filtered, app)
		}
	}
	return filtered, nil
}

// GetApp fetches a single application by ID.
func (c *Client) GetApp(ctx context.Context, appID uint64) (any, error) {
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d", appID), nil)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results", "app"), nil
}

// ListMetrics lists the metric types available for an app.
func (c *Client) ListMetrics(ctx context.Context, appID uint64) ([]string, error) {
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/metrics", appID), nil)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, v := range arrayAt(res, "results", "availableMetrics") {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetMetric fetches time-series data for one metric type. Exactly one of
// rng or from/to should be provided; rng wins when both are set.
func (c *Client) GetMetric(ctx context.Context, appID uint64, metricType, from, to, rng string) (any, error) {
	if err := validateMetricType(metricType); err != nil {
		return nil, err
	}
	q, err := rangeQuery(from, to, rng, false)
	if err != nil {
		return nil, err
	}
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/metrics/%s", appID, metricType), q)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results", "series"), nil
}

// ListEndpoints lists endpoints for an app. Defaults to a trailing 7-day
// window when no bounds are given.
func (c *Client) ListEndpoints(ctx context.Context, appID uint64, from, to, rng string) (any, error) {
	q, err := rangeQuery(from, to, rng, true)
	if err != nil {
		return nil, err
	}
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/endpoints", appID), q)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results"), nil
}

// GetEndpointMetrics fetches time-series data for one endpoint.
func (c *Client) GetEndpointMetrics(ctx context.Context, appID uint64, endpointID, metricType, from, to, rng string) (any, error) {
	if err := validateMetricType(metricType); err != nil {
		return nil, err
	}
	q, err := rangeQuery(from, to, rng, false)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/apps/%d/endpoints/%s/metrics/%s", appID, url.PathEscape(endpointID), metricType)
	res, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results", "series"), nil
}

// ListEndpointTraces lists traces for an endpoint (the API caps this at 100
// traces within 7 days).
func (c *Client) ListEndpointTraces(ctx context.Context, appID uint64, endpointID, from, to, rng string) (any, error) {
	q, err := rangeQuery(from, to, rng, true)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("/apps/%d/endpoints/%s/traces", appID, url.PathEscape(endpointID))
	res, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results"), nil
}

// FetchTrace fetches a single trace.
func (c *Client) FetchTrace(ctx context.Context, appID, traceID uint64) (any, error) {
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/traces/%d", appID, traceID), nil)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results", "trace"), nil
}

// ListErrorGroups lists error groups for an app, optionally bounded by
// from/to and filtered by endpoint.
func (c *Client) ListErrorGroups(ctx context.Context, appID uint64, from, to, endpoint string) ([]any, error) {
	if from != "" && to != "" {
		if err := validateTimeRange(from, to); err != nil {
			return nil, err
		}
	}
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if endpoint != "" {
		q.Set("endpoint", endpoint)
	}
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/error_groups", appID), q)
	if err != nil {
		return nil, err
	}
	return arrayAt(res, "results", "error_groups"), nil
}

// GetErrorGroup fetches one error group.
func (c *Client) GetErrorGroup(ctx context.Context, appID, errorID uint64) (any, error) {
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/error_groups/%d", appID, errorID), nil)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results", "error_group"), nil
}

// GetErrorGroupErrors lists individual errors within a group (max 100).
func (c *Client) GetErrorGroupErrors(ctx context.Context, appID, errorID uint64) ([]any, error) {
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/error_groups/%d/errors", appID, errorID), nil)
	if err != nil {
		return nil, err
	}
	return arrayAt(res, "results", "errors"), nil
}

// GetAllInsights fetches all insight categories for an app.
func (c *Client) GetAllInsights(ctx context.Context, appID uint64, limit int) (any, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/insights", appID), q)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results"), nil
}

// GetInsightByType fetches one insight category.
func (c *Client) GetInsightByType(ctx context.Context, appID uint64, insightType string, limit int) (any, error) {
	if err := validateInsightType(insightType); err != nil {
		return nil, err
	}
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/insights/%s", appID, insightType), q)
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results"), nil
}

// HistoryQuery holds the optional filters for insight-history requests.
type HistoryQuery struct {
	From      string
	To        string
	Limit     int
	Cursor    uint64
	Direction string
	Page      int
}

func (h HistoryQuery) values() url.Values {
	q := url.Values{}
	if h.From != "" {
		q.Set("from", h.From)
	}
	if h.To != "" {
		q.Set("to", h.To)
	}
	if h.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", h.Limit))
	}
	if h.Cursor > 0 {
		q.Set("pagination_cursor", fmt.Sprintf("%d", h.Cursor))
	}
	if h.Direction != "" {
		q.Set("pagination_direction", h.Direction)
	}
	if h.Page > 0 {
		q.Set("pagination_page", fmt.Sprintf("%d", h.Page))
	}
	return q
}

// GetInsightsHistory fetches historical insights with cursor pagination.
func (c *Client) GetInsightsHistory(ctx context.Context, appID uint64, h HistoryQuery) (any, error) {
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/insights/history", appID), h.values())
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results"), nil
}

// GetInsightsHistoryByType is GetInsightsHistory scoped to one category.
func (c *Client) GetInsightsHistoryByType(ctx context.Context, appID uint64, insightType string, h HistoryQuery) (any, error) {
	if err := validateInsightType(insightType); err != nil {
		return nil, err
	}
	res, err := c.get(ctx, fmt.Sprintf("/apps/%d/insights/history/%s", appID, insightType), h.values())
	if err != nil {
		return nil, err
	}
	return valueAt(res, "results"), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (any, error) {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	endpoint := base + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-SCOUT-API", c.APIKey)
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// Tolerate non-JSON bodies (HTML error pages); envelope checks below
	// still see the status code.
	var data any
	_ = json.Unmarshal(b, &data)

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &AuthError{Message: "Authentication failed. Check your API key."}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, ok := stringAt(data, "header", "status", "message")
		if !ok || msg == "" {
			msg = "API request failed"
		}
		return nil, &APIError{Message: msg, StatusCode: resp.StatusCode, Response: data}
	}
	// Some failures come back as 200 with an error code in the envelope.
	if code, ok := numberAt(data, "header", "status", "code"); ok && code >= 400 {
		msg, ok := stringAt(data, "header", "status", "message")
		if !ok || msg == "" {
			msg = "Unknown API error"
		}
		return nil, &APIError{Message: msg, StatusCode: int(code), Response: data}
	}
	return data, nil
}

func validateMetricType(metricType string) error {
	for _, m := range ValidMetrics {
		if m == metricType {
			return nil
		}
	}
	return fmt.Errorf("invalid metric_type, must be one of: %s", strings.Join(ValidMetrics, ", "))
}

func validateInsightType(insightType string) error {
	for _, m := range ValidInsights {
		if m == insightType {
			return nil
		}
	}
	return fmt.Errorf("invalid insight_type, must be one of: %s", strings.Join(ValidInsights, ", "))
}

func validateTimeRange(from, to string) error {
	f, err := timeutil.ParseTime(from)
	if err != nil {
		return err
	}
	t, err := timeutil.ParseTime(to)
	if err != nil {
		return err
	}
	if !f.Before(t) {
		return fmt.Errorf("from_time must be before to_time")
	}
	if t.Sub(f).Seconds() > MaxRangeSecs {
		return fmt.Errorf("time range cannot exceed 2 weeks")
	}
	return nil
}

// rangeQuery resolves the from/to/range argument triple into query params.
// With defaultWindow set, an unbounded request falls back to trailing 7 days.
func rangeQuery(from, to, rng string, defaultWindow bool) (url.Values, error) {
	switch {
	case rng != "":
		f, t, err := timeutil.CalculateRange(rng, to)
		if err != nil {
			return nil, err
		}
		from, to = f, t
	case from == "" && to == "" && defaultWindow:
		f, t, err := timeutil.CalculateRange("7days", "")
		if err != nil {
			return nil, err
		}
		from, to = f, t
	case defaultWindow:
		if to == "" {
			to = timeutil.FormatTime(time.Now())
		}
		if from == "" {
			f, _, err := timeutil.CalculateRange("7days", to)
			if err != nil {
				return nil, err
			}
			from = f
		}
	}
	if from != "" && to != "" {
		if err := validateTimeRange(from, to); err != nil {
			return nil, err
		}
	}
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return q, nil
}

// --- JSON traversal helpers -------------------------------------------------

func valueAt(v any, path ...string) any {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	return cur
}

func arrayAt(v any, path ...string) []any {
	arr, _ := valueAt(v, path...).([]any)
	return arr
}

func stringAt(v any, path ...string) (string, bool) {
	s, ok := valueAt(v, path...).(string)
	return s, ok
}

func numberAt(v any, path ...string) (float64, bool) {
	n, ok := valueAt(v, path...).(float64)
	return n, ok
}
