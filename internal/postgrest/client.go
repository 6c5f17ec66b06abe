// Package postgrest is a minimal client for a PostgREST-compatible store API
// (such as Supabase). It exposes a filter-builder for the REST conventions the
// repositories need, classifies store error codes into application errors, and
// provides the retry policy applied around remote calls.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mikii-john/e-commerce-backend/pkg/httpclient"
)

// Config holds connection settings for the store API.
type Config struct {
	// BaseURL is the API root, e.g. https://project.supabase.co
	BaseURL string

	// APIKey authenticates requests. Passed both as the apikey header and
	// as a bearer token, per the Supabase REST convention.
	APIKey string
}

// Client executes requests against the store's REST endpoint. Each call is a
// single attempt; callers wrap operations with WithRetry when they want the
// retry policy applied.
type Client struct {
	baseURL string
	apiKey  string
	http    httpclient.Doer
	logger  *slog.Logger
}

// NewClient creates a store client on top of the given HTTP transport.
func NewClient(cfg Config, doer httpclient.Doer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    doer,
		logger:  logger,
	}
}

// From starts a query against the given table.
func (c *Client) From(table string) *Query {
	return &Query{client: c, table: table}
}

// Rpc invokes a stored procedure exposed under /rest/v1/rpc.
func (c *Client) Rpc(ctx context.Context, fn string, args any) (json.RawMessage, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc args: %w", err)
	}

	url := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.execute(ctx, req)
}

// execute sends the request with auth headers and returns either the response
// body or an error, never both.
func (c *Client) execute(ctx context.Context, req *http.Request) (json.RawMessage, error) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read store response: %w", err)
	}

	c.logger.DebugContext(ctx, "store request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 400 {
		return nil, parseError(resp.StatusCode, data)
	}

	return data, nil
}

// executeHead sends a HEAD request and returns the total row count parsed from
// the Content-Range header.
func (c *Client) executeHead(ctx context.Context, req *http.Request) (int64, error) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return 0, parseError(resp.StatusCode, data)
	}

	return parseContentRange(resp.Header.Get("Content-Range"))
}

// parseError turns a non-2xx response body into a structured store error.
// Bodies that are not the standard {code, message, details, hint} shape fall
// back to an error keyed on the HTTP status.
func parseError(status int, body []byte) error {
	var storeErr Error
	if err := json.Unmarshal(body, &storeErr); err == nil && (storeErr.Code != "" || storeErr.Message != "") {
		storeErr.HTTPStatus = status
		return &storeErr
	}
	return &Error{
		Code:       fmt.Sprintf("HTTP%d", status),
		Message:    strings.TrimSpace(string(body)),
		HTTPStatus: status,
	}
}

// parseContentRange extracts the total from a "0-24/3573" style header value.
func parseContentRange(header string) (int64, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return 0, fmt.Errorf("malformed Content-Range header: %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, nil
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse Content-Range total %q: %w", total, err)
	}
	return n, nil
}
