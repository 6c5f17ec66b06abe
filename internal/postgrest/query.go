package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Query builds a filtered request against a single table. Builder methods
// return the receiver so calls can be chained; terminal methods (Get, Insert,
// Update, Count) execute the request.
type Query struct {
	client     *Client
	table      string
	selects    string
	filters    url.Values
	order      string
	limit      int
	single     bool
	onConflict string
}

// Select sets the column projection, including embedded relations such as
// "*, order_items(*)".
func (q *Query) Select(columns string) *Query {
	q.selects = columns
	return q
}

// Eq adds an equality filter on the given column.
func (q *Query) Eq(column string, value any) *Query {
	q.addFilter(column, fmt.Sprintf("eq.%v", value))
	return q
}

// Ilike adds a case-insensitive pattern filter on the given column.
func (q *Query) Ilike(column, pattern string) *Query {
	q.addFilter(column, "ilike."+pattern)
	return q
}

// Order sets the result ordering, e.g. "created_at.desc".
func (q *Query) Order(order string) *Query {
	q.order = order
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single requests exactly one row. The store returns a bare object instead of
// an array, and fails with PGRST116 when the filter matches zero or many rows.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// OnConflict sets the conflict target column for upserts.
func (q *Query) OnConflict(column string) *Query {
	q.onConflict = column
	return q
}

func (q *Query) addFilter(column, expr string) {
	if q.filters == nil {
		q.filters = url.Values{}
	}
	q.filters.Add(column, expr)
}

func (q *Query) buildURL() string {
	values := url.Values{}
	for col, exprs := range q.filters {
		for _, e := range exprs {
			values.Add(col, e)
		}
	}
	if q.selects != "" {
		values.Set("select", q.selects)
	}
	if q.order != "" {
		values.Set("order", q.order)
	}
	if q.limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", q.limit))
	}
	if q.onConflict != "" {
		values.Set("on_conflict", q.onConflict)
	}

	u := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, q.table)
	if encoded := values.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (q *Query) applyAccept(req *http.Request) {
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}
}

// Get executes the query as a read and returns the raw JSON result.
func (q *Query) Get(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.buildURL(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create store request: %w", err)
	}
	q.applyAccept(req)
	return q.client.execute(ctx, req)
}

// Insert executes the query as a row insert and returns the inserted rows.
func (q *Query) Insert(ctx context.Context, rows any) (json.RawMessage, error) {
	return q.write(ctx, http.MethodPost, rows, "return=representation")
}

// Upsert inserts rows, merging on the configured conflict column.
func (q *Query) Upsert(ctx context.Context, rows any) (json.RawMessage, error) {
	return q.write(ctx, http.MethodPost, rows, "return=representation,resolution=merge-duplicates")
}

// Update executes the query as a partial update of all rows matching the
// filters and returns the updated rows.
func (q *Query) Update(ctx context.Context, patch any) (json.RawMessage, error) {
	return q.write(ctx, http.MethodPatch, patch, "return=representation")
}

func (q *Query) write(ctx context.Context, method string, body any, prefer string) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal store payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, q.buildURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", prefer)
	q.applyAccept(req)

	return q.client.execute(ctx, req)
}

// Count returns the total number of rows matching the filters without
// transferring them.
func (q *Query) Count(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, q.buildURL(), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("create store request: %w", err)
	}
	return q.client.executeHead(ctx, req)
}
