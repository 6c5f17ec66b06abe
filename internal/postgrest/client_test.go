package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikii-john/e-commerce-backend/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, httpclient.New(httpclient.DefaultConfig()), logger)
}

func TestClient_Get(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/products", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "name.asc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Mug"}]`))
	})

	data, err := client.From("products").Select("*").Order("name.asc").Get(context.Background())
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "Mug", rows[0]["name"])
}

func TestClient_EqFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.1", r.URL.Query().Get("id"))
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	_, err := client.From("products").Select("*").Eq("id", 1).Single().Get(context.Background())
	require.NoError(t, err)
}

func TestClient_SingleSetsAcceptHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.pgrst.object+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	_, err := client.From("products").Select("*").Eq("id", 1).Single().Get(context.Background())
	require.NoError(t, err)
}

func TestClient_IlikeFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ilike.mugs", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.From("products").Select("*").Ilike("category", "mugs").Get(context.Background())
	require.NoError(t, err)
}

func TestClient_Insert(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "ORD-")

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":10,"order_number":"ORD-1700000000000"}]`))
	})

	data, err := client.From("orders").Insert(context.Background(), map[string]any{
		"order_number": "ORD-1700000000000",
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":10`)
}

func TestClient_Upsert(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Prefer"), "resolution=merge-duplicates")
		assert.Equal(t, "id", r.URL.Query().Get("on_conflict"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.From("products").OnConflict("id").Upsert(context.Background(), []map[string]any{{"id": 1}})
	require.NoError(t, err)
}

func TestClient_StoreErrorParsed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotAcceptable)
		_, _ = w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned","details":"The result contains 0 rows"}`))
	})

	_, err := client.From("products").Select("*").Eq("id", 999).Single().Get(context.Background())
	require.Error(t, err)

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, CodeNoRows, storeErr.Code)
	assert.Equal(t, http.StatusNotAcceptable, storeErr.HTTPStatus)
	assert.Contains(t, storeErr.Details, "0 rows")
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream timed out"))
	})

	_, err := client.From("products").Select("*").Get(context.Background())
	require.Error(t, err)

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "HTTP502", storeErr.Code)
	assert.Equal(t, "upstream timed out", storeErr.Message)
	assert.True(t, IsRetryable(storeErr))
}

func TestClient_Rpc(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/decrement_stock", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var args map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&args))
		assert.EqualValues(t, 1, args["p_product_id"])
		assert.EqualValues(t, 3, args["p_quantity"])

		_, _ = w.Write([]byte(`null`))
	})

	_, err := client.Rpc(context.Background(), "decrement_stock", map[string]any{
		"p_product_id": 1,
		"p_quantity":   3,
	})
	require.NoError(t, err)
}

func TestClient_RpcRaiseException(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"P0001","message":"insufficient stock or product not found: 1"}`))
	})

	_, err := client.Rpc(context.Background(), "decrement_stock", map[string]any{
		"p_product_id": 1,
		"p_quantity":   100,
	})
	require.Error(t, err)

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, CodeRaiseException, storeErr.Code)
	assert.False(t, IsRetryable(storeErr))
}

func TestClient_Count(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-24/6")
		w.WriteHeader(http.StatusOK)
	})

	count, err := client.From("products").Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
}

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		header  string
		want    int64
		wantErr bool
	}{
		{"0-24/3573", 3573, false},
		{"*/0", 0, false},
		{"0-0/*", 0, false},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := parseContentRange(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
