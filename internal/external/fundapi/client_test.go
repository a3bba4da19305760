package fundapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishankgp/MF-return-tracker/pkg/config"
	"github.com/ishankgp/MF-return-tracker/pkg/httputil"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
)

// memoryCache is an in-process Cache used to observe cache traffic
type memoryCache struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		data: map[string][]byte{},
		ttls: map[string]time.Duration{},
	}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.ttls[key] = ttl
	return nil
}

const payload = `{
  "funds": [
    {
      "name": "Bandhan Small Cap Fund",
      "code": "147946",
      "current_nav": 48.21,
      "current_date": "17-10-2026",
      "year_breakdown": {
        "5year": {"year1": 12.5, "year2": 31.2, "max_dd_5y": 18.4, "year1_max_dd": 9.1}
      }
    },
    {"name": "No Breakdown Fund"}
  ]
}`

func newTestClient(url string, cache Cache) *Client {
	cfg := &config.Config{FundAPI: config.FundAPIConfig{Timeout: 2 * time.Second}}
	hc := httputil.New(cfg, logger.NewNop())
	return NewClient(hc, url, cache, 10*time.Minute, logger.NewNop())
}

func TestFetchFunds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	funds, err := newTestClient(server.URL, nil).FetchFunds(context.Background())
	require.NoError(t, err)
	require.Len(t, funds, 2)

	assert.Equal(t, "Bandhan Small Cap Fund", funds[0].Name)
	b, ok := funds[0].Breakdown("5year")
	require.True(t, ok)
	require.NotNil(t, b.Year1)
	assert.Equal(t, 12.5, *b.Year1)
	assert.Nil(t, b.Year3)
	assert.Equal(t, 18.4, *b.MaxDrawdown5Y)
}

func TestFetchFunds_MissingFundsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	funds, err := newTestClient(server.URL, nil).FetchFunds(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, funds)
	assert.Empty(t, funds)
}

func TestFetchFunds_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"funds": [`))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newTestClient(server.URL, nil).FetchFunds(context.Background())
			require.Error(t, err)

			var fetchErr *DataFetchError
			require.True(t, errors.As(err, &fetchErr))
			assert.Equal(t, tt.wantStatus, fetchErr.StatusCode)
			assert.Equal(t, server.URL, fetchErr.URL)
		})
	}
}

func TestFetchFunds_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url, nil).FetchFunds(context.Background())

	var fetchErr *DataFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), url)
}

func TestFetchFunds_NotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, nil).FetchFunds(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestFetchFunds_Cache(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	cache := newMemoryCache()
	client := newTestClient(server.URL, cache)

	first, err := client.FetchFunds(context.Background())
	require.NoError(t, err)
	second, err := client.FetchFunds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, first, second)
	assert.Equal(t, 10*time.Minute, cache.ttls["funds:list:"+server.URL])

	_, err = client.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchFunds_CacheFailureFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	cache := newMemoryCache()
	cache.err = errors.New("connection refused")

	funds, err := newTestClient(server.URL, cache).FetchFunds(context.Background())
	require.NoError(t, err)
	assert.Len(t, funds, 2)
}

func TestDataFetchError_Message(t *testing.T) {
	err := &DataFetchError{URL: "http://x/api/funds", StatusCode: 502, Err: ErrUnexpectedStatus}
	assert.Equal(t, "fund data fetch from http://x/api/funds failed with status 502: unexpected status code", err.Error())

	err = &DataFetchError{URL: "http://x", Err: errors.New("dial tcp: refused")}
	assert.Equal(t, "fund data fetch from http://x failed: dial tcp: refused", err.Error())
}
