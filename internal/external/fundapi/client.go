package fundapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ishankgp/MF-return-tracker/internal/contracts"
	"github.com/ishankgp/MF-return-tracker/pkg/httputil"
	"github.com/ishankgp/MF-return-tracker/pkg/logger"
	"github.com/ishankgp/MF-return-tracker/pkg/redis"
)

// ErrUnexpectedStatus is wrapped by DataFetchError for non-2xx responses
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Cache stores decoded provider payloads between runs
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Client fetches fund records from the returns provider
type Client struct {
	httpClient *httputil.Client
	cache      Cache
	ttl        time.Duration
	url        string
	logger     *logger.Logger
}

// NewClient creates a provider client. cache may be nil.
func NewClient(httpClient *httputil.Client, url string, cache Cache, ttl time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		ttl:        ttl,
		url:        url,
		logger:     log,
	}
}

// URL returns the provider endpoint
func (c *Client) URL() string {
	return c.url
}

// FetchFunds returns the provider's fund list, from cache when possible.
// A payload without a funds key yields an empty list.
func (c *Client) FetchFunds(ctx context.Context) ([]contracts.FundRecord, error) {
	key := redis.FundListKey(c.url)

	if c.cache != nil {
		var cached contracts.FundList
		found, err := c.cache.Get(ctx, key, &cached)
		if err != nil {
			c.logger.WithError(err).Warn("Fund list cache read failed")
		}
		if found {
			c.logger.WithField("funds", len(cached.Funds)).Debug("Fund list served from cache")
			return cached.Funds, nil
		}
	}

	list, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, list, c.ttl); err != nil {
			c.logger.WithError(err).Warn("Fund list cache write failed")
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"url":   c.url,
		"funds": len(list.Funds),
	}).Info("Fetched fund list")

	return list.Funds, nil
}

// Refresh bypasses the cache read and stores a fresh payload
func (c *Client) Refresh(ctx context.Context) ([]contracts.FundRecord, error) {
	list, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, redis.FundListKey(c.url), list, c.ttl); err != nil {
			c.logger.WithError(err).Warn("Fund list cache write failed")
		}
	}

	return list.Funds, nil
}

func (c *Client) fetch(ctx context.Context) (*contracts.FundList, error) {
	resp, err := c.httpClient.Get(ctx, c.url)
	if err != nil {
		return nil, &DataFetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, &DataFetchError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        ErrUnexpectedStatus,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DataFetchError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	var list contracts.FundList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &DataFetchError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode fund list: %w", err),
		}
	}

	if list.Funds == nil {
		list.Funds = []contracts.FundRecord{}
	}

	return &list, nil
}
