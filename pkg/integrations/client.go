package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nugraph/nugraph/pkg/cache"
	"github.com/nugraph/nugraph/pkg/httputil"
	"github.com/nugraph/nugraph/pkg/observability"
)

// Retry policy applied to every request made through a Client.
const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 250 * time.Millisecond
)

// Client provides shared HTTP functionality for all registry API clients.
// It handles response caching and common request headers. Transient
// failures (transport errors, 5xx and 429 responses) are retried with
// exponential backoff; hard failures return immediately.
type Client struct {
	http          *http.Client
	cache         cache.Cache
	prefix        string
	ttl           time.Duration
	headers       map[string]string
	retryAttempts int
	retryDelay    time.Duration
}

// NewClient creates a Client with the given cache backend, key prefix, entry
// TTL, and default headers. Headers are applied to all requests made through
// this client; pass nil if none are needed. A nil backend disables caching.
func NewClient(backend cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:          NewHTTPClient(),
		cache:         backend,
		prefix:        prefix,
		ttl:           ttl,
		headers:       headers,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
}

// SetRetry overrides the transient-failure retry policy. Attempts below 1
// are treated as a single attempt.
func (c *Client) SetRetry(attempts int, delay time.Duration) {
	c.retryAttempts = attempts
	c.retryDelay = delay
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
//
// Cache failures never fail the call: a broken read degrades to a miss and a
// broken write loses nothing but a future hit. A fetch error is returned
// unchanged and nothing is stored.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	fullKey := c.prefix + key
	if !refresh {
		if data, hit, err := c.cache.Get(ctx, fullKey); err == nil && hit {
			if json.Unmarshal(data, v) == nil {
				observability.Cache().OnCacheHit(ctx, fullKey)
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, fullKey)
	}
	if err := fetch(); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, fullKey, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, fullKey, len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// GetText performs an HTTP GET request and returns the response body as a string.
// Useful for non-JSON endpoints like nuspec documents or plain text responses.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, url, nil)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	return string(data), err
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	var body io.ReadCloser
	attempt := func() error {
		observability.Fetch().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			observability.Fetch().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		observability.Fetch().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		if err := checkStatus(resp.StatusCode); err != nil {
			resp.Body.Close()
			if retryableStatus(resp.StatusCode) {
				return &httputil.RetryableError{Err: err}
			}
			return err
		}
		body = resp.Body
		return nil
	}

	if err := httputil.Retry(ctx, c.retryAttempts, c.retryDelay, attempt); err != nil {
		var transient *httputil.RetryableError
		if errors.As(err, &transient) {
			return nil, transient.Err
		}
		return nil, err
	}
	return body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// retryableStatus reports whether a response status is worth retrying.
func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests
}
