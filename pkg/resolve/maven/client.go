package maven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/jarpath/pkg/cache"
)

// CentralURL is the default remote repository.
const CentralURL = "https://repo.maven.apache.org/maven2"

const httpTimeout = 10 * time.Second

// Client fetches POM metadata from a remote Maven repository, caching raw
// responses and retrying transient failures with backoff.
//
// All methods are safe for concurrent use when the underlying cache is.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// NewClient creates a Client against baseURL (CentralURL if empty) with
// the given response cache and TTL. Pass a [cache.NullCache] to disable
// caching.
func NewClient(baseURL string, store cache.Cache, ttl time.Duration) *Client {
	if baseURL == "" {
		baseURL = CentralURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   store,
		ttl:     ttl,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPOM retrieves and parses the POM for one versioned artifact.
// If refresh is true the cache is bypassed.
//
// Returns [cache.ErrNotFound] if the artifact version does not exist in
// the repository and [cache.ErrNetwork] for transport failures.
func (c *Client) FetchPOM(ctx context.Context, group, artifact, version string, refresh bool) (*Project, error) {
	url := c.pomURL(group, artifact, version)

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, url); ok {
			return parsePOM(data)
		}
	}

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		data, fetchErr = c.get(ctx, url)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, url, data, c.ttl)
	return parsePOM(data)
}

func (c *Client) pomURL(group, artifact, version string) string {
	groupPath := strings.ReplaceAll(group, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom", c.baseURL, groupPath, artifact, version, artifact, version)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", cache.ErrNotFound, url)
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode))
	default:
		return nil, fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode)
	}
}
