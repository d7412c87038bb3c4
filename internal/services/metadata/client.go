// Package metadata fetches album documents from a remote metadata source
// over HTTP, for import into a local repository.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"discograph/internal/album"
	"discograph/internal/services"
)

const defaultTimeout = 30 * time.Second

// HTTPDoer describes the HTTP client used by the metadata service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a remote metadata source.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient constructs a client for the source at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "metadata", "base url required", nil)
	}
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAlbum retrieves and decodes the album document for a catalog.
func (c *Client) FetchAlbum(ctx context.Context, catalog string) (*album.Album, error) {
	raw, err := c.FetchDocument(ctx, catalog)
	if err != nil {
		return nil, err
	}
	a, err := album.Decode(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrRemote, "metadata", fmt.Sprintf("decode document for %s", catalog), err)
	}
	return a, nil
}

// FetchDocument retrieves the raw album document for a catalog.
func (c *Client) FetchDocument(ctx context.Context, catalog string) ([]byte, error) {
	catalog = strings.TrimSpace(catalog)
	if catalog == "" {
		return nil, services.Wrap(services.ErrConfiguration, "metadata", "catalog required", nil)
	}

	endpoint := fmt.Sprintf("%s/albums/%s", c.baseURL, url.PathEscape(catalog))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/toml")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrRemote, "metadata", fmt.Sprintf("fetch %s", catalog), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, services.Wrap(services.ErrNotFound, "metadata", catalog, nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.Wrap(services.ErrRemote, "metadata",
			fmt.Sprintf("fetch %s: status %d", catalog, resp.StatusCode), nil)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, services.Wrap(services.ErrRemote, "metadata", fmt.Sprintf("read document for %s", catalog), err)
	}
	return raw, nil
}
