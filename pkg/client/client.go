package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"drive-portfolio/pkg/models"
)

// ListingPath is the path of the listing endpoint
const ListingPath = "/portfolio-listing"

// StatusError is returned when the listing endpoint answers with a non-success status
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned %d", e.StatusCode)
}

// ListingClient fetches the portfolio listing over HTTP. Successful
// responses are kept for the rest of the session.
type ListingClient struct {
	url        string
	httpClient *http.Client
	cache      *cache.Cache
}

// Option configures a ListingClient
type Option func(*ListingClient)

// WithHTTPClient sets the HTTP client used for requests
func WithHTTPClient(c *http.Client) Option {
	return func(l *ListingClient) {
		l.httpClient = c
	}
}

// WithCacheTTL expires memoized listings after ttl
func WithCacheTTL(ttl time.Duration) Option {
	return func(l *ListingClient) {
		l.cache = cache.New(ttl, 2*ttl)
	}
}

// New creates a client for the listing endpoint under baseURL
func New(baseURL string, opts ...Option) *ListingClient {
	l := &ListingClient{
		url:        strings.TrimSuffix(baseURL, "/") + ListingPath,
		httpClient: http.DefaultClient,
		cache:      cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// URL returns the listing endpoint URL
func (l *ListingClient) URL() string {
	return l.url
}

// Fetch returns the portfolio listing
func (l *ListingClient) Fetch(ctx context.Context) (*models.Listing, error) {
	if cached, found := l.cache.Get(l.url); found {
		logrus.Debug("Using cached portfolio listing")
		return cached.(*models.Listing), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var listing models.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}

	l.cache.Set(l.url, &listing, cache.DefaultExpiration)
	return &listing, nil
}

// Invalidate drops the memoized listing
func (l *ListingClient) Invalidate() {
	l.cache.Delete(l.url)
}
