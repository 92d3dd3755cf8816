package tui

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"sync"

	_ "golang.org/x/image/webp"
)

// HTTPPreloader downloads an image completely and records its dimensions
type HTTPPreloader struct {
	client *http.Client

	mu   sync.Mutex
	dims map[string]image.Point
}

// NewHTTPPreloader creates a preloader; a nil client means http.DefaultClient
func NewHTTPPreloader(client *http.Client) *HTTPPreloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPreloader{
		client: client,
		dims:   make(map[string]image.Point),
	}
}

// Preload fetches url and checks that it decodes as an image
func (p *HTTPPreloader) Preload(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	p.mu.Lock()
	p.dims[url] = image.Pt(cfg.Width, cfg.Height)
	p.mu.Unlock()
	return nil
}

// Dimensions returns the size of a preloaded image
func (p *HTTPPreloader) Dimensions(url string) (image.Point, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.dims[url]
	return d, ok
}
