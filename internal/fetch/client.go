package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/util"
)

const userAgent = "play-archivist/1.0 (+archive maintenance; contact admin)"

// Client owns the single HTTP session reused for the entire run. The target
// site informally rate-limits, so all navigation goes through this one
// client, sequentially.
type Client struct {
	rest      *resty.Client
	baseURL   string
	rateDelay time.Duration
	lastFetch time.Time
	retry     *util.RetryConfig
}

// NewClient builds the session from the run configuration.
func NewClient(cfg *config.Config) *Client {
	rest := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(cfg.PageTimeout)

	return &Client{
		rest:      rest,
		baseURL:   cfg.BaseURL,
		rateDelay: cfg.RateLimitDelay,
		retry:     util.DefaultRetryConfig(),
	}
}

// ProfilePath derives the site path for an author's profile page from the
// URL slug. The site files numeric-leading slugs under letter "A".
func ProfilePath(slug string) string {
	letter := "A"
	if slug != "" {
		first := slug[0]
		if first >= 'a' && first <= 'z' {
			first -= 'a' - 'A'
		}
		if first >= 'A' && first <= 'Z' {
			letter = string(first)
		}
	}
	return fmt.Sprintf("/Playwrights%s/%s.php", letter, slug)
}

// URL renders an absolute URL for a site path.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}

// Ready probes the site root so a dead target fails the run during setup
// rather than mid-batch.
func (c *Client) Ready(ctx context.Context) error {
	resp, err := c.rest.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("probing %s: %w", c.baseURL, err)
	}
	if resp.IsError() {
		return fmt.Errorf("probing %s: status %s", c.baseURL, resp.Status())
	}
	return nil
}

// GetDocument fetches a site path and parses it into a queryable document.
// Transient network failures are retried with backoff; HTTP client errors
// and parse failures are not.
func (c *Client) GetDocument(ctx context.Context, path string) (*goquery.Document, error) {
	body, err := util.RetryWithBackoff(ctx, c.retry, func() (string, error) {
		resp, err := c.rest.R().SetContext(ctx).Get(path)
		if err != nil {
			return "", fmt.Errorf("fetching %s: %w", path, err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("fetching %s: status %s", path, resp.Status())
		}
		return resp.String(), nil
	}, fmt.Sprintf("GET %s", path))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// GetDocumentRateLimited waits out the configured inter-request delay before
// fetching. Used by the listing-index scraper, which issues many requests in
// a tight loop.
func (c *Client) GetDocumentRateLimited(ctx context.Context, path string) (*goquery.Document, error) {
	if wait := c.rateDelay - time.Since(c.lastFetch); wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	c.lastFetch = time.Now()
	return c.GetDocument(ctx, path)
}

// Close releases the session.
func (c *Client) Close() error {
	// resty holds no resources beyond the transport's idle connections
	c.rest.GetClient().CloseIdleConnections()
	return nil
}
