package feed

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newscrawl/pkg/domain"
)

// HTTPFetcher fetches RSS/Atom/JSON feeds via HTTP and converts entries to raw items
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	stripper  *bluemonday.Policy
}

// NewHTTPFetcher creates a new feed fetcher. Timeout applies to every single Fetch call.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	stripper := bluemonday.StrictPolicy()
	stripper.AddSpaceWhenStrippingTag(true)

	return &HTTPFetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout:   timeout,
		userAgent: userAgent,
		stripper:  stripper,
	}
}

// Fetch retrieves and parses the feed of the given source.
// Items are returned in the order they appear in the feed document.
func (f *HTTPFetcher) Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", src.URL, err)
	}
	defer body.Close()

	// parser keeps per-document state, so a fresh one is used for every fetch
	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.URL, err)
	}

	items := make([]domain.RawItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		items = append(items, f.toRawItem(parsed.FeedType, item))
	}

	return items, nil
}

// fetch retrieves content from a URL
func (f *HTTPFetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// toRawItem converts a parsed feed entry. For RSS the HTML body is the description with
// content:encoded as a fallback, for Atom it is the entry content with summary as a fallback.
func (f *HTTPFetcher) toRawItem(feedType string, item *gofeed.Item) domain.RawItem {
	body := item.Description
	fallback := item.Content
	if feedType == "atom" {
		body, fallback = item.Content, item.Description
	}
	if strings.TrimSpace(body) == "" {
		body = fallback
	}

	raw := domain.RawItem{
		Title:          item.Title,
		Link:           item.Link,
		Content:        body,
		ContentSnippet: f.snippet(body),
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.TrimSpace(enc.URL) != "" {
			raw.EnclosureURL = enc.URL
			break
		}
	}

	switch {
	case item.PublishedParsed != nil:
		raw.ISODate = item.PublishedParsed.UTC().Format(time.RFC3339)
	case item.UpdatedParsed != nil:
		raw.ISODate = item.UpdatedParsed.UTC().Format(time.RFC3339)
	default:
		raw.ISODate = item.Published
	}

	return raw
}

// snippet returns plain text of the HTML body with whitespace collapsed
func (f *HTTPFetcher) snippet(body string) string {
	if body == "" {
		return ""
	}
	text := html.UnescapeString(f.stripper.Sanitize(body))
	return strings.Join(strings.Fields(text), " ")
}
