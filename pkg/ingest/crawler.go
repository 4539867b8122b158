// Package ingest runs ingestion passes: fetch all sources concurrently, then normalize,
// dedupe and store their items one by one. A failing source never affects the others.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newscrawl/pkg/domain"
	"github.com/umputun/newscrawl/pkg/normalize"
	"github.com/umputun/newscrawl/pkg/repository"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// ErrNoSources returned by Run when the crawler has nothing to fetch
var ErrNoSources = errors.New("no sources configured")

// Fetcher retrieves raw items of a single source
type Fetcher interface {
	Fetch(ctx context.Context, src domain.Source) ([]domain.RawItem, error)
}

// Store persists articles. Create returns repository.ErrDuplicate (wrapped) if the link is taken.
type Store interface {
	FindByLink(ctx context.Context, link string) (id int64, found bool, err error)
	Create(ctx context.Context, a *domain.Article) (*domain.StoredArticle, error)
}

// Normalizer turns a raw feed item into an article, false means the item should be skipped
type Normalizer interface {
	Normalize(raw domain.RawItem, src domain.Source) (domain.Article, bool)
}

// CrawlerParams defines dependencies and settings of Crawler
type CrawlerParams struct {
	Sources       []domain.Source
	Fetcher       Fetcher
	Normalizer    Normalizer // default normalize.Normalizer if nil
	Store         Store
	MaxConcurrent int           // max parallel fetches, 0 for unlimited
	FetchTimeout  time.Duration // per-source limit, 0 to rely on the fetcher's own timeout
}

// Crawler runs ingestion passes over a fixed list of sources
type Crawler struct {
	sources       []domain.Source
	fetcher       Fetcher
	normalizer    Normalizer
	dedup         *Deduplicator
	store         Store
	maxConcurrent int
	fetchTimeout  time.Duration

	mu   sync.Mutex
	last *domain.IngestResult
}

// NewCrawler makes Crawler from params
func NewCrawler(params CrawlerParams) *Crawler {
	res := &Crawler{
		sources:       append([]domain.Source(nil), params.Sources...),
		fetcher:       params.Fetcher,
		normalizer:    params.Normalizer,
		dedup:         NewDeduplicator(params.Store),
		store:         params.Store,
		maxConcurrent: params.MaxConcurrent,
		fetchTimeout:  params.FetchTimeout,
	}
	if res.normalizer == nil {
		res.normalizer = &normalize.Normalizer{}
	}
	return res
}

// Sources returns a copy of the configured sources in registration order
func (c *Crawler) Sources() []domain.Source {
	return append([]domain.Source(nil), c.sources...)
}

// LastResult returns summary of the latest completed pass, nil if none completed yet
func (c *Crawler) LastResult() *domain.IngestResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Run performs a single ingestion pass and returns the newly stored articles.
// Source failures and per-item store failures are logged and counted, they don't fail the pass.
// The only errors returned are ErrNoSources and context cancellation.
func (c *Crawler) Run(ctx context.Context) (*domain.IngestResult, error) {
	if len(c.sources) == 0 {
		return nil, ErrNoSources
	}

	res := &domain.IngestResult{
		Articles: []domain.Article{},
		Failed:   []string{},
		Sources:  len(c.sources),
		Started:  time.Now(),
	}

	fetched := c.fetchAll(ctx)
	for _, fr := range fetched {
		if fr.Err != nil {
			lgr.Printf("[WARN] source %s (%s) failed: %v", fr.Source.Name, fr.Source.URL, fr.Err)
			res.Failed = append(res.Failed, fr.Source.Name)
			continue
		}
		if err := c.ingest(ctx, fr, res); err != nil {
			return nil, err
		}
	}

	res.Count = len(res.Articles)
	res.Duration = time.Since(res.Started)
	lgr.Printf("[INFO] crawl completed, sources: %d, failed: %d, new: %d, duplicates: %d, skipped: %d, errors: %d in %v",
		res.Sources, len(res.Failed), res.Count, res.Duplicates, res.Skipped, res.Errors, res.Duration)

	c.mu.Lock()
	c.last = res
	c.mu.Unlock()
	return res, nil
}

// fetchAll fetches every source concurrently and waits for all of them to settle.
// Results are in registration order, a failed source has empty items and non-nil Err.
func (c *Crawler) fetchAll(ctx context.Context) []domain.FetchResult {
	results := make([]domain.FetchResult, len(c.sources))

	var g errgroup.Group // not WithContext, one failure must not cancel the others
	if c.maxConcurrent > 0 {
		g.SetLimit(c.maxConcurrent)
	}

	for i, src := range c.sources {
		g.Go(func() error {
			results[i] = c.fetchOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	return results
}

func (c *Crawler) fetchOne(ctx context.Context, src domain.Source) (res domain.FetchResult) {
	res.Source = src
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			res.Items, res.Err = nil, fmt.Errorf("fetch %s panicked: %v", src.Name, r)
		}
	}()

	items, err := c.fetcher.Fetch(ctx, src)
	if err != nil {
		res.Err = err
		return res
	}
	res.Items = items
	lgr.Printf("[DEBUG] fetched %d items from %s", len(items), src.Name)
	return res
}

// ingest normalizes, dedupes and stores items of a single source in feed order
func (c *Crawler) ingest(ctx context.Context, fr domain.FetchResult, res *domain.IngestResult) error {
	skipped := 0
	for _, raw := range fr.Items {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("crawl interrupted: %w", err)
		}

		article, ok := c.normalizer.Normalize(raw, fr.Source)
		if !ok {
			skipped++
			continue
		}

		seen, err := c.dedup.Seen(ctx, article.Link)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("crawl interrupted: %w", ctx.Err())
			}
			lgr.Printf("[WARN] source %s: %v, item skipped", fr.Source.Name, err)
			res.Errors++
			continue
		}
		if seen {
			res.Duplicates++
			continue
		}

		if _, err := c.store.Create(ctx, &article); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				res.Duplicates++
				continue
			}
			if ctx.Err() != nil {
				return fmt.Errorf("crawl interrupted: %w", ctx.Err())
			}
			lgr.Printf("[WARN] source %s: failed to store %s: %v", fr.Source.Name, article.Link, err)
			res.Errors++
			continue
		}
		res.Articles = append(res.Articles, article)
	}

	if skipped > 0 {
		lgr.Printf("[DEBUG] source %s: skipped %d items without title or link", fr.Source.Name, skipped)
	}
	res.Skipped += skipped
	return nil
}
