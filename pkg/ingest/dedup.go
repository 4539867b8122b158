package ingest

import (
	"context"
	"fmt"
)

// LinkFinder looks up stored articles by link
type LinkFinder interface {
	FindByLink(ctx context.Context, link string) (id int64, found bool, err error)
}

// Deduplicator decides whether an article is already stored.
// Links are compared exactly but case-insensitively, no URL normalization is applied.
type Deduplicator struct {
	finder LinkFinder
}

// NewDeduplicator makes Deduplicator on top of the store lookup
func NewDeduplicator(finder LinkFinder) *Deduplicator {
	return &Deduplicator{finder: finder}
}

// Seen reports whether an article with the given link is already stored
func (d *Deduplicator) Seen(ctx context.Context, link string) (bool, error) {
	_, found, err := d.finder.FindByLink(ctx, link)
	if err != nil {
		return false, fmt.Errorf("check link %s: %w", link, err)
	}
	return found, nil
}
