// Package normalize converts raw feed items into articles ready for storage.
package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/newscrawl/pkg/domain"
)

// Normalizer builds articles from raw feed items. Zero value is ready to use.
type Normalizer struct {
	Now  func() time.Time          // clock used for items without a valid date, time.Now if nil
	Slug func(title string) string // slug generator, MakeSlug if nil
}

// Normalize converts a raw item of the given source to an article.
// Returns false if the item has no title or link.
func (n *Normalizer) Normalize(raw domain.RawItem, src domain.Source) (domain.Article, bool) {
	title := strings.TrimSpace(raw.Title)
	link := strings.TrimSpace(raw.Link)
	if title == "" || link == "" {
		return domain.Article{}, false
	}

	return domain.Article{
		Title:       title,
		Link:        link,
		Source:      src.Name,
		Category:    src.Category,
		Description: optional(raw.ContentSnippet),
		Image:       n.image(raw),
		PublishedAt: n.published(raw.ISODate),
		Slug:        n.makeSlug(title),
	}, true
}

// image picks enclosure first, then the first image of the body
func (n *Normalizer) image(raw domain.RawItem) *string {
	if enc := optional(raw.EnclosureURL); enc != nil {
		return enc
	}
	return ExtractImage(raw.Content)
}

// published parses the item date, falls back to current time if missing or invalid
func (n *Normalizer) published(isoDate string) time.Time {
	if s := strings.TrimSpace(isoDate); s != "" {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts
		}
		// dates without zone are taken as UTC, not the host's local time
		if ts, err := dateparse.ParseIn(s, time.UTC); err == nil {
			return ts
		}
	}
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n *Normalizer) makeSlug(title string) string {
	if n.Slug != nil {
		return n.Slug(title)
	}
	return MakeSlug(title)
}

// optional returns trimmed s or nil if nothing is left
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
