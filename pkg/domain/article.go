package domain

import "time"

// RawItem is a feed entry as returned by the fetcher. Empty strings mean the field was absent.
type RawItem struct {
	Title          string
	Link           string
	ContentSnippet string // plain-text version of Content
	Content        string // HTML body
	EnclosureURL   string
	ISODate        string
}

// FetchResult holds the outcome of fetching a single source.
// A failed fetch has no items and a non-nil Err.
type FetchResult struct {
	Source Source
	Items  []RawItem
	Err    error
}

// Article is a normalized feed item ready to be checked and stored.
// Description and Image are nil when the feed doesn't provide them.
type Article struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	Category    Category  `json:"category"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	PublishedAt time.Time `json:"publishedAt"`
	Slug        string    `json:"slug"`
}

// StoredArticle is an article persisted by the store
type StoredArticle struct {
	ID int64 `json:"id"`
	Article
	CreatedAt time.Time `json:"createdAt"`
}

// ArticleFilter represents filtering criteria for stored articles
type ArticleFilter struct {
	Category Category // empty for all categories
	Limit    int
}

// IngestResult summarizes one ingestion pass
type IngestResult struct {
	Count    int       `json:"count"`
	Articles []Article `json:"data"`

	Sources    int           `json:"sources"`
	Failed     []string      `json:"failed"` // names of sources that failed to fetch
	Skipped    int           `json:"skipped"`
	Duplicates int           `json:"duplicates"`
	Errors     int           `json:"errors"`
	Started    time.Time     `json:"started"`
	Duration   time.Duration `json:"duration"`
}
