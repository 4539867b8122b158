package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/umputun/newscrawl/pkg/domain"
)

// Generator creates RSS feeds from stored articles
type Generator struct {
	baseURL    string
	sourceURLs map[string]string // source name -> feed url
}

// NewGenerator creates a new feed generator. Sources give the url of item's <source> element,
// items of sources not in the list are rendered without it.
func NewGenerator(baseURL string, sources []domain.Source) *Generator {
	res := &Generator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sourceURLs: make(map[string]string, len(sources)),
	}
	for _, src := range sources {
		res.sourceURLs[src.Name] = src.URL
	}
	return res
}

// GenerateRSS creates an RSS 2.0 feed from stored articles, category is optional
func (g *Generator) GenerateRSS(articles []domain.StoredArticle, category domain.Category) (string, error) {
	title := "Newscrawl - All news"
	selfLink := g.baseURL + "/rss"
	if category != "" {
		title = fmt.Sprintf("Newscrawl - %s", category)
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, category)
	}

	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Latest articles collected from registered news feeds",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a stored article to an RSS item
func (g *Generator) convertToRSSItem(a domain.StoredArticle) *RSSItem {
	item := &RSSItem{
		Title:      a.Title,
		Link:       a.Link,
		GUID:       &RSSGUID{Value: a.Slug},
		PubDate:    a.PublishedAt.Format(time.RFC1123Z),
		Categories: []string{string(a.Category)},
	}
	if u, ok := g.sourceURLs[a.Source]; ok && u != "" {
		item.Source = &RSSSource{URL: u, Value: a.Source}
	}
	if a.Description != nil {
		item.Description = *a.Description
	}
	if a.Image != nil {
		item.Enclosure = &RSSEnclosure{URL: *a.Image, Type: imageType(*a.Image)}
	}
	return item
}

// imageType guesses the MIME type of an image URL by extension, jpeg if unknown
func imageType(imageURL string) string {
	p := imageURL
	if idx := strings.IndexAny(p, "?#"); idx >= 0 {
		p = p[:idx]
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(p))); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
