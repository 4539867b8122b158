package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newscrawl/pkg/domain"
)

func testSource(url string) domain.Source {
	return domain.Source{Name: "TestFeed", URL: url, Category: domain.CategoryGold}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("valid rss feed", func(t *testing.T) {
		rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
	<channel>
		<title>Test Feed</title>
		<link>https://example.com</link>
		<description>Test feed description</description>
		<item>
			<title>Test Article 1</title>
			<link>https://example.com/article1</link>
			<description><![CDATA[<a href="https://example.com/article1"><img src="https://example.com/1.jpg"></a></br>Giá vàng &amp; <b>đô la</b> tăng]]></description>
			<guid>article1</guid>
			<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		</item>
		<item>
			<title>Test Article 2</title>
			<link>https://example.com/article2</link>
			<content:encoded><![CDATA[<p>Article 2 content</p><p>second paragraph</p>]]></content:encoded>
			<enclosure url="https://example.com/2.png" type="image/png" length="100"/>
		</item>
	</channel>
</rss>`

		var gotUA, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rssContent))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource(server.URL))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "TestAgent/1.0", gotUA)
		assert.Contains(t, gotAccept, "application/rss+xml")

		// first item, html description is the body
		assert.Equal(t, "Test Article 1", items[0].Title)
		assert.Equal(t, "https://example.com/article1", items[0].Link)
		assert.Contains(t, items[0].Content, `<img src="https://example.com/1.jpg">`)
		assert.Equal(t, "Giá vàng & đô la tăng", items[0].ContentSnippet)
		assert.Empty(t, items[0].EnclosureURL)
		assert.Equal(t, "2006-01-02T22:04:05Z", items[0].ISODate)

		// second item, content:encoded used as fallback body, enclosure kept
		assert.Equal(t, "Test Article 2", items[1].Title)
		assert.Equal(t, "<p>Article 2 content</p><p>second paragraph</p>", items[1].Content)
		assert.Equal(t, "Article 2 content second paragraph", items[1].ContentSnippet)
		assert.Equal(t, "https://example.com/2.png", items[1].EnclosureURL)
		assert.Empty(t, items[1].ISODate)
	})

	t.Run("atom feed", func(t *testing.T) {
		atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="https://example.com/"/>
	<updated>2006-01-02T15:04:05Z</updated>
	<entry>
		<title>Atom Entry 1</title>
		<link href="https://example.com/entry1"/>
		<id>entry1</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
	</entry>
</feed>`

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomContent))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource(server.URL))
		require.NoError(t, err)
		require.Len(t, items, 1)

		assert.Equal(t, "Atom Entry 1", items[0].Title)
		assert.Equal(t, "https://example.com/entry1", items[0].Link)
		assert.Equal(t, "Entry 1 summary", items[0].Content)
		assert.Equal(t, "Entry 1 summary", items[0].ContentSnippet)
		assert.Equal(t, "2006-01-02T15:04:05Z", items[0].ISODate)
	})

	t.Run("empty channel", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource(server.URL))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(10*time.Millisecond, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource(server.URL))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "context deadline exceeded")
		assert.Nil(t, items)
	})

	t.Run("invalid url", func(t *testing.T) {
		fetcher := NewHTTPFetcher(5*time.Second, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource("not-a-valid-url"))
		require.Error(t, err)
		assert.Nil(t, items)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource(server.URL))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
		assert.Nil(t, items)
	})

	t.Run("invalid feed content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml content"))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(5*time.Second, "TestAgent/1.0")
		items, err := fetcher.Fetch(context.Background(), testSource(server.URL))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
		assert.Nil(t, items)
	})
}

func TestHTTPFetcher_snippet(t *testing.T) {
	fetcher := NewHTTPFetcher(time.Second, "TestAgent/1.0")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "  hello   world ", want: "hello world"},
		{name: "markup only", in: `<p><img src="http://x/1.jpg"></p>`, want: ""},
		{name: "entities", in: "Tom &amp; Jerry &lt;3", want: "Tom & Jerry <3"},
		{name: "adjacent tags", in: "<p>one</p><p>two</p>", want: "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fetcher.snippet(tt.in))
		})
	}
}
