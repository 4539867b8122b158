package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newscrawl/pkg/domain"
	"github.com/umputun/newscrawl/pkg/ingest"
	"github.com/umputun/newscrawl/server/mocks"
)

func strPtr(s string) *string { return &s }

func TestServer_crawlHandler(t *testing.T) {
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		crawler := testCrawler()
		crawler.RunFunc = func(ctx context.Context) (*domain.IngestResult, error) {
			return &domain.IngestResult{Count: 1, Articles: []domain.Article{{
				Title: "Gold rises", Link: "http://x/1", Source: "Source A", Category: domain.CategoryGold,
				Image: strPtr("http://x/1.jpg"), PublishedAt: published, Slug: "gold-rises-abcde",
			}}}, nil
		}
		srv := New(testConfig(":8080"), crawler, &mocks.ArticleListerMock{}, "1.0.0", false)

		req := httptest.NewRequest("GET", "/api/crawl", http.NoBody)
		w := httptest.NewRecorder()
		srv.crawlHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp struct {
			Message string           `json:"message"`
			Count   int              `json:"count"`
			Data    []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "crawl completed", resp.Message)
		assert.Equal(t, 1, resp.Count)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Gold rises", resp.Data[0]["title"])
		assert.Equal(t, "gold", resp.Data[0]["category"])
		assert.Equal(t, "http://x/1.jpg", resp.Data[0]["image"])
		assert.Nil(t, resp.Data[0]["description"])
		assert.Contains(t, resp.Data[0], "description", "null fields are present")
		assert.Equal(t, "2024-01-02T03:04:05Z", resp.Data[0]["publishedAt"])
		assert.Equal(t, "gold-rises-abcde", resp.Data[0]["slug"])
		require.Len(t, crawler.RunCalls(), 1)
	})

	t.Run("nothing new renders empty list", func(t *testing.T) {
		crawler := testCrawler()
		crawler.RunFunc = func(ctx context.Context) (*domain.IngestResult, error) {
			return &domain.IngestResult{}, nil
		}
		srv := New(testConfig(":8080"), crawler, &mocks.ArticleListerMock{}, "1.0.0", false)

		w := httptest.NewRecorder()
		srv.crawlHandler(w, httptest.NewRequest("GET", "/api/crawl", http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"crawl completed","count":0,"data":[]}`, w.Body.String())
	})

	t.Run("run failure", func(t *testing.T) {
		crawler := testCrawler()
		crawler.RunFunc = func(ctx context.Context) (*domain.IngestResult, error) {
			return nil, ingest.ErrNoSources
		}
		srv := New(testConfig(":8080"), crawler, &mocks.ArticleListerMock{}, "1.0.0", false)

		w := httptest.NewRecorder()
		srv.crawlHandler(w, httptest.NewRequest("GET", "/api/crawl", http.NoBody))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"crawl failed","details":"no sources configured"}`, w.Body.String())
	})

	t.Run("client cancel doesn't stop the pass", func(t *testing.T) {
		crawler := testCrawler()
		crawler.RunFunc = func(ctx context.Context) (*domain.IngestResult, error) {
			assert.NoError(t, ctx.Err())
			return &domain.IngestResult{}, nil
		}
		srv := New(testConfig(":8080"), crawler, &mocks.ArticleListerMock{}, "1.0.0", false)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest("GET", "/api/crawl", http.NoBody).WithContext(ctx)
		w := httptest.NewRecorder()
		srv.crawlHandler(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestServer_articlesHandler(t *testing.T) {
	stored := []domain.StoredArticle{
		{ID: 2, Article: domain.Article{Title: "Second", Link: "http://x/2", Category: domain.CategoryGold, Slug: "second-00000"}},
		{ID: 1, Article: domain.Article{Title: "First", Link: "http://x/1", Category: domain.CategoryGold, Slug: "first-00000"}},
	}

	tests := []struct {
		name       string
		query      string
		listErr    error
		wantCode   int
		wantFilter domain.ArticleFilter
		wantBody   string
	}{
		{name: "defaults", query: "", wantCode: http.StatusOK, wantFilter: domain.ArticleFilter{Limit: 30}},
		{name: "category and limit", query: "?category=gold&limit=5", wantCode: http.StatusOK,
			wantFilter: domain.ArticleFilter{Category: domain.CategoryGold, Limit: 5}},
		{name: "limit capped", query: "?limit=1000", wantCode: http.StatusOK, wantFilter: domain.ArticleFilter{Limit: 200}},
		{name: "unknown category", query: "?category=crypto", wantCode: http.StatusBadRequest,
			wantBody: `{"error":"unknown category \"crypto\""}`},
		{name: "bad limit", query: "?limit=abc", wantCode: http.StatusBadRequest, wantBody: `{"error":"invalid limit \"abc\""}`},
		{name: "negative limit", query: "?limit=-1", wantCode: http.StatusBadRequest},
		{name: "store error", query: "", listErr: errors.New("db down"), wantCode: http.StatusInternalServerError,
			wantFilter: domain.ArticleFilter{Limit: 30}, wantBody: `{"error":"failed to list articles"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := &mocks.ArticleListerMock{
				ListFunc: func(ctx context.Context, filter domain.ArticleFilter) ([]domain.StoredArticle, error) {
					assert.Equal(t, tt.wantFilter, filter)
					if tt.listErr != nil {
						return nil, tt.listErr
					}
					return stored, nil
				},
			}
			srv := New(testConfig(":8080"), testCrawler(), articles, "1.0.0", false)

			w := httptest.NewRecorder()
			srv.articlesHandler(w, httptest.NewRequest("GET", "/api/v1/articles"+tt.query, http.NoBody))
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var res []domain.StoredArticle
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			require.Len(t, res, 2)
			assert.Equal(t, int64(2), res[0].ID)
			assert.Equal(t, "Second", res[0].Title)
			assert.Len(t, articles.ListCalls(), 1)
		})
	}
}

func TestServer_statusHandler(t *testing.T) {
	t.Run("no runs yet", func(t *testing.T) {
		srv := New(testConfig(":8080"), testCrawler(), &mocks.ArticleListerMock{}, "1.2.3", false)

		req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
		w := httptest.NewRecorder()
		srv.statusHandler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var status map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "1.2.3", status["version"])
		assert.NotEmpty(t, status["time"])
		assert.Nil(t, status["last_run"])

		sources, ok := status["sources"].([]any)
		require.True(t, ok)
		require.Len(t, sources, 1)
		assert.Equal(t, map[string]any{"name": "Gold", "url": "https://example.com/gold.rss", "category": "gold"}, sources[0])
	})

	t.Run("with last run", func(t *testing.T) {
		crawler := testCrawler()
		crawler.LastResultFunc = func() *domain.IngestResult {
			return &domain.IngestResult{
				Count:    3,
				Failed:   []string{"Source B"},
				Errors:   1,
				Started:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				Duration: 1500 * time.Millisecond,
			}
		}
		srv := New(testConfig(":8080"), crawler, &mocks.ArticleListerMock{}, "1.2.3", false)

		w := httptest.NewRecorder()
		srv.statusHandler(w, httptest.NewRequest("GET", "/api/v1/status", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)

		var status struct {
			LastRun runSummary `json:"last_run"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Equal(t, 3, status.LastRun.Count)
		assert.Equal(t, []string{"Source B"}, status.LastRun.Failed)
		assert.Equal(t, 1, status.LastRun.Errors)
		assert.Equal(t, "1.5s", status.LastRun.Duration)
	})
}

func TestRenderJSON(t *testing.T) {
	data := map[string]string{
		"message": "test",
		"status":  "ok",
	}

	req := httptest.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()

	renderJSON(w, req, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, data, result)
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected string
	}{
		{name: "with error", err: errors.New("test error"), code: http.StatusBadRequest, expected: "test error"},
		{name: "nil error", err: nil, code: http.StatusInternalServerError, expected: "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			w := httptest.NewRecorder()

			renderError(w, req, tt.err, tt.code)

			assert.Equal(t, tt.code, w.Code)
			var result map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, tt.expected, result["error"])
		})
	}
}
