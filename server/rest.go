package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/newscrawl/pkg/domain"
)

const (
	defaultArticlesLimit = 30
	maxArticlesLimit     = 200
)

// crawlResponse is the body of a successful crawl
type crawlResponse struct {
	Message string           `json:"message"`
	Count   int              `json:"count"`
	Data    []domain.Article `json:"data"`
}

// runSummary is the last crawl as reported by status
type runSummary struct {
	Started  time.Time `json:"started"`
	Duration string    `json:"duration"`
	Count    int       `json:"count"`
	Failed   []string  `json:"failed"`
	Errors   int       `json:"errors"`
}

// crawlHandler runs a single ingestion pass and returns newly stored articles
func (s *Server) crawlHandler(w http.ResponseWriter, r *http.Request) {
	// the pass completes even if the client goes away
	res, err := s.crawler.Run(context.WithoutCancel(r.Context()))
	if err != nil {
		log.Printf("[ERROR] crawl failed: %v", err)
		renderJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "crawl failed", "details": err.Error()})
		return
	}

	data := res.Articles
	if data == nil {
		data = []domain.Article{}
	}
	renderJSON(w, r, http.StatusOK, crawlResponse{Message: "crawl completed", Count: res.Count, Data: data})
}

// articlesHandler lists stored articles, newest first, with optional category filter
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseArticleFilter(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	articles, err := s.articles.List(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to list articles: %v", err)
		renderError(w, r, fmt.Errorf("failed to list articles"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, articles)
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"sources":  s.crawler.Sources(),
		"last_run": nil,
	}
	if last := s.crawler.LastResult(); last != nil {
		status["last_run"] = runSummary{
			Started:  last.Started.UTC(),
			Duration: last.Duration.String(),
			Count:    last.Count,
			Failed:   last.Failed,
			Errors:   last.Errors,
		}
	}
	renderJSON(w, r, http.StatusOK, status)
}

// parseArticleFilter gets category and limit from query, category may also come from path
func parseArticleFilter(r *http.Request) (domain.ArticleFilter, error) {
	res := domain.ArticleFilter{Limit: defaultArticlesLimit}

	category := r.PathValue("category")
	if category == "" {
		category = r.URL.Query().Get("category")
	}
	if category != "" {
		res.Category = domain.Category(category)
		if !res.Category.Valid() {
			return domain.ArticleFilter{}, fmt.Errorf("unknown category %q", category)
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return domain.ArticleFilter{}, fmt.Errorf("invalid limit %q", limitStr)
		}
		res.Limit = min(limit, maxArticlesLimit)
	}
	return res, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
