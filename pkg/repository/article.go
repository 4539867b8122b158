package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newscrawl/pkg/domain"
)

// ErrDuplicate returned by Create if an article with the same link (case-insensitive) or slug exists
var ErrDuplicate = errors.New("article already exists")

const (
	defaultListLimit = 30
	maxListLimit     = 200
)

// articleRow is the database representation of a stored article
type articleRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Link        string         `db:"link"`
	LinkKey     string         `db:"link_key"`
	Source      string         `db:"source"`
	Category    string         `db:"category"`
	Description sql.NullString `db:"description"`
	Image       sql.NullString `db:"image"`
	PublishedAt time.Time      `db:"published_at"`
	Slug        string         `db:"slug"`
	CreatedAt   time.Time      `db:"created_at"`
}

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindByLink looks up an article by exact, case-insensitive link match.
// Case folding is unicode-aware and done here, sqlite's lower() folds ASCII only.
func (r *ArticleRepository) FindByLink(ctx context.Context, link string) (id int64, found bool, err error) {
	query := r.db.Rebind(`SELECT id FROM articles WHERE link_key = ? LIMIT 1`)
	if err := r.db.GetContext(ctx, &id, query, linkKey(link)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find article by link: %w", err)
	}
	return id, true, nil
}

// Create inserts a new article. Conflicts on link or slug are reported as ErrDuplicate.
// SQLite lock errors are retried with backoff.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.StoredArticle, error) {
	createdAt := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO articles (
			title, link, link_key, source, category, description, image, published_at, slug, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		err := r.db.QueryRowxContext(ctx, query, a.Title, a.Link, linkKey(a.Link), a.Source, string(a.Category),
			a.Description, a.Image, a.PublishedAt.UTC(), a.Slug, createdAt).Scan(&id)
		switch {
		case err == nil:
			return nil
		case isLockError(err):
			return err // repeater will retry this
		case isUniqueViolation(err):
			return &criticalError{err: fmt.Errorf("create article %s: %w", a.Link, ErrDuplicate)}
		default:
			return &criticalError{err: fmt.Errorf("create article %s: %w", a.Link, err)}
		}
	}, errCritical)
	if err != nil {
		return nil, err
	}

	return &domain.StoredArticle{ID: id, Article: *a, CreatedAt: createdAt}, nil
}

// List returns stored articles, most recently published first.
// Empty category returns all categories, limit defaults to 30 and is capped at 200.
func (r *ArticleRepository) List(ctx context.Context, filter domain.ArticleFilter) ([]domain.StoredArticle, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `SELECT * FROM articles`
	args := []any{}
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY published_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	var rows []articleRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	res := make([]domain.StoredArticle, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// linkKey is the dedup key of a link, unicode lower case without any other normalization
func linkKey(link string) string {
	return strings.ToLower(link)
}

// toDomain converts articleRow to domain.StoredArticle
func (row articleRow) toDomain() domain.StoredArticle {
	res := domain.StoredArticle{
		ID: row.ID,
		Article: domain.Article{
			Title:       row.Title,
			Link:        row.Link,
			Source:      row.Source,
			Category:    domain.Category(row.Category),
			PublishedAt: row.PublishedAt,
			Slug:        row.Slug,
		},
		CreatedAt: row.CreatedAt,
	}
	if row.Description.Valid {
		res.Description = &row.Description.String
	}
	if row.Image.Valid {
		res.Image = &row.Image.String
	}
	return res
}
