package repository

import (
	"context"
	"strings"

	"github.com/newshub/news-api/internal/domain"
)

// ArticleRepository manages article persistence and the derived aggregates
// listed articles carry (comment_count per article, total_count per result set).
type ArticleRepository interface {
	// List retrieves a page of articles matching the filter criteria.
	// Each returned article has CommentCount populated and Body cleared;
	// TotalCount reflects all matching rows regardless of the page window.
	// Returns domain.ErrInvalidInput for an unknown sort column or order.
	List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int, error)

	// GetByID retrieves a single article with its comment count.
	// Returns domain.ErrNotFound if no matching article exists.
	GetByID(ctx context.Context, articleID int) (*domain.Article, error)

	// Create inserts a new article and returns it re-read with its comment
	// count (zero for a fresh article) and server-assigned defaults.
	// Returns domain.ErrInvalidReference if the author or topic is missing.
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)

	// UpdateVotes atomically applies a vote delta and returns the updated row.
	// Returns domain.ErrNotFound if no matching article exists.
	UpdateVotes(ctx context.Context, articleID, delta int) (*domain.Article, error)

	// Delete removes an article and, through the schema's cascade, its
	// comments. Returns domain.ErrNotFound if no matching article exists and
	// domain.ErrStoreInconsistent if the row is still readable afterwards.
	Delete(ctx context.Context, articleID int) error

	// Exists reports whether an article with the given id exists.
	Exists(ctx context.Context, articleID int) (bool, error)
}

// Article sort columns accepted by ArticleFilter. comment_count sorts by the
// derived aggregate; everything else is a physical column.
var articleSortColumns = map[string]string{
	"author":          "a.author",
	"title":           "a.title",
	"article_id":      "a.article_id",
	"topic":           "a.topic",
	"created_at":      "a.created_at",
	"votes":           "a.votes",
	"article_img_url": "a.article_img_url",
	"comment_count":   "comment_count",
}

// ArticleFilter specifies criteria for listing articles.
type ArticleFilter struct {
	// Topic restricts results to one topic slug (optional).
	Topic string

	// SortBy names the sort column (default: created_at).
	SortBy string

	// Order is "asc" or "desc", case-insensitive (default: desc).
	Order string

	// Limit is the page size; the caller is expected to have applied
	// defaults and caps already.
	Limit int

	// Page is the 1-based page number.
	Page int
}

// Validate checks the sort column and order against the allow-lists and
// fills in defaults. Limit and page fall back to sane values when unset so
// the filter is safe to use directly.
func (f *ArticleFilter) Validate() error {
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if _, ok := articleSortColumns[f.SortBy]; !ok {
		return domain.NewValidationError("sort_by", "is not a sortable column")
	}

	switch strings.ToLower(f.Order) {
	case "asc":
		f.Order = "ASC"
	case "desc", "":
		f.Order = "DESC"
	default:
		return domain.NewValidationError("order", "must be asc or desc")
	}

	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	return nil
}

// sortColumn returns the SQL expression for the validated sort key.
func (f *ArticleFilter) sortColumn() string {
	return articleSortColumns[f.SortBy]
}

// offset returns the number of rows to skip for the requested page.
func (f *ArticleFilter) offset() int {
	return (f.Page - 1) * f.Limit
}
