package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newshub/news-api/internal/domain"
)

// Compile-time interface verification.
var _ ArticleRepository = (*PgArticleRepository)(nil)

// PgArticleRepository is a PostgreSQL implementation of ArticleRepository.
type PgArticleRepository struct {
	db DBTX
}

// NewPgArticleRepository creates a new PostgreSQL article repository.
func NewPgArticleRepository(db DBTX) *PgArticleRepository {
	return &PgArticleRepository{db: db}
}

// List retrieves a page of articles with their comment counts. The window
// function counts groups after filtering but before the page window, so
// TotalCount is stable across pages of the same query.
func (r *PgArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]*domain.Article, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	var args []interface{}
	whereClause := ""
	if filter.Topic != "" {
		whereClause = "WHERE a.topic = $1"
		args = append(args, filter.Topic)
	}

	query := fmt.Sprintf(`
		SELECT a.article_id, a.author, a.title, a.topic, a.created_at,
			a.votes, a.article_img_url,
			COUNT(c.comment_id)::int AS comment_count,
			(COUNT(*) OVER ())::int AS total_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		%s
		GROUP BY a.article_id
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		whereClause, filter.sortColumn(), filter.Order, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]*domain.Article, 0, filter.Limit)
	totalCount := 0
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ArticleID, &a.Author, &a.Title, &a.Topic, &a.CreatedAt,
			&a.Votes, &a.ArticleImgURL, &a.CommentCount, &a.TotalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan article: %w", err)
		}
		totalCount = a.TotalCount
		articles = append(articles, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, totalCount, nil
}

// GetByID retrieves a single article including its body and comment count.
func (r *PgArticleRepository) GetByID(ctx context.Context, articleID int) (*domain.Article, error) {
	query := `
		SELECT a.article_id, a.author, a.title, a.body, a.topic, a.created_at,
			a.votes, a.article_img_url,
			COUNT(c.comment_id)::int AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		WHERE a.article_id = $1
		GROUP BY a.article_id`

	var a domain.Article
	err := r.db.QueryRow(ctx, query, articleID).Scan(
		&a.ArticleID, &a.Author, &a.Title, &a.Body, &a.Topic, &a.CreatedAt,
		&a.Votes, &a.ArticleImgURL, &a.CommentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article", fmt.Sprint(articleID))
		}
		return nil, fmt.Errorf("failed to get article %d: %w", articleID, err)
	}

	return &a, nil
}

// Create inserts an article and re-reads it so the response carries the
// stored defaults (created_at, votes) and a comment count of zero.
func (r *PgArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if article == nil {
		return nil, domain.NewValidationError("article", "cannot be nil")
	}

	query := `
		INSERT INTO articles (author, title, body, topic, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING article_id`

	var articleID int
	err := r.db.QueryRow(ctx, query,
		article.Author,
		article.Title,
		article.Body,
		article.Topic,
		article.ArticleImgURL,
	).Scan(&articleID)
	if err != nil {
		if mapped := mapPgError(err, "article", "author or topic does not exist"); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	created, err := r.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read article %d after insert: %w", articleID, err)
	}

	return created, nil
}

// UpdateVotes applies the delta in a single UPDATE so concurrent increments
// never lose votes.
func (r *PgArticleRepository) UpdateVotes(ctx context.Context, articleID, delta int) (*domain.Article, error) {
	query := `
		UPDATE articles
		SET votes = votes + $1
		WHERE article_id = $2
		RETURNING article_id, author, title, body, topic, created_at, votes, article_img_url`

	var a domain.Article
	err := r.db.QueryRow(ctx, query, delta, articleID).Scan(
		&a.ArticleID, &a.Author, &a.Title, &a.Body, &a.Topic,
		&a.CreatedAt, &a.Votes, &a.ArticleImgURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("article", fmt.Sprint(articleID))
		}
		return nil, fmt.Errorf("failed to update votes on article %d: %w", articleID, err)
	}

	return &a, nil
}

// Delete removes an article, relying on the ON DELETE CASCADE constraint to
// drop its comments, then verifies the row is really gone.
func (r *PgArticleRepository) Delete(ctx context.Context, articleID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM articles WHERE article_id = $1`, articleID)
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", articleID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("article", fmt.Sprint(articleID))
	}

	exists, err := r.Exists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("failed to verify delete of article %d: %w", articleID, err)
	}
	if exists {
		return fmt.Errorf("article %d still present after delete: %w", articleID, domain.ErrStoreInconsistent)
	}

	return nil
}

// Exists reports whether an article with the given id exists.
func (r *PgArticleRepository) Exists(ctx context.Context, articleID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM articles WHERE article_id = $1)`, articleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check article %d: %w", articleID, err)
	}
	return exists, nil
}
