package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/newshub/news-api/internal/domain"
)

// Compile-time interface verification.
var _ CommentRepository = (*PgCommentRepository)(nil)

// PgCommentRepository is a PostgreSQL implementation of CommentRepository.
type PgCommentRepository struct {
	db DBTX
}

// NewPgCommentRepository creates a new PostgreSQL comment repository.
func NewPgCommentRepository(db DBTX) *PgCommentRepository {
	return &PgCommentRepository{db: db}
}

// ListByArticle retrieves a page of comments for one article, newest first.
func (r *PgCommentRepository) ListByArticle(ctx context.Context, articleID, limit, offset int) ([]*domain.Comment, error) {
	query := `
		SELECT comment_id, body, author, article_id, votes, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, articleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for article %d: %w", articleID, err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0, limit)
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.CommentID, &c.Body, &c.Author, &c.ArticleID, &c.Votes, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// Create inserts a comment and returns the stored row.
func (r *PgCommentRepository) Create(ctx context.Context, articleID int, username, body string) (*domain.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, body, author, article_id, votes, created_at`

	var c domain.Comment
	err := r.db.QueryRow(ctx, query, articleID, username, body).Scan(
		&c.CommentID, &c.Body, &c.Author, &c.ArticleID, &c.Votes, &c.CreatedAt,
	)
	if err != nil {
		if mapped := mapPgError(err, "comment", "article or author does not exist"); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert comment on article %d: %w", articleID, err)
	}

	return &c, nil
}

// UpdateVotes applies the delta in a single UPDATE so concurrent increments
// never lose votes.
func (r *PgCommentRepository) UpdateVotes(ctx context.Context, commentID, delta int) (*domain.Comment, error) {
	query := `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, body, author, article_id, votes, created_at`

	var c domain.Comment
	err := r.db.QueryRow(ctx, query, delta, commentID).Scan(
		&c.CommentID, &c.Body, &c.Author, &c.ArticleID, &c.Votes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("comment", fmt.Sprint(commentID))
		}
		return nil, fmt.Errorf("failed to update votes on comment %d: %w", commentID, err)
	}

	return &c, nil
}

// Delete removes a comment. A re-read finding the row still present after a
// reported delete is a store consistency fault.
func (r *PgCommentRepository) Delete(ctx context.Context, commentID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}
	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("comment", fmt.Sprint(commentID))
	}

	var exists bool
	err = r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM comments WHERE comment_id = $1)`, commentID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to verify delete of comment %d: %w", commentID, err)
	}
	if exists {
		return fmt.Errorf("comment %d still present after delete: %w", commentID, domain.ErrStoreInconsistent)
	}

	return nil
}
