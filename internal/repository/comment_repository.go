package repository

import (
	"context"

	"github.com/newshub/news-api/internal/domain"
)

// CommentRepository manages comments attached to articles.
type CommentRepository interface {
	// ListByArticle retrieves a page of comments for one article, newest
	// first. The caller is responsible for confirming the article exists;
	// an existing article with no comments yields an empty slice.
	ListByArticle(ctx context.Context, articleID, limit, offset int) ([]*domain.Comment, error)

	// Create inserts a comment against an article and returns the stored
	// row with its server-assigned id, votes and timestamp.
	// Returns domain.ErrInvalidReference if the article or author is missing.
	Create(ctx context.Context, articleID int, username, body string) (*domain.Comment, error)

	// UpdateVotes atomically applies a vote delta and returns the updated row.
	// Returns domain.ErrNotFound if no matching comment exists.
	UpdateVotes(ctx context.Context, commentID, delta int) (*domain.Comment, error)

	// Delete removes a comment.
	// Returns domain.ErrNotFound if no matching comment exists.
	Delete(ctx context.Context, commentID int) error
}
