package repository

import (
	"context"

	"github.com/newshub/news-api/internal/domain"
)

// TopicRepository manages topic listing and creation.
type TopicRepository interface {
	// List retrieves all topics.
	List(ctx context.Context) ([]*domain.Topic, error)

	// Create inserts a new topic.
	// Returns domain.ErrAlreadyExists if the slug is already taken.
	Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)

	// Delete removes a topic.
	// Returns domain.ErrNotFound if no matching slug exists.
	Delete(ctx context.Context, slug string) error
}
