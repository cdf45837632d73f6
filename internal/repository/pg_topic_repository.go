package repository

import (
	"context"
	"fmt"

	"github.com/newshub/news-api/internal/domain"
)

// Compile-time interface verification.
var _ TopicRepository = (*PgTopicRepository)(nil)

// PgTopicRepository is a PostgreSQL implementation of TopicRepository.
type PgTopicRepository struct {
	db DBTX
}

// NewPgTopicRepository creates a new PostgreSQL topic repository.
func NewPgTopicRepository(db DBTX) *PgTopicRepository {
	return &PgTopicRepository{db: db}
}

// List retrieves all topics.
func (r *PgTopicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	rows, err := r.db.Query(ctx, `SELECT slug, description FROM topics`)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating topics: %w", err)
	}

	return topics, nil
}

// Create inserts a new topic.
func (r *PgTopicRepository) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	if topic == nil {
		return nil, domain.NewValidationError("topic", "cannot be nil")
	}

	query := `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description`

	var t domain.Topic
	err := r.db.QueryRow(ctx, query, topic.Slug, topic.Description).Scan(&t.Slug, &t.Description)
	if err != nil {
		if mapped := mapPgError(err, "topic", topic.Slug); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to insert topic %q: %w", topic.Slug, err)
	}

	return &t, nil
}

// Delete removes a topic.
func (r *PgTopicRepository) Delete(ctx context.Context, slug string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM topics WHERE slug = $1`, slug)
	if err != nil {
		// A topic still referenced by articles trips the FK constraint.
		if mapped := mapPgError(err, "topic", "topic is still referenced by articles"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete topic %q: %w", slug, err)
	}
	if result.RowsAffected() == 0 {
		return domain.NewNotFoundError("topic", slug)
	}

	return nil
}
