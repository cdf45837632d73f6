package repository

import (
	"context"

	"github.com/newshub/news-api/internal/domain"
)

// UserRepository manages registered users.
type UserRepository interface {
	// List retrieves users, optionally restricted to one username. An empty
	// username returns every user; a username with no match yields an empty
	// slice, not an error.
	List(ctx context.Context, username string) ([]*domain.User, error)
}
