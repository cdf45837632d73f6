package repository

import (
	"context"
	"fmt"

	"github.com/newshub/news-api/internal/domain"
)

// Compile-time interface verification.
var _ UserRepository = (*PgUserRepository)(nil)

// PgUserRepository is a PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	db DBTX
}

// NewPgUserRepository creates a new PostgreSQL user repository.
func NewPgUserRepository(db DBTX) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// List retrieves users, optionally restricted to one username.
func (r *PgUserRepository) List(ctx context.Context, username string) ([]*domain.User, error) {
	query := `SELECT username, name, avatar_url FROM users`
	var args []interface{}
	if username != "" {
		query += ` WHERE username = $1`
		args = append(args, username)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
