// Package repository provides data access interfaces and PostgreSQL
// implementations for the news API.
//
// # Repository Interfaces
//
// The package provides the following repository interfaces:
//
//   - TopicRepository: Manages topic listing, creation and deletion
//   - ArticleRepository: Manages articles, their vote counts and aggregates
//   - CommentRepository: Manages comments attached to articles
//   - UserRepository: Manages registered users
//
// # Thread Safety
//
// All repository implementations are safe for concurrent use by multiple
// goroutines. The underlying pgxpool handles connection pooling and
// synchronization.
//
// # Error Handling
//
// All methods return domain-specific errors from the domain package.
// Wrap database errors with context using fmt.Errorf with %w verb.
// Common errors include:
//
//   - domain.ErrNotFound: Resource does not exist
//   - domain.ErrAlreadyExists: Unique constraint violation
//   - domain.ErrInvalidInput: Invalid parameters provided
//   - domain.ErrInvalidReference: Referenced row (author, topic, article) missing
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/newshub/news-api/internal/database"
	"github.com/newshub/news-api/internal/domain"
)

// DBTX is the database interface supporting both pool and transaction
// contexts. Repositories accept it so the same implementation works against
// a pgxpool.Pool, a pgx.Tx or a pgxmock pool in tests.
type DBTX = database.DBTX

// PostgreSQL error codes the store maps to domain errors.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
	pgAmbiguousColumn           = "42702"
	pgUndefinedColumn           = "42703"
)

// mapPgError converts a PostgreSQL error into the matching domain error.
// The entity and detail strings describe what was being written so callers
// get a usable message. Errors with no domain mapping are returned unchanged
// for the caller to wrap.
func mapPgError(err error, entity, detail string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return domain.NewReferenceError(entity, detail)
	case pgUniqueViolation:
		return domain.NewAlreadyExistsError(entity, detail)
	case pgInvalidTextRepresentation, pgNotNullViolation, pgAmbiguousColumn, pgUndefinedColumn:
		return domain.NewValidationError(entity, "contains an invalid value")
	default:
		return err
	}
}
