package repository

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgUserRepository_List(t *testing.T) {
	t.Run("returns all users", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)

		mock.ExpectQuery(`SELECT username, name, avatar_url FROM users`).
			WillReturnRows(pgxmock.NewRows([]string{"username", "name", "avatar_url"}).
				AddRow("butter_bridge", "jonny", "https://avatars.example/jonny.jpg").
				AddRow("lurker", "do_nothing", "https://avatars.example/lurker.jpg"))

		users, err := repo.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "butter_bridge", users[0].Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filters by username", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)

		mock.ExpectQuery(`FROM users WHERE username = \$1`).
			WithArgs("lurker").
			WillReturnRows(pgxmock.NewRows([]string{"username", "name", "avatar_url"}).
				AddRow("lurker", "do_nothing", "https://avatars.example/lurker.jpg"))

		users, err := repo.List(context.Background(), "lurker")
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "lurker", users[0].Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no users yields empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := NewPgUserRepository(mock)

		mock.ExpectQuery(`SELECT username, name, avatar_url FROM users`).
			WillReturnRows(pgxmock.NewRows([]string{"username", "name", "avatar_url"}))

		users, err := repo.List(context.Background(), "")
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
