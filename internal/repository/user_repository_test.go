package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
)

func newMockRepo(t *testing.T) (UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now()

	t.Run("assigns generated fields", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ann", "a@x.com", "hash", domain.RoleUser).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("user-1", now, now))

		user := &domain.User{Name: "Ann", Email: "a@x.com", PasswordHash: "hash", Role: domain.RoleUser}
		require.NoError(t, repo.Create(context.Background(), user))
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, now, user.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation passes through", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ann", "a@x.com", "hash", domain.RoleUser).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repo.Create(context.Background(), &domain.User{
			Name: "Ann", Email: "a@x.com", PasswordHash: "hash", Role: domain.RoleUser,
		})
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, pgerrcode.UniqueViolation, pgErr.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM users WHERE email").
					WithArgs("a@x.com").
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
						AddRow("user-1", "Ann", "a@x.com", "hash", domain.RoleUser, now, now))
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("FROM users WHERE email").
					WithArgs("a@x.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: pgx.ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setupMock(mock)

			user, err := repo.GetByEmail(context.Background(), "a@x.com")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "user-1", user.ID)
				assert.Equal(t, domain.RoleUser, user.Role)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Update_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET").
		WithArgs("Ann", "a@x.com", "hash", domain.RoleUser, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &domain.User{
		ID: "missing", Name: "Ann", Email: "a@x.com", PasswordHash: "hash", Role: domain.RoleUser,
	})
	require.ErrorIs(t, err, pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	t.Run("removes row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM users").
			WithArgs("user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.Delete(context.Background(), "user-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec("DELETE FROM users").
			WithArgs("missing").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		require.ErrorIs(t, repo.Delete(context.Background(), "missing"), pgx.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_List(t *testing.T) {
	now := time.Now()

	t.Run("returns page", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("FROM users ORDER BY created_at").
			WithArgs(2, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
				AddRow("user-2", "Bea", "b@x.com", "hash", domain.RoleAdmin, now, now).
				AddRow("user-1", "Ann", "a@x.com", "hash", domain.RoleUser, now, now))

		users, err := repo.List(context.Background(), 2, 0)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "user-2", users[0].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery("FROM users ORDER BY created_at").
			WithArgs(2, 0).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.List(context.Background(), 2, 0)
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
