package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
)

func newUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserService(repository.NewUserRepository(mock), nil), mock
}

func expectGetByID(mock pgxmock.PgxPoolIface, id string, now time.Time) {
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "Ann", "a@x.com", "hash", domain.RoleUser, now, now))
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, mock := newUserService(t)
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update(t *testing.T) {
	now := time.Now()

	t.Run("renames and normalizes email", func(t *testing.T) {
		svc, mock := newUserService(t)
		expectGetByID(mock, "user-1", now)
		mock.ExpectExec("UPDATE users SET").
			WithArgs("Anna", "anna@x.com", "hash", domain.RoleUser, "user-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		name := "Anna"
		email := " Anna@X.com "
		user, err := svc.Update(context.Background(), "user-1", UpdateUserInput{Name: &name, Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "Anna", user.Name)
		assert.Equal(t, "anna@x.com", user.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email conflict", func(t *testing.T) {
		svc, mock := newUserService(t)
		expectGetByID(mock, "user-1", now)
		mock.ExpectExec("UPDATE users SET").
			WithArgs("Ann", "taken@x.com", "hash", domain.RoleUser, "user-1").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		email := "taken@x.com"
		_, err := svc.Update(context.Background(), "user-1", UpdateUserInput{Email: &email})
		require.ErrorIs(t, err, domain.ErrUserExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no changes skips write", func(t *testing.T) {
		svc, mock := newUserService(t)
		expectGetByID(mock, "user-1", now)

		user, err := svc.Update(context.Background(), "user-1", UpdateUserInput{})
		require.NoError(t, err)
		assert.Equal(t, "Ann", user.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserService_Delete(t *testing.T) {
	now := time.Now()

	svc, mock := newUserService(t)
	expectGetByID(mock, "user-1", now)
	mock.ExpectExec("DELETE FROM users").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, svc.Delete(context.Background(), "user-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
