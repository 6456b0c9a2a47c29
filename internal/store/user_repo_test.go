// internal/store/user_repo_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loanpath-api/internal/common/database"
	"loanpath-api/internal/models"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(database.NewPostgresFromDB(db)), mock
}

func createTestUser() models.User {
	return models.User{
		ID:           uuid.New(),
		Name:         "Asha Verma",
		Email:        "asha@example.com",
		PasswordHash: "$2a$12$fakehash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUserRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := createTestUser()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := createTestUser()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := createTestUser()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users WHERE email`).
		WithArgs(u.Email).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestUserRepo_GetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users WHERE email`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	u := createTestUser()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, created_at FROM users WHERE id`).
		WithArgs(u.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
			AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt))

	got, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
}
