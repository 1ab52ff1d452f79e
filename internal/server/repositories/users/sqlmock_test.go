package users

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driver-level error paths that the in-memory tests cannot reach

func TestSQLiteRepository_Create_MapsUniqueViolations(t *testing.T) {
	tests := []struct {
		name      string
		driverErr error
		want      error
	}{
		{"email conflict", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), common.ErrEmailTaken},
		{"username conflict", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), common.ErrUsernameTaken},
		{"pg email conflict", errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`), common.ErrEmailTaken},
		{"unrelated error", errors.New("disk I/O error"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("INSERT INTO users").WillReturnError(tt.driverErr)

			repo := NewSQLiteRepository(db)
			_, err = repo.Create(context.Background(), newUser("alice", "alice@example.com"))
			require.Error(t, err)

			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				assert.NotErrorIs(t, err, common.ErrEmailTaken)
				assert.NotErrorIs(t, err, common.ErrUsernameTaken)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteRepository_TouchLastLogin_WrapsDriverError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET last_login").WillReturnError(errors.New("database is locked"))

	repo := NewSQLiteRepository(db)
	err = repo.TouchLastLogin(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestSQLiteRepository_GetByUsername_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "gender", "chatbot_name", "chatbot_gender", "created_at", "last_login"}).
		AddRow("u1", "alice", "alice@example.com", "hash", nil, nil, nil, "not-a-time", nil)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").WillReturnRows(rows)

	repo := NewSQLiteRepository(db)
	_, err = repo.GetByUsername(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteRepository_TouchLastLogin_NoRowsIsSilent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET last_login").
		WithArgs(sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSQLiteRepository(db)
	assert.NoError(t, repo.TouchLastLogin(context.Background(), "ghost"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
