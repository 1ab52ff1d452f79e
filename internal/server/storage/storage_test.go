package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost/chatmate"))
	assert.Equal(t, DialectPostgres, DialectFor("postgresql://localhost/chatmate"))
	assert.Equal(t, DialectSQLite, DialectFor("users.db"))
	assert.Equal(t, DialectSQLite, DialectFor(":memory:"))
}

func TestOpen_MigratesSQLite(t *testing.T) {
	ctx := context.Background()

	db, dialect, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, DialectSQLite, dialect)

	// both migrations applied: base table plus additive persona columns
	_, err = db.ExecContext(ctx, `
INSERT INTO users (id, username, email, password_hash, gender, chatbot_name, chatbot_gender)
VALUES ('u1', 'alice', 'alice@example.com', 'x', 'Female', 'Luna', 'Male')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_UniqueConstraints(t *testing.T) {
	ctx := context.Background()

	db, _, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, username, email, password_hash) VALUES ('u1', 'alice', 'a@example.com', 'x')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, username, email, password_hash) VALUES ('u2', 'alice', 'b@example.com', 'x')`)
	assert.Error(t, err, "duplicate username must be rejected by the schema")

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, username, email, password_hash) VALUES ('u3', 'bob', 'a@example.com', 'x')`)
	assert.Error(t, err, "duplicate email must be rejected by the schema")
}
