package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/dbx"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/google/uuid"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `id, username, email, password_hash, gender, chatbot_name, chatbot_gender, created_at, last_login`

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `INSERT INTO users (id, username, email, password_hash, gender, chatbot_name, chatbot_gender)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.UserName, user.Email, user.PasswordHash,
		nullable(user.Gender), nullable(user.AssistantName), nullable(user.AssistantGender))
	if err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByUsername(ctx, user.UserName)
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE username = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) TouchLastLogin(ctx context.Context, username string) error {
	query := `UPDATE users SET last_login = ? WHERE username = ?`

	// no rows affected is fine: unknown usernames are a silent no-op
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdatePersona(ctx context.Context, username, gender, assistantName, assistantGender string) error {
	query := `UPDATE users SET gender = ?, chatbot_name = ?, chatbot_gender = ? WHERE username = ?`

	_, err := r.db.ExecContext(ctx, query,
		nullable(gender), nullable(assistantName), nullable(assistantGender), username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var gender, assistantName, assistantGender sql.NullString
	var lastLogin sql.NullTime

	err := row.Scan(&user.ID, &user.UserName, &user.Email, &user.PasswordHash,
		&gender, &assistantName, &assistantGender, &user.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Gender = gender.String
	user.AssistantName = assistantName.String
	user.AssistantGender = assistantGender.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}

	return user, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// mapUniqueViolation translates driver unique-constraint errors into the
// field-level conflict sentinels. Both modernc/sqlite and pgx name the
// violated column or constraint in the message.
func mapUniqueViolation(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") &&
		!strings.Contains(msg, "duplicate key value") {
		return nil
	}
	if strings.Contains(msg, "email") {
		return common.ErrEmailTaken
	}
	return common.ErrUsernameTaken
}
