package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/dbx"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository for a Postgres-backed store.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query := `INSERT INTO users (id, username, email, password_hash, gender, chatbot_name, chatbot_gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

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

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + selectColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) TouchLastLogin(ctx context.Context, username string) error {
	query := `UPDATE users SET last_login = $1 WHERE username = $2`

	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePersona(ctx context.Context, username, gender, assistantName, assistantGender string) error {
	query := `UPDATE users SET gender = $1, chatbot_name = $2, chatbot_gender = $3 WHERE username = $4`

	_, err := r.db.ExecContext(ctx, query,
		nullable(gender), nullable(assistantName), nullable(assistantGender), username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
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
