// Package services contains server-side business logic: account
// registration and authentication, per-visit session management, and the
// chat flow against the completion gateway.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/dmitrijs2005/chatmate/internal/cryptox"
	"github.com/dmitrijs2005/chatmate/internal/logging"
	"github.com/dmitrijs2005/chatmate/internal/server/models"
	"github.com/dmitrijs2005/chatmate/internal/server/persona"
	"github.com/dmitrijs2005/chatmate/internal/server/repositories/users"
	"github.com/dmitrijs2005/chatmate/internal/validate"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Gender          string
	AssistantName   string
	AssistantGender string
	TermsAccepted   bool
}

// AccountService handles registration and credential verification.
type AccountService struct {
	repo   users.Repository
	params cryptox.Argon2Params
	logger logging.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(repo users.Repository, logger logging.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		params: cryptox.DefaultArgon2Params(),
		logger: logger.With("module", "accounts"),
	}
}

// Register validates the signup input, hashes the password, and creates
// the account. All validation happens before any store mutation.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(in.Password, s.params)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		UserName:        in.Username,
		Email:           in.Email,
		PasswordHash:    hash,
		Gender:          in.Gender,
		AssistantName:   in.AssistantName,
		AssistantGender: in.AssistantGender,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account created", "username", user.UserName)
	return user, nil
}

func (s *AccountService) validateRegister(in RegisterInput) error {
	if err := validate.Required("username", in.Username); err != nil {
		return err
	}
	if err := validate.Required("email", in.Email); err != nil {
		return err
	}
	if err := validate.Required("password", in.Password); err != nil {
		return err
	}
	if !persona.ValidGender(in.Gender) {
		return fmt.Errorf("%w: please select your gender", common.ErrValidation)
	}
	if err := validate.Required("chatbot name", in.AssistantName); err != nil {
		return fmt.Errorf("%w: please give your chatbot a name", common.ErrValidation)
	}
	if !persona.ValidPreference(in.AssistantGender) {
		return fmt.Errorf("%w: please select your chatbot's gender", common.ErrValidation)
	}
	if err := validate.Email(in.Email); err != nil {
		return err
	}
	if err := validate.Password(in.Password); err != nil {
		return err
	}
	if in.Password != in.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if !in.TermsAccepted {
		return fmt.Errorf("%w: please accept the terms and conditions", common.ErrValidation)
	}
	return nil
}

// Authenticate verifies the username/password pair. Any mismatch yields
// common.ErrUnauthorized without revealing which field was wrong. On
// success the account's last_login is stamped.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, common.ErrUnauthorized
	}

	if err := s.repo.TouchLastLogin(ctx, username); err != nil {
		// login still succeeds; the timestamp is best-effort
		s.logger.Warn(ctx, "failed to stamp last login", "username", username, "error", err)
	}

	s.logger.Info(ctx, "login", "username", username)
	return user, nil
}

// GetByID returns the account for a remembered id, or common.ErrNotFound.
func (s *AccountService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// PersonaFields returns the persona configuration for an account.
func (s *AccountService) PersonaFields(ctx context.Context, username string) (*models.PersonaFields, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &models.PersonaFields{
		Gender:          user.Gender,
		AssistantName:   user.AssistantName,
		AssistantGender: user.AssistantGender,
	}, nil
}

// UpdatePersona validates and stores new assistant preferences.
func (s *AccountService) UpdatePersona(ctx context.Context, username, gender, assistantName, assistantGender string) error {
	if !persona.ValidGender(gender) {
		return fmt.Errorf("%w: please select your gender", common.ErrValidation)
	}
	if err := validate.Required("chatbot name", assistantName); err != nil {
		return err
	}
	if !persona.ValidPreference(assistantGender) {
		return fmt.Errorf("%w: please select your chatbot's gender", common.ErrValidation)
	}
	return s.repo.UpdatePersona(ctx, username, gender, assistantName, assistantGender)
}
