package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password1",
		Gender:          "Female",
		AssistantName:   "Nova",
		AssistantGender: "Opposite of me",
		TermsAccepted:   true,
	}
}

func TestAccountService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsersRepo()
	svc := NewAccountService(repo, testLogger())

	user, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.UserName)
	assert.NotEqual(t, "Password1", user.PasswordHash)
	assert.Contains(t, user.PasswordHash, "$argon2id$")

	got, err := svc.Authenticate(ctx, "alice", "Password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, []string{"alice"}, repo.touched)
}

func TestAccountService_Authenticate_SameErrorForBothMismatches(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsersRepo()
	svc := NewAccountService(repo, testLogger())

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	_, badUser := svc.Authenticate(ctx, "nosuchuser", "Password1")
	_, badPass := svc.Authenticate(ctx, "alice", "WrongPass1")

	assert.ErrorIs(t, badUser, common.ErrUnauthorized)
	assert.ErrorIs(t, badPass, common.ErrUnauthorized)
	assert.Equal(t, badUser.Error(), badPass.Error())
}

func TestAccountService_Authenticate_TouchFailureDoesNotBlockLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsersRepo()
	svc := NewAccountService(repo, testLogger())

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	repo.touchErr = errors.New("db gone away")

	user, err := svc.Authenticate(ctx, "alice", "Password1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.UserName)
}

func TestAccountService_Register_Conflicts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsersRepo()
	svc := NewAccountService(repo, testLogger())

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	dup := validRegisterInput()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, common.ErrUsernameTaken)

	dup = validRegisterInput()
	dup.Username = "bob"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestAccountService_Register_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty username", func(in *RegisterInput) { in.Username = "" }},
		{"empty email", func(in *RegisterInput) { in.Email = "" }},
		{"empty password", func(in *RegisterInput) { in.Password = "" }},
		{"unknown gender", func(in *RegisterInput) { in.Gender = "Robot" }},
		{"empty chatbot name", func(in *RegisterInput) { in.AssistantName = "" }},
		{"unknown chatbot gender", func(in *RegisterInput) { in.AssistantGender = "Whatever" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"weak password", func(in *RegisterInput) { in.Password = "abc12345"; in.ConfirmPassword = "abc12345" }},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "Password2" }},
		{"terms not accepted", func(in *RegisterInput) { in.TermsAccepted = false }},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUsersRepo()
			svc := NewAccountService(repo, testLogger())

			in := validRegisterInput()
			tt.mutate(&in)

			_, err := svc.Register(ctx, in)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Empty(t, repo.byID, "no account should be created on invalid input")
		})
	}
}

func TestAccountService_UpdatePersona(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUsersRepo()
	svc := NewAccountService(repo, testLogger())

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePersona(ctx, "alice", "Non-binary", "Sam", "Same as me"))

	fields, err := svc.PersonaFields(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Non-binary", fields.Gender)
	assert.Equal(t, "Sam", fields.AssistantName)
	assert.Equal(t, "Same as me", fields.AssistantGender)

	err = svc.UpdatePersona(ctx, "alice", "Female", "", "Male")
	assert.ErrorIs(t, err, common.ErrValidation)
}
