package validate

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/chatmate/internal/common"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a.b@example.com", true},
		{"user+tag@mail.example.org", true},
		{"not-an-email", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			err := Email(tc.email)
			if tc.valid && err != nil {
				t.Errorf("Email(%q) = %v, expected valid", tc.email, err)
			}
			if !tc.valid {
				if err == nil {
					t.Errorf("Email(%q) accepted, expected error", tc.email)
				} else if !errors.Is(err, common.ErrValidation) {
					t.Errorf("Email(%q) error %v does not wrap ErrValidation", tc.email, err)
				}
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid mixed", "Abcdefg1", true},
		{"too short", "Abc1def", false},
		{"no uppercase", "abc12345", false},
		{"no digit", "Abcdefgh", false},
		{"no lowercase", "ABCDEFG1", false},
		{"longer valid", "SecurePass123", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Password(tc.password)
			if tc.valid && err != nil {
				t.Errorf("Password(%q) = %v, expected valid", tc.password, err)
			}
			if !tc.valid && err == nil {
				t.Errorf("Password(%q) accepted, expected error", tc.password)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	if err := Required("username", "alice"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Required("username", "   "); err == nil {
		t.Errorf("expected error for blank value")
	} else if !errors.Is(err, common.ErrValidation) {
		t.Errorf("error %v does not wrap ErrValidation", err)
	}
}
