// Package auth issues and verifies the signed remember-me tokens stored
// in the browser so returning visitors skip the login form.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/chatmate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the remembered account id alongside the registered
// claims.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
}

// GenerateToken signs a remember-me token for the account id.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken verifies the token signature and expiry and
// returns the embedded account id. Any verification failure yields
// common.ErrInvalidToken so callers can treat the visitor as anonymous.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}

// IsExpired reports whether a verification failure was specifically an
// expired token rather than a tampered one.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
