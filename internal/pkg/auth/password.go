package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// Console password policy. bcrypt ignores input past 72 bytes, so longer
// passwords are refused rather than silently truncated.
const (
	MinPasswordLength = 8
	MaxPasswordBytes  = 72
)

// BcryptCost is the hashing cost for console passwords; tests lower it.
var BcryptCost = 12

// HashPassword checks the policy and returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	switch {
	case len(password) < MinPasswordLength:
		return "", apperrors.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case len(password) > MaxPasswordBytes:
		return "", apperrors.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword returns apperrors.ErrInvalidCredentials when password does
// not match hash.
func ComparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return err
}
