package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/librarium/internal/app/models"
	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/auth"
	"github.com/yigit/librarium/internal/pkg/validation"
)

// AuthService handles console authentication
type AuthService struct {
	users  AdminUserStore
	signer *auth.Signer
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users AdminUserStore, signer *auth.Signer, logger zerolog.Logger, now func() time.Time) *AuthService {
	return &AuthService{
		users:  users,
		signer: signer,
		logger: logger,
		now:    now,
	}
}

// Login checks the credentials and issues an access token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("username", req.Username).Msg("Login attempt for unknown user")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading admin user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			s.logger.Warn().Str("username", user.Username).Msg("Login attempt with wrong password")
			return nil, err
		}
		return nil, fmt.Errorf("error checking password: %w", err)
	}
	if !user.Active {
		return nil, apperrors.ErrAccountDisabled
	}

	token, err := s.signer.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		// The token is still valid; a stale last_login is not worth failing the login.
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Admin user logged in")
	return &dto.TokenResponse{
		AccessToken: token.Value,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// Me describes the console user behind a validated token
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.AdminUserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrAccountDisabled
	}
	return &dto.AdminUserResponse{ID: user.ID, Username: user.Username, LastLogin: user.LastLogin}, nil
}

// CheckActive fails for accounts that were deactivated or deleted after
// their token was issued.
func (s *AuthService) CheckActive(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return fmt.Errorf("%w: account %d no longer exists", apperrors.ErrTokenInvalid, userID)
	case err != nil:
		return err
	case !user.Active:
		return apperrors.ErrAccountDisabled
	}
	return nil
}

// CreateSuperuser creates an active console account. An existing username
// is a uniqueness error.
func (s *AuthService) CreateSuperuser(ctx context.Context, username, password string) (*models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if err := validation.Var("username", username, "required,max=150"); err != nil {
		return nil, err
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperrors.NewUniqueViolation("username", "That username is already taken.")
	case !errors.Is(err, apperrors.ErrResourceNotFound):
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.AdminUser{Username: username, PasswordHash: hash, Active: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Superuser created")
	return user, nil
}

// EnsureSuperuser creates the account unless the username already exists.
// It reports whether an account was created.
func (s *AuthService) EnsureSuperuser(ctx context.Context, username, password string) (bool, error) {
	_, err := s.CreateSuperuser(ctx, username, password)
	if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
