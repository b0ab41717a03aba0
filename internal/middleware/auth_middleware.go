package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

// AccountChecker confirms that the account behind a token may still use the
// console. It returns apperrors.ErrAccountDisabled for deactivated accounts
// and apperrors.ErrTokenInvalid for deleted ones.
type AccountChecker interface {
	CheckActive(ctx context.Context, userID int64) error
}

// AuthMiddleware guards the console and record API
type AuthMiddleware struct {
	signer   *auth.Signer
	accounts AccountChecker
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(signer *auth.Signer, accounts AccountChecker) *AuthMiddleware {
	return &AuthMiddleware{signer: signer, accounts: accounts}
}

// JWTAuth verifies the bearer token, then re-reads the account so that a
// deactivated or deleted user loses access before the token expires.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		identity, err := m.signer.Verify(token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		if err := m.accounts.CheckActive(c.Request.Context(), identity.UserID); err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UsernameKey, identity.Username)
		c.Next()
	}
}

// GetUserID returns the authenticated user id, if JWTAuth ran
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
