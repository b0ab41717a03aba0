package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// SignerConfig configures console access tokens
type SignerConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Signer issues and verifies HS256 access tokens for console accounts.
// The account id travels as the subject claim.
type Signer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewSigner creates a Signer
func NewSigner(cfg SignerConfig) *Signer {
	return &Signer{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// AccessToken is a signed token and how long it stays valid
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
	// ExpiresIn is the lifetime in whole seconds
	ExpiresIn int
}

// Identity is what a verified token asserts about its bearer
type Identity struct {
	UserID   int64
	Username string
	TokenID  string
	IssuedAt time.Time
}

type consoleClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given account
func (s *Signer) Issue(userID int64, username string) (AccessToken, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := consoleClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("signing access token: %w", err)
	}
	return AccessToken{Value: signed, ExpiresAt: expires, ExpiresIn: int(s.ttl.Seconds())}, nil
}

// Verify checks signature, issuer and lifetime. Failures wrap
// apperrors.ErrTokenExpired or apperrors.ErrTokenInvalid.
func (s *Signer) Verify(token string) (Identity, error) {
	var claims consoleClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case apperrors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, apperrors.ErrTokenExpired
	default:
		return Identity{}, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 || claims.Username == "" {
		return Identity{}, fmt.Errorf("%w: subject %q does not name an account", apperrors.ErrTokenInvalid, claims.Subject)
	}

	id := Identity{UserID: userID, Username: claims.Username, TokenID: claims.ID}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrAuthRequired
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if token = strings.TrimSpace(token); !ok || token == "" {
		return "", fmt.Errorf("%w: expected a Bearer token", apperrors.ErrAuthRequired)
	}
	return token, nil
}
