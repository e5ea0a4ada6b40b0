package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scope separates access tokens from refresh tokens inside the signed
// payload. The codec never accepts one where the other is expected.
type Scope string

const (
	ScopeAccess  Scope = "access_token"
	ScopeRefresh Scope = "refresh_token"
)

// Claims is the signed claim set. Only the subject (username), the user id
// and the scope are embedded; privilege flags are re-read from the store by
// anything that needs them, so a token never carries stale is_staff/is_active
// snapshots.
type Claims struct {
	UserID int64  `json:"user_id"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies the two token scopes with a shared HMAC
// server secret.
type TokenCodec struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenCodec(cfg Config) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not HMAC", cfg.Algorithm)
	}
	return &TokenCodec{
		secret:     []byte(cfg.SecretKey),
		method:     method,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// IssueAccess signs a short-lived access token for the given subject.
func (c *TokenCodec) IssueAccess(username string, userID int64) (string, error) {
	return c.issue(username, userID, ScopeAccess, c.accessTTL)
}

// IssueRefresh signs the longer-lived refresh token.
func (c *TokenCodec) IssueRefresh(username string, userID int64) (string, error) {
	return c.issue(username, userID, ScopeRefresh, c.refreshTTL)
}

func (c *TokenCodec) issue(username string, userID int64, scope Scope, ttl time.Duration) (string, error) {
	now := c.now()
	claims := &Claims{
		UserID: userID,
		Scope:  string(scope),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and enforces the expected scope.
// Failures are ErrTokenExpired, ErrTokenInvalid or ErrScopeMismatch.
func (c *TokenCodec) Decode(token string, expected Scope) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if claims.Scope != string(expected) {
		return nil, ErrScopeMismatch
	}
	return claims, nil
}

// Refresh decodes a refresh token and mints a fresh access token for the same
// subject. The refresh token itself is not rotated.
func (c *TokenCodec) Refresh(refreshToken string) (string, error) {
	claims, err := c.Decode(refreshToken, ScopeRefresh)
	if err != nil {
		return "", err
	}
	return c.IssueAccess(claims.Subject, claims.UserID)
}
