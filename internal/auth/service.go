package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/finboard/service-api-go/internal/auth/entity"
	authrepo "github.com/finboard/service-api-go/internal/auth/repo"
	"github.com/finboard/service-api-go/pkg/utilities"
)

// TokenPair is the login result: a short-lived access token plus the
// longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// SignupInput carries the fields accepted at registration. Accounts start
// inactive and unprivileged regardless of what the client sends.
type SignupInput struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Zipcode   *string `json:"zipcode"`
	Address1  *string `json:"address1"`
	Address2  *string `json:"address2"`
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Zipcode   *string `json:"zipcode"`
	Address1  *string `json:"address1"`
	Address2  *string `json:"address2"`
}

// Service orchestrates signup, login, token refresh and the password flows.
type Service struct {
	users  *authrepo.UserRepo
	tokens *authrepo.RefreshRepo
	hasher PasswordHasher
	codec  *TokenCodec
	logger *zap.SugaredLogger
}

func NewService(db *sqlx.DB, codec *TokenCodec, hasher PasswordHasher, logger *zap.SugaredLogger) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{
		users:  authrepo.NewUserRepo(db),
		tokens: authrepo.NewRefreshRepo(db),
		hasher: hasher,
		codec:  codec,
		logger: logger,
	}
}

// EnsureSchema creates the auth tables when they do not exist yet.
func (s *Service) EnsureSchema(ctx context.Context) error {
	if err := s.users.EnsureTable(ctx); err != nil {
		return fmt.Errorf("users table: %w", err)
	}
	if err := s.tokens.EnsureTable(ctx); err != nil {
		return fmt.Errorf("refresh token table: %w", err)
	}
	return nil
}

// UsernameAvailable reports whether no live user holds the username.
func (s *Service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// normalizeEmail canonicalizes an email before any lookup or store so a
// re-cased address always hits the same row.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailAvailable reports whether no live user holds the email.
func (s *Service) EmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// Signup registers a new account. The availability pre-check and the insert
// can race; the unique constraint closes the race and both paths report
// ErrUsernameTaken.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	if ok, err := s.UsernameAvailable(ctx, username); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           utilities.NewRowID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Zipcode:      in.Zipcode,
		Address1:     in.Address1,
		Address2:     in.Address2,
		IsActive:     false,
		IsStaff:      false,
	}
	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, authrepo.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, authrepo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.users.GetByUsername(ctx, username)
}

// authenticate verifies username and password. Unknown user and wrong
// password produce the same error so responses never reveal which one failed;
// the activation check only runs after the password matched.
func (s *Service) authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveAccount
	}
	return u, nil
}

// Login authenticates and on success issues both tokens, upserting the single
// refresh-token record for the username.
func (s *Service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	u, err := s.authenticate(ctx, username, password)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.codec.IssueAccess(u.Username, u.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.codec.IssueRefresh(u.Username, u.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.tokens.Upsert(ctx, u.Username, refresh); err != nil {
		return TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.Infow("login", "username", u.Username)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is not rotated.
func (s *Service) Refresh(refreshToken string) (string, error) {
	return s.codec.Refresh(refreshToken)
}

// CurrentIdentity resolves the identity carried by an access token. This is
// the capability every other module consumes.
func (s *Service) CurrentIdentity(accessToken string) (Identity, error) {
	claims, err := s.codec.Decode(accessToken, ScopeAccess)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: claims.Subject, UserID: claims.UserID}, nil
}

// GetProfile returns a live user by username.
func (s *Service) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile replaces the mutable profile fields and returns the updated
// user.
func (s *Service) UpdateProfile(ctx context.Context, username string, in ProfileUpdate) (*entity.User, error) {
	u, err := s.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Zipcode = in.Zipcode
	u.Address1 = in.Address1
	u.Address2 = in.Address2
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, username)
}

// ChangePassword re-authenticates with the old password before accepting the
// new one.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*entity.User, error) {
	u, err := s.authenticate(ctx, username, oldPassword)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.Username, hash); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, username)
}

// RequestPasswordReset looks up the account by email and stores a fresh
// one-time code. Delivering the code by mail is external to this service.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*entity.User, error) {
	email = normalizeEmail(email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	code, err := newAuthNumber()
	if err != nil {
		return nil, err
	}
	if err := s.users.SetAuthNumber(ctx, u.Email, code); err != nil {
		return nil, err
	}
	s.logger.Infow("password reset requested", "username", u.Username)
	return s.users.GetByEmail(ctx, email)
}

// VerifyResetCode compares the stored one-time code with the submitted one.
func (s *Service) VerifyResetCode(ctx context.Context, email, code string) (*entity.User, error) {
	u, err := s.users.GetByEmailAndAuthNumber(ctx, normalizeEmail(email), code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCodeMismatch
		}
		return nil, err
	}
	return u, nil
}

// newAuthNumber generates a six-digit one-time verification code.
func newAuthNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
