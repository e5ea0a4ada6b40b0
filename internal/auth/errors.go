package auth

import "errors"

// Closed set of auth failure modes. Handlers map each one to a status code
// explicitly; nothing here is retried.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrScopeMismatch      = errors.New("invalid scope for token")
	ErrForbidden          = errors.New("the writer and the login user are different")
	ErrNotFound           = errors.New("user not found")
	ErrEmailNotFound      = errors.New("no account registered with this email")
	ErrCodeMismatch       = errors.New("verification code does not match")
)
