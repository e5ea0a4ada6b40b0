package auth

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// plainHasher keeps service tests fast and deterministic.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }
func (plainHasher) Verify(hash, pw string) bool    { return hash == "hash:"+pw }

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	codec, err := NewTokenCodec(testConfig())
	require.NoError(t, err)

	svc := NewService(sqlx.NewDb(db, "sqlmock"), codec, plainHasher{}, zap.NewNop().Sugar())
	return svc, mock
}

var userRows = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"zipcode", "address1", "address2", "is_active", "is_staff", "auth_number",
	"created_at", "updated_at", "deleted_at",
}

func aliceRow(active bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(userRows).AddRow(
		int64(42), "alice", "alice@example.com", "hash:pw1", "", "",
		"", "", "", active, false, nil,
		now, now, nil,
	)
}

func TestLoginSuccessStoresRefreshToken(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))
	mock.ExpectExec("INSERT INTO user_refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	pair, err := svc.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	id, err := svc.CurrentIdentity(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, int64(42), id.UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))

	_, err := svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownUser(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(userRows))

	_, err := svc.Login(context.Background(), "nobody", "pw1")
	// indistinguishable from a wrong password
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(false))

	_, err := svc.Login(context.Background(), "alice", "pw1")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestSignupUsernameTaken(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice", Email: "other@example.com", Password: "pw2",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignupRaceSurfacesAsUsernameTaken(t *testing.T) {
	svc, mock := newTestService(t)

	// availability passes, then a concurrent signup wins the insert
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userRows))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_username"})

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "pw1",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupRaceSurfacesAsEmailTaken(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(userRows))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_email"})

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "bob", Email: "alice@example.com", Password: "pw1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsernameAvailable(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows(userRows))

	ok, err := svc.UsernameAvailable(context.Background(), "fresh")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))

	ok, err = svc.UsernameAvailable(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefreshMintsAccessOnly(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))
	mock.ExpectExec("INSERT INTO user_refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	pair, err := svc.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	access, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	id, err := svc.CurrentIdentity(access)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)

	// refresh never accepts an access token
	_, err = svc.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrScopeMismatch)
}

func TestLoginKeepsSingleRefreshRecord(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))
	mock.ExpectExec("INSERT INTO user_refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))

	pair, err := svc.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM user_refresh_tokens WHERE username=").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{
			"username", "refresh_token", "created_at", "updated_at",
		}).AddRow("alice", pair.RefreshToken, now, now))

	rec, err := svc.tokens.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, pair.RefreshToken, rec.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailNormalization(t *testing.T) {
	svc, mock := newTestService(t)

	// a re-cased address must hit the same stored row
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("alice@example.com").
		WillReturnRows(aliceRow(true))

	ok, err := svc.EmailAvailable(context.Background(), "  Alice@Example.COM ")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectQuery("SELECT (.+) FROM users\\s+WHERE email=").
		WithArgs("alice@example.com", "123456").
		WillReturnRows(aliceRow(true))

	u, err := svc.VerifyResetCode(context.Background(), "Alice@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyResetCodeMismatch(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT (.+) FROM users\\s+WHERE email=").
		WithArgs("alice@example.com", "000000").
		WillReturnRows(sqlmock.NewRows(userRows))

	_, err := svc.VerifyResetCode(context.Background(), "alice@example.com", "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}
