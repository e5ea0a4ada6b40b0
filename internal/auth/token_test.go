package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		SecretKey:  "test-secret",
		Algorithm:  "HS256",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	}
}

func TestNewTokenCodecRejectsNonHMAC(t *testing.T) {
	cfg := testConfig()
	cfg.Algorithm = "RS256"
	_, err := NewTokenCodec(cfg)
	assert.Error(t, err)

	cfg.Algorithm = "nonsense"
	_, err = NewTokenCodec(cfg)
	assert.Error(t, err)
}

func TestTokenCodecRoundTrip(t *testing.T) {
	codec, err := NewTokenCodec(testConfig())
	require.NoError(t, err)

	token, err := codec.IssueAccess("alice", 42)
	require.NoError(t, err)

	claims, err := codec.Decode(token, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, string(ScopeAccess), claims.Scope)
}

func TestTokenCodecScopeMismatch(t *testing.T) {
	codec, err := NewTokenCodec(testConfig())
	require.NoError(t, err)

	access, err := codec.IssueAccess("alice", 42)
	require.NoError(t, err)
	refresh, err := codec.IssueRefresh("alice", 42)
	require.NoError(t, err)

	_, err = codec.Decode(access, ScopeRefresh)
	assert.ErrorIs(t, err, ErrScopeMismatch)
	_, err = codec.Decode(refresh, ScopeAccess)
	assert.ErrorIs(t, err, ErrScopeMismatch)
}

func TestTokenCodecExpiry(t *testing.T) {
	codec, err := NewTokenCodec(testConfig())
	require.NoError(t, err)

	issued := time.Now()
	codec.now = func() time.Time { return issued }
	token, err := codec.IssueAccess("alice", 42)
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(31 * time.Minute) }
	_, err = codec.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodecWrongSecret(t *testing.T) {
	codec, err := NewTokenCodec(testConfig())
	require.NoError(t, err)
	token, err := codec.IssueAccess("alice", 42)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.SecretKey = "different-secret"
	other, err := NewTokenCodec(cfg)
	require.NoError(t, err)

	_, err = other.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = codec.Decode("not-a-token", ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenCodecRefresh(t *testing.T) {
	codec, err := NewTokenCodec(testConfig())
	require.NoError(t, err)

	refresh, err := codec.IssueRefresh("alice", 42)
	require.NoError(t, err)

	access, err := codec.Refresh(refresh)
	require.NoError(t, err)

	claims, err := codec.Decode(access, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)

	// an access token must not drive the refresh flow
	_, err = codec.Refresh(access)
	assert.ErrorIs(t, err, ErrScopeMismatch)
}
