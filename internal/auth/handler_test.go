package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDuplicateIDCheck(t *testing.T) {
	svc, mock := newTestService(t)
	h := NewHandler(svc, zap.NewNop().Sugar())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("fresh").
		WillReturnRows(sqlmock.NewRows(userRows))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup/duplicate_id_check",
		strings.NewReader(`{"username":"fresh"}`))
	rec := httptest.NewRecorder()
	h.DuplicateIDCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fresh", body["username"])
	assert.Equal(t, true, body["result"])

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup/duplicate_id_check",
		strings.NewReader(`{"username":"alice"}`))
	rec = httptest.NewRecorder()
	h.DuplicateIDCheck(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandlerStatusCodes(t *testing.T) {
	svc, mock := newTestService(t)
	h := NewHandler(svc, zap.NewNop().Sugar())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(aliceRow(true))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrInvalidCredentials.Error(), body["detail"])

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshTokenHandler(t *testing.T) {
	svc, _ := newTestService(t)
	h := NewHandler(svc, zap.NewNop().Sugar())

	// no bearer token
	rec := httptest.NewRecorder()
	h.RefreshToken(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh_token", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	refresh, err := svc.codec.IssueRefresh("alice", 42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh_token", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec = httptest.NewRecorder()
	h.RefreshToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var pair TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestRequireAuthMiddleware(t *testing.T) {
	svc, _ := newTestService(t)
	mw := NewMiddleware(svc)

	var seen Identity
	next := func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	// missing header
	rec := httptest.NewRecorder()
	mw.RequireAuth(next)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// refresh token in an access slot
	refresh, err := svc.codec.IssueRefresh("alice", 42)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec = httptest.NewRecorder()
	mw.RequireAuth(next)(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid access token
	access, err := svc.codec.IssueAccess("alice", 42)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec = httptest.NewRecorder()
	mw.RequireAuth(next)(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Identity{Username: "alice", UserID: 42}, seen)
}
