package auth

import (
	"net/http"
	"strings"

	"github.com/finboard/service-api-go/pkg/httpx"
)

// BearerToken extracts the credential from an Authorization: Bearer header.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	return strings.TrimSpace(h[len("bearer "):]), true
}

// Middleware authenticates requests and attaches the resolved identity to the
// request context for downstream handlers.
type Middleware struct {
	svc *Service
}

func NewMiddleware(svc *Service) *Middleware { return &Middleware{svc: svc} }

// RequireAuth rejects requests without a valid access token. Expired,
// malformed and wrong-scope tokens all come back as 401 with their own detail.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		id, err := m.svc.CurrentIdentity(token)
		if err != nil {
			httpx.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}
