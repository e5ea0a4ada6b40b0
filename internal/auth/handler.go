package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/finboard/service-api-go/pkg/httpx"
)

// Handler exposes the HTTP surface for signup, login, token refresh and the
// password flows.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// UserInfoCheck is the payload of the duplicate-check endpoints.
type UserInfoCheck struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordChange is the change-password payload.
type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	Password    string `json:"password"`
}

// PasswordFind is the forgot-password payload.
type PasswordFind struct {
	Email      string `json:"email"`
	AuthNumber string `json:"authNum"`
}

func (h *Handler) DuplicateIDCheck(w http.ResponseWriter, r *http.Request) {
	var req UserInfoCheck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	ok, err := h.svc.UsernameAvailable(r.Context(), req.Username)
	if err != nil {
		h.fail(w, err)
		return
	}
	if !ok {
		httpx.Error(w, http.StatusConflict, ErrUsernameTaken.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"username": req.Username, "result": true})
}

func (h *Handler) DuplicateEmailCheck(w http.ResponseWriter, r *http.Request) {
	var req UserInfoCheck
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	ok, err := h.svc.EmailAvailable(r.Context(), req.Email)
	if err != nil {
		h.fail(w, err)
		return
	}
	if !ok {
		httpx.Error(w, http.StatusConflict, ErrEmailTaken.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"email": req.Email, "result": true})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	pair, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, pair)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token, ok := BearerToken(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	access, err := h.svc.Refresh(token)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TokenPair{AccessToken: access})
}

func (h *Handler) MyInfo(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetProfile(r.Context(), r.PathValue("username"))
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateMyInfo(w http.ResponseWriter, r *http.Request) {
	var req ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := h.svc.UpdateProfile(r.Context(), r.PathValue("username"), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := h.svc.ChangePassword(r.Context(), r.PathValue("username"), req.OldPassword, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordFind
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := h.svc.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) ForgotPasswordAuthNumber(w http.ResponseWriter, r *http.Request) {
	var req PasswordFind
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, err := h.svc.VerifyResetCode(r.Context(), req.Email, req.AuthNumber)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// fail maps each failure mode to its status code.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, ErrEmailTaken):
		httpx.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInactiveAccount),
		errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrScopeMismatch), errors.Is(err, ErrEmailNotFound),
		errors.Is(err, ErrCodeMismatch):
		httpx.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Errorw("auth request failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}
