package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dealboard/dealboard-backend/internal/service/auth"
	"github.com/dealboard/dealboard-backend/pkg/ctxutil"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Code string `json:"code"`
}

type loginPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

// Login handles POST /auth/login (OAuth code exchange).
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{Code: req.Code})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// LoginWithPassword handles POST /auth/login/password.
func (h *AuthHandler) LoginWithPassword(w http.ResponseWriter, r *http.Request) {
	var req loginPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.LoginWithPassword(r.Context(), auth.LoginPasswordInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Refresh(r.Context(), auth.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Logout handles POST /auth/logout. The auth middleware may not run on
// this route, so the token is resolved here.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		token := extractBearer(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, role, err := h.svc.ValidateToken(ctx, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx = ctxutil.WithUserRole(ctxutil.WithUserID(ctx, userID), role)
	}

	if err := h.svc.Logout(ctx); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         toUserResponse(result.User),
	}
}
