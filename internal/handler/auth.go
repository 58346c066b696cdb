package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"congregate/internal/domain/models"
	"congregate/internal/httputil"
	"congregate/internal/middleware"
	"congregate/internal/service"
	"congregate/internal/session"
)

// AuthHandler handles signup, login/logout, and the main-admin account
// management endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	sessions      *session.Manager
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler. secureCookies should be true
// outside dev so the session cookie is only sent over TLS.
func NewAuthHandler(auth *service.AuthService, sessions *session.Manager, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		sessions:      sessions,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Signup creates a new administrator account.
// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, account)
}

// Login verifies credentials and sets the session cookie.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.auth.Login(r.Context(), req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	token, err := h.sessions.Issue(account.ID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.RespondJSON(w, http.StatusOK, account)
}

// Logout clears the session cookie unconditionally.
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated account.
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := middleware.AccountFromContext(r.Context())
	if account == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, account)
}

// ListAccounts lists every administrator account.
// GET /api/admins
func (h *AuthHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.auth.ListAccounts(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, accounts)
}

// AssignRole reassigns an account's role.
// PUT /api/admins/{id}/role
func (h *AuthHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.AssignRoleRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.AssignRole(r.Context(), id, req); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Approve sets the approval flag that gates login for plain admins.
// PUT /api/admins/{id}/approve
func (h *AuthHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ApproveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.SetApproval(r.Context(), id, req.Approved); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount removes an account; self-deletion is always rejected.
// DELETE /api/admins/{id}
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	actor := middleware.AccountFromContext(r.Context())
	if actor == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.auth.DeleteAccount(r.Context(), actor.ID, chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
