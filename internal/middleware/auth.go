package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"congregate/internal/domain/models"
	"congregate/internal/httputil"
	"congregate/internal/session"
)

type ctxKey string

const accountKey ctxKey = "account"

// AccountLoader loads the account a verified session token refers to.
// Loading on every request means role and approval changes, and account
// deletion, take effect immediately rather than at token expiry.
type AccountLoader interface {
	GetAccount(ctx context.Context, id string) (*models.Account, error)
}

// RequireSession rejects requests without a valid session cookie and stores
// the authenticated account in the request context.
func RequireSession(sessions *session.Manager, accounts AccountLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			accountID, err := sessions.Verify(cookie.Value)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			account, err := accounts.GetAccount(r.Context(), accountID)
			if err != nil {
				logger.Debug("session account no longer resolvable", "account_id", accountID, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMainAdmin rejects authenticated requests whose account is not a
// main admin. Must run inside RequireSession.
func RequireMainAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := AccountFromContext(r.Context())
		if account == nil {
			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if account.Role != models.RoleMainAdmin {
			httputil.RespondError(w, http.StatusForbidden, "main admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AccountFromContext returns the authenticated account, or nil outside
// RequireSession.
func AccountFromContext(ctx context.Context) *models.Account {
	account, ok := ctx.Value(accountKey).(*models.Account)
	if !ok {
		return nil
	}
	return account
}
