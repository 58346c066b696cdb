package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"congregate/internal/httputil"
	"congregate/internal/middleware"
	"congregate/internal/service"
	"congregate/internal/session"
)

// NewRouter wires every endpoint. Signup, login, and the health probe are
// public; everything else requires a session, and account management
// additionally requires the main admin role.
func NewRouter(
	auth *AuthHandler,
	members *MemberHandler,
	folders *FolderHandler,
	documents *DocumentHandler,
	files *FilesHandler,
	authService *service.AuthService,
	sessions *session.Manager,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/auth/signup", auth.Signup)
	r.Post("/api/auth/login", auth.Login)
	r.Post("/api/auth/logout", auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, authService, logger))

		r.Get("/api/auth/me", auth.Me)

		r.Route("/api/admins", func(r chi.Router) {
			r.Use(middleware.RequireMainAdmin)
			r.Get("/", auth.ListAccounts)
			r.Put("/{id}/role", auth.AssignRole)
			r.Put("/{id}/approve", auth.Approve)
			r.Delete("/{id}", auth.DeleteAccount)
		})

		r.Route("/api/members", func(r chi.Router) {
			r.Get("/", members.List)
			r.Post("/", members.Create)
			r.Get("/export", members.Export)
			r.Get("/scan/{barcode}", members.Scan)
			r.Get("/{id}", members.Get)
			r.Put("/{id}", members.Update)
			r.Delete("/{id}", members.Delete)
		})

		r.Get("/api/drive", folders.Search)

		r.Route("/api/folders", func(r chi.Router) {
			r.Get("/", folders.ListRoots)
			r.Post("/", folders.Create)
			r.Get("/{id}", folders.Get)
			r.Patch("/{id}", folders.Rename)
			r.Delete("/{id}", folders.Delete)
		})

		r.Route("/api/documents", func(r chi.Router) {
			r.Post("/", documents.Upload)
			r.Get("/{id}/content", documents.Content)
			r.Patch("/{id}", documents.Rename)
			r.Delete("/{id}", documents.Delete)
		})

		r.Get("/uploads/members/{filename}", files.ServePhoto)
		r.Get("/uploads/documents/{filename}", files.ServeDocument)
	})

	return r
}
