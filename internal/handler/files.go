package handler

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"congregate/internal/httputil"
	"congregate/internal/storage"
)

// FilesHandler serves stored photograph and document files by filename.
// Both routes sit behind the session middleware.
type FilesHandler struct {
	photos    storage.FileStore
	documents storage.FileStore
}

// NewFilesHandler creates a new files handler.
func NewFilesHandler(photos, documents storage.FileStore) *FilesHandler {
	return &FilesHandler{photos: photos, documents: documents}
}

// ServePhoto serves a member photograph.
// GET /uploads/members/{filename}
func (h *FilesHandler) ServePhoto(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.photos)
}

// ServeDocument serves a raw document file.
// GET /uploads/documents/{filename}
func (h *FilesHandler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.documents)
}

func (h *FilesHandler) serve(w http.ResponseWriter, r *http.Request, store storage.FileStore) {
	filename := storage.SanitizeFilename(chi.URLParam(r, "filename"))
	if filename == "" {
		httputil.RespondError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	path := store.Path(filename)
	if _, err := os.Stat(path); err != nil {
		httputil.RespondError(w, http.StatusNotFound, "file not found")
		return
	}

	http.ServeFile(w, r, path)
}
