package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"congregate/internal/domain/models"
	"congregate/internal/httputil"
	"congregate/internal/service"
)

// FolderHandler handles the folder tree endpoints: browse mode under
// /api/folders, manage mode search under /api/drive.
type FolderHandler struct {
	folders *service.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folders *service.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: folders, logger: logger}
}

// ListRoots returns the top-level folders.
// GET /api/folders
func (h *FolderHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folders.ListRoots(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

// Get returns one folder with its direct children.
// GET /api/folders/{id}
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.folders.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// Search is the manage-mode listing across the whole tree.
// GET /api/drive?search=
func (h *FolderHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.folders.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// Create adds a folder, optionally under a parent.
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folders.Create(r.Context(), req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// Rename changes a folder's name.
// PATCH /api/folders/{id}
func (h *FolderHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req models.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folders.Rename(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// Delete removes a folder and its whole subtree.
// DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.folders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
