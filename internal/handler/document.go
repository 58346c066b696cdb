package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"congregate/internal/domain/models"
	"congregate/internal/httputil"
	"congregate/internal/service"
)

// DocumentHandler handles document upload, rename, delete, and viewing.
type DocumentHandler struct {
	documents *service.DocumentService
	logger    *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documents *service.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, logger: logger}
}

// Upload stores a new document from a multipart form. The optional
// folder_id field files it in a folder.
// POST /api/documents
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer file.Close()

	var folderID *string
	if v := r.FormValue("folder_id"); v != "" {
		folderID = &v
	}

	doc, err := h.documents.Upload(r.Context(), service.FileUpload{Name: header.Filename, Content: file}, folderID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// Rename gives a document a new base name; the extension is kept.
// PATCH /api/documents/{id}
func (h *DocumentHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req models.RenameDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.Rename(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Delete removes a document and its backing file.
// DELETE /api/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Content serves a document: text-like files come back as inline JSON
// content, everything else streams as an attachment.
// GET /api/documents/{id}/content
func (h *DocumentHandler) Content(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	if service.IsTextExtension(doc.Filename) {
		content, err := h.documents.Content(r.Context(), doc.ID)
		if err != nil {
			respondDomainError(w, h.logger, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, content)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	http.ServeFile(w, r, h.documents.FilePath(doc.Filename))
}
