package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"congregate/internal/domain/models"
	"congregate/internal/export"
	"congregate/internal/httputil"
	"congregate/internal/service"
)

// maxUploadSize caps multipart request bodies (photographs and documents).
const maxUploadSize = 32 << 20

// MemberHandler handles the member directory endpoints.
type MemberHandler struct {
	members  *service.MemberService
	registry *export.Registry
	logger   *slog.Logger
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(members *service.MemberService, registry *export.Registry, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{members: members, registry: registry, logger: logger}
}

// List returns the members of a category, filtered and sorted.
// GET /api/members?category=ADULT&search=&sort=
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	q := models.MemberQuery{
		Category: models.NormalizeCategory(r.URL.Query().Get("category")),
		Search:   r.URL.Query().Get("search"),
		Sort:     r.URL.Query().Get("sort"),
	}

	members, err := h.members.List(r.Context(), q)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"members":  members,
		"category": q.Category,
	})
}

// Create adds a member from a multipart form, photograph optional.
// POST /api/members
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, photo, err := parseMemberForm(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.members.Add(r.Context(), fields, photo)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, member)
}

// Get returns a single member.
// GET /api/members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// Update rewrites a member from a multipart form.
// PUT /api/members/{id}
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, photo, err := parseMemberForm(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.members.Update(r.Context(), chi.URLParam(r, "id"), fields, photo)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// Delete removes a member record.
// DELETE /api/members/{id}
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.members.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Scan looks up a member by barcode. A miss is a normal outcome surfaced as
// a 404 problem body.
// GET /api/members/scan/{barcode}
func (h *MemberHandler) Scan(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.FindByBarcode(r.Context(), chi.URLParam(r, "barcode"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, member)
}

// Export renders the member directory as CSV. Columns come either from an
// explicit comma-separated list of labels or from a named profile.
// GET /api/members/export?profile=default&category=&columns=
func (h *MemberHandler) Export(w http.ResponseWriter, r *http.Request) {
	var (
		cols []export.Column
		err  error
	)
	if labels := r.URL.Query().Get("columns"); labels != "" {
		cols, err = h.registry.Columns(strings.Split(labels, ","))
	} else {
		profile := r.URL.Query().Get("profile")
		if profile == "" {
			profile = "default"
		}
		cols, err = h.registry.Profile(profile)
	}
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.members.ExportCSV(r.Context(), cols, r.URL.Query().Get("category"))
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="members.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// parseMemberForm reads the multipart member form. A missing photograph
// file is not an error.
func parseMemberForm(r *http.Request) (models.MemberFields, *service.FileUpload, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return models.MemberFields{}, nil, err
	}

	fields := models.MemberFields{
		FullName:    r.FormValue("full_name"),
		Barcode:     r.FormValue("barcode"),
		Department:  r.FormValue("department"),
		Assembly:    r.FormValue("assembly"),
		EntryType:   r.FormValue("entry_type"),
		EntryYear:   r.FormValue("entry_year"),
		DateOfBirth: r.FormValue("date_of_birth"),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return fields, nil, nil
		}
		return models.MemberFields{}, nil, err
	}

	return fields, &service.FileUpload{Name: header.Filename, Content: file}, nil
}
