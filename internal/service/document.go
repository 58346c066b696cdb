package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
	"congregate/internal/storage"
)

// textExtensions are served inline as decoded text; everything else streams
// as a download.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".log": true,
	".py":  true,
}

// IsTextExtension reports whether a filename should be displayed inline.
func IsTextExtension(filename string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(filename))]
}

// DocumentService owns document records and keeps them consistent with
// their backing files: the file step always runs first, and the record is
// only committed when it succeeds.
type DocumentService struct {
	documents repositories.DocumentRepository
	folders   repositories.FolderRepository
	files     storage.FileStore
	logger    *slog.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	documents repositories.DocumentRepository,
	folders repositories.FolderRepository,
	files storage.FileStore,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		folders:   folders,
		files:     files,
		logger:    logger,
	}
}

// Get looks up a document by id.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// Upload stores a new document: sanitize the filename, validate the target
// folder, write the file, then insert the record. A failed write leaves no
// record; a failed insert removes the file again.
func (s *DocumentService) Upload(ctx context.Context, upload FileUpload, folderID *string) (*models.Document, error) {
	if upload.Name == "" || upload.Content == nil {
		return nil, fmt.Errorf("%w: no file selected", domain.ErrValidation)
	}

	filename := storage.SanitizeFilename(upload.Name)
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is not usable", domain.ErrValidation)
	}

	// Normalize empty string to nil for unfiled documents
	if folderID != nil && *folderID == "" {
		folderID = nil
	}
	if folderID != nil {
		if _, err := s.folders.GetByID(ctx, *folderID); err != nil {
			return nil, fmt.Errorf("folder: %w", err)
		}
	}

	// The filename must be free before the file write: Save overwrites, so
	// colliding with another document would destroy its backing file. The
	// unique constraint on insert still backstops concurrent uploads.
	if err := s.ensureFilenameFree(ctx, filename); err != nil {
		return nil, err
	}

	if err := s.files.Save(filename, upload.Content); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Filename: filename,
		FolderID: folderID,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		// Keep file and record consistent: no record, no file
		if rmErr := s.files.Remove(filename); rmErr != nil {
			s.logger.Warn("failed to remove file after insert failure", "filename", filename, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info("document uploaded", "id", doc.ID, "filename", doc.Filename, "folder_id", doc.FolderID)

	return doc, nil
}

// Rename gives a document a new base name, keeping its extension. The
// backing file is renamed first; when that fails both file and record stay
// at their prior state and the storage failure is surfaced with its cause.
func (s *DocumentService) Rename(ctx context.Context, id string, req models.RenameDocumentRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(doc.Filename)
	newName := storage.SanitizeFilename(req.Name + ext)
	if newName == "" {
		return nil, fmt.Errorf("%w: name is not usable", domain.ErrValidation)
	}
	if newName == doc.Filename {
		return doc, nil
	}

	// Same pre-check as Upload: os.Rename onto a taken name would clobber
	// that document's backing file before the record update could fail.
	if err := s.ensureFilenameFree(ctx, newName); err != nil {
		return nil, err
	}

	if err := s.files.Rename(doc.Filename, newName); err != nil {
		return nil, err
	}

	if err := s.documents.Rename(ctx, id, newName); err != nil {
		// Record update failed after the file moved; move it back so the
		// two never diverge.
		if undoErr := s.files.Rename(newName, doc.Filename); undoErr != nil {
			s.logger.Error("failed to undo file rename", "filename", newName, "error", undoErr)
		}
		return nil, err
	}

	s.logger.Info("document renamed", "id", id, "from", doc.Filename, "to", newName)

	return s.documents.GetByID(ctx, id)
}

// ensureFilenameFree returns ErrConflict when another document already owns
// filename.
func (s *DocumentService) ensureFilenameFree(ctx context.Context, filename string) error {
	existing, err := s.documents.GetByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	return &domain.ConflictError{
		Message:      fmt.Sprintf("a document named %q already exists", filename),
		ResourceType: "document",
		ResourceID:   existing.ID,
	}
}

// Delete removes the backing file, tolerating one that is already gone,
// then the record.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.Remove(doc.Filename); err != nil {
		return err
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id, "filename", doc.Filename)

	return nil
}

// Content reads a text-like document for inline display. Read or decode
// failures are reported as a warning on an empty-content result, not as an
// error.
func (s *DocumentService) Content(ctx context.Context, id string) (*models.DocumentContent, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &models.DocumentContent{Document: *doc}

	f, err := s.files.Open(doc.Filename)
	if err != nil {
		result.Warning = fmt.Sprintf("could not read file: %v", err)
		return result, nil
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		result.Warning = fmt.Sprintf("could not read file: %v", err)
		return result, nil
	}

	if !utf8.Valid(data) {
		result.Warning = "file content is not valid UTF-8"
		return result, nil
	}

	result.Content = string(data)
	return result, nil
}

// FilePath returns the on-disk path used to stream a binary document.
func (s *DocumentService) FilePath(filename string) string {
	return s.files.Path(filename)
}
