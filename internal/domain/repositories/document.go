package repositories

import (
	"context"

	"congregate/internal/domain/models"
)

// DocumentRepository persists document records. Backing files live in the
// document store and are sequenced by the service, never by the repository.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	// GetByID returns domain.ErrNotFound when no document has the id.
	GetByID(ctx context.Context, id string) (*models.Document, error)
	// GetByFilename returns domain.ErrNotFound when no document owns the
	// exact filename. Filenames are unique, so at most one can.
	GetByFilename(ctx context.Context, filename string) (*models.Document, error)
	// ListAll returns every document, insertion order.
	ListAll(ctx context.Context) ([]models.Document, error)
	// ListByFolder returns the documents filed directly in folderID.
	ListByFolder(ctx context.Context, folderID string) ([]models.Document, error)
	// SearchByFilename returns documents whose filename contains term,
	// case-insensitively.
	SearchByFilename(ctx context.Context, term string) ([]models.Document, error)
	Rename(ctx context.Context, id, filename string) error
	Delete(ctx context.Context, id string) error
	// DeleteByFolderIDs removes all documents filed in any of the folders.
	DeleteByFolderIDs(ctx context.Context, folderIDs []string) error
}
