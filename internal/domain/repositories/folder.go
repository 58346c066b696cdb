package repositories

import (
	"context"

	"congregate/internal/domain/models"
)

// FolderRepository persists folder nodes of the document tree.
type FolderRepository interface {
	Create(ctx context.Context, folder *models.Folder) error
	// GetByID returns domain.ErrNotFound when no folder has the id.
	GetByID(ctx context.Context, id string) (*models.Folder, error)
	// ListRoots returns folders without a parent, insertion order.
	ListRoots(ctx context.Context) ([]models.Folder, error)
	// ListChildren returns the direct child folders of parentID.
	ListChildren(ctx context.Context, parentID string) ([]models.Folder, error)
	// ListAll returns every folder, insertion order. Used to compute
	// subtrees in memory.
	ListAll(ctx context.Context) ([]models.Folder, error)
	// SearchByName returns folders whose name contains term,
	// case-insensitively.
	SearchByName(ctx context.Context, term string) ([]models.Folder, error)
	Rename(ctx context.Context, id, name string) error
	// DeleteByIDs removes the given folder rows.
	DeleteByIDs(ctx context.Context, ids []string) error
}
