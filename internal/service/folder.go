package service

import (
	"context"
	"fmt"
	"log/slog"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
)

// FolderService maintains the folder tree of the programs & messages
// hierarchy and its browse and manage access modes.
type FolderService struct {
	folders   repositories.FolderRepository
	documents repositories.DocumentRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(
	folders repositories.FolderRepository,
	documents repositories.DocumentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *FolderService {
	return &FolderService{
		folders:   folders,
		documents: documents,
		txManager: txManager,
		logger:    logger,
	}
}

// ListRoots returns the top-level folders in insertion order.
func (s *FolderService) ListRoots(ctx context.Context) ([]models.Folder, error) {
	return s.folders.ListRoots(ctx)
}

// View returns one folder with its direct child folders and documents, one
// level only.
func (s *FolderService) View(ctx context.Context, id string) (*models.FolderView, error) {
	folder, err := s.folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subfolders, err := s.folders.ListChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	documents, err := s.documents.ListByFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.FolderView{
		Folder:     *folder,
		Subfolders: subfolders,
		Documents:  documents,
	}, nil
}

// Search matches folder names and document filenames by case-insensitive
// substring anywhere in the tree. An empty term returns the root folders
// plus every document flat; the asymmetry is part of the established
// contract of the manage page.
func (s *FolderService) Search(ctx context.Context, term string) (*models.SearchResult, error) {
	var result models.SearchResult
	var err error

	if term == "" {
		result.Folders, err = s.folders.ListRoots(ctx)
		if err != nil {
			return nil, err
		}
		result.Documents, err = s.documents.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return &result, nil
	}

	result.Folders, err = s.folders.SearchByName(ctx, term)
	if err != nil {
		return nil, err
	}
	result.Documents, err = s.documents.SearchByFilename(ctx, term)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Create adds a folder, optionally under an existing parent.
func (s *FolderService) Create(ctx context.Context, req models.CreateFolderRequest) (*models.Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.ParentID != nil {
		if _, err := s.folders.GetByID(ctx, *req.ParentID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	folder := &models.Folder{
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name, "parent_id", folder.ParentID)

	return folder, nil
}

// Rename changes a folder's name in place.
func (s *FolderService) Rename(ctx context.Context, id string, req models.RenameFolderRequest) (*models.Folder, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.folders.Rename(ctx, id, req.Name); err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", id, "name", req.Name)

	return s.folders.GetByID(ctx, id)
}

// Delete removes a folder, all its descendant folders, and every document
// row filed anywhere in the deleted subtree, in one transaction. Backing
// document files stay on disk; see DESIGN.md for the parity decision.
func (s *FolderService) Delete(ctx context.Context, id string) error {
	if _, err := s.folders.GetByID(ctx, id); err != nil {
		return err
	}

	subtree, err := s.subtreeIDs(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.documents.DeleteByFolderIDs(txCtx, subtree); err != nil {
			return err
		}
		return s.folders.DeleteByIDs(txCtx, subtree)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "subtree_size", len(subtree))

	return nil
}

// subtreeIDs collects the ids of the folder and all its descendants by
// walking the parent links of the full folder list in memory.
func (s *FolderService) subtreeIDs(ctx context.Context, rootID string) ([]string, error) {
	all, err := s.folders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]string, len(all))
	for _, folder := range all {
		if folder.ParentID != nil {
			children[*folder.ParentID] = append(children[*folder.ParentID], folder.ID)
		}
	}

	ids := []string{rootID}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}

	return ids, nil
}
