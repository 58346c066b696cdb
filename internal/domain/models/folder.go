package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Folder is a node in the programs & messages tree. ParentID nil means the
// folder sits at the root. Folders are never reparented after creation.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 150)),
	)
}

type RenameFolderRequest struct {
	Name string `json:"name"`
}

func (r RenameFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 150)),
	)
}

// FolderView is one level of the browse mode: a folder plus its direct
// children only, never the whole subtree.
type FolderView struct {
	Folder     Folder     `json:"folder"`
	Subfolders []Folder   `json:"folders"`
	Documents  []Document `json:"documents"`
}

// SearchResult is the manage-mode listing. With a search term it holds all
// folders and documents matching by name anywhere in the tree; without one
// it holds the root folders plus every document, flat.
type SearchResult struct {
	Folders   []Folder   `json:"folders"`
	Documents []Document `json:"documents"`
}
