package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Document is a stored file filed in at most one folder. Filename is the
// name of the backing file in the document directory and is unique there.
type Document struct {
	ID        string    `json:"id" db:"id"`
	Filename  string    `json:"filename" db:"filename"`
	FolderID  *string   `json:"folder_id,omitempty" db:"folder_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type RenameDocumentRequest struct {
	Name string `json:"name"`
}

func (r RenameDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 150)),
	)
}

// DocumentContent is the inline view of a text-like document. For binary
// documents the handler streams the file instead of building this.
type DocumentContent struct {
	Document Document `json:"document"`
	Content  string   `json:"content"`
	Warning  string   `json:"warning,omitempty"`
}
