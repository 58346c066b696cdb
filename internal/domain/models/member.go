package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category partitions the member directory.
type Category string

const (
	CategoryAdult    Category = "ADULT"
	CategoryYouth    Category = "YOUTH"
	CategoryChildren Category = "CHILDREN"
)

// NormalizeCategory uppercases a submitted category. Categories are always
// stored and queried in normalized form.
func NormalizeCategory(s string) Category {
	return Category(strings.ToUpper(strings.TrimSpace(s)))
}

// Member is a congregant record. Barcode is the external lookup key and the
// filename stem of the stored photograph.
type Member struct {
	ID          string     `json:"id" db:"id"`
	FullName    string     `json:"full_name" db:"full_name"`
	Barcode     string     `json:"barcode" db:"barcode"`
	Department  string     `json:"department" db:"department"`
	Assembly    string     `json:"assembly" db:"assembly"`
	EntryType   string     `json:"entry_type" db:"entry_type"`
	EntryYear   string     `json:"entry_year" db:"entry_year"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Category    Category   `json:"category" db:"category"`
	Photo       *string    `json:"photo,omitempty" db:"photo"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// MemberFields carries the submitted form fields for add and edit.
// DateOfBirth is the raw YYYY-MM-DD string; empty means unset.
type MemberFields struct {
	FullName    string `json:"full_name"`
	Barcode     string `json:"barcode"`
	Department  string `json:"department"`
	Assembly    string `json:"assembly"`
	EntryType   string `json:"entry_type"`
	EntryYear   string `json:"entry_year"`
	DateOfBirth string `json:"date_of_birth"`
	Category    string `json:"category"`
}

func (f MemberFields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required),
		validation.Field(&f.Barcode, validation.Required),
		validation.Field(&f.DateOfBirth, validation.Date("2006-01-02")),
		validation.Field(&f.EntryYear, validation.Length(0, 4)),
	)
}

// MemberQuery selects and orders a category listing. Search matches full
// name, barcode, or department by substring. Unrecognized sort keys fall
// back to name ascending.
type MemberQuery struct {
	Category Category
	Search   string
	Sort     string
}

// Known sort keys for MemberQuery.Sort.
const (
	SortNameAsc        = "name"
	SortNameDesc       = "name_desc"
	SortDepartmentAsc  = "department"
	SortDepartmentDesc = "department_desc"
	SortBarcodeAsc     = "barcode"
	SortBarcodeDesc    = "barcode_desc"
)
