package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrStorage      = errors.New("storage operation failed")
)

// ConflictError represents a uniqueness conflict with details about the
// existing resource.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (member, folder, document, account)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StorageError reports a failed backing-file operation. A record whose file
// step failed must never be committed, so services surface this error before
// touching persistence.
type StorageError struct {
	Op       string // operation that failed (save, rename, remove, open)
	Filename string
	Cause    error
}

func (e *StorageError) Error() string {
	if e.Cause == nil {
		return "storage " + e.Op + " failed for " + e.Filename
	}
	return "storage " + e.Op + " failed for " + e.Filename + ": " + e.Cause.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// StatusCode implements the HTTPError interface
func (e *StorageError) StatusCode() int {
	return http.StatusInternalServerError
}

// Is allows errors.Is() to match against ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
