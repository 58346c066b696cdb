package repositories

import (
	"context"

	"congregate/internal/domain/models"
)

// MemberRepository persists congregant records.
type MemberRepository interface {
	// Create inserts a new member. Returns domain.ErrConflict when the
	// barcode is already in use.
	Create(ctx context.Context, member *models.Member) error
	// GetByID returns domain.ErrNotFound when no member has the id.
	GetByID(ctx context.Context, id string) (*models.Member, error)
	// GetByBarcode returns domain.ErrNotFound when no member has the
	// barcode. Callers treat that as a valid empty scan result.
	GetByBarcode(ctx context.Context, barcode string) (*models.Member, error)
	// List returns the members of a category, filtered and ordered by the
	// query.
	List(ctx context.Context, q models.MemberQuery) ([]models.Member, error)
	// ListAll returns every member regardless of category, oldest first.
	ListAll(ctx context.Context) ([]models.Member, error)
	// Update rewrites all mutable fields of a member.
	Update(ctx context.Context, member *models.Member) error
	// Delete removes the member row only; photograph files are the
	// service's concern.
	Delete(ctx context.Context, id string) error
}
