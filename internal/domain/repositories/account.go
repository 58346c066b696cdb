package repositories

import (
	"context"

	"congregate/internal/domain/models"
)

// AccountRepository persists administrator accounts.
type AccountRepository interface {
	// Create inserts a new account. Returns domain.ErrConflict when the
	// username is taken.
	Create(ctx context.Context, account *models.Account) error
	// GetByID returns domain.ErrNotFound when no account has the id.
	GetByID(ctx context.Context, id string) (*models.Account, error)
	// GetByUsername returns domain.ErrNotFound when no account has the
	// username.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// List returns every account, oldest first.
	List(ctx context.Context) ([]models.Account, error)
	// Count returns the total number of accounts.
	Count(ctx context.Context) (int, error)
	// UpdateRole reassigns an account's role.
	UpdateRole(ctx context.Context, id string, role models.Role) error
	// UpdateApproval sets the approval flag.
	UpdateApproval(ctx context.Context, id string, approved bool) error
	// Delete removes an account. Returns domain.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
