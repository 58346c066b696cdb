package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
)

// AuthService owns administrator accounts: signup, credential checks, and
// the main-admin approval and role workflow.
type AuthService struct {
	accounts repositories.AccountRepository
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(accounts repositories.AccountRepository, logger *slog.Logger) *AuthService {
	return &AuthService{accounts: accounts, logger: logger}
}

// Signup creates a new administrator account. The very first account of the
// system becomes an approved main admin no matter what was submitted; every
// later account starts as an unapproved plain admin and must be approved by
// a main admin before it can log in. Role self-declaration at signup is
// deliberately not honored.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	count, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, err
	}

	role := models.RoleAdmin
	approved := false
	if count == 0 {
		role = models.RoleMainAdmin
		approved = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Approved:     approved,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		"id", account.ID,
		"username", account.Username,
		"role", account.Role,
		"approved", account.Approved,
	)

	return account, nil
}

// Login verifies credentials and the approval gate. Unknown usernames and
// wrong passwords produce the same generic ErrUnauthorized; an unapproved
// account gets its own message so the user knows to wait rather than retry.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	account, err := s.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	if account.Role != models.RoleMainAdmin && !account.Approved {
		return nil, fmt.Errorf("account is awaiting approval: %w", domain.ErrForbidden)
	}

	s.logger.Info("login", "id", account.ID, "username", account.Username)

	return account, nil
}

// GetAccount looks up an account by id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// ListAccounts returns every account, oldest first.
func (s *AuthService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx)
}

// AssignRole reassigns an account's role.
func (s *AuthService) AssignRole(ctx context.Context, id string, req models.AssignRoleRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.accounts.UpdateRole(ctx, id, req.Role); err != nil {
		return err
	}

	s.logger.Info("role assigned", "id", id, "role", req.Role)
	return nil
}

// SetApproval flips the approval flag that gates login for plain admins.
func (s *AuthService) SetApproval(ctx context.Context, id string, approved bool) error {
	if err := s.accounts.UpdateApproval(ctx, id, approved); err != nil {
		return err
	}

	s.logger.Info("approval updated", "id", id, "approved", approved)
	return nil
}

// DeleteAccount removes an account. An account can never delete itself.
func (s *AuthService) DeleteAccount(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return fmt.Errorf("%w: you cannot delete your own account", domain.ErrValidation)
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("account deleted", "id", id, "by", actorID)
	return nil
}
