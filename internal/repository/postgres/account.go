package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
)

// PostgresAccountRepository implements the AccountRepository interface.
type PostgresAccountRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(config *RepositoryConfig) repositories.AccountRepository {
	return &PostgresAccountRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, password_hash, role, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Accounts)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		account.ID,
		account.Username,
		account.PasswordHash,
		account.Role,
		account.Approved,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("username %q is already taken", account.Username),
				ResourceType: "account",
			}
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, approved, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Accounts)

	return r.scanOne(ctx, query, id)
}

func (r *PostgresAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, approved, created_at
		FROM %s
		WHERE username = $1
	`, r.tables.Accounts)

	return r.scanOne(ctx, query, username)
}

func (r *PostgresAccountRepository) scanOne(ctx context.Context, query string, arg interface{}) (*models.Account, error) {
	var account models.Account
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.Approved,
		&account.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &account, nil
}

func (r *PostgresAccountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, approved, created_at
		FROM %s
		ORDER BY created_at ASC
	`, r.tables.Accounts)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.Username,
			&account.PasswordHash,
			&account.Role,
			&account.Approved,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *PostgresAccountRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.tables.Accounts)

	var count int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return count, nil
}

func (r *PostgresAccountRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	query := fmt.Sprintf(`
		UPDATE %s SET role = $1 WHERE id = $2
	`, r.tables.Accounts)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("update account role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresAccountRepository) UpdateApproval(ctx context.Context, id string, approved bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET approved = $1 WHERE id = $2
	`, r.tables.Accounts)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, approved, id)
	if err != nil {
		return fmt.Errorf("update account approval: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresAccountRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Accounts)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
