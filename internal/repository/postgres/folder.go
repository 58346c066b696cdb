package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"congregate/internal/domain"
	"congregate/internal/domain/models"
	"congregate/internal/domain/repositories"
)

const folderColumns = "id, name, parent_id, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface.
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository.
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	now := time.Now()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	folder.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Folders, folderColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ID,
		folder.Name,
		folder.ParentID,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("parent folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	folder, err := r.scanOne(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (r *PostgresFolderRepository) scanOne(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

func (r *PostgresFolderRepository) ListRoots(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE parent_id IS NULL ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)
	return r.scanMany(ctx, query)
}

func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE parent_id = $1 ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)
	return r.scanMany(ctx, query, parentID)
}

func (r *PostgresFolderRepository) ListAll(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)
	return r.scanMany(ctx, query)
}

func (r *PostgresFolderRepository) SearchByName(ctx context.Context, term string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE name ILIKE $1 ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)
	return r.scanMany(ctx, query, "%"+term+"%")
}

func (r *PostgresFolderRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		folder, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

func (r *PostgresFolderRepository) Rename(ctx context.Context, id, name string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, updated_at = $2 WHERE id = $3
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, name, time.Now(), id)
	if err != nil {
		return fmt.Errorf("rename folder: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFolderRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Folders)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("delete folders: %w", err)
	}

	return nil
}
