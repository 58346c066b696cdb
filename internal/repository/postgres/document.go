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

const documentColumns = "id, filename, folder_id, created_at, updated_at"

// PostgresDocumentRepository implements the DocumentRepository interface.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Documents, documentColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.ID,
		doc.Filename,
		doc.FolderID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a document named %q already exists", doc.Filename),
				ResourceType: "document",
			}
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)
	return r.scanOne(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *PostgresDocumentRepository) GetByFilename(ctx context.Context, filename string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE filename = $1`, documentColumns, r.tables.Documents)
	return r.scanOne(GetExecutor(ctx, r.pool).QueryRow(ctx, query, filename))
}

func (r *PostgresDocumentRepository) scanOne(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.FolderID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("document: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

func (r *PostgresDocumentRepository) ListAll(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s ORDER BY created_at ASC
	`, documentColumns, r.tables.Documents)
	return r.scanMany(ctx, query)
}

func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE folder_id = $1 ORDER BY created_at ASC
	`, documentColumns, r.tables.Documents)
	return r.scanMany(ctx, query, folderID)
}

func (r *PostgresDocumentRepository) SearchByFilename(ctx context.Context, term string) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE filename ILIKE $1 ORDER BY created_at ASC
	`, documentColumns, r.tables.Documents)
	return r.scanMany(ctx, query, "%"+term+"%")
}

func (r *PostgresDocumentRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]models.Document, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

func (r *PostgresDocumentRepository) Rename(ctx context.Context, id, filename string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET filename = $1, updated_at = $2 WHERE id = $3
	`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, filename, time.Now(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a document named %q already exists", filename),
				ResourceType: "document",
			}
		}
		return fmt.Errorf("rename document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresDocumentRepository) DeleteByFolderIDs(ctx context.Context, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE folder_id = ANY($1)`, r.tables.Documents)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderIDs); err != nil {
		return fmt.Errorf("delete documents in folders: %w", err)
	}

	return nil
}
