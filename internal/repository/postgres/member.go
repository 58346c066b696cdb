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

const memberColumns = "id, full_name, barcode, department, assembly, entry_type, entry_year, date_of_birth, category, photo, created_at, updated_at"

// PostgresMemberRepository implements the MemberRepository interface.
type PostgresMemberRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(config *RepositoryConfig) repositories.MemberRepository {
	return &PostgresMemberRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Members, memberColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		member.ID,
		member.FullName,
		member.Barcode,
		member.Department,
		member.Assembly,
		member.EntryType,
		member.EntryYear,
		member.DateOfBirth,
		member.Category,
		member.Photo,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("barcode %q is already assigned", member.Barcode),
				ResourceType: "member",
			}
		}
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

func (r *PostgresMemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, memberColumns, r.tables.Members)
	return r.scanOne(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *PostgresMemberRepository) GetByBarcode(ctx context.Context, barcode string) (*models.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE barcode = $1`, memberColumns, r.tables.Members)
	return r.scanOne(GetExecutor(ctx, r.pool).QueryRow(ctx, query, barcode))
}

func (r *PostgresMemberRepository) scanOne(row pgx.Row) (*models.Member, error) {
	var member models.Member
	err := row.Scan(
		&member.ID,
		&member.FullName,
		&member.Barcode,
		&member.Department,
		&member.Assembly,
		&member.EntryType,
		&member.EntryYear,
		&member.DateOfBirth,
		&member.Category,
		&member.Photo,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("member: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	return &member, nil
}

// orderClause maps a sort key to a SQL ORDER BY expression. Unknown keys
// fall back to name ascending.
func orderClause(sort string) string {
	switch sort {
	case models.SortNameDesc:
		return "full_name DESC"
	case models.SortDepartmentAsc:
		return "department ASC"
	case models.SortDepartmentDesc:
		return "department DESC"
	case models.SortBarcodeAsc:
		return "barcode ASC"
	case models.SortBarcodeDesc:
		return "barcode DESC"
	default:
		return "full_name ASC"
	}
}

func (r *PostgresMemberRepository) List(ctx context.Context, q models.MemberQuery) ([]models.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE category = $1`, memberColumns, r.tables.Members)
	args := []interface{}{q.Category}

	if q.Search != "" {
		query += ` AND (full_name ILIKE $2 OR barcode ILIKE $2 OR department ILIKE $2)`
		args = append(args, "%"+q.Search+"%")
	}
	query += " ORDER BY " + orderClause(q.Sort)

	return r.scanMany(ctx, query, args...)
}

func (r *PostgresMemberRepository) ListAll(ctx context.Context) ([]models.Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at ASC`, memberColumns, r.tables.Members)
	return r.scanMany(ctx, query)
}

func (r *PostgresMemberRepository) scanMany(ctx context.Context, query string, args ...interface{}) ([]models.Member, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		member, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}

	return members, nil
}

func (r *PostgresMemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET full_name = $1, barcode = $2, department = $3, assembly = $4,
		    entry_type = $5, entry_year = $6, date_of_birth = $7,
		    category = $8, photo = $9, updated_at = $10
		WHERE id = $11
	`, r.tables.Members)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		member.FullName,
		member.Barcode,
		member.Department,
		member.Assembly,
		member.EntryType,
		member.EntryYear,
		member.DateOfBirth,
		member.Category,
		member.Photo,
		member.UpdatedAt,
		member.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("barcode %q is already assigned", member.Barcode),
				ResourceType: "member",
			}
		}
		return fmt.Errorf("update member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s: %w", member.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresMemberRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Members)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
