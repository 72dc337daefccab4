package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/numerisys/document-system/internal/core/domain"
)

// DocumentRepository persists document metadata in Postgres. All reads join
// the owning user so responses carry the owner annotation, and order rows
// newest first.
type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `
	d.id, d.title, d.description, d.category,
	d.file_url, d.file_name, d.file_size, d.file_type,
	d.owner_id, d.created_at,
	u.id, u.name, u.email`

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *doc
	created.ID = uuid.NewString()

	query := `
		INSERT INTO documents (id, title, description, category, file_url, file_name, file_size, file_type, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		created.ID, created.Title, created.Description, created.Category,
		created.FileURL, created.FileName, created.FileSize, created.FileType,
		created.OwnerID, created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return r.FindByID(ctx, created.ID)
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE d.id = $1`

	var d domain.Document
	var owner domain.DocumentOwner
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Title, &d.Description, &d.Category,
		&d.FileURL, &d.FileName, &d.FileSize, &d.FileType,
		&d.OwnerID, &d.CreatedAt,
		&owner.ID, &owner.Name, &owner.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	d.Owner = &owner

	return &d, nil
}

func (r *DocumentRepository) FindAll(ctx context.Context) ([]*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		ORDER BY d.created_at DESC, d.id DESC`

	return r.queryDocuments(ctx, query)
}

func (r *DocumentRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents d
		JOIN users u ON u.id = d.owner_id
		WHERE d.owner_id = $1
		ORDER BY d.created_at DESC, d.id DESC`

	return r.queryDocuments(ctx, query, ownerID)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var d domain.Document
		var owner domain.DocumentOwner
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Category,
			&d.FileURL, &d.FileName, &d.FileSize, &d.FileType,
			&d.OwnerID, &d.CreatedAt,
			&owner.ID, &owner.Name, &owner.Email,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Owner = &owner
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}
