package ports

import (
	"context"

	"github.com/numerisys/document-system/internal/core/domain"
)

// DocumentRepository defines persistence operations for document metadata.
// All read methods return documents annotated with their owner and ordered
// newest first.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	// FindAll returns every document in the store (admin listing).
	FindAll(ctx context.Context) ([]*domain.Document, error)
	// FindByOwner returns only documents owned by ownerID.
	FindByOwner(ctx context.Context, ownerID string) ([]*domain.Document, error)
	Delete(ctx context.Context, id string) error
}
