package ports

import (
	"context"

	"github.com/numerisys/document-system/internal/core/domain"
)

// CreateDocumentInput carries all data needed to create a new document.
// File is nil when the client attached no file.
type CreateDocumentInput struct {
	OwnerID     string
	Title       string
	Description string
	Category    string
	File        *FileUpload
}

// DocumentService defines use-case operations for documents. Requester
// identity and role come from the verified bearer credential and drive the
// ownership-or-admin access policy.
type DocumentService interface {
	Create(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	List(ctx context.Context, requesterID, requesterRole string) ([]*domain.Document, error)
	Get(ctx context.Context, id, requesterID, requesterRole string) (*domain.Document, error)
	Delete(ctx context.Context, id, requesterID, requesterRole string) error
}
