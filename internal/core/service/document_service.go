package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/numerisys/document-system/internal/api/metrics"
	"github.com/numerisys/document-system/internal/core/domain"
	"github.com/numerisys/document-system/internal/core/ports"
)

// DocumentService implements document upload, listing, retrieval and
// deletion, applying the ownership-or-admin access policy.
type DocumentService struct {
	repo   ports.DocumentRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, files ports.FileStore, logger zerolog.Logger) *DocumentService {
	return &DocumentService{repo: repo, files: files, logger: logger}
}

// Create stores the uploaded file under a generated unique name, then writes
// the metadata row referencing it. If the row insert fails the stored file
// is removed again so no unreachable content piles up.
func (s *DocumentService) Create(ctx context.Context, input ports.CreateDocumentInput) (*domain.Document, error) {
	if input.File == nil || input.File.Reader == nil {
		return nil, domain.ErrFileMissing
	}

	stored, err := s.files.Save(ctx, *input.File)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store uploaded file")
		return nil, err
	}

	doc := &domain.Document{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		FileURL:     stored.URL,
		FileName:    input.File.Name,
		FileSize:    stored.Size,
		FileType:    input.File.ContentType,
		OwnerID:     input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		if rmErr := s.files.Remove(ctx, stored.StoredName); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("stored_name", stored.StoredName).Msg("orphaned upload left behind")
		}
		return nil, err
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(created.Category).Inc()
	metrics.UploadBytesTotal.Add(float64(created.FileSize))
	s.logger.Info().Str("document_id", created.ID).Str("owner_id", created.OwnerID).Msg("document created")
	return created, nil
}

// List returns all documents for admins and only owned documents for
// regular users, newest first in both cases.
func (s *DocumentService) List(ctx context.Context, requesterID, requesterRole string) ([]*domain.Document, error) {
	if requesterRole == domain.RoleAdmin {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindByOwner(ctx, requesterID)
}

// Get retrieves one document, enforcing the access policy.
func (s *DocumentService) Get(ctx context.Context, id, requesterID, requesterRole string) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.CanAccess(requesterID, requesterRole) {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// Delete removes the backing file first, then the metadata row. A file that
// is already gone is tolerated; any other file-store failure aborts the
// delete so the row is never orphaned ahead of its content.
func (s *DocumentService) Delete(ctx context.Context, id, requesterID, requesterRole string) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !doc.CanAccess(requesterID, requesterRole) {
		return domain.ErrForbidden
	}

	if err := s.files.Remove(ctx, storedNameFromURL(doc.FileURL)); err != nil {
		s.logger.Error().Err(err).Str("document_id", id).Msg("failed to remove backing file")
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.DocumentsDeletedTotal.Inc()
	s.logger.Info().Str("document_id", id).Msg("document deleted")
	return nil
}

// storedNameFromURL strips the public path prefix from a file URL, leaving
// the generated name the file store knows the file by.
func storedNameFromURL(fileURL string) string {
	for i := len(fileURL) - 1; i >= 0; i-- {
		if fileURL[i] == '/' {
			return fileURL[i+1:]
		}
	}
	return fileURL
}
