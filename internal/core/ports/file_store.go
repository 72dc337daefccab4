package ports

import (
	"context"
	"io"
)

// FileUpload carries an uploaded file stream into the document service.
type FileUpload struct {
	Name        string // original file name as sent by the client
	Size        int64
	ContentType string
	Reader      io.Reader
}

// StoredFile describes a file after it has been written to content storage.
type StoredFile struct {
	// StoredName is the generated collision-resistant name inside the store.
	StoredName string
	// URL is the public path the file is served from (e.g. /uploads/<name>).
	URL string
	// Size is the number of bytes actually written.
	Size int64
}

// FileStore persists uploaded file content under generated unique names.
type FileStore interface {
	Save(ctx context.Context, upload FileUpload) (*StoredFile, error)
	// Remove deletes a stored file by its generated name. Removing a file
	// that is already gone is not an error.
	Remove(ctx context.Context, storedName string) error
}
