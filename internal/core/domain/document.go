package domain

import (
	"errors"
	"time"
)

var ErrDocumentNotFound = errors.New("document not found")
var ErrFileMissing = errors.New("file is required")
var ErrForbidden = errors.New("access forbidden")

// DocumentOwner is the owner annotation attached to documents returned by
// list and get operations.
type DocumentOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Document is the metadata row for one uploaded file. The backing file lives
// in the upload directory under the unique name referenced by FileURL.
// OwnerID is fixed at creation; there is no transfer of ownership.
type Document struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	FileURL     string         `json:"file_url"`
	FileName    string         `json:"file_name"`
	FileSize    int64          `json:"file_size"`
	FileType    string         `json:"file_type"`
	OwnerID     string         `json:"owner_id"`
	Owner       *DocumentOwner `json:"owner,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CanAccess is the single access policy shared by document read and delete:
// admins may access any document, everyone else only their own.
func (d *Document) CanAccess(requesterID, requesterRole string) bool {
	return requesterRole == RoleAdmin || d.OwnerID == requesterID
}
