package storage

import (
	"context"
	"time"

	"urix/pkg/domain"
	"urix/pkg/uri"
)

// DocumentUpdates describes a set of optional fields that can be applied to an
// existing document during an update. Only non-nil fields are changed.
type DocumentUpdates struct {
	// Status is the new status to set for the document.
	Status domain.DocumentStatus
	// Content, when provided, replaces the stored document content. The worker
	// uses this after fetching a document's source URL.
	Content *string
	// Result, when provided, replaces the stored extraction result.
	Result *uri.Extraction
	// LastError, when provided, sets the last error text. An empty string value
	// indicates the error should be cleared (set to NULL).
	LastError *string
	// IncrementAttempts bumps the attempts counter by one as part of the update.
	IncrementAttempts bool
	// MaxAttempts, when provided alongside a Failed status, ensures that status
	// is only updated to Failed if the current attempts after increment would
	// reach this threshold. A value <= 0 disables this guard.
	MaxAttempts int
}

// UserDocuments groups a page of documents returned for a user together with
// an optional NextCursor used for pagination.
type UserDocuments struct {
	// Documents contains the current page of document records.
	Documents []domain.Document
	// NextCursor points to the timestamp to be used as the cursor for fetching
	// the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// DocumentStorage defines CRUD and query operations related to documents.
// Implementations should ensure idempotency and proper handling of
// soft-deletes where applicable.
type DocumentStorage interface {
	// StoreDocuments inserts one or more documents and returns the stored rows
	// as they exist in the database (including generated fields).
	StoreDocuments(ctx context.Context, docs ...domain.Document) ([]domain.Document, error)
	// UpdateDocumentByID updates a single document identified by its ID and returns the updated row.
	// The update ignores soft-deleted rows and sets updated_at automatically. Only provided fields are changed.
	UpdateDocumentByID(ctx context.Context, ID domain.DocumentID, updates DocumentUpdates) (*domain.Document, error)
	// DeleteDocument performs a soft delete for the given document ID and user
	// ID and returns the deleted document, or nil if it was not found.
	DeleteDocument(ctx context.Context, userID domain.UserID, ID domain.DocumentID) (*domain.Document, error)
	// UserDocuments returns a page of documents for a user created before the
	// optional cursor time, limited by the given limit. If status is non-empty,
	// results are filtered to records with the given status.
	UserDocuments(ctx context.Context,
		userID domain.UserID,
		status domain.DocumentStatus,
		cursor time.Time,
		limit uint) (UserDocuments, error)
	// DocumentByID fetches a document by its ID for the given user, excluding
	// soft-deleted records. Returns nil when not found.
	DocumentByID(ctx context.Context, userID domain.UserID, ID domain.DocumentID) (*domain.Document, error)
	// FindDocument fetches a document by its ID regardless of owner, excluding
	// soft-deleted records. The background worker uses it to load job targets.
	// Returns nil when not found.
	FindDocument(ctx context.Context, ID domain.DocumentID) (*domain.Document, error)
}
