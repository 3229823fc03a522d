package extractor

import (
	"context"

	"urix/pkg/domain"
)

// SubmitRequest describes a document submission. Exactly one of Content and
// SourceURL must be set: inline text is extracted as-is, while a source URL is
// downloaded by the background worker before extraction.
type SubmitRequest struct {
	Content   string
	SourceURL string
}

//go:generate mockgen -package mockextractor -source=interface.go -destination=mock/mockextractor.go *
type Extractor interface {
	Submit(ctx context.Context, userID domain.UserID, req SubmitRequest) (*domain.Document, error)
	UserDocuments(ctx context.Context,
		userID domain.UserID,
		status domain.DocumentStatus,
		cursor string,
		limit uint) ([]domain.Document, string, error)
	Document(ctx context.Context, userID domain.UserID, documentID domain.DocumentID) (*domain.Document, error)
	Delete(ctx context.Context, userID domain.UserID, documentID domain.DocumentID) error
}
