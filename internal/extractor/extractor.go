// Package extractor implements the document lifecycle: submitting text or a
// source URL for background URI extraction, listing and fetching results, and
// deleting documents.
package extractor

import (
	"context"
	"fmt"
	"time"

	"urix/internal/config"
	"urix/pkg/domain"
	"urix/pkg/serrors"
	"urix/pkg/storage"
	"urix/pkg/uri"

	"github.com/google/uuid"
)

// Options configure how extraction jobs are enqueued.
// These settings are typically derived from application configuration.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker should
	// make when processing a document before marking it failed.
	MaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Extractor.MaxAttempts,
	}
}

// extractor is the concrete implementation of the Extractor interface.
// It coordinates persistence with the storage layer and job enqueueing.
type extractor struct {
	// options holds runtime configuration that affects enqueueing.
	options Options
	// storage is the persistence layer used to store documents and manage jobs.
	storage storage.Storage
}

// Submit stores a new pending document for the given user and enqueues a
// background job to extract URIs from it. Inline content is stored directly;
// a source URL is validated here and downloaded later by the worker.
func (e extractor) Submit(ctx context.Context,
	userID domain.UserID,
	req SubmitRequest) (*domain.Document, error) {
	if (req.Content == "") == (req.SourceURL == "") {
		return nil, serrors.With(serrors.ErrBadRequest, "exactly one of content and sourceUrl must be provided")
	}
	if req.SourceURL != "" {
		parsed, err := uri.Parse(req.SourceURL, uri.ParseOptions{})
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid source URL")
		}
		if !parsed.HasScheme {
			return nil, serrors.With(serrors.ErrBadRequest, "source URL must be absolute")
		}
	}

	var doc *domain.Document
	if err := e.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreDocuments(ctx, domain.Document{
			UserID:    userID,
			SourceURL: req.SourceURL,
			Content:   req.Content,
			Status:    domain.DocumentStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not store document: %w", err)
		}
		doc = &res[0]

		// Document IDs are fresh UUIDs so the unique constraint never skips the
		// insert; it only guards against re-enqueueing a live document.
		if _, err := tx.AddJob(ctx, JobArgs{
			DocumentID:  uuid.UUID(doc.ID),
			maxAttempts: e.options.MaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not submit document: %w", err)
	}

	return doc, nil
}

// UserDocuments returns a page of documents for the given user filtered by
// status. It supports cursor-based pagination using an RFC3339 timestamp
// string and returns the next cursor when more results are available.
func (e extractor) UserDocuments(ctx context.Context,
	userID domain.UserID,
	status domain.DocumentStatus,
	cursor string,
	limit uint) ([]domain.Document, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := e.storage.UserDocuments(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user documents: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Documents, next, nil
}

// Document fetches a single document by ID for the given user. It returns a
// not-found error when no matching document exists.
func (e extractor) Document(ctx context.Context,
	userID domain.UserID,
	documentID domain.DocumentID) (*domain.Document, error) {
	res, err := e.storage.DocumentByID(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("could not get document: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "document not found")
	}

	return res, nil
}

// Delete removes a document belonging to the given user. If the document does
// not exist, a not-found error is returned. A live extraction job for the
// document is left alone; the worker skips documents that are gone by the time
// it runs.
func (e extractor) Delete(ctx context.Context, userID domain.UserID, documentID domain.DocumentID) error {
	res, err := e.storage.DeleteDocument(ctx, userID, documentID)
	if err != nil {
		return fmt.Errorf("could not delete document: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "document not found")
	}

	return nil
}

// New creates a new Extractor instance backed by the provided storage and
// configured with the given options.
func New(storage storage.Storage, options Options) Extractor {
	return &extractor{
		options: options,
		storage: storage,
	}
}
