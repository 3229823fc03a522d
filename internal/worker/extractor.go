package worker

import (
	"context"
	"errors"
	"fmt"

	"urix/internal/config"
	"urix/internal/extractor"
	"urix/pkg/domain"
	"urix/pkg/fetcher"
	"urix/pkg/logger"
	"urix/pkg/serrors"
	"urix/pkg/storage"
	"urix/pkg/uri"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// Options configure how documents are processed by the worker.
type Options struct {
	// MaxAttempts is the number of tries before a document with a transient
	// failure is marked failed instead of staying pending for another retry.
	MaxAttempts int
	// Schemes is the list of URI schemes recognized during extraction.
	// Empty means the built-in default list.
	Schemes []string
	// Normalize enables normalization of extracted component values. The
	// verbatim matched URIs are reported unchanged either way.
	Normalize bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Extractor.MaxAttempts,
		Schemes:     cfg.Extractor.Schemes,
		Normalize:   cfg.Extractor.Normalize,
	}
}

// DocumentWorker is a River worker that processes document extraction jobs.
// It loads the document, downloads the content when the document was submitted
// by source URL, runs URI extraction over the text, and stores the result.
//
// Failure handling distinguishes transient from permanent fetch errors. A
// transient failure (upstream 5xx, 429, connection errors) leaves the document
// pending and lets River retry until MaxAttempts is reached, at which point
// the document is marked failed. A permanent failure (source gone, oversized
// body) marks the document failed immediately and cancels the job.
type DocumentWorker struct {
	river.WorkerDefaults[extractor.JobArgs]

	// storage is used to load the document and persist the outcome.
	storage storage.Storage
	// fetcher downloads content for documents submitted by source URL.
	fetcher fetcher.Client
	// options control extraction and retry behavior.
	options Options
}

// NewDocumentWorker constructs a DocumentWorker using the provided storage and
// fetcher.
func NewDocumentWorker(st storage.Storage, fc fetcher.Client, options Options) *DocumentWorker {
	return &DocumentWorker{
		storage: st,
		fetcher: fc,
		options: options,
	}
}

// Work executes a single extraction job. Documents deleted or already
// processed since enqueueing are skipped.
func (w *DocumentWorker) Work(ctx context.Context, job *river.Job[extractor.JobArgs]) error {
	documentID := domain.DocumentID(job.Args.DocumentID)
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.Stringer("documentID", documentID))

	doc, err := w.storage.FindDocument(ctx, documentID)
	if err != nil {
		logger.Error(ctx, "error loading document", zap.Error(err))

		return fmt.Errorf("could not load document: %w", err)
	}
	if doc == nil {
		logger.Info(ctx, "document deleted before processing, cancelling job")

		return river.JobCancel(serrors.With(serrors.ErrNotFound, "document not found")) //nolint: wrapcheck
	}
	if doc.Status != domain.DocumentStatusPending {
		logger.Info(ctx, "document already processed", zap.String("status", string(doc.Status)))

		return nil
	}

	content := doc.Content
	fetched := false
	if doc.SourceURL != "" {
		content, err = w.fetcher.Fetch(ctx, doc.SourceURL)
		if err != nil {
			return w.fail(ctx, documentID, err)
		}
		fetched = true
	}

	result := uri.Extract(content, uri.ExtractOptions{
		Normalize: w.options.Normalize,
		Schemes:   w.options.Schemes,
	})

	empty := ""
	updates := storage.DocumentUpdates{
		Status:            domain.DocumentStatusCompleted,
		Result:            result,
		LastError:         &empty,
		IncrementAttempts: true,
	}
	if fetched {
		updates.Content = &content
	}
	if _, err := w.storage.UpdateDocumentByID(ctx, documentID, updates); err != nil {
		logger.Error(ctx, "error storing extraction result", zap.Error(err))

		return fmt.Errorf("could not store extraction result: %w", err)
	}

	logger.Info(ctx, "document processed successfully", zap.Int("uris", result.Len()))

	return nil
}

// fail records a processing failure on the document and maps it to the
// appropriate River action.
func (w *DocumentWorker) fail(ctx context.Context, documentID domain.DocumentID, cause error) error {
	logger.Error(ctx, "error fetching document content", zap.Error(cause))

	msg := cause.Error()
	updates := storage.DocumentUpdates{
		Status:            domain.DocumentStatusFailed,
		LastError:         &msg,
		IncrementAttempts: true,
	}

	// transient failures keep the document pending until the attempt budget
	// runs out; permanent ones fail it right away
	transient := errors.Is(cause, serrors.ErrUnavailable)
	if transient {
		updates.MaxAttempts = w.options.MaxAttempts
	}

	if _, err := w.storage.UpdateDocumentByID(ctx, documentID, updates); err != nil {
		logger.Error(ctx, "error recording document failure", zap.Error(err))

		return fmt.Errorf("could not record document failure: %w", err)
	}

	if !transient {
		return river.JobCancel(cause) //nolint: wrapcheck
	}

	return fmt.Errorf("could not fetch document content: %w", cause)
}
