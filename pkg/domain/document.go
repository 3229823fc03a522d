package domain

import (
	"time"

	"github.com/google/uuid"

	"urix/pkg/uri"
)

// DocumentID uniquely identifies a submitted document.
// It wraps uuid.UUID to provide type safety at the domain layer.
type DocumentID uuid.UUID

// String returns the canonical UUID text form of the ID.
func (id DocumentID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID as a canonical UUID string in JSON and text encodings.
func (id DocumentID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText parses a canonical UUID string into the ID.
func (id *DocumentID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*id = DocumentID(u)

	return nil
}

// DocumentStatus represents the lifecycle state of a document's extraction.
// It can be pending, completed, or failed.
type DocumentStatus string

const (
	// DocumentStatusPending indicates the document has been enqueued but not processed yet.
	DocumentStatusPending DocumentStatus = "PENDING"
	// DocumentStatusCompleted indicates extraction finished and a result is available.
	DocumentStatusCompleted DocumentStatus = "COMPLETED"
	// DocumentStatusFailed indicates extraction ended with an error; see LastError and Attempts for details.
	DocumentStatusFailed DocumentStatus = "FAILED"
)

// Document represents a single piece of submitted text and the state of its
// URI extraction. The text is either supplied inline or fetched from
// SourceURL before processing.
type Document struct {
	// ID is the unique identifier of the document.
	ID DocumentID `json:"id"`
	// UserID is the identifier of the user who submitted the document.
	UserID UserID `json:"userId"`

	// SourceURL is the location the content is fetched from. Empty when the
	// content was supplied inline.
	SourceURL string `json:"sourceUrl,omitempty"`
	// Content is the text the URIs are extracted from. For fetched documents
	// it is filled in by the worker.
	Content string `json:"content,omitempty"`
	// Status is the current lifecycle state of the extraction.
	Status DocumentStatus `json:"status"`
	// Result contains the extracted URIs once processing completed.
	Result uri.Extraction `json:"result"`

	// Attempts is the number of times the system has tried to process this document.
	Attempts uint `json:"attempts"`
	// LastError stores the most recent error message, if any, encountered while processing.
	LastError string `json:"-"`

	// CreatedAt is the time when the document was submitted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time when the document was last updated (e.g., status or result changed).
	UpdatedAt time.Time `json:"updatedAt"`
	// DeletedAt marks when the document was soft-deleted; zero value means not deleted.
	DeletedAt time.Time `json:"-"`
}
