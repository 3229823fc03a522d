package extractor

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// JobArgs contains the arguments for a document extraction job submitted to
// River. The document ID is the unique key so each document is processed by at
// most one active job.
type JobArgs struct {
	// DocumentID identifies the document to extract URIs from.
	DocumentID uuid.UUID `json:"documentId" river:"unique"`

	// maxAttempts configures the maximum number of times River should retry the job.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the extraction worker.
func (args JobArgs) Kind() string { return "ExtractDocumentJob" }

// InsertOpts returns the River options that control how the job is enqueued.
// Uniqueness is scoped to states where the job is still live so a document is
// never processed twice concurrently.
func (args JobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
