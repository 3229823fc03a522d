package v1handler

import (
	"net/http"
	"strconv"

	"urix/internal/extractor"
	"urix/pkg/domain"
	"urix/pkg/serrors"

	"github.com/google/uuid"
)

// CreateDocumentRequest is the body of POST /v1/documents. Exactly one of
// Content and SourceURL must be set.
type CreateDocumentRequest struct {
	// Content is inline text to extract URIs from.
	Content string `json:"content,omitempty"`
	// SourceURL is an absolute URL the content is downloaded from.
	SourceURL string `json:"sourceUrl,omitempty"`
}

// DocumentList is the body returned by GET /v1/documents.
type DocumentList struct {
	Items []domain.Document `json:"items"`
	// NextCursor is the cursor for the next page, empty when this is the last page.
	NextCursor string `json:"nextCursor,omitempty"`
}

// CreateDocument submits a new document for background URI extraction.
func (h Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateDocumentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(ctx, w, err)

		return
	}

	doc, err := h.deps.Extractor.Submit(ctx, GetUserIDFromContext(ctx), extractor.SubmitRequest{
		Content:   req.Content,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusCreated, doc)
}

// ListDocuments returns a paginated list of the user's documents. Supported
// query parameters: status, cursor and limit.
func (h Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := uint(DefaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	docs, nextCursor, err := h.deps.Extractor.UserDocuments(ctx,
		GetUserIDFromContext(ctx),
		domain.DocumentStatus(r.URL.Query().Get("status")),
		r.URL.Query().Get("cursor"),
		limit)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	if docs == nil {
		docs = []domain.Document{}
	}

	writeJSON(ctx, w, http.StatusOK, DocumentList{
		Items:      docs,
		NextCursor: nextCursor,
	})
}

// GetDocument returns a document and its extraction result by ID.
func (h Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid document ID"))

		return
	}

	doc, err := h.deps.Extractor.Document(ctx, GetUserIDFromContext(ctx), domain.DocumentID(id))
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, doc)
}

// DeleteDocument deletes a document by ID.
func (h Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid document ID"))

		return
	}

	if err := h.deps.Extractor.Delete(ctx, GetUserIDFromContext(ctx), domain.DocumentID(id)); err != nil {
		writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
