package v1handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"urix/internal/api/handler/v1handler"
	"urix/internal/extractor"
	mockextractor "urix/internal/extractor/mock"
	"urix/pkg/domain"
	"urix/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newDocumentsMux registers the document routes the way the server does, so
// path parameters resolve in tests.
func newDocumentsMux(h *v1handler.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/documents", h.CreateDocument)
	mux.HandleFunc("GET /v1/documents", h.ListDocuments)
	mux.HandleFunc("GET /v1/documents/{id}", h.GetDocument)
	mux.HandleFunc("DELETE /v1/documents/{id}", h.DeleteDocument)

	return mux
}

func newTestDocumentsHandler(t *testing.T) (*mockextractor.MockExtractor, *http.ServeMux) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ext := mockextractor.NewMockExtractor(ctrl)
	mux := newDocumentsMux(v1handler.New(v1handler.Deps{Extractor: ext}))

	return ext, mux
}

func withUser(req *http.Request, userID domain.UserID) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), v1handler.UserIDKey, userID))
}

func TestCreateDocument(t *testing.T) {
	ext, mux := newTestDocumentsHandler(t)
	userID := domain.UserID(uuid.New())

	ext.EXPECT().Submit(gomock.Any(), userID, extractor.SubmitRequest{Content: "text"}).
		Return(&domain.Document{
			ID:      domain.DocumentID(uuid.New()),
			UserID:  userID,
			Content: "text",
			Status:  domain.DocumentStatusPending,
		}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(`{"content":"text"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, userID))

	require.Equal(t, http.StatusCreated, rec.Code)
	var doc domain.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, domain.DocumentStatusPending, doc.Status)
	require.Equal(t, "text", doc.Content)
}

func TestCreateDocument_BadRequest(t *testing.T) {
	ext, mux := newTestDocumentsHandler(t)

	ext.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrBadRequest, "exactly one of content and sourceUrl must be provided"))

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, domain.UserID{}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, serrors.ErrBadRequest.Error(), decodeError(t, rec).Code)
}

func TestListDocuments(t *testing.T) {
	ext, mux := newTestDocumentsHandler(t)
	userID := domain.UserID(uuid.New())

	ext.EXPECT().UserDocuments(gomock.Any(),
		userID,
		domain.DocumentStatusCompleted,
		"2026-01-02T15:04:05Z",
		uint(5)).
		Return([]domain.Document{{Status: domain.DocumentStatusCompleted}}, "next", nil)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/documents?status=COMPLETED&cursor=2026-01-02T15%3A04%3A05Z&limit=5", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var list v1handler.DocumentList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	require.Equal(t, "next", list.NextCursor)
}

func TestListDocuments_InvalidLimit(t *testing.T) {
	_, mux := newTestDocumentsHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents?limit=zero", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, domain.UserID{}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDocument(t *testing.T) {
	ext, mux := newTestDocumentsHandler(t)
	userID := domain.UserID(uuid.New())
	id := uuid.New()

	ext.EXPECT().Document(gomock.Any(), userID, domain.DocumentID(id)).
		Return(&domain.Document{ID: domain.DocumentID(id), Status: domain.DocumentStatusCompleted}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/"+id.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var doc domain.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Equal(t, domain.DocumentID(id), doc.ID)
}

func TestGetDocument_NotFoundAndBadID(t *testing.T) {
	ext, mux := newTestDocumentsHandler(t)
	id := uuid.New()

	ext.EXPECT().Document(gomock.Any(), gomock.Any(), domain.DocumentID(id)).
		Return(nil, serrors.With(serrors.ErrNotFound, "document not found"))

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/"+id.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, domain.UserID{}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, serrors.ErrNotFound.Error(), decodeError(t, rec).Code)

	// malformed ID never reaches the service
	req = httptest.NewRequest(http.MethodGet, "/v1/documents/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, domain.UserID{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteDocument(t *testing.T) {
	ext, mux := newTestDocumentsHandler(t)
	userID := domain.UserID(uuid.New())
	id := uuid.New()

	ext.EXPECT().Delete(gomock.Any(), userID, domain.DocumentID(id)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/documents/"+id.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, withUser(req, userID))

	require.Equal(t, http.StatusNoContent, rec.Code)
}
