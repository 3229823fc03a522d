package extractor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"urix/internal/extractor"

	mockstorage "urix/pkg/storage/mock"

	"go.uber.org/mock/gomock"

	"urix/pkg/domain"
	"urix/pkg/serrors"
	"urix/pkg/storage"
)

const (
	content   = "see https://example.com for details"
	sourceURL = "https://example.com/doc.txt"
)

func newTestExtractor(t *testing.T) (*gomock.Controller, *mockstorage.MockStorage, extractor.Extractor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	e := extractor.New(st, extractor.Options{MaxAttempts: 3})

	return ctrl, st, e
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			// provide a tx mock that implements AllStorage
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func TestExtractor_Submit_InlineContent(t *testing.T) {
	ctrl, st, e := newTestExtractor(t)

	userID := domain.UserID{}

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		// Expect storing the document
		tx.EXPECT().StoreDocuments(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, docs ...domain.Document) ([]domain.Document, error) {
				// return the same document with an ID
				ret := docs
				if len(ret) != 1 {
					t.Fatalf("expected one document input")
				}
				ret[0].ID = domain.DocumentID{} // zero is fine for test

				return ret, nil
			},
		)
		// Expect adding a job and report it was added
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(true, nil)
	})

	doc, err := e.Submit(context.Background(), userID, extractor.SubmitRequest{Content: content})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc == nil {
		t.Fatalf("expected document, got nil")
	}
	if doc.Content != content {
		t.Fatalf("expected content %q got %q", content, doc.Content)
	}
	if doc.Status != domain.DocumentStatusPending {
		t.Fatalf("expected status PENDING, got %s", doc.Status)
	}
}

func TestExtractor_Submit_SourceURL(t *testing.T) {
	ctrl, st, e := newTestExtractor(t)

	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreDocuments(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, docs ...domain.Document) ([]domain.Document, error) {
				if docs[0].SourceURL != sourceURL {
					t.Fatalf("expected source URL %q got %q", sourceURL, docs[0].SourceURL)
				}
				if docs[0].Content != "" {
					t.Fatalf("expected empty content, got %q", docs[0].Content)
				}

				return docs, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(true, nil)
	})

	doc, err := e.Submit(context.Background(), domain.UserID{}, extractor.SubmitRequest{SourceURL: sourceURL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Status != domain.DocumentStatusPending {
		t.Fatalf("expected status PENDING, got %s", doc.Status)
	}
}

func TestExtractor_Submit_InvalidRequests(t *testing.T) {
	_, st, e := newTestExtractor(t)
	// No storage calls expected
	st.EXPECT().WithTx(gomock.Any(), gomock.Any()).Times(0)

	cases := []struct {
		name string
		req  extractor.SubmitRequest
	}{
		{"empty", extractor.SubmitRequest{}},
		{"both set", extractor.SubmitRequest{Content: content, SourceURL: sourceURL}},
		{"malformed source URL", extractor.SubmitRequest{SourceURL: "http://[::1"}},
		{"relative source URL", extractor.SubmitRequest{SourceURL: "docs/readme.txt"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Submit(context.Background(), domain.UserID{}, tc.req)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, serrors.ErrBadRequest) {
				t.Fatalf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestExtractor_Submit_PropagatesErrors(t *testing.T) {
	ctrl, st, e := newTestExtractor(t)
	userID := domain.UserID{}

	// error from StoreDocuments
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreDocuments(gomock.Any(), gomock.Any()).Return(nil, errors.New("store err"))
	})
	if _, err := e.Submit(context.Background(), userID, extractor.SubmitRequest{Content: content}); err == nil {
		t.Fatalf("expected error from StoreDocuments")
	}

	// error from AddJob
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreDocuments(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, docs ...domain.Document) ([]domain.Document, error) {
				return docs, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(false, errors.New("add err"))
	})
	if _, err := e.Submit(context.Background(), userID, extractor.SubmitRequest{Content: content}); err == nil {
		t.Fatalf("expected error from AddJob")
	}
}

func TestExtractor_UserDocuments_SuccessAndPagination(t *testing.T) {
	_, st, e := newTestExtractor(t)
	userID := domain.UserID{}
	status := domain.DocumentStatusPending
	cursorTime := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	cursor := cursorTime.Format(time.RFC3339)

	page := storage.UserDocuments{
		Documents: []domain.Document{{Content: "a"}},
		NextCursor: func() *time.Time {
			t := cursorTime.Add(-time.Minute)

			return &t
		}(),
	}

	st.EXPECT().UserDocuments(gomock.Any(), userID, status, cursorTime, uint(10)).Return(page, nil)

	docs, next, err := e.UserDocuments(context.Background(), userID, status, cursor, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Content != "a" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
	if next == "" {
		t.Fatalf("expected next cursor, got empty")
	}
}

func TestExtractor_UserDocuments_InvalidCursor(t *testing.T) {
	_, _, e := newTestExtractor(t)
	_, _, err := e.UserDocuments(context.Background(), domain.UserID{}, "", "not-a-time", 5)
	if err == nil || !errors.Is(err, serrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestExtractor_Document(t *testing.T) {
	_, st, e := newTestExtractor(t)
	userID := domain.UserID{}
	id := domain.DocumentID{}

	// found
	st.EXPECT().DocumentByID(gomock.Any(), userID, id).Return(&domain.Document{Content: "x"}, nil)
	doc, err := e.Document(context.Background(), userID, id)
	if err != nil || doc == nil || doc.Content != "x" {
		t.Fatalf("unexpected: doc=%+v err=%v", doc, err)
	}

	// not found
	st.EXPECT().DocumentByID(gomock.Any(), userID, id).Return(nil, nil)
	_, err = e.Document(context.Background(), userID, id)
	if err == nil || !errors.Is(err, serrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// storage error
	st.EXPECT().DocumentByID(gomock.Any(), userID, id).Return(nil, errors.New("boom"))
	_, err = e.Document(context.Background(), userID, id)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestExtractor_Delete(t *testing.T) {
	_, st, e := newTestExtractor(t)
	userID := domain.UserID{}
	id := domain.DocumentID{}

	// success
	st.EXPECT().DeleteDocument(gomock.Any(), userID, id).Return(&domain.Document{}, nil)
	if err := e.Delete(context.Background(), userID, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// not found
	st.EXPECT().DeleteDocument(gomock.Any(), userID, id).Return(nil, nil)
	err := e.Delete(context.Background(), userID, id)
	if err == nil || !errors.Is(err, serrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// storage error
	st.EXPECT().DeleteDocument(gomock.Any(), userID, id).Return(nil, errors.New("boom"))
	if err := e.Delete(context.Background(), userID, id); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
