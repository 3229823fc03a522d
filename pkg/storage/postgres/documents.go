package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"urix/pkg/domain"
	"urix/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	documentsTable = "documents"
)

func (p *PgSQL) StoreDocuments(ctx context.Context, docs ...domain.Document) ([]domain.Document, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	pgDocs, err := domainDocumentsToPg(docs)
	if err != nil {
		return nil, err
	}

	var result []PgDocument
	if err := p.Builder.Insert(documentsTable).
		Rows(pgDocs).
		Returning(&PgDocument{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store documents into pg: %w", err)
	}

	return pgDocumentsToDomain(result)
}

// UpdateDocumentByID updates a single non-deleted document with the provided fields.
// Only non-nil fields from updates are set and updated_at is always refreshed.
// When updates request a Failed status together with a positive MaxAttempts, the
// status only transitions to Failed once the incremented attempts counter reaches
// the threshold; otherwise the document stays pending for another retry.
func (p *PgSQL) UpdateDocumentByID(ctx context.Context,
	ID domain.DocumentID,
	updates storage.DocumentUpdates) (*domain.Document, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.IncrementAttempts {
		rec["attempts"] = goqu.L("attempts + 1")
	}
	if updates.Status != "" {
		if updates.Status == domain.DocumentStatusFailed && updates.MaxAttempts > 0 {
			attempts := "attempts"
			if updates.IncrementAttempts {
				attempts = "attempts + 1"
			}
			rec["status"] = goqu.L(
				fmt.Sprintf("CASE WHEN %s >= ? THEN ? ELSE ? END", attempts),
				updates.MaxAttempts,
				string(domain.DocumentStatusFailed),
				string(domain.DocumentStatusPending),
			)
		} else {
			rec["status"] = string(updates.Status)
		}
	}
	if updates.Content != nil {
		rec["content"] = *updates.Content
	}
	if updates.Result != nil {
		b, err := json.Marshal(updates.Result)
		if err != nil {
			return nil, fmt.Errorf("could not marshal result: %w", err)
		}

		rec["result"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			// set to NULL when empty string provided
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgDocument
	found, err := p.Builder.Update(documentsTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(ID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgDocument{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update document in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteDocument performs a soft delete by setting deleted_at timestamp
// for a given document id and user, returning the deleted record.
func (p *PgSQL) DeleteDocument(ctx context.Context,
	userID domain.UserID,
	ID domain.DocumentID) (*domain.Document, error) {
	var row PgDocument
	found, err := p.Builder.Update(documentsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(ID)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgDocument{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete document in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserDocuments returns a list of documents for a user filtered by optional status
// and cursor, limited by limit. Results are ordered by created_at DESC, id DESC.
// Returns the next cursor for pagination.
func (p *PgSQL) UserDocuments(ctx context.Context,
	userID domain.UserID,
	status domain.DocumentStatus,
	cursor time.Time,
	limit uint) (storage.UserDocuments, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(documentsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgDocument
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserDocuments{}, fmt.Errorf("could not fetch user documents from pg: %w", err)
	}

	// if we fetched more than the limit, there is a next page
	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	domainRows, err := pgDocumentsToDomain(rows)
	if err != nil {
		return storage.UserDocuments{}, err
	}

	return storage.UserDocuments{
		Documents:  domainRows,
		NextCursor: nextCursor,
	}, nil
}

// DocumentByID returns a document by its ID for the given user, excluding soft-deleted rows.
func (p *PgSQL) DocumentByID(ctx context.Context,
	userID domain.UserID,
	ID domain.DocumentID) (*domain.Document, error) {
	var row PgDocument
	found, err := p.Builder.From(documentsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(ID)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch document by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// FindDocument returns a document by its ID regardless of owner, excluding soft-deleted rows.
func (p *PgSQL) FindDocument(ctx context.Context, ID domain.DocumentID) (*domain.Document, error) {
	var row PgDocument
	found, err := p.Builder.From(documentsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(ID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch document by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
