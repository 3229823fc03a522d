package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"urix/pkg/domain"
	"urix/pkg/uri"

	"github.com/google/uuid"
)

type PgDocument struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	SourceURL string          `db:"source_url"`
	Content   string          `db:"content"`
	Status    string          `db:"status"`
	Result    json.RawMessage `db:"result" goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

// TODO: use https://github.com/jmattheis/goverter for converting

func (p *PgDocument) ToDomain() (*domain.Document, error) {
	var result uri.Extraction
	if err := json.Unmarshal(p.Result, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal extraction result: %w", err)
	}

	return &domain.Document{
		ID:        domain.DocumentID(p.ID),
		UserID:    domain.UserID(p.UserID),
		SourceURL: p.SourceURL,
		Content:   p.Content,
		Status:    domain.DocumentStatus(p.Status),
		Result:    result,
		Attempts:  p.Attempts,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgDocument) FromDomain(doc domain.Document) error {
	result, err := json.Marshal(doc.Result)
	if err != nil {
		return fmt.Errorf("could not marshal extraction result: %w", err)
	}

	*p = PgDocument{
		ID:        uuid.UUID(doc.ID),
		UserID:    uuid.UUID(doc.UserID),
		SourceURL: doc.SourceURL,
		Content:   doc.Content,
		Status:    string(doc.Status),
		Result:    result,
		Attempts:  doc.Attempts,
		LastError: sql.NullString{
			String: doc.LastError,
			Valid:  doc.LastError != "",
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  doc.UpdatedAt,
			Valid: !doc.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  doc.DeletedAt,
			Valid: !doc.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainDocumentsToPg(docs []domain.Document) ([]PgDocument, error) {
	out := make([]PgDocument, len(docs))
	for i := range out {
		if err := out[i].FromDomain(docs[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgDocumentsToDomain(docs []PgDocument) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(docs))
	for _, doc := range docs {
		d, err := doc.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
