// Package curriculum implements the write-side document repository using
// PostgreSQL. It persists the segmented document tree (documents, sections,
// topics) and maintains the global keyword registry with its join tables.
package curriculum

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/edustack/curriculum-backend/internal/adapter/postgres"
	"github.com/edustack/curriculum-backend/internal/domain"
)

// Repo provides curriculum document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new curriculum repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// RunInTx executes fn inside a single transaction. Every repository method
// called from fn picks the transaction up from the context, so a document's
// structural inserts commit or roll back as one unit.
func (r *Repo) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.txm.RunInTx(ctx, fn)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetDocumentByFilename returns the document row matching the given filename.
// Returns domain.ErrNotFound if no such document exists. Sections are not
// loaded; the importer only needs the existence check and identity fields.
func (r *Repo) GetDocumentByFilename(ctx context.Context, filename string) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var doc domain.Document
	err := q.QueryRow(ctx,
		`SELECT id, filename, title, grade, subject, publisher, version, total_pages, extracted_at, raw_text, created_at
		 FROM documents WHERE filename = $1`,
		filename,
	).Scan(
		&doc.ID, &doc.Filename, &doc.Title, &doc.Grade, &doc.Subject,
		&doc.Publisher, &doc.Version, &doc.TotalPages, &doc.ExtractedAt,
		&doc.RawText, &doc.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err, "document", uuid.Nil)
	}

	return &doc, nil
}

// ---------------------------------------------------------------------------
// Structural inserts
// ---------------------------------------------------------------------------

// InsertDocument inserts the document row, including the denormalized
// section/topic/keyword counts computed from the in-memory tree.
// Returns domain.ErrAlreadyExists on a filename collision.
func (r *Repo) InsertDocument(ctx context.Context, doc *domain.Document) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO documents (id, filename, title, grade, subject, publisher, version,
		                        total_pages, extracted_at, raw_text,
		                        section_count, topic_count, keyword_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		doc.ID, doc.Filename, doc.Title, doc.Grade, doc.Subject, doc.Publisher, doc.Version,
		doc.TotalPages, doc.ExtractedAt, doc.RawText,
		doc.SectionCount(), doc.TopicCount(), len(doc.Keywords), doc.CreatedAt,
	)
	if err != nil {
		return mapError(err, "document", doc.ID)
	}

	return nil
}

// InsertSection inserts a section row. The document row must already exist.
func (r *Repo) InsertSection(ctx context.Context, section *domain.Section) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var focus *string
	if section.Focus != nil {
		f := string(*section.Focus)
		focus = &f
	}

	_, err := q.Exec(ctx,
		`INSERT INTO sections (id, document_id, title, section_number, start_page, end_page,
		                       content, section_type, focus, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())`,
		section.ID, section.DocumentID, section.Title, section.SectionNumber,
		section.StartPage, section.EndPage, section.Content,
		section.SectionType.String(), focus, section.Position,
	)
	if err != nil {
		return mapError(err, "section", section.ID)
	}

	return nil
}

// InsertTopic inserts a topic row. The section row must already exist.
func (r *Repo) InsertTopic(ctx context.Context, topic *domain.Topic) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO topics (id, section_id, title, description, page_number, content,
		                     difficulty, topic_type, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		topic.ID, topic.SectionID, topic.Title, topic.Description, topic.PageNumber,
		topic.Content, topic.Difficulty.String(), topic.TopicType.String(), topic.Position,
	)
	if err != nil {
		return mapError(err, "topic", topic.ID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Keyword registry
// ---------------------------------------------------------------------------

// UpsertKeyword inserts the keyword with frequency 1, or increments the
// existing row's frequency. A single statement keeps concurrent importers
// free of read-modify-write races on the frequency counter.
func (r *Repo) UpsertKeyword(ctx context.Context, keyword string) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	err := q.QueryRow(ctx,
		`INSERT INTO keywords (id, keyword, frequency)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (keyword) DO UPDATE SET frequency = keywords.frequency + 1
		 RETURNING id`,
		uuid.New(), domain.NormalizeKeyword(keyword),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, mapError(err, "keyword", uuid.Nil)
	}

	return id, nil
}

// LinkTopicKeyword associates a topic with a keyword. Re-linking an existing
// pair is a no-op.
func (r *Repo) LinkTopicKeyword(ctx context.Context, topicID, keywordID uuid.UUID, frequency int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO topic_keywords (topic_id, keyword_id, frequency)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (topic_id, keyword_id) DO NOTHING`,
		topicID, keywordID, frequency,
	)
	if err != nil {
		return mapError(err, "topic_keyword", topicID)
	}

	return nil
}

// LinkDocumentKeyword associates a document with a keyword. Re-linking an
// existing pair is a no-op.
func (r *Repo) LinkDocumentKeyword(ctx context.Context, documentID, keywordID uuid.UUID, frequency int) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO document_keywords (document_id, keyword_id, frequency)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (document_id, keyword_id) DO NOTHING`,
		documentID, keywordID, frequency,
	)
	if err != nil {
		return mapError(err, "document_keyword", documentID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
// context.DeadlineExceeded and context.Canceled pass through unmapped.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
