// Package catalog implements the read-side repository for browsing imported
// curriculum documents. Queries are built with squirrel and scanned with
// scany; the package never writes.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/edustack/curriculum-backend/internal/adapter/postgres"
	"github.com/edustack/curriculum-backend/internal/domain"
)

// builder is the shared squirrel statement builder with PostgreSQL placeholders.
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// DocumentFilter narrows ListDocuments. Zero values mean "no filter".
type DocumentFilter struct {
	Grade   *int
	Subject string
	Limit   int
	Offset  int
}

// DocumentRow is the flat list representation of a document.
type DocumentRow struct {
	ID           uuid.UUID `db:"id"`
	Filename     string    `db:"filename"`
	Title        string    `db:"title"`
	Grade        *int      `db:"grade"`
	Subject      string    `db:"subject"`
	Publisher    string    `db:"publisher"`
	Version      string    `db:"version"`
	TotalPages   int       `db:"total_pages"`
	SectionCount int       `db:"section_count"`
	TopicCount   int       `db:"topic_count"`
	KeywordCount int       `db:"keyword_count"`
	CreatedAt    time.Time `db:"created_at"`
}

// SectionRow is a section as returned by SectionsByDocument.
type SectionRow struct {
	ID            uuid.UUID `db:"id"`
	DocumentID    uuid.UUID `db:"document_id"`
	Title         string    `db:"title"`
	SectionNumber *int      `db:"section_number"`
	SectionType   string    `db:"section_type"`
	Focus         *string   `db:"focus"`
	Position      int       `db:"position"`
	TopicCount    int       `db:"topic_count"`
}

// TopicRow is a topic as returned by TopicsByKeyword.
type TopicRow struct {
	ID           uuid.UUID `db:"id"`
	SectionID    uuid.UUID `db:"section_id"`
	SectionTitle string    `db:"section_title"`
	Title        string    `db:"title"`
	Difficulty   string    `db:"difficulty"`
	TopicType    string    `db:"topic_type"`
	Position     int       `db:"position"`
}

// KeywordRow is a keyword with its per-document frequency.
type KeywordRow struct {
	ID        uuid.UUID `db:"id"`
	Keyword   string    `db:"keyword"`
	Frequency int       `db:"frequency"`
}

// GradeStats aggregates per-grade counts for pacing overviews.
type GradeStats struct {
	Grade         int `db:"grade"`
	DocumentCount int `db:"document_count"`
	SectionCount  int `db:"section_count"`
	TopicCount    int `db:"topic_count"`
}

// Repo provides read access to the imported curriculum catalog.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListDocuments returns documents matching the filter, newest first.
// Always returns a non-nil slice.
func (r *Repo) ListDocuments(ctx context.Context, filter DocumentFilter) ([]DocumentRow, error) {
	q := builder.
		Select("id", "filename", "title", "grade", "subject", "publisher", "version",
			"total_pages", "section_count", "topic_count", "keyword_count", "created_at").
		From("documents").
		OrderBy("created_at DESC, filename ASC")

	if filter.Grade != nil {
		q = q.Where(squirrel.Eq{"grade": *filter.Grade})
	}
	if filter.Subject != "" {
		q = q.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents query: %w", err)
	}

	rows := []DocumentRow{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return rows, nil
}

// SectionsByDocument returns the document's sections in position order,
// each with its topic count.
func (r *Repo) SectionsByDocument(ctx context.Context, documentID uuid.UUID) ([]SectionRow, error) {
	sql, args, err := builder.
		Select("s.id", "s.document_id", "s.title", "s.section_number",
			"s.section_type", "s.focus", "s.position").
		Column("count(t.id) AS topic_count").
		From("sections s").
		LeftJoin("topics t ON t.section_id = s.id").
		Where(squirrel.Eq{"s.document_id": documentID}).
		GroupBy("s.id").
		OrderBy("s.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sections query: %w", err)
	}

	rows := []SectionRow{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("sections by document: %w", err)
	}

	return rows, nil
}

// TopicsByKeyword returns topics linked to the given keyword text, joined
// with their section titles. The keyword is normalized before lookup.
func (r *Repo) TopicsByKeyword(ctx context.Context, keyword string) ([]TopicRow, error) {
	sql, args, err := builder.
		Select("t.id", "t.section_id", "s.title AS section_title",
			"t.title", "t.difficulty", "t.topic_type", "t.position").
		From("topics t").
		Join("sections s ON s.id = t.section_id").
		Join("topic_keywords tk ON tk.topic_id = t.id").
		Join("keywords k ON k.id = tk.keyword_id").
		Where(squirrel.Eq{"k.keyword": domain.NormalizeKeyword(keyword)}).
		OrderBy("s.title ASC", "t.position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build topics by keyword query: %w", err)
	}

	rows := []TopicRow{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("topics by keyword: %w", err)
	}

	return rows, nil
}

// KeywordsByDocument returns the document's keywords ordered by their
// per-document frequency, highest first.
func (r *Repo) KeywordsByDocument(ctx context.Context, documentID uuid.UUID) ([]KeywordRow, error) {
	sql, args, err := builder.
		Select("k.id", "k.keyword", "dk.frequency").
		From("keywords k").
		Join("document_keywords dk ON dk.keyword_id = k.id").
		Where(squirrel.Eq{"dk.document_id": documentID}).
		OrderBy("dk.frequency DESC", "k.keyword ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build keywords by document query: %w", err)
	}

	rows := []KeywordRow{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("keywords by document: %w", err)
	}

	return rows, nil
}

// GradeOverview returns per-grade document/section/topic counts.
// Documents without a grade are excluded.
func (r *Repo) GradeOverview(ctx context.Context) ([]GradeStats, error) {
	sql, args, err := builder.
		Select("d.grade").
		Column("count(DISTINCT d.id) AS document_count").
		Column("count(DISTINCT s.id) AS section_count").
		Column("count(t.id) AS topic_count").
		From("documents d").
		LeftJoin("sections s ON s.document_id = d.id").
		LeftJoin("topics t ON t.section_id = s.id").
		Where("d.grade IS NOT NULL").
		GroupBy("d.grade").
		OrderBy("d.grade ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build grade overview query: %w", err)
	}

	rows := []GradeStats{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("grade overview: %w", err)
	}

	return rows, nil
}

func (r *Repo) querier(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.pool)
}
