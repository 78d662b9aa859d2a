package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// Result summarizes one document's import for the batch driver and for
// operator visibility. A zero SectionCount on an imported document signals
// degenerate segmentation — valid, but worth surfacing.
type Result struct {
	Status       domain.ImportStatus
	SectionCount int
	TopicCount   int
	KeywordCount int
	Duration     time.Duration
}

// Importer walks a segmented document tree and persists it exactly once.
type Importer struct {
	log  *slog.Logger
	repo Repo
	tx   TxManager
}

// New creates an Importer.
func New(log *slog.Logger, repo Repo, tx TxManager) *Importer {
	return &Importer{log: log, repo: repo, tx: tx}
}

// Import persists one fully-segmented document. Before any write it checks
// for an existing row with the same filename and returns a skip result if
// found — re-import is a no-op, never a merge. The structural inserts run
// in foreign-key order (document, sections, topics) inside one transaction:
// any failure rolls the whole document back, so a later retry starts from a
// clean slate instead of hitting the dedup guard on a half-imported row.
// Keyword associations run after the commit and are logged and skipped on
// failure, never fatal.
func (im *Importer) Import(ctx context.Context, doc *domain.Document) (Result, error) {
	start := time.Now()

	existing, err := im.repo.GetDocumentByFilename(ctx, doc.Filename)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return Result{Status: domain.ImportStatusFailed}, fmt.Errorf("dedup lookup %q: %w", doc.Filename, err)
	}
	if existing != nil {
		im.log.Info("document already imported, skipping",
			slog.String("filename", doc.Filename),
		)
		return Result{Status: domain.ImportStatusSkipped, Duration: time.Since(start)}, nil
	}

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	result := Result{Status: domain.ImportStatusImported}

	txErr := im.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := im.repo.InsertDocument(txCtx, doc); err != nil {
			return fmt.Errorf("insert document %q: %w", doc.Filename, err)
		}

		for si := range doc.Sections {
			section := &doc.Sections[si]
			if section.ID == uuid.Nil {
				section.ID = uuid.New()
			}
			section.DocumentID = doc.ID

			if err := im.repo.InsertSection(txCtx, section); err != nil {
				return fmt.Errorf("insert section %q: %w", section.Title, err)
			}
			result.SectionCount++

			for ti := range section.Topics {
				topic := &section.Topics[ti]
				if topic.ID == uuid.Nil {
					topic.ID = uuid.New()
				}
				topic.SectionID = section.ID

				if err := im.repo.InsertTopic(txCtx, topic); err != nil {
					return fmt.Errorf("insert topic %q: %w", topic.Title, err)
				}
				result.TopicCount++
			}
		}
		return nil
	})
	if txErr != nil {
		return Result{Status: domain.ImportStatusFailed}, txErr
	}

	// Associations run outside the transaction: a keyword failure must not
	// undo the committed document, and the frequency upserts stay visible
	// even when a later link is skipped.
	for si := range doc.Sections {
		section := &doc.Sections[si]
		for ti := range section.Topics {
			topic := &section.Topics[ti]
			result.KeywordCount += im.linkKeywords(ctx, topic.Keywords, func(kwID uuid.UUID, freq int) error {
				return im.repo.LinkTopicKeyword(ctx, topic.ID, kwID, freq)
			})
		}
	}

	result.KeywordCount += im.linkKeywords(ctx, doc.Keywords, func(kwID uuid.UUID, freq int) error {
		return im.repo.LinkDocumentKeyword(ctx, doc.ID, kwID, freq)
	})

	if result.SectionCount == 0 {
		im.log.Warn("degenerate segmentation: document imported with zero sections",
			slog.String("filename", doc.Filename),
		)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// linkKeywords upserts each keyword and inserts the join row. Failures are
// warnings, never fatal: one bad association must not abort the rest of the
// document. Returns the number of associations written.
func (im *Importer) linkKeywords(ctx context.Context, keywords []domain.KeywordCount, link func(uuid.UUID, int) error) int {
	linked := 0
	for _, kw := range keywords {
		kwID, err := im.repo.UpsertKeyword(ctx, kw.Keyword)
		if err != nil {
			im.log.Warn("keyword upsert failed, skipping",
				slog.String("keyword", kw.Keyword),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err := link(kwID, kw.Count); err != nil {
			im.log.Warn("keyword association failed, skipping",
				slog.String("keyword", kw.Keyword),
				slog.String("error", err.Error()),
			)
			continue
		}
		linked++
	}
	return linked
}
