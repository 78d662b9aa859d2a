// Package catalog exposes browse and pacing queries over the imported
// curriculum catalog. It validates inputs, clamps paging, and aggregates
// the read repo's rows into presentation-ready shapes.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	catalogrepo "github.com/edustack/curriculum-backend/internal/adapter/postgres/catalog"
	"github.com/edustack/curriculum-backend/internal/config"
	"github.com/edustack/curriculum-backend/internal/domain"
)

type catalogRepo interface {
	ListDocuments(ctx context.Context, filter catalogrepo.DocumentFilter) ([]catalogrepo.DocumentRow, error)
	SectionsByDocument(ctx context.Context, documentID uuid.UUID) ([]catalogrepo.SectionRow, error)
	TopicsByKeyword(ctx context.Context, keyword string) ([]catalogrepo.TopicRow, error)
	KeywordsByDocument(ctx context.Context, documentID uuid.UUID) ([]catalogrepo.KeywordRow, error)
	GradeOverview(ctx context.Context) ([]catalogrepo.GradeStats, error)
}

// Service implements catalog browse operations.
type Service struct {
	log  *slog.Logger
	repo catalogRepo
	cfg  config.CatalogConfig
}

// NewService creates a new catalog service.
func NewService(logger *slog.Logger, repo catalogRepo, cfg config.CatalogConfig) *Service {
	return &Service{
		log:  logger.With("service", "catalog"),
		repo: repo,
		cfg:  cfg,
	}
}

// ListDocuments returns documents matching the filter. Limit is clamped to
// [1, MaxPageSize], defaulting to MaxPageSize. Grade, when set, must be in
// the 1..12 range.
func (s *Service) ListDocuments(ctx context.Context, filter catalogrepo.DocumentFilter) ([]catalogrepo.DocumentRow, error) {
	if filter.Grade != nil && (*filter.Grade < 1 || *filter.Grade > 12) {
		return nil, domain.NewValidationError("grade", "must be between 1 and 12")
	}
	if filter.Offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}

	if filter.Limit <= 0 || filter.Limit > s.cfg.MaxPageSize {
		filter.Limit = s.cfg.MaxPageSize
	}

	return s.repo.ListDocuments(ctx, filter)
}

// DocumentOutline returns the document's sections in reading order.
func (s *Service) DocumentOutline(ctx context.Context, documentID uuid.UUID) ([]catalogrepo.SectionRow, error) {
	if documentID == uuid.Nil {
		return nil, domain.NewValidationError("document_id", "required")
	}
	return s.repo.SectionsByDocument(ctx, documentID)
}

// TopicsByKeyword returns topics tagged with the keyword. An empty keyword
// returns an empty result without a repo call.
func (s *Service) TopicsByKeyword(ctx context.Context, keyword string) ([]catalogrepo.TopicRow, error) {
	if domain.NormalizeKeyword(keyword) == "" {
		return []catalogrepo.TopicRow{}, nil
	}
	return s.repo.TopicsByKeyword(ctx, keyword)
}

// DocumentKeywords returns the document's keywords, highest frequency first.
func (s *Service) DocumentKeywords(ctx context.Context, documentID uuid.UUID) ([]catalogrepo.KeywordRow, error) {
	if documentID == uuid.Nil {
		return nil, domain.NewValidationError("document_id", "required")
	}
	return s.repo.KeywordsByDocument(ctx, documentID)
}

// PacingWeek is one instructional week's share of a grade's sections.
type PacingWeek struct {
	Week     int
	Sections int
}

// PacingGuide distributes a grade's sections across the configured number of
// instructional weeks.
type PacingGuide struct {
	Grade         int
	DocumentCount int
	SectionCount  int
	TopicCount    int
	Weeks         []PacingWeek
}

// PacingGuide builds a per-week section pacing plan for the given grade.
// Sections are spread as evenly as possible; earlier weeks absorb the
// remainder. Returns domain.ErrNotFound when the grade has no documents.
func (s *Service) PacingGuide(ctx context.Context, grade int) (*PacingGuide, error) {
	if grade < 1 || grade > 12 {
		return nil, domain.NewValidationError("grade", "must be between 1 and 12")
	}

	overview, err := s.repo.GradeOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("grade overview: %w", err)
	}

	var stats *catalogrepo.GradeStats
	for i := range overview {
		if overview[i].Grade == grade {
			stats = &overview[i]
			break
		}
	}
	if stats == nil {
		return nil, fmt.Errorf("grade %d: %w", grade, domain.ErrNotFound)
	}

	guide := &PacingGuide{
		Grade:         grade,
		DocumentCount: stats.DocumentCount,
		SectionCount:  stats.SectionCount,
		TopicCount:    stats.TopicCount,
		Weeks:         make([]PacingWeek, s.cfg.PacingWeeks),
	}

	perWeek := stats.SectionCount / s.cfg.PacingWeeks
	remainder := stats.SectionCount % s.cfg.PacingWeeks
	for i := range guide.Weeks {
		guide.Weeks[i] = PacingWeek{Week: i + 1, Sections: perWeek}
		if i < remainder {
			guide.Weeks[i].Sections++
		}
	}

	s.log.Debug("built pacing guide",
		slog.Int("grade", grade),
		slog.Int("sections", stats.SectionCount),
		slog.Int("weeks", s.cfg.PacingWeeks),
	)

	return guide, nil
}
