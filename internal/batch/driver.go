// Package batch drives the end-to-end import of a directory of curriculum
// files: discover supported files, extract text, segment, and hand each
// document to the importer, one file at a time.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/edustack/curriculum-backend/internal/config"
	"github.com/edustack/curriculum-backend/internal/domain"
	"github.com/edustack/curriculum-backend/internal/extract"
	"github.com/edustack/curriculum-backend/internal/importer"
	"github.com/edustack/curriculum-backend/internal/keyword"
	"github.com/edustack/curriculum-backend/internal/segment"
)

// segmenter is the common shape of the generic and lesson segmenters.
type segmenter interface {
	Segment(text string) []domain.Section
}

// documentImporter persists one segmented document. Implemented by
// importer.Importer.
type documentImporter interface {
	Import(ctx context.Context, doc *domain.Document) (importer.Result, error)
}

// Options selects the driver's processing mode.
type Options struct {
	// Lessons switches to the UNIT/LESSON/SESSION segmenter with focus
	// classification and standards-code extraction.
	Lessons bool
	// DryRun extracts and segments without touching the database.
	DryRun bool
}

// FileResult records the outcome of a single file.
type FileResult struct {
	Filename string
	Status   domain.ImportStatus
	Sections int
	Topics   int
	Keywords int
	Duration time.Duration
	Err      error
}

// Report aggregates a whole directory run.
type Report struct {
	Files    []FileResult
	Imported int
	Skipped  int
	Failed   int
}

// HasFailures reports whether any file failed.
func (r *Report) HasFailures() bool { return r.Failed > 0 }

// Driver runs the extract-segment-import pipeline over a directory.
type Driver struct {
	log  *slog.Logger
	cfg  config.PipelineConfig
	kw   *keyword.Extractor
	seg  segmenter
	imp  documentImporter
	opts Options
}

// New creates a Driver. The segmenter variant is chosen by opts.Lessons.
func New(log *slog.Logger, cfg config.PipelineConfig, imp documentImporter, opts Options) *Driver {
	kw := keyword.New(cfg.Vocab(), cfg.KeywordThreshold)

	segCfg := segment.Config{
		MinSectionLen: cfg.MinSectionLen,
		MinTopicLen:   cfg.MinTopicLen,
		MaxTitleLen:   cfg.MaxTitleLen,
	}

	var seg segmenter
	if opts.Lessons {
		seg = segment.NewLessonSegmenter(segCfg, kw)
	} else {
		seg = segment.NewSegmenter(segCfg, kw)
	}

	return &Driver{log: log, cfg: cfg, kw: kw, seg: seg, imp: imp, opts: opts}
}

// Run processes every supported file in dir in lexical order. A failed file
// is recorded and the run continues; only an unreadable directory aborts.
func (d *Driver) Run(ctx context.Context, dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !extract.IsSupported(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	d.log.Info("starting batch import",
		slog.String("dir", dir),
		slog.Int("files", len(files)),
		slog.Bool("lessons", d.opts.Lessons),
		slog.Bool("dry_run", d.opts.DryRun),
	)

	report := &Report{}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fr := d.processFile(ctx, filepath.Join(dir, name))
		report.Files = append(report.Files, fr)

		switch fr.Status {
		case domain.ImportStatusImported:
			report.Imported++
		case domain.ImportStatusSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}

	d.log.Info("batch import finished",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)

	return report, nil
}

// processFile runs one file through extraction, segmentation, and import.
func (d *Driver) processFile(ctx context.Context, path string) FileResult {
	start := time.Now()
	filename := filepath.Base(path)
	fr := FileResult{Filename: filename}

	ex, err := extract.ForFile(filename)
	if err != nil {
		fr.Status = domain.ImportStatusFailed
		fr.Err = err
		fr.Duration = time.Since(start)
		return fr
	}

	src, err := ex.Extract(path)
	if err != nil {
		d.log.Error("text extraction failed",
			slog.String("filename", filename),
			slog.String("error", err.Error()),
		)
		fr.Status = domain.ImportStatusFailed
		fr.Err = fmt.Errorf("extract %q: %w", filename, err)
		fr.Duration = time.Since(start)
		return fr
	}

	doc := d.buildDocument(src)

	if d.opts.DryRun {
		fr.Status = domain.ImportStatusImported
		fr.Sections = doc.SectionCount()
		fr.Topics = doc.TopicCount()
		fr.Keywords = len(doc.Keywords)
		fr.Duration = time.Since(start)
		return fr
	}

	res, err := d.imp.Import(ctx, doc)
	fr.Status = res.Status
	fr.Sections = res.SectionCount
	fr.Topics = res.TopicCount
	fr.Keywords = res.KeywordCount
	fr.Err = err
	fr.Duration = time.Since(start)
	return fr
}

// buildDocument assembles the domain tree for one extracted source file.
func (d *Driver) buildDocument(src domain.SourceText) *domain.Document {
	meta := extract.ParseFileMeta(src.Filename)

	// A volume marker in the filename is more specific than the configured
	// edition label, so it wins.
	version := d.cfg.Version
	if meta.Volume != "" {
		version = "v" + meta.Volume
	}

	doc := &domain.Document{
		Filename:    src.Filename,
		Title:       meta.Title,
		Grade:       meta.Grade,
		Subject:     d.cfg.Subject,
		Publisher:   d.cfg.Publisher,
		Version:     version,
		TotalPages:  src.TotalPages,
		ExtractedAt: time.Now().UTC(),
		CreatedAt:   time.Now().UTC(),
		Sections:    d.seg.Segment(src.Text),
		Keywords:    d.kw.Keywords(src.Text),
	}

	if d.cfg.RetainRawText {
		raw := src.Text
		doc.RawText = &raw
	}

	// Standards codes ride along as document-level keywords in lesson mode.
	if d.opts.Lessons {
		for _, code := range keyword.Standards(src.Text) {
			doc.Keywords = append(doc.Keywords, domain.KeywordCount{
				Keyword: code,
				Count:   strings.Count(src.Text, code),
			})
		}
	}

	return doc
}
