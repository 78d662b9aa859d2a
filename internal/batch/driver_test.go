package batch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edustack/curriculum-backend/internal/config"
	"github.com/edustack/curriculum-backend/internal/domain"
	"github.com/edustack/curriculum-backend/internal/importer"
)

// mockImporter is a func-field mock recording imported documents.
type mockImporter struct {
	ImportFunc func(ctx context.Context, doc *domain.Document) (importer.Result, error)
	docs       []*domain.Document
}

func (m *mockImporter) Import(ctx context.Context, doc *domain.Document) (importer.Result, error) {
	m.docs = append(m.docs, doc)
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, doc)
	}
	return importer.Result{
		Status:       domain.ImportStatusImported,
		SectionCount: doc.SectionCount(),
		TopicCount:   doc.TopicCount(),
	}, nil
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		MinSectionLen:    10,
		MinTopicLen:      10,
		MaxTitleLen:      100,
		KeywordThreshold: 2,
		Vocabulary:       []string{"ratio", "equation"},
		Subject:          "mathematics",
		Publisher:        "Test Press",
		Version:          "v1",
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleText = `UNIT 1 Ratios

A ratio compares two quantities. The ratio of wings to beaks is two to one.

UNIT 2 Equations

An equation states that two expressions are equal in every case considered.
`

func TestRun_ProcessesSupportedFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_grade_7.txt", sampleText)
	writeFile(t, dir, "a_grade_6.txt", sampleText)
	writeFile(t, dir, "notes.csv", "unsupported")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	imp := &mockImporter{}
	d := New(testLogger(), testPipelineConfig(), imp, Options{})

	report, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, "a_grade_6.txt", report.Files[0].Filename)
	assert.Equal(t, "b_grade_7.txt", report.Files[1].Filename)
	assert.Equal(t, 2, report.Imported)
	assert.False(t, report.HasFailures())
}

func TestRun_BuildsDocumentFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "grade_7_unit_rates.txt", sampleText)

	imp := &mockImporter{}
	d := New(testLogger(), testPipelineConfig(), imp, Options{})

	_, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, imp.docs, 1)
	doc := imp.docs[0]
	assert.Equal(t, "grade_7_unit_rates.txt", doc.Filename)
	require.NotNil(t, doc.Grade)
	assert.Equal(t, 7, *doc.Grade)
	assert.Equal(t, "mathematics", doc.Subject)
	assert.Equal(t, 2, doc.SectionCount())
	assert.Equal(t, "v1", doc.Version, "no volume marker falls back to the configured edition")
	assert.Nil(t, doc.RawText, "raw text retention defaults to off")
}

func TestRun_VolumeMarkerOverridesVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Grade 7 Math Volume 2.txt", sampleText)

	imp := &mockImporter{}
	d := New(testLogger(), testPipelineConfig(), imp, Options{})

	_, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, imp.docs, 1)
	assert.Equal(t, "v2", imp.docs[0].Version)
}

func TestRun_RetainRawText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", sampleText)

	cfg := testPipelineConfig()
	cfg.RetainRawText = true
	imp := &mockImporter{}
	d := New(testLogger(), cfg, imp, Options{})

	_, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, imp.docs, 1)
	require.NotNil(t, imp.docs[0].RawText)
	assert.Equal(t, sampleText, *imp.docs[0].RawText)
}

func TestRun_DryRunSkipsImporter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.txt", sampleText)

	imp := &mockImporter{
		ImportFunc: func(context.Context, *domain.Document) (importer.Result, error) {
			t.Fatal("importer must not be called in dry-run mode")
			return importer.Result{}, nil
		},
	}
	d := New(testLogger(), testPipelineConfig(), imp, Options{DryRun: true})

	report, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, domain.ImportStatusImported, report.Files[0].Status)
	assert.Equal(t, 2, report.Files[0].Sections)
}

func TestRun_FailedFileDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_bad.txt", sampleText)
	writeFile(t, dir, "b_good.txt", sampleText)

	importErr := errors.New("insert failed")
	imp := &mockImporter{
		ImportFunc: func(_ context.Context, doc *domain.Document) (importer.Result, error) {
			if doc.Filename == "a_bad.txt" {
				return importer.Result{Status: domain.ImportStatusFailed}, importErr
			}
			return importer.Result{Status: domain.ImportStatusImported}, nil
		},
	}
	d := New(testLogger(), testPipelineConfig(), imp, Options{})

	report, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Imported)
	assert.ErrorIs(t, report.Files[0].Err, importErr)
	assert.True(t, report.HasFailures())
}

func TestRun_SkippedDuplicatesCounted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dup.txt", sampleText)

	imp := &mockImporter{
		ImportFunc: func(context.Context, *domain.Document) (importer.Result, error) {
			return importer.Result{Status: domain.ImportStatusSkipped}, nil
		},
	}
	d := New(testLogger(), testPipelineConfig(), imp, Options{})

	report, err := d.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Imported)
}

func TestRun_LessonsModeMergesStandardsCodes(t *testing.T) {
	dir := t.TempDir()
	lessonText := `LESSON 1 Unit Rates

Students compute unit rates per standard 6.RP.A.2 and compare with 6.RP.A.2
in context. See also 7.NS.A.1b for rational numbers.
`
	writeFile(t, dir, "lessons.txt", lessonText)

	imp := &mockImporter{}
	d := New(testLogger(), testPipelineConfig(), imp, Options{Lessons: true})

	_, err := d.Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, imp.docs, 1)
	kw := map[string]int{}
	for _, k := range imp.docs[0].Keywords {
		kw[k.Keyword] = k.Count
	}
	assert.Equal(t, 2, kw["6.RP.A.2"], "standards code occurrences should be counted")
	assert.Equal(t, 1, kw["7.NS.A.1b"])
}

func TestRun_UnreadableDirFails(t *testing.T) {
	imp := &mockImporter{}
	d := New(testLogger(), testPipelineConfig(), imp, Options{})

	_, err := d.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
