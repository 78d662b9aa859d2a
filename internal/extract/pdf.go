package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// PDFExtractor pulls plain text out of PDF files page by page.
type PDFExtractor struct{}

// Extract reads every page's plain text, joined with form feeds, and
// reports the page count. Pages whose text cannot be decoded are skipped
// rather than failing the whole file.
func (e *PDFExtractor) Extract(path string) (domain.SourceText, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return domain.SourceText{}, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}

	return domain.SourceText{
		Filename:   filepath.Base(path),
		Text:       buf.String(),
		TotalPages: numPages,
	}, nil
}
