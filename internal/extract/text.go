package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// TextExtractor handles already-plain text files. One file counts as one
// page.
type TextExtractor struct{}

func (e *TextExtractor) Extract(path string) (domain.SourceText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceText{}, fmt.Errorf("read %s: %w", path, err)
	}

	return domain.SourceText{
		Filename:   filepath.Base(path),
		Text:       string(data),
		TotalPages: 1,
	}, nil
}
