// Package extract obtains plain text and page counts from source files.
// It is the text-decoding collaborator at the pipeline boundary: the
// segmenter consumes its output and never sees the source format.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// Extractor converts one source file into a SourceText.
type Extractor interface {
	Extract(path string) (domain.SourceText, error)
}

// SupportedExtensions lists the file extensions the batch driver picks up.
var SupportedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
}

// ForFile returns the extractor for a filename's extension.
func ForFile(filename string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupported checks whether a filename has a supported extension.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
