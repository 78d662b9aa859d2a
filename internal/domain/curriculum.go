package domain

import (
	"time"

	"github.com/google/uuid"
)

// SourceText is the raw input handed to the pipeline by a text-extraction
// collaborator: the full extracted text of one source file plus sidecar
// metadata. How the text was obtained (PDF decoding, OCR, ...) is outside
// the pipeline's concern.
type SourceText struct {
	Filename   string
	Text       string
	TotalPages int
}

// Document is one imported source file with its segmented subtree.
// Filename is the global unique key: re-importing an existing filename
// is a no-op, never a merge.
type Document struct {
	ID          uuid.UUID
	Filename    string
	Title       string
	Grade       *int
	Subject     string
	Publisher   string
	Version     string
	TotalPages  int
	ExtractedAt time.Time
	RawText     *string
	CreatedAt   time.Time

	Sections []Section
	Keywords []KeywordCount
}

// Section is a unit/chapter/lesson-level container. Belongs to exactly one
// document. Sections whose content falls below the segmenter's minimum
// length threshold are never persisted.
type Section struct {
	ID            uuid.UUID
	DocumentID    uuid.UUID
	Title         string
	SectionNumber *int
	StartPage     *int
	EndPage       *int
	Content       string
	SectionType   SectionType
	Focus         *Focus
	Position      int
	CreatedAt     time.Time

	Topics []Topic
}

// Topic is a paragraph/concept-level leaf. Difficulty and TopicType are
// always assigned — the classifiers are total.
type Topic struct {
	ID          uuid.UUID
	SectionID   uuid.UUID
	Title       string
	Description *string
	PageNumber  *int
	Content     string
	Difficulty  Difficulty
	TopicType   TopicType
	Position    int
	CreatedAt   time.Time

	Keywords []KeywordCount
}

// Keyword is a deduplicated term with a running global frequency.
// Frequency only ever increases.
type Keyword struct {
	ID        uuid.UUID
	Keyword   string
	Frequency int
}

// KeywordCount is a keyword with its local occurrence count within one
// extraction span (a topic or a whole document).
type KeywordCount struct {
	Keyword string
	Count   int
}

// SectionCount returns the number of sections in the document tree.
func (d *Document) SectionCount() int { return len(d.Sections) }

// TopicCount returns the total number of topics across all sections.
func (d *Document) TopicCount() int {
	n := 0
	for i := range d.Sections {
		n += len(d.Sections[i].Topics)
	}
	return n
}
