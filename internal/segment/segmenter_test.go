package segment

import (
	"strings"
	"testing"

	"github.com/edustack/curriculum-backend/internal/domain"
	"github.com/edustack/curriculum-backend/internal/keyword"
)

var testVocab = []string{"ratio", "equation", "fraction", "percent"}

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	cfg := Config{MinSectionLen: 10, MinTopicLen: 10, MaxTitleLen: 100}
	return NewSegmenter(cfg, keyword.New(testVocab, 2))
}

func TestSegmentTwoUnits(t *testing.T) {
	s := newTestSegmenter(t)

	text := "UNIT 1 Ratios\nRatios compare two quantities.\n\nUNIT 2 Equations\nAn equation states equality."

	sections := s.Segment(text)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	if sections[0].Title != "Ratios" {
		t.Errorf("sections[0].Title = %q, want %q", sections[0].Title, "Ratios")
	}
	if sections[1].Title != "Equations" {
		t.Errorf("sections[1].Title = %q, want %q", sections[1].Title, "Equations")
	}

	for i, sec := range sections {
		if sec.SectionType != domain.SectionTypeUnit {
			t.Errorf("sections[%d].SectionType = %q, want unit", i, sec.SectionType)
		}
		if sec.SectionNumber == nil || *sec.SectionNumber != i+1 {
			t.Errorf("sections[%d].SectionNumber = %v, want %d", i, sec.SectionNumber, i+1)
		}
		if len(sec.Topics) != 1 {
			t.Errorf("sections[%d] has %d topics, want 1", i, len(sec.Topics))
		}
	}
}

func TestSegmentLabeledHeaderForms(t *testing.T) {
	s := newTestSegmenter(t)

	body := "Some body content long enough to keep the section alive."

	tests := []struct {
		name      string
		header    string
		wantTitle string
		wantType  domain.SectionType
		wantNum   int
	}{
		{"chapter colon", "Chapter 3: Linear Equations", "Linear Equations", domain.SectionTypeChapter, 3},
		{"lesson plain", "Lesson 12 Unit Rates", "Unit Rates", domain.SectionTypeLesson, 12},
		{"section dash", "Section 2 - Graphing", "Graphing", domain.SectionTypeLesson, 2},
		{"no title fragment", "Chapter 7", "Chapter 7", domain.SectionTypeChapter, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := s.Segment(tt.header + "\n" + body)
			if len(sections) != 1 {
				t.Fatalf("expected 1 section, got %d", len(sections))
			}
			sec := sections[0]
			if sec.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", sec.Title, tt.wantTitle)
			}
			if sec.SectionType != tt.wantType {
				t.Errorf("SectionType = %q, want %q", sec.SectionType, tt.wantType)
			}
			if sec.SectionNumber == nil || *sec.SectionNumber != tt.wantNum {
				t.Errorf("SectionNumber = %v, want %d", sec.SectionNumber, tt.wantNum)
			}
		})
	}
}

func TestSegmentBareNumberedHeader(t *testing.T) {
	s := newTestSegmenter(t)

	text := "4 Comparing Fractions\nFractions with unlike denominators are compared by rewriting them."

	sections := s.Segment(text)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	sec := sections[0]
	if sec.Title != "Comparing Fractions" {
		t.Errorf("Title = %q, want %q", sec.Title, "Comparing Fractions")
	}
	if sec.SectionNumber == nil || *sec.SectionNumber != 4 {
		t.Errorf("SectionNumber = %v, want 4", sec.SectionNumber)
	}
	// Bare-numbered anchors default to lesson.
	if sec.SectionType != domain.SectionTypeLesson {
		t.Errorf("SectionType = %q, want lesson", sec.SectionType)
	}
}

func TestSegmentLabeledBeatsNumbered(t *testing.T) {
	s := newTestSegmenter(t)

	// "Unit 5 Decimals" matches both the labeled and the bare-numbered
	// grammar; the labeled rule must win, so the number is 5 (not parsed
	// off a bare leading integer) and the type is unit.
	text := "Unit 5 Decimals\nDecimal place value builds on powers of ten and more."

	sections := s.Segment(text)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].SectionType != domain.SectionTypeUnit {
		t.Errorf("SectionType = %q, want unit (labeled rule must win)", sections[0].SectionType)
	}
	if sections[0].Title != "Decimals" {
		t.Errorf("Title = %q, want %q", sections[0].Title, "Decimals")
	}
}

func TestSegmentBareTitleHeuristics(t *testing.T) {
	s := newTestSegmenter(t)

	t.Run("first line of document", func(t *testing.T) {
		text := "Grade Seven Overview\nThis course develops proportional reasoning across several units of study."
		sections := s.Segment(text)
		if len(sections) != 1 {
			t.Fatalf("expected 1 section, got %d", len(sections))
		}
		if sections[0].Title != "Grade Seven Overview" {
			t.Errorf("Title = %q, want header line", sections[0].Title)
		}
	})

	t.Run("followed by much longer line", func(t *testing.T) {
		text := strings.Join([]string{
			"UNIT 1 Ratios",
			"Short line here.",
			"Proportional Reasoning",
			"This much longer body line explains how ratios and rates connect to proportional relationships in depth.",
		}, "\n")

		sections := s.Segment(text)
		if len(sections) != 2 {
			t.Fatalf("expected 2 sections, got %d", len(sections))
		}
		if sections[1].Title != "Proportional Reasoning" {
			t.Errorf("second section title = %q, want %q", sections[1].Title, "Proportional Reasoning")
		}
	})

	t.Run("mid-paragraph line does not anchor", func(t *testing.T) {
		// Same-length neighbours: no header context, so the title-cased
		// line stays body content.
		text := strings.Join([]string{
			"UNIT 1 Ratios",
			"A ratio compares two whole quantities by careful division, and we always",
			"Write Ratios As Fractions In The Very Same Manner",
			"before simplifying them to lowest terms as usual now.",
		}, "\n")

		sections := s.Segment(text)
		if len(sections) != 1 {
			t.Fatalf("expected 1 section, got %d: %+v", len(sections), sections)
		}
	})
}

func TestSegmentShortSectionsDropped(t *testing.T) {
	cfg := Config{MinSectionLen: 50, MinTopicLen: 10, MaxTitleLen: 100}
	s := NewSegmenter(cfg, keyword.New(testVocab, 2))

	// The first unit has a header and almost no body; the second has real
	// content. Only the second survives.
	text := "UNIT 1 Ratios\nToo short.\n\nUNIT 2 Equations\nAn equation states that two expressions are equal in value."

	sections := s.Segment(text)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section after post-filter, got %d", len(sections))
	}
	if sections[0].Title != "Equations" {
		t.Errorf("surviving section = %q, want %q", sections[0].Title, "Equations")
	}
	for _, sec := range sections {
		if len(sec.Content) < cfg.MinSectionLen {
			t.Errorf("section %q content length %d below threshold", sec.Title, len(sec.Content))
		}
	}
}

func TestSegmentPreambleBeforeFirstAnchor(t *testing.T) {
	s := newTestSegmenter(t)

	// Body lines before any anchor are never dropped silently: they open
	// an untitled section.
	text := "this course covers ratios and equations at grade seven.\n\nUNIT 1 Ratios\nRatios compare two quantities."

	sections := s.Segment(text)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !strings.HasPrefix(sections[0].Content, "this course covers") {
		t.Errorf("preamble content lost: %q", sections[0].Content)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	s := newTestSegmenter(t)

	for _, text := range []string{"", "\n\n\n", "   \n  \n"} {
		if got := s.Segment(text); len(got) != 0 {
			t.Errorf("Segment(%q) = %d sections, want 0", text, len(got))
		}
	}
}

func TestTopicExtraction(t *testing.T) {
	s := newTestSegmenter(t)

	text := strings.Join([]string{
		"UNIT 1 Ratios",
		"A ratio compares two quantities. It can be written three ways.",
		"",
		"Practice problems for ratio tables appear at the end.",
		"",
		"tiny.",
	}, "\n")

	sections := s.Segment(text)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}

	topics := sections[0].Topics
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics (short paragraph dropped), got %d", len(topics))
	}

	if topics[0].Title != "A ratio compares two quantities." {
		t.Errorf("topics[0].Title = %q", topics[0].Title)
	}
	if topics[0].TopicType != domain.TopicTypeConcept {
		t.Errorf("topics[0].TopicType = %q, want concept", topics[0].TopicType)
	}
	if topics[1].TopicType != domain.TopicTypeExercise {
		t.Errorf("topics[1].TopicType = %q, want exercise", topics[1].TopicType)
	}

	// Total classification: every topic has valid difficulty and type.
	for i, tp := range topics {
		if !tp.Difficulty.IsValid() {
			t.Errorf("topics[%d].Difficulty invalid: %q", i, tp.Difficulty)
		}
		if !tp.TopicType.IsValid() {
			t.Errorf("topics[%d].TopicType invalid: %q", i, tp.TopicType)
		}
		if tp.Position != i {
			t.Errorf("topics[%d].Position = %d", i, tp.Position)
		}
	}
}

func TestFirstSentenceTruncation(t *testing.T) {
	long := strings.Repeat("very long title without a terminator ", 5)

	got := firstSentence(long, 100)
	if len([]rune(got)) != 103 {
		t.Errorf("truncated title length = %d, want 100 + ellipsis", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated title missing ellipsis: %q", got)
	}

	short := "Short title. More text after."
	if got := firstSentence(short, 100); got != "Short title." {
		t.Errorf("firstSentence = %q, want %q", got, "Short title.")
	}
}
