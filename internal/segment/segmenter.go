// Package segment turns a flat stream of extracted document text into a
// nested tree of curriculum sections and topics. Pure functions over
// strings: no database dependencies. The segmenter is heuristic — ambiguous
// headers may mis-split, which is an accepted, testable limitation.
package segment

import (
	"strings"

	"github.com/edustack/curriculum-backend/internal/classify"
	"github.com/edustack/curriculum-backend/internal/domain"
	"github.com/edustack/curriculum-backend/internal/keyword"
)

// Config holds segmentation thresholds.
type Config struct {
	// MinSectionLen is the minimum content length for a section to survive
	// the post-filter. Header-only and table-of-contents fragments fall
	// below it and are dropped.
	MinSectionLen int
	// MinTopicLen is the minimum paragraph length for a topic.
	MinTopicLen int
	// MaxTitleLen is the truncation point for derived titles.
	MaxTitleLen int
}

// DefaultConfig returns the thresholds used when the config file leaves
// them unset.
func DefaultConfig() Config {
	return Config{
		MinSectionLen: 50,
		MinTopicLen:   30,
		MaxTitleLen:   100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinSectionLen <= 0 {
		c.MinSectionLen = d.MinSectionLen
	}
	if c.MinTopicLen <= 0 {
		c.MinTopicLen = d.MinTopicLen
	}
	if c.MaxTitleLen <= 0 {
		c.MaxTitleLen = d.MaxTitleLen
	}
	return c
}

// Segmenter scans document text line-by-line and produces ordered sections,
// each with ordered topics, classifier tags, and extracted keywords.
type Segmenter struct {
	cfg Config
	kw  *keyword.Extractor
}

// NewSegmenter creates a Segmenter using the given thresholds and keyword
// extractor.
func NewSegmenter(cfg Config, kw *keyword.Extractor) *Segmenter {
	return &Segmenter{cfg: cfg.withDefaults(), kw: kw}
}

// openSection is the accumulator for the section currently being scanned:
// the matched anchor data plus the line buffer that becomes its content.
type openSection struct {
	anchorKeyword string
	number        *int
	title         string
	lines         []string
}

// Segment splits the full text of a document into sections. Lines are
// tested against the anchor rules in priority order; a match closes the
// open section and starts a new one, anything else is body content. Blank
// lines never anchor but stay in the buffer so paragraph boundaries survive
// into topic extraction. Sections whose final content is shorter than
// MinSectionLen are dropped.
func (s *Segmenter) Segment(text string) []domain.Section {
	lines := strings.Split(text, "\n")

	var sections []domain.Section
	var open *openSection

	flush := func() {
		if open == nil {
			return
		}
		if sec, ok := s.closeSection(open, len(sections)); ok {
			sections = append(sections, sec)
		}
		open = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if open != nil {
				open.lines = append(open.lines, "")
			}
			continue
		}

		if m, ok := matchAnchor(line, lineContext{
			isFirst: i == 0,
			prevLen: trimmedLen(lines, i-1),
			nextLen: trimmedLen(lines, i+1),
		}); ok {
			flush()
			open = &openSection{
				anchorKeyword: m.keyword,
				number:        m.number,
				title:         m.title,
			}
			continue
		}

		// Body content before the first anchor still belongs to a section:
		// open an untitled one and let the post-filter decide its fate.
		if open == nil {
			open = &openSection{}
		}
		open.lines = append(open.lines, line)
	}
	flush()

	return sections
}

// closeSection turns an accumulator into a domain.Section, or reports false
// when the content falls below the minimum length threshold.
func (s *Segmenter) closeSection(open *openSection, position int) (domain.Section, bool) {
	content := strings.TrimSpace(strings.Join(open.lines, "\n"))
	if len(content) < s.cfg.MinSectionLen {
		return domain.Section{}, false
	}

	title := strings.TrimSpace(open.title)
	if title == "" {
		// Untitled preamble: derive a title the same way topics do.
		title = firstSentence(content, s.cfg.MaxTitleLen)
	}

	return domain.Section{
		Title:         title,
		SectionNumber: open.number,
		Content:       content,
		SectionType:   classify.SectionType(open.anchorKeyword, title),
		Position:      position,
		Topics:        s.extractTopics(content),
	}, true
}

// extractTopics splits section content on blank-line boundaries into
// paragraphs and builds one classified, keyworded topic per surviving
// paragraph.
func (s *Segmenter) extractTopics(content string) []domain.Topic {
	var topics []domain.Topic
	for _, para := range splitParagraphs(content) {
		if len(para) < s.cfg.MinTopicLen {
			continue
		}
		topics = append(topics, domain.Topic{
			Title:      firstSentence(para, s.cfg.MaxTitleLen),
			Content:    para,
			Difficulty: classify.Difficulty(para),
			TopicType:  classify.TopicType(para),
			Position:   len(topics),
			Keywords:   s.kw.Keywords(para),
		})
	}
	return topics
}

// splitParagraphs breaks text into paragraphs at one or more blank lines.
// Line breaks within a paragraph are collapsed to spaces.
func splitParagraphs(text string) []string {
	var paras []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		paras = append(paras, strings.Join(current, " "))
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paras
}

// firstSentence returns the text up to and including the first sentence
// terminator, truncated with an ellipsis when longer than max.
func firstSentence(text string, max int) string {
	sentence := text
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		sentence = text[:idx+1]
	}
	sentence = strings.TrimSpace(sentence)

	runes := []rune(sentence)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return sentence
}

// trimmedLen returns the trimmed length of lines[i], or 0 when out of
// range. Blank neighbours count as length zero, which is what makes a
// header after an empty line satisfy the short-predecessor heuristic.
func trimmedLen(lines []string, i int) int {
	if i < 0 || i >= len(lines) {
		return 0
	}
	return len(strings.TrimSpace(lines[i]))
}
