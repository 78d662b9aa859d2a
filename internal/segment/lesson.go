package segment

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/edustack/curriculum-backend/internal/classify"
	"github.com/edustack/curriculum-backend/internal/domain"
	"github.com/edustack/curriculum-backend/internal/keyword"
)

// lessonMarker matches the literal UNIT/LESSON/SESSION markers used by
// lesson-structured curricula ("UNIT 2", "LESSON 5: Unit Rates",
// "SESSION 1 Warm-Up").
var lessonMarker = regexp.MustCompile(`(?i)^(unit|lesson|session)\s+(\d+)\s*[.:—-]?\s*(.*)$`)

// activityMarker matches activity/problem sub-headings within a lesson.
var activityMarker = regexp.MustCompile(`(?i)^(activity|problem)\s+(\d+)`)

// LessonSegmenter is the variant of the segmenter for documents structured
// around literal UNIT/LESSON/SESSION markers with activity/problem
// sub-extraction. It produces the same section tree as Segmenter, so one
// importer and one schema serve both document families; lesson sections
// additionally carry a focus tag.
type LessonSegmenter struct {
	cfg Config
	kw  *keyword.Extractor
}

// NewLessonSegmenter creates a LessonSegmenter.
func NewLessonSegmenter(cfg Config, kw *keyword.Extractor) *LessonSegmenter {
	return &LessonSegmenter{cfg: cfg.withDefaults(), kw: kw}
}

// Segment splits lesson-structured text at UNIT/LESSON/SESSION markers.
// Content-length filtering and body accumulation follow the same rules as
// the generic segmenter; only the anchor grammar and topic sub-extraction
// differ.
func (s *LessonSegmenter) Segment(text string) []domain.Section {
	lines := strings.Split(text, "\n")

	var sections []domain.Section
	var open *openSection

	flush := func() {
		if open == nil {
			return
		}
		if sec, ok := s.closeLesson(open, len(sections)); ok {
			sections = append(sections, sec)
		}
		open = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			if open != nil {
				open.lines = append(open.lines, "")
			}
			continue
		}

		if m := lessonMarker.FindStringSubmatch(line); m != nil {
			flush()
			num, _ := strconv.Atoi(m[2])
			title := strings.TrimSpace(m[3])
			if title == "" {
				kw := strings.ToLower(m[1])
				title = strings.ToUpper(kw[:1]) + kw[1:] + " " + m[2]
			}
			open = &openSection{anchorKeyword: m[1], number: &num, title: title}
			continue
		}

		if open == nil {
			open = &openSection{}
		}
		open.lines = append(open.lines, line)
	}
	flush()

	return sections
}

func (s *LessonSegmenter) closeLesson(open *openSection, position int) (domain.Section, bool) {
	content := strings.TrimSpace(strings.Join(open.lines, "\n"))
	if len(content) < s.cfg.MinSectionLen {
		return domain.Section{}, false
	}

	title := strings.TrimSpace(open.title)
	if title == "" {
		title = firstSentence(content, s.cfg.MaxTitleLen)
	}

	sectionType := domain.SectionTypeLesson
	if strings.EqualFold(open.anchorKeyword, "unit") {
		sectionType = domain.SectionTypeUnit
	}

	focus := classify.Focus(content)

	return domain.Section{
		Title:         title,
		SectionNumber: open.number,
		Content:       content,
		SectionType:   sectionType,
		Focus:         &focus,
		Position:      position,
		Topics:        s.extractLessonTopics(content),
	}, true
}

// extractLessonTopics splits lesson content at activity/problem markers.
// The leading block before the first marker is treated as ordinary
// paragraphs; each activity/problem block becomes one topic that is at
// least an exercise (an assessment signal still upgrades it).
func (s *LessonSegmenter) extractLessonTopics(content string) []domain.Topic {
	lines := strings.Split(content, "\n")

	var blocks []string
	var current []string
	markerAt := -1 // index into blocks of the first activity block

	flushBlock := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, strings.Join(current, "\n"))
		current = current[:0]
	}

	for _, line := range lines {
		if activityMarker.MatchString(strings.TrimSpace(line)) {
			flushBlock()
			if markerAt < 0 {
				markerAt = len(blocks)
			}
		}
		current = append(current, line)
	}
	flushBlock()

	var topics []domain.Topic

	appendTopic := func(para string, topicType domain.TopicType) {
		topics = append(topics, domain.Topic{
			Title:      firstSentence(para, s.cfg.MaxTitleLen),
			Content:    para,
			Difficulty: classify.Difficulty(para),
			TopicType:  topicType,
			Position:   len(topics),
			Keywords:   s.kw.Keywords(para),
		})
	}

	for i, block := range blocks {
		if markerAt >= 0 && i >= markerAt {
			// Activity/problem block: one topic, exercise at minimum.
			para := strings.Join(strings.Fields(block), " ")
			if len(para) < s.cfg.MinTopicLen {
				continue
			}
			tt := classify.TopicType(para)
			if tt != domain.TopicTypeAssessment {
				tt = domain.TopicTypeExercise
			}
			appendTopic(para, tt)
			continue
		}

		// Leading narrative block: regular paragraph extraction.
		for _, para := range splitParagraphs(block) {
			if len(para) < s.cfg.MinTopicLen {
				continue
			}
			appendTopic(para, classify.TopicType(para))
		}
	}

	return topics
}
