// Package classify tags curriculum entities with type, difficulty, and
// focus metadata. All classifiers are pure and total: they always return a
// value and never fail. Each is an ordered rule list evaluated
// first-match-wins, so priority between co-occurring signals stays explicit
// and testable per rule.
package classify

import (
	"regexp"
	"strings"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// rule pairs a predicate with the tag it produces. Rules run in slice
// order; the first match wins.
type rule[T any] struct {
	match func(text string) bool
	tag   T
}

func classify[T any](rules []rule[T], text string, fallback T) T {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.match(lower) {
			return r.tag
		}
	}
	return fallback
}

// containsAny reports whether the (already lowercased) text contains any of
// the given phrases.
func containsAny(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}
}

// leadingNumbering matches enumerated items like "3. Solve for x".
var leadingNumbering = regexp.MustCompile(`^\s*\d+\.\s`)

// Assessment signals outrank exercise signals, which outrank example
// signals; these commonly co-occur in real paragraphs ("practice quiz"),
// so the order is load-bearing.
var topicRules = []rule[domain.TopicType]{
	{containsAny("test", "quiz", "assessment"), domain.TopicTypeAssessment},
	{containsAny("exercise", "practice", "problem"), domain.TopicTypeExercise},
	{func(lower string) bool {
		return strings.Contains(lower, "example") ||
			strings.Contains(lower, "solve") ||
			leadingNumbering.MatchString(lower)
	}, domain.TopicTypeExample},
}

// TopicType classifies a paragraph. Absent any signal it is a concept.
func TopicType(text string) domain.TopicType {
	return classify(topicRules, text, domain.TopicTypeConcept)
}

var difficultyRules = []rule[domain.Difficulty]{
	{containsAny("basic", "introduction"), domain.DifficultyBasic},
	{containsAny("advanced", "challenging"), domain.DifficultyAdvanced},
}

// Difficulty classifies a text span into one of three difficulty levels,
// defaulting to intermediate.
func Difficulty(text string) domain.Difficulty {
	return classify(difficultyRules, text, domain.DifficultyIntermediate)
}

var focusRules = []rule[domain.Focus]{
	{containsAny("major work"), domain.FocusMajor},
	{containsAny("supporting"), domain.FocusSupporting},
	{containsAny("additional"), domain.FocusAdditional},
}

// Focus classifies a lesson's centrality to grade-level priorities,
// defaulting to major.
func Focus(text string) domain.Focus {
	return classify(focusRules, text, domain.FocusMajor)
}

// SectionType derives a section's type from the anchor keyword that matched
// its header, defaulting to lesson for bare-numbered and heuristic anchors.
// A title containing "introduction" or "appendix" overrides the anchor.
func SectionType(anchorKeyword, title string) domain.SectionType {
	st := domain.SectionTypeLesson
	switch strings.ToLower(anchorKeyword) {
	case "chapter":
		st = domain.SectionTypeChapter
	case "unit":
		st = domain.SectionTypeUnit
	case "lesson", "section":
		st = domain.SectionTypeLesson
	case "appendix":
		st = domain.SectionTypeAppendix
	}

	lowerTitle := strings.ToLower(title)
	switch {
	case strings.Contains(lowerTitle, "introduction"):
		return domain.SectionTypeIntroduction
	case strings.Contains(lowerTitle, "appendix"):
		return domain.SectionTypeAppendix
	}
	return st
}
