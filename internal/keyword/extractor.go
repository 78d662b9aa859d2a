// Package keyword extracts domain keywords and standards codes from text
// spans. Pure functions: text in, counted terms out. No database
// dependencies.
package keyword

import (
	"regexp"
	"sort"
	"strings"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// capitalizedToken matches a single capitalized word: one uppercase letter
// followed by one or more lowercase letters.
var capitalizedToken = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// standardsCode matches curriculum standards codes of the form
// grade.domain.cluster.number with an optional trailing sub-part letter,
// e.g. "7.RP.A.2" or "8.EE.B.5b".
var standardsCode = regexp.MustCompile(`\b\d+\.[A-Z]+\.[A-Z]+\.\d+[a-z]?\b`)

// Extractor finds keywords in text spans using a curated vocabulary plus a
// capitalized-word discovery pass. The vocabulary is injected at
// construction so it can be replaced without touching extraction logic.
type Extractor struct {
	vocab     map[string]*regexp.Regexp
	threshold int
}

// New creates an Extractor. Vocabulary terms are normalized; threshold is
// the minimum per-span occurrence count for a keyword to be retained
// (values below 1 fall back to the default of 2).
func New(vocab []string, threshold int) *Extractor {
	if threshold < 1 {
		threshold = 2
	}

	compiled := make(map[string]*regexp.Regexp, len(vocab))
	for _, term := range vocab {
		term = domain.NormalizeKeyword(term)
		if term == "" {
			continue
		}
		if _, ok := compiled[term]; ok {
			continue
		}
		compiled[term] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	}

	return &Extractor{vocab: compiled, threshold: threshold}
}

// Keywords returns the keywords occurring at least threshold times in the
// span, with their counts, sorted alphabetically. Curated terms are matched
// whole-word and case-insensitively; the discovery pass adds capitalized
// words not already in the vocabulary, lowercased. The threshold trades
// recall for precision: a term mentioned once is noise, a term mentioned
// repeatedly is subject matter.
func (e *Extractor) Keywords(text string) []domain.KeywordCount {
	counts := make(map[string]int)

	// Curated-vocabulary pass.
	for term, re := range e.vocab {
		if n := len(re.FindAllStringIndex(text, -1)); n > 0 {
			counts[term] = n
		}
	}

	// Discovery pass: capitalized words outside the vocabulary.
	for _, tok := range capitalizedToken.FindAllString(text, -1) {
		lower := strings.ToLower(tok)
		if _, curated := e.vocab[lower]; curated {
			continue
		}
		counts[lower]++
	}

	result := make([]domain.KeywordCount, 0, len(counts))
	for term, n := range counts {
		if n < e.threshold {
			continue
		}
		result = append(result, domain.KeywordCount{Keyword: term, Count: n})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Keyword < result[j].Keyword })
	return result
}

// Standards returns the standards codes found verbatim in the span,
// deduplicated, in first-occurrence order.
func Standards(text string) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, code := range standardsCode.FindAllString(text, -1) {
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}
