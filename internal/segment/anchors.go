package segment

import (
	"regexp"
	"strconv"
	"strings"
)

// lineContext carries the neighbourhood information the heuristic bare-title
// rule needs: headers are typically short lines followed by substantial body
// text, or preceded by whitespace or other short lines.
type lineContext struct {
	isFirst bool
	prevLen int
	nextLen int
}

// anchorMatch is the result of a successful anchor test: the data a new
// section opens with.
type anchorMatch struct {
	keyword string
	number  *int
	title   string
}

// anchorRule tests one way a line can start a new section.
type anchorRule func(line string, ctx lineContext) (anchorMatch, bool)

// anchorRules is evaluated in priority order, first match wins: the
// explicit labeled header always beats the bare numbered header, which
// beats the heuristic bare-title header. Most-specific-pattern-first.
var anchorRules = []anchorRule{
	matchLabeledHeader,
	matchNumberedHeader,
	matchBareTitleHeader,
}

// matchAnchor runs the rules in order and returns the first match.
func matchAnchor(line string, ctx lineContext) (anchorMatch, bool) {
	for _, rule := range anchorRules {
		if m, ok := rule(line, ctx); ok {
			return m, true
		}
	}
	return anchorMatch{}, false
}

// labeledHeader: a leading section keyword, a numeral, and a title fragment,
// e.g. "Chapter 3: Linear Equations" or "UNIT 1 Ratios".
var labeledHeader = regexp.MustCompile(`(?i)^(chapter|unit|lesson|section)\s+(\d+)\s*[.:—-]?\s*(.*)$`)

func matchLabeledHeader(line string, _ lineContext) (anchorMatch, bool) {
	m := labeledHeader.FindStringSubmatch(line)
	if m == nil {
		return anchorMatch{}, false
	}

	num, err := strconv.Atoi(m[2])
	if err != nil {
		return anchorMatch{}, false
	}

	title := strings.TrimSpace(m[3])
	if title == "" {
		// Header with no title fragment: synthesize one from the label.
		kw := strings.ToLower(m[1])
		title = strings.ToUpper(kw[:1]) + kw[1:] + " " + m[2]
	}

	return anchorMatch{keyword: m[1], number: &num, title: title}, true
}

// numberedHeader: a leading integer and a short title line, e.g.
// "12 Comparing Fractions". The full line must stay under 100 characters —
// longer lines starting with a number are body text.
var numberedHeader = regexp.MustCompile(`^(\d+)\s*[.:)]?\s+(\S.*)$`)

func matchNumberedHeader(line string, _ lineContext) (anchorMatch, bool) {
	if len(line) >= 100 {
		return anchorMatch{}, false
	}

	m := numberedHeader.FindStringSubmatch(line)
	if m == nil {
		return anchorMatch{}, false
	}

	num, err := strconv.Atoi(m[1])
	if err != nil {
		return anchorMatch{}, false
	}

	return anchorMatch{number: &num, title: strings.TrimSpace(m[2])}, true
}

// bareTitle: a title-cased line of 10–50 header-style characters with no
// sentence terminator.
var bareTitle = regexp.MustCompile(`^[A-Z][A-Za-z0-9&,'’\- ]{9,49}$`)

// matchBareTitleHeader accepts a bare-title line only when its context
// makes it look like a header: first line of the document, a noticeably
// longer following line, or a noticeably shorter preceding line.
func matchBareTitleHeader(line string, ctx lineContext) (anchorMatch, bool) {
	if !bareTitle.MatchString(line) {
		return anchorMatch{}, false
	}

	headerish := ctx.isFirst ||
		float64(ctx.nextLen) > 1.5*float64(len(line)) ||
		float64(ctx.prevLen) < 0.8*float64(len(line))
	if !headerish {
		return anchorMatch{}, false
	}

	return anchorMatch{title: line}, true
}
