package extract

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// FileMeta is the minimal metadata a filename yields. Anything beyond
// grade and volume is deliberately not parsed here.
type FileMeta struct {
	Grade  *int
	Volume string
	Title  string
}

var (
	gradePattern  = regexp.MustCompile(`(?i)grade[\s_-]*(\d{1,2})`)
	volumePattern = regexp.MustCompile(`(?i)vol(?:ume)?[\s_-]*(\d+)`)
)

// Grades outside this range are treated as noise in the filename, not as a
// grade. Matches the documents table constraint.
const (
	minGrade = 1
	maxGrade = 12
)

// ParseFileMeta derives grade, volume, and a display title from a source
// filename like "Grade 7 Math Volume 1.pdf" or "grade_8_unit_3.txt".
func ParseFileMeta(filename string) FileMeta {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	meta := FileMeta{
		Title: strings.Join(strings.FieldsFunc(base, func(r rune) bool {
			return r == '_' || r == '-'
		}), " "),
	}

	if m := gradePattern.FindStringSubmatch(base); m != nil {
		if g, err := strconv.Atoi(m[1]); err == nil && g >= minGrade && g <= maxGrade {
			meta.Grade = &g
		}
	}
	if m := volumePattern.FindStringSubmatch(base); m != nil {
		meta.Volume = m[1]
	}

	return meta
}
