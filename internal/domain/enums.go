package domain

// SectionType classifies a section-level container within a document.
type SectionType string

const (
	SectionTypeChapter      SectionType = "chapter"
	SectionTypeUnit         SectionType = "unit"
	SectionTypeLesson       SectionType = "lesson"
	SectionTypeAppendix     SectionType = "appendix"
	SectionTypeIntroduction SectionType = "introduction"
)

func (s SectionType) String() string { return string(s) }

func (s SectionType) IsValid() bool {
	switch s {
	case SectionTypeChapter, SectionTypeUnit, SectionTypeLesson,
		SectionTypeAppendix, SectionTypeIntroduction:
		return true
	}
	return false
}

// TopicType classifies a paragraph-level topic.
type TopicType string

const (
	TopicTypeConcept    TopicType = "concept"
	TopicTypeExample    TopicType = "example"
	TopicTypeExercise   TopicType = "exercise"
	TopicTypeAssessment TopicType = "assessment"
)

func (t TopicType) String() string { return string(t) }

func (t TopicType) IsValid() bool {
	switch t {
	case TopicTypeConcept, TopicTypeExample, TopicTypeExercise, TopicTypeAssessment:
		return true
	}
	return false
}

// Difficulty is the three-state difficulty tag. Every topic gets exactly one.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Focus records how central a lesson is to grade-level priorities
// (curriculum-standards "major work" classification). Only the
// lesson-oriented segmenter assigns it.
type Focus string

const (
	FocusMajor      Focus = "major"
	FocusSupporting Focus = "supporting"
	FocusAdditional Focus = "additional"
)

func (f Focus) String() string { return string(f) }

func (f Focus) IsValid() bool {
	switch f {
	case FocusMajor, FocusSupporting, FocusAdditional:
		return true
	}
	return false
}

// ImportStatus is the per-file outcome reported by the batch driver.
type ImportStatus string

const (
	ImportStatusImported ImportStatus = "imported"
	ImportStatusSkipped  ImportStatus = "skipped-duplicate"
	ImportStatusFailed   ImportStatus = "failed"
)

func (s ImportStatus) String() string { return string(s) }
