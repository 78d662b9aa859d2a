package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedDocument creates a bare document row with a unique filename.
// Returns a filled domain.Document without sections.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, grade int, subject string) domain.Document {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := domain.Document{
		ID:          uuid.New(),
		Filename:    "doc-" + suffix + ".pdf",
		Title:       "Test Document " + suffix,
		Grade:       &grade,
		Subject:     subject,
		Publisher:   "Test Press",
		Version:     "v1",
		TotalPages:  10,
		ExtractedAt: now,
		CreatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, filename, title, grade, subject, publisher, version, total_pages, extracted_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.Filename, doc.Title, doc.Grade, doc.Subject, doc.Publisher, doc.Version, doc.TotalPages, doc.ExtractedAt, doc.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert document: %v", err)
	}

	return doc
}

// SeedDocumentTree creates a document with 2 sections, each holding 2 topics.
// Returns the fully populated domain.Document.
func SeedDocumentTree(t *testing.T, pool *pgxpool.Pool, grade int, subject string) domain.Document {
	t.Helper()
	ctx := context.Background()

	doc := SeedDocument(t, pool, grade, subject)
	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)

	sectionTypes := []domain.SectionType{domain.SectionTypeUnit, domain.SectionTypeLesson}
	topicTypes := []domain.TopicType{domain.TopicTypeConcept, domain.TopicTypeExercise}
	difficulties := []domain.Difficulty{domain.DifficultyBasic, domain.DifficultyIntermediate}

	doc.Sections = make([]domain.Section, 2)
	for i := range doc.Sections {
		num := i + 1
		sec := domain.Section{
			ID:            uuid.New(),
			DocumentID:    doc.ID,
			Title:         "Section " + suffix + "-" + string(rune('A'+i)),
			SectionNumber: &num,
			Content:       "Section content " + suffix,
			SectionType:   sectionTypes[i],
			Position:      i,
		}

		_, err := pool.Exec(ctx,
			`INSERT INTO sections (id, document_id, title, section_number, content, section_type, position, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sec.ID, sec.DocumentID, sec.Title, sec.SectionNumber, sec.Content, sec.SectionType.String(), sec.Position, now,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedDocumentTree insert section[%d]: %v", i, err)
		}

		sec.Topics = make([]domain.Topic, 2)
		for j := range sec.Topics {
			topic := domain.Topic{
				ID:         uuid.New(),
				SectionID:  sec.ID,
				Title:      "Topic " + suffix + "-" + string(rune('A'+i)) + string(rune('1'+j)),
				Content:    "Topic content " + suffix,
				Difficulty: difficulties[j],
				TopicType:  topicTypes[j],
				Position:   j,
			}

			_, err := pool.Exec(ctx,
				`INSERT INTO topics (id, section_id, title, content, difficulty, topic_type, position, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				topic.ID, topic.SectionID, topic.Title, topic.Content, topic.Difficulty.String(), topic.TopicType.String(), topic.Position, now,
			)
			if err != nil {
				t.Fatalf("testhelper: SeedDocumentTree insert topic[%d][%d]: %v", i, j, err)
			}
			sec.Topics[j] = topic
		}

		doc.Sections[i] = sec
	}

	return doc
}

// SeedKeyword creates a keyword row with the given frequency.
func SeedKeyword(t *testing.T, pool *pgxpool.Pool, keyword string, frequency int) domain.Keyword {
	t.Helper()
	ctx := context.Background()

	kw := domain.Keyword{
		ID:        uuid.New(),
		Keyword:   domain.NormalizeKeyword(keyword),
		Frequency: frequency,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO keywords (id, keyword, frequency) VALUES ($1, $2, $3)`,
		kw.ID, kw.Keyword, kw.Frequency,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedKeyword insert keyword: %v", err)
	}

	return kw
}

// LinkTopicKeyword associates a topic with a keyword in the join table.
func LinkTopicKeyword(t *testing.T, pool *pgxpool.Pool, topicID, keywordID uuid.UUID, frequency int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO topic_keywords (topic_id, keyword_id, frequency) VALUES ($1, $2, $3)`,
		topicID, keywordID, frequency,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkTopicKeyword insert: %v", err)
	}
}

// LinkDocumentKeyword associates a document with a keyword in the join table.
func LinkDocumentKeyword(t *testing.T, pool *pgxpool.Pool, documentID, keywordID uuid.UUID, frequency int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO document_keywords (document_id, keyword_id, frequency) VALUES ($1, $2, $3)`,
		documentID, keywordID, frequency,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkDocumentKeyword insert: %v", err)
	}
}
