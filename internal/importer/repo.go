// Package importer persists segmented document trees into the relational
// store. It owns creation of all persisted rows; the segmenter owns the
// in-memory tree until it is handed off here.
package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/edustack/curriculum-backend/internal/domain"
)

// TxManager runs fn inside a single database transaction, committing when
// fn returns nil and rolling back otherwise. The structural inserts for one
// document run through it so a mid-import failure leaves no partial rows
// behind. Implemented by postgres.TxManager.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo is the persistence contract consumed by the importer. All methods
// use only domain types — no adapter imports. Implemented by
// curriculum.Repo.
type Repo interface {
	// GetDocumentByFilename returns domain.ErrNotFound when no document
	// with that filename exists. The importer uses it as the dedup guard
	// before any write.
	GetDocumentByFilename(ctx context.Context, filename string) (*domain.Document, error)

	// Structural inserts — parent before child, failures abort the
	// document import.
	InsertDocument(ctx context.Context, doc *domain.Document) error
	InsertSection(ctx context.Context, section *domain.Section) error
	InsertTopic(ctx context.Context, topic *domain.Topic) error

	// UpsertKeyword atomically inserts the keyword with frequency 1 or
	// increments the existing row's frequency, returning the keyword row
	// id either way.
	UpsertKeyword(ctx context.Context, keyword string) (uuid.UUID, error)

	// Association inserts — idempotent, skip on conflict. Failures are
	// tolerated per keyword.
	LinkTopicKeyword(ctx context.Context, topicID, keywordID uuid.UUID, frequency int) error
	LinkDocumentKeyword(ctx context.Context, documentID, keywordID uuid.UUID, frequency int) error
}
