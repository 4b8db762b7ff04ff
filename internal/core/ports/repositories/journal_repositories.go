package repositories

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

// JournalWrite describes one atomic journal save.
type JournalWrite struct {
	Entry domain.JournalEntry

	// ReplaceJournalID is the previously posted journal of the same source document.
	// Its lines and header are deleted in the same transaction as the insert.
	// It must not have been reversed.
	ReplaceJournalID *int64

	// ExpectedJournalID is the journal id the source document carried when the posting was
	// built. The save locks the source row and fails with apperrors.ErrConflict when it differs.
	ExpectedJournalID *int64

	// WriteBack, when set, records the new journal id on the source document.
	WriteBack *domain.SourceRef
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its lines.
	FindJournalByID(ctx context.Context, tenantID string, journalID int64) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of journal headers using token-based pagination.
	// It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists the write in a single database transaction and returns the new journal id.
	SaveJournal(ctx context.Context, w JournalWrite) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// ReversalLinker is an optional capability of a journal store that can record the
// bidirectional link between a journal and its reversal.
type ReversalLinker interface {
	LinkReversal(ctx context.Context, tenantID string, originalID, reversalID int64) error
}

// DimensionTagger is an optional capability of a journal store that can tag every line
// of a journal with a project.
type DimensionTagger interface {
	TagProject(ctx context.Context, tenantID string, journalID, projectID int64) error
}
