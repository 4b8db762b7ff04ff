package services

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/dto"
)

// ReversalSvc creates mirror-image journals.
type ReversalSvc interface {
	// Reverse fails with apperrors.ErrNotFound for an unknown journal and
	// apperrors.ErrLockedPeriod when the reversal date is locked.
	Reverse(ctx context.Context, tenantID, userID string, journalID int64, req dto.ReverseJournalRequest) (*domain.JournalEntry, error)
}

// JournalQuerySvc defines read operations for journal data
type JournalQuerySvc interface {
	GetJournal(ctx context.Context, tenantID string, journalID int64) (*domain.JournalEntry, error)
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}
