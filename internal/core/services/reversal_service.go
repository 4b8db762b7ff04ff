package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
)

type reversalService struct {
	BaseService
	journals portsrepo.JournalRepositoryFacade
	periods  portssvc.PeriodSvc
	now      func() time.Time
}

func NewReversalService(journals portsrepo.JournalRepositoryFacade, periods portssvc.PeriodSvc) portssvc.ReversalSvc {
	return &reversalService{journals: journals, periods: periods, now: time.Now}
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

func (s *reversalService) Reverse(ctx context.Context, tenantID, userID string, journalID int64, req dto.ReverseJournalRequest) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.Int64("journal_id", journalID))

	original, err := s.journals.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal %d: %w", journalID, err)
	}
	if original.ReversedByID != nil {
		return nil, apperrors.NewAppError(http.StatusConflict,
			fmt.Sprintf("Journal %d is already reversed by journal %d", journalID, *original.ReversedByID), nil)
	}

	date := original.EntryDate
	if req.Date != nil && *req.Date != "" {
		date, err = time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date must be YYYY-MM-DD")
		}
	}
	locked, err := s.periods.IsLocked(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}
	if locked {
		logger.Warn("Reversal refused", slog.String("date", date.Format(time.DateOnly)))
		return nil, apperrors.NewLockedPeriodError(date)
	}

	description := fmt.Sprintf("Reversal of journal %d", journalID)
	if req.Reason != nil {
		if reason := strings.TrimSpace(*req.Reason); reason != "" {
			description += ": " + reason
		}
	}

	lines := accounting.MirrorLines(original.Lines)
	if err := accounting.ValidateLines(lines); err != nil {
		logger.Error("Original journal cannot be mirrored", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now().UTC()
	originalID := original.JournalID
	entry := domain.JournalEntry{
		TenantID:    tenantID,
		EntryDate:   domain.DateOnly(date),
		Reference:   original.Reference,
		Description: description,
		Source:      &domain.SourceRef{Module: domain.DocJournalReversal.Module(), Type: domain.DocJournalReversal, ID: originalID},
		ReversesID:  &originalID,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	reversalID, err := s.journals.SaveJournal(ctx, portsrepo.JournalWrite{Entry: entry})
	if err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to reverse journal %d: %w", journalID, err)
	}
	entry.JournalID = reversalID
	for i := range entry.Lines {
		entry.Lines[i].JournalID = reversalID
	}

	s.BestEffort(ctx, "link reversal", func(ctx context.Context) error {
		linker, ok := s.journals.(portsrepo.ReversalLinker)
		if !ok {
			return nil
		}
		return linker.LinkReversal(ctx, tenantID, originalID, reversalID)
	})

	logger.Info("Journal reversed", slog.Int64("reversal_id", reversalID))
	return &entry, nil
}
