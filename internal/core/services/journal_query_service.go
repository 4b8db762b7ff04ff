package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
)

const defaultJournalPageSize = 20

type journalQueryService struct {
	BaseService
	journals portsrepo.JournalReader
}

func NewJournalQueryService(journals portsrepo.JournalReader) portssvc.JournalQuerySvc {
	return &journalQueryService{journals: journals}
}

var _ portssvc.JournalQuerySvc = (*journalQueryService)(nil)

func (s *journalQueryService) GetJournal(ctx context.Context, tenantID string, journalID int64) (*domain.JournalEntry, error) {
	journal, err := s.journals.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal %d: %w", journalID, err)
	}
	return journal, nil
}

func (s *journalQueryService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	journals, next, err := s.journals.ListJournals(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: next,
	}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	return resp, nil
}
