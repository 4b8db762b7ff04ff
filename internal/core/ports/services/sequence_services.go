package services

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/dto"
)

type DocumentSequenceSvc interface {
	// Issue returns the next number for (tenant, docType, period key). Numbers are never reused.
	Issue(ctx context.Context, tenantID string, docType string, req dto.IssueNumberRequest) (string, error)
}
