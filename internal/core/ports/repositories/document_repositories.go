package repositories

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

// DocumentReader loads postable source documents together with their lines.
// Every method returns apperrors.ErrNotFound when the document does not exist for the tenant.
type DocumentReader interface {
	FindTradeDocument(ctx context.Context, tenantID string, kind domain.DocumentType, documentID int64) (*domain.TradeDocument, error)
	FindPayment(ctx context.Context, tenantID string, kind domain.DocumentType, paymentID int64) (*domain.Payment, error)
	FindPayrollRun(ctx context.Context, tenantID string, runID int64) (*domain.PayrollRun, error)
	FindDepreciationRun(ctx context.Context, tenantID string, runID int64) (*domain.DepreciationRun, error)
}
