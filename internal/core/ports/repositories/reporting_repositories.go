package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository aggregates posted lines and source documents.
type ReportingRepository interface {
	// TrialBalanceRows returns every account of the tenant with debit and credit totals
	// of lines on entries dated on or before asOf.
	TrialBalanceRows(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// SumAccounts returns sum(debit) - sum(credit) over the given codes up to asOf.
	SumAccounts(ctx context.Context, tenantID string, codes []string, asOf time.Time) (decimal.Decimal, error)

	// SubledgerAR is open invoices minus allocated customer payments minus credit notes.
	SubledgerAR(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error)

	// SubledgerAP is open bills minus allocated supplier payments minus vendor credits.
	SubledgerAP(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error)
}
