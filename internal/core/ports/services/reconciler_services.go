package services

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconcilerSvc reports balances and checks them against source documents. It never corrects anything.
type ReconcilerSvc interface {
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error)
	SumAccounts(ctx context.Context, tenantID string, codes []string, asOf time.Time) (decimal.Decimal, error)
	AccountBalance(ctx context.Context, tenantID string, code string, asOf time.Time) (decimal.Decimal, error)

	// GLControlBalance returns the AR balance debit-positive and the AP balance credit-positive.
	GLControlBalance(ctx context.Context, tenantID string, ledger domain.Ledger, asOf time.Time) (decimal.Decimal, error)
	SubledgerAR(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error)
	SubledgerAP(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error)
	TieOut(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TieOutResult, error)

	SequenceGaps(ctx context.Context, tenantID string, docType string, periodKey string) (*domain.SequenceGapReport, error)
}
