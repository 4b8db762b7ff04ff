package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db DB) *reportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// TrialBalanceRows lists every account of the tenant, including those without activity.
func (r *reportingRepository) TrialBalanceRows(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.code, a.name, a.account_type, COALESCE(t.debit, 0), COALESCE(t.credit, 0)
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_code, SUM(l.debit) AS debit, SUM(l.credit) AS credit
			FROM journal_lines l
			JOIN journal_entries e ON e.journal_id = l.journal_id
			WHERE e.tenant_id = $1 AND e.entry_date <= $2
			GROUP BY l.account_code
		) t ON t.account_code = a.code
		WHERE a.tenant_id = $1
		ORDER BY a.code;`

	rows, err := r.Pool.Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query trial balance", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewStorageError("failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating trial balance rows", err)
	}
	return result, nil
}

func (r *reportingRepository) SumAccounts(ctx context.Context, tenantID string, codes []string, asOf time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.journal_id = l.journal_id
		WHERE e.tenant_id = $1 AND l.account_code = ANY($2) AND e.entry_date <= $3;`,
		tenantID, codes, asOf,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewStorageError("failed to sum account balances", err)
	}
	return total, nil
}

// documentGross mirrors the posting rounding: net and tax are each rounded to cents per line.
const documentGross = `ROUND(l.quantity * l.unit_price - l.discount, 2) + ROUND(ROUND(l.quantity * l.unit_price - l.discount, 2) * l.tax_rate / 100, 2)`

// subledgerQuery nets open documents ($2) against credit documents ($3) and payment
// allocations ($5) dated on or before $4. Statuses in $6 are excluded.
const subledgerQuery = `
		SELECT
			COALESCE((SELECT SUM(` + documentGross + `)
				FROM trade_document_lines l JOIN trade_documents d ON d.document_id = l.document_id
				WHERE d.tenant_id = $1 AND d.kind = $2 AND lower(d.status) <> ALL($6) AND d.document_date <= $4), 0)
			- COALESCE((SELECT SUM(` + documentGross + `)
				FROM trade_document_lines l JOIN trade_documents d ON d.document_id = l.document_id
				WHERE d.tenant_id = $1 AND d.kind = $3 AND lower(d.status) <> ALL($6) AND d.document_date <= $4), 0)
			- COALESCE((SELECT SUM(a.amount)
				FROM payment_allocations a JOIN payments p ON p.payment_id = a.payment_id
				WHERE p.tenant_id = $1 AND p.kind = $5 AND lower(p.status) <> ALL($6) AND p.payment_date <= $4), 0);`

func (r *reportingRepository) subledger(ctx context.Context, tenantID string, open, credit, payment domain.DocumentType, asOf time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, subledgerQuery,
		tenantID, string(open), string(credit), asOf, string(payment), domain.UnpostableStatuses,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewStorageError("failed to total "+string(open)+" sub-ledger", err)
	}
	return total, nil
}

func (r *reportingRepository) SubledgerAR(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	return r.subledger(ctx, tenantID, domain.DocInvoice, domain.DocCreditNote, domain.DocCustomerPayment, asOf)
}

func (r *reportingRepository) SubledgerAP(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	return r.subledger(ctx, tenantID, domain.DocBill, domain.DocVendorCredit, domain.DocSupplierPayment, asOf)
}
