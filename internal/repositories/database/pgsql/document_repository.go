package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxDocumentRepository loads postable source documents.
type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db DB) *PgxDocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.DocumentReader = (*PgxDocumentRepository)(nil)

func notFoundOr(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what)
	}
	return apperrors.NewStorageError("failed to load "+what, err)
}

func (r *PgxDocumentRepository) FindTradeDocument(ctx context.Context, tenantID string, kind domain.DocumentType, documentID int64) (*domain.TradeDocument, error) {
	what := fmt.Sprintf("%s %d", kind, documentID)
	doc := &domain.TradeDocument{}
	err := r.Pool.QueryRow(ctx, `
		SELECT document_id, tenant_id, kind, number, document_date, status, counterparty_id, project_id, journal_id
		FROM trade_documents
		WHERE tenant_id = $1 AND kind = $2 AND document_id = $3;`,
		tenantID, string(kind), documentID,
	).Scan(&doc.DocumentID, &doc.TenantID, &doc.Kind, &doc.Number, &doc.DocumentDate, &doc.Status,
		&doc.CounterpartyID, &doc.ProjectID, &doc.JournalID)
	if err != nil {
		return nil, notFoundOr(err, what)
	}
	doc.DocumentDate = domain.DateOnly(doc.DocumentDate)

	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, description, quantity, unit_price, discount, tax_rate, account_id, item_id, stocked
		FROM trade_document_lines
		WHERE document_id = $1
		ORDER BY line_id;`, documentID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query lines of "+what, err)
	}
	defer rows.Close()

	doc.Lines = []domain.DocumentLine{}
	for rows.Next() {
		var l domain.DocumentLine
		if err := rows.Scan(&l.LineID, &l.Description, &l.Quantity, &l.UnitPrice, &l.Discount, &l.TaxRate,
			&l.AccountID, &l.ItemID, &l.Stocked); err != nil {
			return nil, apperrors.NewStorageError("failed to scan line of "+what, err)
		}
		doc.Lines = append(doc.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating lines of "+what, err)
	}
	return doc, nil
}

func (r *PgxDocumentRepository) FindPayment(ctx context.Context, tenantID string, kind domain.DocumentType, paymentID int64) (*domain.Payment, error) {
	what := fmt.Sprintf("%s %d", kind, paymentID)
	p := &domain.Payment{}
	err := r.Pool.QueryRow(ctx, `
		SELECT payment_id, tenant_id, kind, number, payment_date, status, counterparty_id, bank_account_id, reference, journal_id
		FROM payments
		WHERE tenant_id = $1 AND kind = $2 AND payment_id = $3;`,
		tenantID, string(kind), paymentID,
	).Scan(&p.PaymentID, &p.TenantID, &p.Kind, &p.Number, &p.PaymentDate, &p.Status,
		&p.CounterpartyID, &p.BankAccountID, &p.Reference, &p.JournalID)
	if err != nil {
		return nil, notFoundOr(err, what)
	}
	p.PaymentDate = domain.DateOnly(p.PaymentDate)

	rows, err := r.Pool.Query(ctx, `
		SELECT a.document_id, d.number, a.amount
		FROM payment_allocations a
		JOIN trade_documents d ON d.document_id = a.document_id
		WHERE a.payment_id = $1
		ORDER BY a.allocation_id;`, paymentID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query allocations of "+what, err)
	}
	defer rows.Close()

	p.Allocations = []domain.PaymentAllocation{}
	for rows.Next() {
		var a domain.PaymentAllocation
		if err := rows.Scan(&a.DocumentID, &a.DocumentNumber, &a.Amount); err != nil {
			return nil, apperrors.NewStorageError("failed to scan allocation of "+what, err)
		}
		p.Allocations = append(p.Allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating allocations of "+what, err)
	}
	return p, nil
}

func (r *PgxDocumentRepository) FindPayrollRun(ctx context.Context, tenantID string, runID int64) (*domain.PayrollRun, error) {
	what := fmt.Sprintf("payroll run %d", runID)
	run := &domain.PayrollRun{}
	err := r.Pool.QueryRow(ctx, `
		SELECT run_id, tenant_id, reference, pay_date, journal_id
		FROM payroll_runs
		WHERE tenant_id = $1 AND run_id = $2;`,
		tenantID, runID,
	).Scan(&run.RunID, &run.TenantID, &run.Reference, &run.PayDate, &run.JournalID)
	if err != nil {
		return nil, notFoundOr(err, what)
	}
	run.PayDate = domain.DateOnly(run.PayDate)

	rows, err := r.Pool.Query(ctx, `
		SELECT employee_id, gross, paye, employee_uif, employer_uif, sdl, reimbursements, other_deductions, net_pay
		FROM payslips
		WHERE run_id = $1
		ORDER BY payslip_id;`, runID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query payslips of "+what, err)
	}
	defer rows.Close()

	run.Payslips = []domain.Payslip{}
	for rows.Next() {
		var s domain.Payslip
		if err := rows.Scan(&s.EmployeeID, &s.Gross, &s.PAYE, &s.EmployeeUIF, &s.EmployerUIF, &s.SDL,
			&s.Reimbursements, &s.OtherDeductions, &s.NetPay); err != nil {
			return nil, apperrors.NewStorageError("failed to scan payslip of "+what, err)
		}
		run.Payslips = append(run.Payslips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating payslips of "+what, err)
	}
	return run, nil
}

func (r *PgxDocumentRepository) FindDepreciationRun(ctx context.Context, tenantID string, runID int64) (*domain.DepreciationRun, error) {
	what := fmt.Sprintf("depreciation run %d", runID)
	run := &domain.DepreciationRun{}
	err := r.Pool.QueryRow(ctx, `
		SELECT run_id, tenant_id, run_date, status, journal_id
		FROM depreciation_runs
		WHERE tenant_id = $1 AND run_id = $2;`,
		tenantID, runID,
	).Scan(&run.RunID, &run.TenantID, &run.RunDate, &run.Status, &run.JournalID)
	if err != nil {
		return nil, notFoundOr(err, what)
	}
	run.RunDate = domain.DateOnly(run.RunDate)

	rows, err := r.Pool.Query(ctx, `
		SELECT asset_id, amount, expense_account_id, accumulated_account_id
		FROM depreciation_run_lines
		WHERE run_id = $1
		ORDER BY line_id;`, runID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query lines of "+what, err)
	}
	defer rows.Close()

	run.Lines = []domain.DepreciationLine{}
	for rows.Next() {
		var l domain.DepreciationLine
		if err := rows.Scan(&l.AssetID, &l.Amount, &l.ExpenseAccountID, &l.AccumulatedAccountID); err != nil {
			return nil, apperrors.NewStorageError("failed to scan line of "+what, err)
		}
		run.Lines = append(run.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating lines of "+what, err)
	}
	return run, nil
}
