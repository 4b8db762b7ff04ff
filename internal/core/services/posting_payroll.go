package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type payrollTotals struct {
	gross, paye, employeeUIF, employerUIF, sdl, reimbursements, otherDeductions, netPay decimal.Decimal
}

func sumPayslips(slips []domain.Payslip) payrollTotals {
	t := payrollTotals{
		gross: decimal.Zero, paye: decimal.Zero, employeeUIF: decimal.Zero, employerUIF: decimal.Zero,
		sdl: decimal.Zero, reimbursements: decimal.Zero, otherDeductions: decimal.Zero, netPay: decimal.Zero,
	}
	for _, p := range slips {
		t.gross = t.gross.Add(accounting.Round2(p.Gross))
		t.paye = t.paye.Add(accounting.Round2(p.PAYE))
		t.employeeUIF = t.employeeUIF.Add(accounting.Round2(p.EmployeeUIF))
		t.employerUIF = t.employerUIF.Add(accounting.Round2(p.EmployerUIF))
		t.sdl = t.sdl.Add(accounting.Round2(p.SDL))
		t.reimbursements = t.reimbursements.Add(accounting.Round2(p.Reimbursements))
		t.otherDeductions = t.otherDeductions.Add(accounting.Round2(p.OtherDeductions))
		t.netPay = t.netPay.Add(accounting.Round2(p.NetPay))
	}
	return t
}

// wageExpense is the employer's full cost: gross plus employer contributions and
// reimbursements, less other deductions.
func (t payrollTotals) wageExpense() decimal.Decimal {
	return t.gross.Add(t.employerUIF).Add(t.sdl).Add(t.reimbursements).Sub(t.otherDeductions)
}

// expectedNet is what the stored net pay must equal for the journal to balance.
func (t payrollTotals) expectedNet() decimal.Decimal {
	return t.gross.Add(t.reimbursements).Sub(t.otherDeductions).Sub(t.paye).Sub(t.employeeUIF)
}

func (s *postingService) PostPayrollRun(ctx context.Context, tenantID, userID string, runID int64) (*domain.JournalEntry, error) {
	run, err := s.documents.FindPayrollRun(ctx, tenantID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll run %d: %w", runID, err)
	}
	label := domain.DocPayrollRun.Label() + " " + run.Reference
	totals := sumPayslips(run.Payslips)

	return s.post(ctx, tenantID, userID, postingPlan{
		source:         domain.SourceRef{Module: domain.DocPayrollRun.Module(), Type: domain.DocPayrollRun, ID: run.RunID},
		entryDate:      run.PayDate,
		reference:      run.Reference,
		description:    label,
		priorJournalID: run.JournalID,
		empty:          len(run.Payslips) == 0,
		build: func(ctx context.Context, d *postingDraft) error {
			expenseCode, err := s.control(ctx, tenantID, domain.SettingSalaryExpenseAccount)
			if err != nil {
				return err
			}
			bankCode, err := s.control(ctx, tenantID, domain.SettingBankAccount)
			if err != nil {
				return err
			}
			payrollBank, err := s.accountsMap.Resolve(ctx, tenantID, domain.SettingPayrollBankAccount, bankCode)
			if err != nil {
				return err
			}

			d.lines.Debit(expenseCode, totals.wageExpense(), label, domain.Dimensions{})
			d.lines.Credit(payrollBank, totals.netPay, label+" net pay", domain.Dimensions{})

			liabilities := []struct {
				key    string
				amount decimal.Decimal
				what   string
			}{
				{domain.SettingPAYEAccount, totals.paye, " PAYE"},
				{domain.SettingUIFAccount, totals.employeeUIF.Add(totals.employerUIF), " UIF"},
				{domain.SettingSDLAccount, totals.sdl, " SDL"},
			}
			for _, l := range liabilities {
				if l.amount.IsZero() {
					continue
				}
				code, err := s.control(ctx, tenantID, l.key)
				if err != nil {
					return err
				}
				d.lines.Credit(code, l.amount, label+l.what, domain.Dimensions{})
			}
			return nil
		},
		check: func(_ []domain.JournalLine) error {
			expected := totals.expectedNet()
			if accounting.ToMinorUnits(expected) != accounting.ToMinorUnits(totals.netPay) {
				return apperrors.NewUnbalancedError(fmt.Sprintf(
					"%s net pay %s does not reconcile to gross less deductions %s",
					label, totals.netPay.StringFixed(2), expected.StringFixed(2)))
			}
			return nil
		},
	})
}
