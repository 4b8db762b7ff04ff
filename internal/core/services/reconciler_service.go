package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// tieOutTolerance is the largest difference reported as tied out.
var tieOutTolerance = decimal.New(1, -2)

type reconcilerService struct {
	BaseService
	reporting   portsrepo.ReportingRepository
	sequences   portsrepo.SequenceRepository
	accountsMap portssvc.AccountsMapSvc
}

func NewReconcilerService(reporting portsrepo.ReportingRepository, sequences portsrepo.SequenceRepository, accountsMap portssvc.AccountsMapSvc) portssvc.ReconcilerSvc {
	return &reconcilerService{reporting: reporting, sequences: sequences, accountsMap: accountsMap}
}

var _ portssvc.ReconcilerSvc = (*reconcilerService)(nil)

func (s *reconcilerService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error) {
	asOf = domain.DateOnly(asOf)
	rows, err := s.reporting.TrialBalanceRows(ctx, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	tb := &domain.TrialBalance{AsOf: asOf, Rows: rows, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for i := range tb.Rows {
		row := &tb.Rows[i]
		row.Debit = accounting.Round2(row.Debit)
		row.Credit = accounting.Round2(row.Credit)
		row.Balance = row.Debit.Sub(row.Credit)
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}
	tb.Balanced = accounting.ToMinorUnits(tb.TotalDebit) == accounting.ToMinorUnits(tb.TotalCredit)
	if !tb.Balanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("total_debit", tb.TotalDebit.StringFixed(2)),
			slog.String("total_credit", tb.TotalCredit.StringFixed(2)))
	}
	return tb, nil
}

func (s *reconcilerService) SumAccounts(ctx context.Context, tenantID string, codes []string, asOf time.Time) (decimal.Decimal, error) {
	cleaned := make([]string, 0, len(codes))
	for _, code := range codes {
		if code = strings.TrimSpace(code); code != "" {
			cleaned = append(cleaned, code)
		}
	}
	if len(cleaned) == 0 {
		return decimal.Zero, nil
	}
	sum, err := s.reporting.SumAccounts(ctx, tenantID, cleaned, domain.DateOnly(asOf))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum accounts: %w", err)
	}
	return accounting.Round2(sum), nil
}

func (s *reconcilerService) AccountBalance(ctx context.Context, tenantID string, code string, asOf time.Time) (decimal.Decimal, error) {
	return s.SumAccounts(ctx, tenantID, []string{code}, asOf)
}

func (s *reconcilerService) GLControlBalance(ctx context.Context, tenantID string, ledger domain.Ledger, asOf time.Time) (decimal.Decimal, error) {
	code, err := s.controlAccount(ctx, tenantID, ledger)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := s.AccountBalance(ctx, tenantID, code, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if ledger == domain.LedgerAP {
		return balance.Neg(), nil
	}
	return balance, nil
}

func (s *reconcilerService) SubledgerAR(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	total, err := s.reporting.SubledgerAR(ctx, tenantID, domain.DateOnly(asOf))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total AR sub-ledger: %w", err)
	}
	return accounting.Round2(total), nil
}

func (s *reconcilerService) SubledgerAP(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	total, err := s.reporting.SubledgerAP(ctx, tenantID, domain.DateOnly(asOf))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total AP sub-ledger: %w", err)
	}
	return accounting.Round2(total), nil
}

// TieOut compares AR and AP control balances with their sub-ledgers. Differences are
// reported, never corrected.
func (s *reconcilerService) TieOut(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TieOutResult, error) {
	ledgers := []struct {
		ledger    domain.Ledger
		subledger func(context.Context, string, time.Time) (decimal.Decimal, error)
	}{
		{domain.LedgerAR, s.SubledgerAR},
		{domain.LedgerAP, s.SubledgerAP},
	}

	results := make([]domain.TieOutResult, 0, len(ledgers))
	for _, l := range ledgers {
		code, err := s.controlAccount(ctx, tenantID, l.ledger)
		if err != nil {
			return nil, err
		}
		gl, err := s.GLControlBalance(ctx, tenantID, l.ledger, asOf)
		if err != nil {
			return nil, err
		}
		sub, err := l.subledger(ctx, tenantID, asOf)
		if err != nil {
			return nil, err
		}

		diff := gl.Sub(sub)
		result := domain.TieOutResult{
			Ledger:          l.ledger,
			AccountCode:     code,
			GLBalance:       gl,
			SubledgerTotal:  sub,
			Difference:      diff,
			WithinTolerance: diff.Abs().LessThanOrEqual(tieOutTolerance),
		}
		if !result.WithinTolerance {
			s.LogWarn(ctx, "Control account does not tie out",
				slog.String("ledger", string(l.ledger)),
				slog.String("account", code),
				slog.String("gl", gl.StringFixed(2)),
				slog.String("subledger", sub.StringFixed(2)),
				slog.String("difference", diff.StringFixed(2)))
		}
		results = append(results, result)
	}
	return results, nil
}

// SequenceGaps lists every number between 1 and the counter's last value that no saved
// document carries. Numbers are rendered with the prefix stored on the counter.
func (s *reconcilerService) SequenceGaps(ctx context.Context, tenantID string, docType string, periodKey string) (*domain.SequenceGapReport, error) {
	key := domain.SequenceKey{TenantID: tenantID, DocType: docType, PeriodKey: periodKey}
	counter, err := s.sequences.FindCounter(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &domain.SequenceGapReport{DocType: docType, PeriodKey: periodKey, Missing: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sequence: %w", docType, err)
	}

	used, err := s.sequences.ListUsedNumbers(ctx, tenantID, counter.Prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s numbers: %w", docType, err)
	}
	seen := make(map[string]struct{}, len(used))
	for _, n := range used {
		seen[n] = struct{}{}
	}

	pad := counter.Pad
	if pad <= 0 {
		pad = defaultSequencePad
	}
	report := &domain.SequenceGapReport{DocType: docType, PeriodKey: periodKey, LastIssued: counter.LastValue, Missing: []string{}}
	for v := int64(1); v <= counter.LastValue; v++ {
		number := FormatSequenceNumber(counter.Prefix, v, pad)
		if _, ok := seen[number]; !ok {
			report.Missing = append(report.Missing, number)
		}
	}
	if len(report.Missing) > 0 {
		s.LogInfo(ctx, "Sequence gaps found", slog.String("doc_type", docType), slog.Int("missing", len(report.Missing)))
	}
	return report, nil
}

func (s *reconcilerService) controlAccount(ctx context.Context, tenantID string, ledger domain.Ledger) (string, error) {
	key := domain.SettingARAccount
	if ledger == domain.LedgerAP {
		key = domain.SettingAPAccount
	}
	code, err := s.accountsMap.ResolveSetting(ctx, tenantID, key)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", apperrors.NewIncompleteConfigurationError(key + " is not set")
	}
	return code, nil
}
