package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PostDepreciationRun aggregates charges per (expense, accumulated depreciation) account
// pair. The run is marked posted in the same transaction that writes the journal.
func (s *postingService) PostDepreciationRun(ctx context.Context, tenantID, userID string, runID int64) (*domain.JournalEntry, error) {
	run, err := s.documents.FindDepreciationRun(ctx, tenantID, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load depreciation run %d: %w", runID, err)
	}
	reference := "DEP-" + strconv.FormatInt(run.RunID, 10)
	label := domain.DocDepreciationRun.Label() + " " + reference

	return s.post(ctx, tenantID, userID, postingPlan{
		source:         domain.SourceRef{Module: domain.DocDepreciationRun.Module(), Type: domain.DocDepreciationRun, ID: run.RunID},
		entryDate:      run.RunDate,
		reference:      reference,
		description:    label,
		priorJournalID: run.JournalID,
		empty:          len(run.Lines) == 0,
		build: func(ctx context.Context, d *postingDraft) error {
			defaultExpense, err := s.accountsMap.ResolveSetting(ctx, tenantID, domain.SettingDepreciationExpenseAccount)
			if err != nil {
				return err
			}
			defaultAccumulated, err := s.accountsMap.ResolveSetting(ctx, tenantID, domain.SettingAccumulatedDepreciationAccount)
			if err != nil {
				return err
			}

			type pair struct{ expense, accumulated string }
			var order []pair
			amounts := make(map[pair]decimal.Decimal)
			for _, line := range run.Lines {
				expense, err := s.lineAccount(ctx, tenantID, line.ExpenseAccountID, defaultExpense)
				if err != nil {
					return err
				}
				accumulated, err := s.lineAccount(ctx, tenantID, line.AccumulatedAccountID, defaultAccumulated)
				if err != nil {
					return err
				}
				if expense == "" || accumulated == "" {
					return apperrors.NewIncompleteConfigurationError(fmt.Sprintf("no depreciation accounts for asset %d", line.AssetID))
				}

				p := pair{expense, accumulated}
				if _, ok := amounts[p]; !ok {
					order = append(order, p)
					amounts[p] = decimal.Zero
				}
				amounts[p] = amounts[p].Add(accounting.Round2(line.Amount))
			}

			for _, p := range order {
				description := fmt.Sprintf("%s (%s/%s)", label, p.expense, p.accumulated)
				d.lines.Debit(p.expense, amounts[p], description, domain.Dimensions{})
				d.lines.Credit(p.accumulated, amounts[p], description, domain.Dimensions{})
			}
			return nil
		},
	})
}
