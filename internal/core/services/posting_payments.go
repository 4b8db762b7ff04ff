package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

func (s *postingService) PostCustomerPayment(ctx context.Context, tenantID, userID string, paymentID int64) (*domain.JournalEntry, error) {
	return s.postPayment(ctx, tenantID, userID, domain.DocCustomerPayment, paymentID)
}

func (s *postingService) PostSupplierPayment(ctx context.Context, tenantID, userID string, paymentID int64) (*domain.JournalEntry, error) {
	return s.postPayment(ctx, tenantID, userID, domain.DocSupplierPayment, paymentID)
}

// postPayment books the allocated total against the bank and each allocation against the
// control account, tagged with the settled document. Unallocated money is not posted.
func (s *postingService) postPayment(ctx context.Context, tenantID, userID string, kind domain.DocumentType, paymentID int64) (*domain.JournalEntry, error) {
	payment, err := s.documents.FindPayment(ctx, tenantID, kind, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", kind, paymentID, err)
	}
	label := kind.Label() + " " + payment.Number
	if err := refuseUnpostable(payment.Status, label); err != nil {
		return nil, err
	}

	counterparty := payment.CounterpartyID
	controlKey := domain.SettingARAccount
	dims := domain.Dimensions{CustomerID: &counterparty}
	if kind == domain.DocSupplierPayment {
		controlKey = domain.SettingAPAccount
		dims = domain.Dimensions{SupplierID: &counterparty}
	}

	return s.post(ctx, tenantID, userID, postingPlan{
		source:         domain.SourceRef{Module: kind.Module(), Type: kind, ID: payment.PaymentID},
		entryDate:      payment.PaymentDate,
		reference:      payment.Number,
		description:    label,
		priorJournalID: payment.JournalID,
		empty:          len(payment.Allocations) == 0,
		build: func(ctx context.Context, d *postingDraft) error {
			controlCode, err := s.control(ctx, tenantID, controlKey)
			if err != nil {
				return err
			}
			bankDefault, err := s.control(ctx, tenantID, domain.SettingBankAccount)
			if err != nil {
				return err
			}
			bankCode, err := s.lineAccount(ctx, tenantID, payment.BankAccountID, bankDefault)
			if err != nil {
				return err
			}

			total := decimal.Zero
			for _, alloc := range payment.Allocations {
				amount := accounting.Round2(alloc.Amount)
				total = total.Add(amount)
				description := label + " / " + alloc.DocumentNumber
				if kind == domain.DocSupplierPayment {
					d.lines.Debit(controlCode, amount, description, dims)
				} else {
					d.lines.Credit(controlCode, amount, description, dims)
				}
			}

			if kind == domain.DocSupplierPayment {
				d.lines.Credit(bankCode, total, label, domain.Dimensions{})
			} else {
				d.lines.Debit(bankCode, total, label, domain.Dimensions{})
			}
			return nil
		},
	})
}
