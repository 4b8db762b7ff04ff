package services

import (
	"context"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

// PostingSvc turns source documents into balanced journals. Posting a document that
// already has a journal replaces that journal atomically.
type PostingSvc interface {
	PostInvoice(ctx context.Context, tenantID, userID string, invoiceID int64) (*domain.JournalEntry, error)
	PostCustomerPayment(ctx context.Context, tenantID, userID string, paymentID int64) (*domain.JournalEntry, error)
	PostCreditNote(ctx context.Context, tenantID, userID string, creditNoteID int64) (*domain.JournalEntry, error)
	PostBill(ctx context.Context, tenantID, userID string, billID int64) (*domain.JournalEntry, error)
	PostSupplierPayment(ctx context.Context, tenantID, userID string, paymentID int64) (*domain.JournalEntry, error)
	PostVendorCredit(ctx context.Context, tenantID, userID string, vendorCreditID int64) (*domain.JournalEntry, error)
	PostPayrollRun(ctx context.Context, tenantID, userID string, runID int64) (*domain.JournalEntry, error)
	PostDepreciationRun(ctx context.Context, tenantID, userID string, runID int64) (*domain.JournalEntry, error)
}
