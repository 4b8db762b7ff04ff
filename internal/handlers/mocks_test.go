package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostInvoice(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostInvoice", tenantID, userID, id)
}
func (m *MockPostingService) PostCustomerPayment(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostCustomerPayment", tenantID, userID, id)
}
func (m *MockPostingService) PostCreditNote(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostCreditNote", tenantID, userID, id)
}
func (m *MockPostingService) PostBill(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostBill", tenantID, userID, id)
}
func (m *MockPostingService) PostSupplierPayment(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostSupplierPayment", tenantID, userID, id)
}
func (m *MockPostingService) PostVendorCredit(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostVendorCredit", tenantID, userID, id)
}
func (m *MockPostingService) PostPayrollRun(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostPayrollRun", tenantID, userID, id)
}
func (m *MockPostingService) PostDepreciationRun(ctx context.Context, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	return m.postAs(ctx, "PostDepreciationRun", tenantID, userID, id)
}

func (m *MockPostingService) postAs(ctx context.Context, method string, tenantID, userID string, id int64) (*domain.JournalEntry, error) {
	args := m.MethodCalled(method, ctx, tenantID, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

// --- Mock JournalQueryService / ReversalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournal(ctx context.Context, tenantID string, journalID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) Reverse(ctx context.Context, tenantID, userID string, journalID int64, req dto.ReverseJournalRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, userID, journalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var (
	_ portssvc.JournalQuerySvc = (*MockJournalService)(nil)
	_ portssvc.ReversalSvc     = (*MockJournalService)(nil)
)

// --- Mock PeriodService ---
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) IsLocked(ctx context.Context, tenantID string, date time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, date)
	return args.Bool(0), args.Error(1)
}
func (m *MockPeriodService) LockPeriod(ctx context.Context, tenantID string, userID string, req dto.LockPeriodRequest) (*domain.PeriodLock, error) {
	args := m.Called(ctx, tenantID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodLock), args.Error(1)
}
func (m *MockPeriodService) ListLocks(ctx context.Context, tenantID string) ([]domain.PeriodLock, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodLock), args.Error(1)
}

var _ portssvc.PeriodSvc = (*MockPeriodService)(nil)

// --- Mock DocumentSequenceService ---
type MockSequenceService struct {
	mock.Mock
}

func (m *MockSequenceService) Issue(ctx context.Context, tenantID string, docType string, req dto.IssueNumberRequest) (string, error) {
	args := m.Called(ctx, tenantID, docType, req)
	return args.String(0), args.Error(1)
}

var _ portssvc.DocumentSequenceSvc = (*MockSequenceService)(nil)

// --- Mock AccountsMapService ---
type MockAccountsMapService struct {
	mock.Mock
}

func (m *MockAccountsMapService) Resolve(ctx context.Context, tenantID string, settingKey string, defaultCode string) (string, error) {
	args := m.Called(ctx, tenantID, settingKey, defaultCode)
	return args.String(0), args.Error(1)
}
func (m *MockAccountsMapService) ResolveSetting(ctx context.Context, tenantID string, settingKey string) (string, error) {
	args := m.Called(ctx, tenantID, settingKey)
	return args.String(0), args.Error(1)
}
func (m *MockAccountsMapService) ResolveByID(ctx context.Context, tenantID string, accountID *int64) (string, bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.String(0), args.Bool(1), args.Error(2)
}

var _ portssvc.AccountsMapSvc = (*MockAccountsMapService)(nil)

// --- Mock ReconcilerService ---
type MockReconcilerService struct {
	mock.Mock
}

func (m *MockReconcilerService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReconcilerService) SumAccounts(ctx context.Context, tenantID string, codes []string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, codes, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReconcilerService) AccountBalance(ctx context.Context, tenantID string, code string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, code, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReconcilerService) GLControlBalance(ctx context.Context, tenantID string, ledger domain.Ledger, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, ledger, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReconcilerService) SubledgerAR(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReconcilerService) SubledgerAP(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReconcilerService) TieOut(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TieOutResult, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TieOutResult), args.Error(1)
}
func (m *MockReconcilerService) SequenceGaps(ctx context.Context, tenantID string, docType string, periodKey string) (*domain.SequenceGapReport, error) {
	args := m.Called(ctx, tenantID, docType, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceGapReport), args.Error(1)
}

var _ portssvc.ReconcilerSvc = (*MockReconcilerService)(nil)
