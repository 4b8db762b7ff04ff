package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock SettingsReader ---
type MockSettingsReader struct {
	mock.Mock
}

var _ portsrepo.SettingsReader = (*MockSettingsReader)(nil)

func (m *MockSettingsReader) GetSetting(ctx context.Context, tenantID string, key string) (string, error) {
	args := m.Called(ctx, tenantID, key)
	return args.String(0), args.Error(1)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, tenantID string, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock PeriodLockRepository ---
type MockPeriodLockRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodLockRepositoryFacade = (*MockPeriodLockRepository)(nil)

func (m *MockPeriodLockRepository) MaxLockDate(ctx context.Context, tenantID string) (*time.Time, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockPeriodLockRepository) ListLocks(ctx context.Context, tenantID string) ([]domain.PeriodLock, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodLock), args.Error(1)
}

func (m *MockPeriodLockRepository) SaveLock(ctx context.Context, lock domain.PeriodLock) (*domain.PeriodLock, error) {
	args := m.Called(ctx, lock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodLock), args.Error(1)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, key domain.SequenceKey, prefix string, pad int) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, key, prefix, pad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceRepository) FindCounter(ctx context.Context, key domain.SequenceKey) (*domain.SequenceCounter, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SequenceCounter), args.Error(1)
}

func (m *MockSequenceRepository) ListUsedNumbers(ctx context.Context, tenantID string, prefix string) ([]string, error) {
	args := m.Called(ctx, tenantID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock DocumentReader ---
type MockDocumentReader struct {
	mock.Mock
}

var _ portsrepo.DocumentReader = (*MockDocumentReader)(nil)

func (m *MockDocumentReader) FindTradeDocument(ctx context.Context, tenantID string, kind domain.DocumentType, documentID int64) (*domain.TradeDocument, error) {
	args := m.Called(ctx, tenantID, kind, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TradeDocument), args.Error(1)
}

func (m *MockDocumentReader) FindPayment(ctx context.Context, tenantID string, kind domain.DocumentType, paymentID int64) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, kind, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockDocumentReader) FindPayrollRun(ctx context.Context, tenantID string, runID int64) (*domain.PayrollRun, error) {
	args := m.Called(ctx, tenantID, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollRun), args.Error(1)
}

func (m *MockDocumentReader) FindDepreciationRun(ctx context.Context, tenantID string, runID int64) (*domain.DepreciationRun, error) {
	args := m.Called(ctx, tenantID, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepreciationRun), args.Error(1)
}

// --- Mock JournalRepository ---
// It also implements the optional reversal link and project tagging capabilities.
type MockJournalRepository struct {
	mock.Mock
}

var (
	_ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)
	_ portsrepo.ReversalLinker          = (*MockJournalRepository)(nil)
	_ portsrepo.DimensionTagger         = (*MockJournalRepository)(nil)
)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, w portsrepo.JournalWrite) (int64, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) LinkReversal(ctx context.Context, tenantID string, originalID, reversalID int64) error {
	args := m.Called(ctx, tenantID, originalID, reversalID)
	return args.Error(0)
}

func (m *MockJournalRepository) TagProject(ctx context.Context, tenantID string, journalID, projectID int64) error {
	args := m.Called(ctx, tenantID, journalID, projectID)
	return args.Error(0)
}

// plainJournalStore hides the optional capabilities of a MockJournalRepository.
type plainJournalStore struct {
	portsrepo.JournalRepositoryFacade
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) TrialBalanceRows(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) SumAccounts(ctx context.Context, tenantID string, codes []string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, codes, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) SubledgerAR(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) SubledgerAP(ctx context.Context, tenantID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepository = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) Receive(ctx context.Context, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef) error {
	args := m.Called(ctx, tenantID, itemID, qty, unitCost, source)
	return args.Error(0)
}

func (m *MockInventoryRepository) Issue(ctx context.Context, tenantID string, itemID int64, qty decimal.Decimal, source domain.SourceRef, allowNegative bool) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID, qty, source, allowNegative)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) OnHand(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) AverageCost(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock PeriodSvc ---
type MockPeriodService struct {
	mock.Mock
}

var _ portssvc.PeriodSvc = (*MockPeriodService)(nil)

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

// --- Mock InventorySvc ---
type MockInventoryService struct {
	mock.Mock
}

var _ portssvc.InventorySvc = (*MockInventoryService)(nil)

func (m *MockInventoryService) Receive(ctx context.Context, tenantID string, itemID int64, qty, unitCost decimal.Decimal, source domain.SourceRef) error {
	args := m.Called(ctx, tenantID, itemID, qty, unitCost, source)
	return args.Error(0)
}

func (m *MockInventoryService) Issue(ctx context.Context, tenantID string, itemID int64, qty decimal.Decimal, source domain.SourceRef) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID, qty, source)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryService) OnHand(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryService) AverageCost(ctx context.Context, tenantID string, itemID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, itemID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
