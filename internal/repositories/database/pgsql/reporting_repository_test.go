package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingRepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *reportingRepository
	asOf time.Time
}

func TestReportingRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingRepositoryTestSuite))
}

func (suite *ReportingRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mock = mock
	suite.repo = newReportingRepository(mock)
	suite.asOf = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func (suite *ReportingRepositoryTestSuite) TestTrialBalanceRows_CutsOffAtAsOf() {
	rows := pgxmock.NewRows([]string{"code", "name", "account_type", "debit", "credit"}).
		AddRow("1100", "Receivables", domain.AccountType("ASSET"), decimal.RequireFromString("230"), decimal.Zero).
		AddRow("4000", "Sales", domain.AccountType("REVENUE"), decimal.Zero, decimal.RequireFromString("200"))
	suite.mock.ExpectQuery(regexp.QuoteMeta("WHERE e.tenant_id = $1 AND e.entry_date <= $2")).
		WithArgs("tenant-1", suite.asOf).
		WillReturnRows(rows)

	result, err := suite.repo.TrialBalanceRows(context.Background(), "tenant-1", suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("1100", result[0].AccountCode)
	suite.True(result[0].Debit.Equal(decimal.RequireFromString("230")))
	suite.Equal(domain.AccountType("REVENUE"), result[1].AccountType)
	suite.True(result[1].Credit.Equal(decimal.RequireFromString("200")))
}

func (suite *ReportingRepositoryTestSuite) TestTrialBalanceRows_StorageFailure() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("FROM accounts a")).
		WithArgs("tenant-1", suite.asOf).
		WillReturnError(errors.New("relation does not exist"))

	_, err := suite.repo.TrialBalanceRows(context.Background(), "tenant-1", suite.asOf)

	suite.ErrorIs(err, apperrors.ErrStorageFailure)
}

func (suite *ReportingRepositoryTestSuite) TestSumAccounts_IsDebitPositiveUpToAsOf() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("SUM(l.debit - l.credit)")).
		WithArgs("tenant-1", []string{"1100", "1110"}, suite.asOf).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(decimal.RequireFromString("150.25")))

	total, err := suite.repo.SumAccounts(context.Background(), "tenant-1", []string{"1100", "1110"}, suite.asOf)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("150.25")), total.String())
}

func (suite *ReportingRepositoryTestSuite) expectSubledger(open, credit, payment string, total string) {
	suite.mock.ExpectQuery(regexp.QuoteMeta("d.kind = $2 AND lower(d.status) <> ALL($6) AND d.document_date <= $4")).
		WithArgs("tenant-1", open, credit, suite.asOf, payment, []string{"draft", "void"}).
		WillReturnRows(pgxmock.NewRows([]string{"total"}).AddRow(decimal.RequireFromString(total)))
}

func (suite *ReportingRepositoryTestSuite) TestSubledgerAR_ExcludesUnpostableStatuses() {
	suite.expectSubledger("invoice", "credit_note", "customer_payment", "230")

	total, err := suite.repo.SubledgerAR(context.Background(), "tenant-1", suite.asOf)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("230")), total.String())
}

func (suite *ReportingRepositoryTestSuite) TestSubledgerAP_UsesPurchaseDocuments() {
	suite.expectSubledger("bill", "vendor_credit", "supplier_payment", "-12.5")

	total, err := suite.repo.SubledgerAP(context.Background(), "tenant-1", suite.asOf)

	suite.Require().NoError(err)
	suite.True(total.Equal(decimal.RequireFromString("-12.5")), total.String())
}

func (suite *ReportingRepositoryTestSuite) TestSubledger_StorageFailure() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("FROM payment_allocations a")).
		WithArgs("tenant-1", "invoice", "credit_note", suite.asOf, "customer_payment", []string{"draft", "void"}).
		WillReturnError(errors.New("timeout"))

	_, err := suite.repo.SubledgerAR(context.Background(), "tenant-1", suite.asOf)

	suite.ErrorIs(err, apperrors.ErrStorageFailure)
}

func TestSubledgerQuery_FiltersEverySource(t *testing.T) {
	filter := regexp.MustCompile(regexp.QuoteMeta("status) <> ALL($6)"))
	if n := len(filter.FindAllStringIndex(subledgerQuery, -1)); n != 3 {
		t.Fatalf("expected the status filter on all three sources, found %d", n)
	}
}
