package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
)

type SequenceRepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *PgxSequenceRepository
	key  domain.SequenceKey
}

func TestSequenceRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceRepositoryTestSuite))
}

func (suite *SequenceRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mock = mock
	suite.repo = newPgxSequenceRepository(mock)
	suite.key = domain.SequenceKey{TenantID: "tenant-1", DocType: "invoice", PeriodKey: "202501"}
}

func (suite *SequenceRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

var (
	lockCounterSQL   = regexp.QuoteMeta("SELECT last_value FROM document_sequences")
	createCounterSQL = regexp.QuoteMeta("INSERT INTO document_sequences")
	bumpCounterSQL   = regexp.QuoteMeta("UPDATE document_sequences SET last_value = last_value + 1")
)

func (suite *SequenceRepositoryTestSuite) TestNextValue_IncrementsExistingCounter() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockCounterSQL).
		WithArgs("tenant-1", "invoice", "202501").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(4)))
	suite.mock.ExpectQuery(bumpCounterSQL).
		WithArgs("tenant-1", "invoice", "202501", "INV-", 4).
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(5)))
	suite.mock.ExpectCommit()

	counter, err := suite.repo.NextValue(context.Background(), suite.key, "INV-", 4)

	suite.Require().NoError(err)
	suite.Equal(int64(5), counter.LastValue)
	suite.Equal("INV-", counter.Prefix)
	suite.Equal(suite.key, counter.SequenceKey)
}

func (suite *SequenceRepositoryTestSuite) TestNextValue_CreatesMissingCounterAtOne() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockCounterSQL).
		WithArgs("tenant-1", "invoice", "202501").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}))
	suite.mock.ExpectExec(createCounterSQL).
		WithArgs("tenant-1", "invoice", "202501", "INV-", 4).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	counter, err := suite.repo.NextValue(context.Background(), suite.key, "INV-", 4)

	suite.Require().NoError(err)
	suite.Equal(int64(1), counter.LastValue)
}

func (suite *SequenceRepositoryTestSuite) TestNextValue_LostCreateRaceLocksAndIncrements() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockCounterSQL).
		WithArgs("tenant-1", "invoice", "202501").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}))
	suite.mock.ExpectExec(createCounterSQL).
		WithArgs("tenant-1", "invoice", "202501", "INV-", 4).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	suite.mock.ExpectQuery(lockCounterSQL).
		WithArgs("tenant-1", "invoice", "202501").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(1)))
	suite.mock.ExpectQuery(bumpCounterSQL).
		WithArgs("tenant-1", "invoice", "202501", "INV-", 4).
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(2)))
	suite.mock.ExpectCommit()

	counter, err := suite.repo.NextValue(context.Background(), suite.key, "INV-", 4)

	suite.Require().NoError(err)
	suite.Equal(int64(2), counter.LastValue)
}

func (suite *SequenceRepositoryTestSuite) TestNextValue_StorageFailureRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockCounterSQL).
		WithArgs("tenant-1", "invoice", "202501").
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	counter, err := suite.repo.NextValue(context.Background(), suite.key, "INV-", 4)

	suite.Nil(counter)
	suite.ErrorIs(err, apperrors.ErrStorageFailure)
}

func (suite *SequenceRepositoryTestSuite) TestFindCounter_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT prefix, pad, last_value FROM document_sequences")).
		WithArgs("tenant-1", "invoice", "202501").
		WillReturnRows(pgxmock.NewRows([]string{"prefix", "pad", "last_value"}))

	counter, err := suite.repo.FindCounter(context.Background(), suite.key)

	suite.Nil(counter)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SequenceRepositoryTestSuite) TestListUsedNumbers() {
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT number FROM trade_documents WHERE tenant_id = $1 AND starts_with(number, $2)")).
		WithArgs("tenant-1", "INV-2025-01-").
		WillReturnRows(pgxmock.NewRows([]string{"number"}).AddRow("INV-2025-01-0001").AddRow("INV-2025-01-0003"))

	numbers, err := suite.repo.ListUsedNumbers(context.Background(), "tenant-1", "INV-2025-01-")

	suite.Require().NoError(err)
	suite.Equal([]string{"INV-2025-01-0001", "INV-2025-01-0003"}, numbers)
}
