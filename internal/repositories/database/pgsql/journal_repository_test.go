package pgsql

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backoffice/internal/utils/pagination"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

type JournalRepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *PgxJournalRepository
}

func TestJournalRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(JournalRepositoryTestSuite))
}

func (suite *JournalRepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	suite.Require().NoError(err)
	suite.mock = mock
	suite.repo = newPgxJournalRepository(mock)
}

func (suite *JournalRepositoryTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func (suite *JournalRepositoryTestSuite) write(source domain.SourceRef, replace *int64) portsrepo.JournalWrite {
	return suite.writeExpecting(source, replace, replace)
}

func (suite *JournalRepositoryTestSuite) writeExpecting(source domain.SourceRef, replace, expected *int64) portsrepo.JournalWrite {
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return portsrepo.JournalWrite{
		Entry: domain.JournalEntry{
			TenantID:    "tenant-1",
			EntryDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Reference:   "INV-0001",
			Description: "Invoice INV-0001",
			Source:      &source,
			Lines: []domain.JournalLine{
				{AccountCode: "1100", Debit: decimal.RequireFromString("115"), Credit: decimal.Zero},
				{AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.RequireFromString("115")},
			},
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "user-1", LastUpdatedAt: now, LastUpdatedBy: "user-1"},
		},
		ReplaceJournalID:  replace,
		ExpectedJournalID: expected,
		WriteBack:         &source,
	}
}

var invoiceSource = domain.SourceRef{Module: "sales", Type: domain.DocInvoice, ID: 10}

func (suite *JournalRepositoryTestSuite) expectInvoiceLock(current *int64) {
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT journal_id FROM trade_documents WHERE tenant_id = $1 AND document_id = $2 AND kind = $3 FOR UPDATE")).
		WithArgs("tenant-1", int64(10), "invoice").
		WillReturnRows(pgxmock.NewRows([]string{"journal_id"}).AddRow(current))
}

func (suite *JournalRepositoryTestSuite) expectDeletePrior(prior int64, affected int64) {
	suite.mock.ExpectExec(regexp.QuoteMeta("DELETE FROM journal_entries WHERE tenant_id = $1 AND journal_id = $2 AND reversed_by_id IS NULL")).
		WithArgs("tenant-1", prior).
		WillReturnResult(pgxmock.NewResult("DELETE", affected))
}

func (suite *JournalRepositoryTestSuite) expectInserts(journalID int64) {
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO journal_entries")).
		WithArgs(anyArgs(12)...).
		WillReturnRows(pgxmock.NewRows([]string{"journal_id"}).AddRow(journalID))
	suite.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO journal_lines")).
		WithArgs(anyArgs(2 * journalLineColumns)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_ReplacesPriorAndWritesBack() {
	prior := int64(55)
	suite.mock.ExpectBegin()
	suite.expectInvoiceLock(&prior)
	suite.expectDeletePrior(prior, 1)
	suite.expectInserts(72)
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE trade_documents SET journal_id")).
		WithArgs(int64(72), "tenant-1", int64(10), "invoice").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	id, err := suite.repo.SaveJournal(context.Background(), suite.write(invoiceSource, &prior))

	suite.Require().NoError(err)
	suite.Equal(int64(72), id)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_DepreciationRunMarkedPosted() {
	source := domain.SourceRef{Module: "assets", Type: domain.DocDepreciationRun, ID: 5}
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT journal_id FROM depreciation_runs WHERE tenant_id = $1 AND run_id = $2 FOR UPDATE")).
		WithArgs("tenant-1", int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"journal_id"}).AddRow(nil))
	suite.expectInserts(80)
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE depreciation_runs SET journal_id = $1, status = 'posted'")).
		WithArgs(int64(80), "tenant-1", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	id, err := suite.repo.SaveJournal(context.Background(), suite.write(source, nil))

	suite.Require().NoError(err)
	suite.Equal(int64(80), id)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_MissingSourceRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta("SELECT journal_id FROM trade_documents")).
		WithArgs("tenant-1", int64(10), "invoice").
		WillReturnRows(pgxmock.NewRows([]string{"journal_id"}))
	suite.mock.ExpectRollback()

	_, err := suite.repo.SaveJournal(context.Background(), suite.write(invoiceSource, nil))

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// Two re-posts read the same prior journal. The second one finds the source row
// already pointing at the first one's journal and must not insert a second journal.
func (suite *JournalRepositoryTestSuite) TestSaveJournal_ConcurrentRepostConflicts() {
	prior := int64(55)
	winner := int64(72)
	suite.mock.ExpectBegin()
	suite.expectInvoiceLock(&winner)
	suite.mock.ExpectRollback()

	_, err := suite.repo.SaveJournal(context.Background(), suite.write(invoiceSource, &prior))

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_FirstPostRacedByAnotherConflicts() {
	winner := int64(72)
	suite.mock.ExpectBegin()
	suite.expectInvoiceLock(&winner)
	suite.mock.ExpectRollback()

	_, err := suite.repo.SaveJournal(context.Background(), suite.write(invoiceSource, nil))

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_ReversedPriorIsNotDeleted() {
	prior := int64(55)
	suite.mock.ExpectBegin()
	suite.expectInvoiceLock(&prior)
	suite.expectDeletePrior(prior, 0)
	suite.mock.ExpectRollback()

	_, err := suite.repo.SaveJournal(context.Background(), suite.write(invoiceSource, &prior))

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_KeepsReversedPriorAndWritesFresh() {
	prior := int64(55)
	suite.mock.ExpectBegin()
	suite.expectInvoiceLock(&prior)
	suite.expectInserts(90)
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE trade_documents SET journal_id")).
		WithArgs(int64(90), "tenant-1", int64(10), "invoice").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	id, err := suite.repo.SaveJournal(context.Background(), suite.writeExpecting(invoiceSource, nil, &prior))

	suite.Require().NoError(err)
	suite.Equal(int64(90), id)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_LineInsertFailureRollsBack() {
	prior := int64(55)
	suite.mock.ExpectBegin()
	suite.expectInvoiceLock(&prior)
	suite.expectDeletePrior(prior, 1)
	suite.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO journal_entries")).
		WithArgs(anyArgs(12)...).
		WillReturnRows(pgxmock.NewRows([]string{"journal_id"}).AddRow(int64(74)))
	suite.mock.ExpectExec(regexp.QuoteMeta("INSERT INTO journal_lines")).
		WithArgs(anyArgs(2 * journalLineColumns)...).
		WillReturnError(errors.New("check constraint violated"))
	suite.mock.ExpectRollback()

	_, err := suite.repo.SaveJournal(context.Background(), suite.write(invoiceSource, &prior))

	suite.ErrorIs(err, apperrors.ErrStorageFailure)
}

func (suite *JournalRepositoryTestSuite) TestSaveJournal_ReversalHasNoSourceLock() {
	suite.mock.ExpectBegin()
	suite.expectInserts(91)
	suite.mock.ExpectCommit()

	w := suite.write(invoiceSource, nil)
	w.WriteBack = nil
	id, err := suite.repo.SaveJournal(context.Background(), w)

	suite.Require().NoError(err)
	suite.Equal(int64(91), id)
}

func (suite *JournalRepositoryTestSuite) TestLinkReversal_MissingOriginal() {
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE journal_entries SET reversed_by_id")).
		WithArgs("tenant-1", int64(9), int64(12)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.LinkReversal(context.Background(), "tenant-1", 9, 12)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalRepositoryTestSuite) TestListJournals_ReturnsNextToken() {
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	columns := []string{
		"journal_id", "tenant_id", "entry_date", "reference", "description",
		"source_module", "source_type", "source_id", "reverses_id", "reversed_by_id",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	}
	rows := pgxmock.NewRows(columns).
		AddRow(int64(30), "tenant-1", time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), "J-30", "", nil, nil, nil, nil, nil, created, "u", created, "u").
		AddRow(int64(29), "tenant-1", time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC), "J-29", "", nil, nil, nil, nil, nil, created, "u", created, "u")
	suite.mock.ExpectQuery(regexp.QuoteMeta("ORDER BY entry_date DESC, journal_id DESC LIMIT $2")).
		WithArgs("tenant-1", 2).
		WillReturnRows(rows)

	journals, next, err := suite.repo.ListJournals(context.Background(), "tenant-1", 1, nil)

	suite.Require().NoError(err)
	suite.Require().Len(journals, 1)
	suite.Equal(int64(30), journals[0].JournalID)
	suite.Require().NotNil(next)
	date, id, err := pagination.DecodeToken(*next)
	suite.Require().NoError(err)
	suite.Equal(int64(30), id)
	suite.Equal("2025-01-20", date.Format(time.DateOnly))
}

func (suite *JournalRepositoryTestSuite) TestListJournals_InvalidToken() {
	bad := "%%%"

	_, _, err := suite.repo.ListJournals(context.Background(), "tenant-1", 10, &bad)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestInsertLinesQuery_NumbersPlaceholdersPerLine(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountCode: "1100", Debit: decimal.RequireFromString("10"), Credit: decimal.Zero},
		{AccountCode: "4000", Debit: decimal.Zero, Credit: decimal.RequireFromString("10")},
	}

	query, args := insertLinesQuery(42, "tenant-1", lines)

	assert.Len(t, args, 2*journalLineColumns)
	assert.True(t, strings.HasSuffix(query, "($12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);"))
	assert.Equal(t, int64(42), args[0])
	assert.Equal(t, 1, args[2])
	assert.Equal(t, 2, args[journalLineColumns+2])
	assert.Equal(t, "4000", args[journalLineColumns+3])
}
