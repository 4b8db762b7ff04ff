package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/gl_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/gl_backoffice/internal/models"
	"github.com/SscSPs/gl_backoffice/internal/utils/mapping"
	"github.com/SscSPs/gl_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(db DB) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: db}}
}

var (
	_ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)
	_ portsrepo.ReversalLinker          = (*PgxJournalRepository)(nil)
	_ portsrepo.DimensionTagger         = (*PgxJournalRepository)(nil)
)

const journalLineColumns = 11

// SaveJournal deletes the replaced journal, inserts the new header and lines and records
// the journal on its source document, all in one transaction. The source row stays locked
// until commit, so concurrent re-posts of one document are serialized.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, w portsrepo.JournalWrite) (int64, error) {
	if len(w.Entry.Lines) == 0 {
		return 0, apperrors.NewValidationError("journal has no lines")
	}
	header := mapping.ToModelJournalEntry(w.Entry)

	var journalID int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		if w.WriteBack != nil {
			current, err := lockSource(ctx, tx, header.TenantID, *w.WriteBack)
			if err != nil {
				return err
			}
			if !sameJournal(current, w.ExpectedJournalID) {
				return apperrors.NewConflictError(fmt.Sprintf("%s %d was posted concurrently, retry the posting", w.WriteBack.Type, w.WriteBack.ID))
			}
		}

		if w.ReplaceJournalID != nil {
			// lines follow through ON DELETE CASCADE
			tag, err := tx.Exec(ctx,
				`DELETE FROM journal_entries WHERE tenant_id = $1 AND journal_id = $2 AND reversed_by_id IS NULL;`,
				header.TenantID, *w.ReplaceJournalID)
			if err != nil {
				return apperrors.NewStorageError("failed to delete replaced journal", err)
			}
			if tag.RowsAffected() != 1 {
				return apperrors.NewConflictError(fmt.Sprintf("journal %d was reversed or removed before it could be replaced", *w.ReplaceJournalID))
			}
		}

		insertHeader := `
			INSERT INTO journal_entries (
				tenant_id, entry_date, reference, description,
				source_module, source_type, source_id, reverses_id,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING journal_id;`
		if err := tx.QueryRow(ctx, insertHeader,
			header.TenantID, header.EntryDate, header.Reference, header.Description,
			header.SourceModule, header.SourceType, header.SourceID, header.ReversesID,
			header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
		).Scan(&journalID); err != nil {
			return apperrors.NewStorageError("failed to insert journal", err)
		}

		query, args := insertLinesQuery(journalID, header.TenantID, w.Entry.Lines)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return apperrors.NewStorageError("failed to insert journal lines", err)
		}

		if w.WriteBack != nil {
			return writeBack(ctx, tx, header.TenantID, journalID, *w.WriteBack)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return journalID, nil
}

// insertLinesQuery builds one multi-row insert. Line numbers follow slice order.
func insertLinesQuery(journalID int64, tenantID string, lines []domain.JournalLine) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO journal_lines (journal_id, tenant_id, line_no, account_code, debit, credit, description, customer_id, supplier_id, project_id, employee_id) VALUES `)
	args := make([]any, 0, len(lines)*journalLineColumns)
	for i, line := range lines {
		m := mapping.ToModelJournalLine(tenantID, line)
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < journalLineColumns; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("$" + strconv.Itoa(i*journalLineColumns+c+1))
		}
		sb.WriteString(")")
		args = append(args, journalID, m.TenantID, i+1, m.AccountCode, m.Debit, m.Credit, m.Description,
			m.CustomerID, m.SupplierID, m.ProjectID, m.EmployeeID)
	}
	sb.WriteString(";")
	return sb.String(), args
}

type sourceTable struct {
	table    string
	idColumn string
	kind     string
}

func sourceTableOf(source domain.SourceRef) (sourceTable, bool) {
	switch source.Type {
	case domain.DocInvoice, domain.DocCreditNote, domain.DocBill, domain.DocVendorCredit:
		return sourceTable{table: "trade_documents", idColumn: "document_id", kind: string(source.Type)}, true
	case domain.DocCustomerPayment, domain.DocSupplierPayment:
		return sourceTable{table: "payments", idColumn: "payment_id", kind: string(source.Type)}, true
	case domain.DocPayrollRun:
		return sourceTable{table: "payroll_runs", idColumn: "run_id"}, true
	case domain.DocDepreciationRun:
		return sourceTable{table: "depreciation_runs", idColumn: "run_id"}, true
	default:
		return sourceTable{}, false
	}
}

// where renders the row filter starting at placeholder $first: tenant, id and, for shared tables, kind.
func (t sourceTable) where(first int, tenantID string, id int64) (string, []any) {
	clause := fmt.Sprintf("tenant_id = $%d AND %s = $%d", first, t.idColumn, first+1)
	args := []any{tenantID, id}
	if t.kind != "" {
		clause += fmt.Sprintf(" AND kind = $%d", first+2)
		args = append(args, t.kind)
	}
	return clause, args
}

// lockSource locks the source document row and returns the journal id it currently carries.
func lockSource(ctx context.Context, tx pgx.Tx, tenantID string, source domain.SourceRef) (*int64, error) {
	t, ok := sourceTableOf(source)
	if !ok {
		return nil, nil
	}
	clause, args := t.where(1, tenantID, source.ID)
	var current *int64
	err := tx.QueryRow(ctx, "SELECT journal_id FROM "+t.table+" WHERE "+clause+" FOR UPDATE;", args...).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %d", source.Type, source.ID))
	}
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to lock %s %d", source.Type, source.ID), err)
	}
	return current, nil
}

func sameJournal(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// writeBack stores the journal id on the source document. Depreciation runs are also
// marked posted. A vanished source document aborts the transaction.
func writeBack(ctx context.Context, tx pgx.Tx, tenantID string, journalID int64, source domain.SourceRef) error {
	t, ok := sourceTableOf(source)
	if !ok {
		return nil
	}
	set := "journal_id = $1"
	if source.Type == domain.DocDepreciationRun {
		set += ", status = 'posted'"
	}
	clause, args := t.where(2, tenantID, source.ID)

	tag, err := tx.Exec(ctx, "UPDATE "+t.table+" SET "+set+" WHERE "+clause+";", append([]any{journalID}, args...)...)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to record journal on %s %d", source.Type, source.ID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s %d", source.Type, source.ID))
	}
	return nil
}

const selectJournalColumns = `
		SELECT journal_id, tenant_id, entry_date, reference, description,
			source_module, source_type, source_id, reverses_id, reversed_by_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entries`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalID, &m.TenantID, &m.EntryDate, &m.Reference, &m.Description,
		&m.SourceModule, &m.SourceType, &m.SourceID, &m.ReversesID, &m.ReversedByID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindJournalByID retrieves a journal header and its lines in line order.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID int64) (*domain.JournalEntry, error) {
	query := selectJournalColumns + `
		WHERE tenant_id = $1 AND journal_id = $2;`

	header, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, tenantID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal %d", journalID))
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to load journal %d", journalID), err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, journal_id, tenant_id, line_no, account_code, debit, credit, description,
			customer_id, supplier_id, project_id, employee_id
		FROM journal_lines
		WHERE tenant_id = $1 AND journal_id = $2
		ORDER BY line_no;`, tenantID, journalID)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to query lines of journal %d", journalID), err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.JournalID, &l.TenantID, &l.LineNo, &l.AccountCode, &l.Debit, &l.Credit,
			&l.Description, &l.CustomerID, &l.SupplierID, &l.ProjectID, &l.EmployeeID); err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to scan line of journal %d", journalID), err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("error iterating lines of journal %d", journalID), err)
	}

	entry := mapping.ToDomainJournalEntry(header, lines)
	return &entry, nil
}

// ListJournals retrieves journal headers ordered by entry date then id, newest first.
// It fetches one extra row to decide whether a next page exists.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{tenantID}
	query := selectJournalColumns + ` WHERE tenant_id = $1`
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid nextToken")
		}
		query += ` AND (entry_date, journal_id) < ($2, $3)`
		args = append(args, lastDate, lastID)
	}
	query += ` ORDER BY entry_date DESC, journal_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to query journals", err)
	}
	defer rows.Close()

	journals := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewStorageError("failed to scan journal row", err)
		}
		journals = append(journals, mapping.ToDomainJournalEntry(m, nil))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewStorageError("error iterating journal rows", err)
	}

	var next *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.JournalID)
		next = &token
	}
	return journals, next, nil
}

// LinkReversal records the reversal on the original journal.
func (r *PgxJournalRepository) LinkReversal(ctx context.Context, tenantID string, originalID, reversalID int64) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE journal_entries SET reversed_by_id = $3 WHERE tenant_id = $1 AND journal_id = $2;`,
		tenantID, originalID, reversalID)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to link reversal of journal %d", originalID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("journal %d", originalID))
	}
	return nil
}

// TagProject sets the project on every line of the journal that has none.
func (r *PgxJournalRepository) TagProject(ctx context.Context, tenantID string, journalID, projectID int64) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE journal_lines SET project_id = $3 WHERE tenant_id = $1 AND journal_id = $2 AND project_id IS NULL;`,
		tenantID, journalID, projectID)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to tag journal %d", journalID), err)
	}
	return nil
}
