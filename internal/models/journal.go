package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries. The source columns are null for manual
// journals; reverses_id and reversed_by_id are null until a reversal links them.
type JournalEntry struct {
	JournalID    int64     `db:"journal_id"`
	TenantID     string    `db:"tenant_id"`
	EntryDate    time.Time `db:"entry_date"`
	Reference    string    `db:"reference"`
	Description  string    `db:"description"`
	SourceModule *string   `db:"source_module"`
	SourceType   *string   `db:"source_type"`
	SourceID     *int64    `db:"source_id"`
	ReversesID   *int64    `db:"reverses_id"`
	ReversedByID *int64    `db:"reversed_by_id"`
	AuditFields
}

// JournalLine is a row of journal_lines.
type JournalLine struct {
	LineID      int64           `db:"line_id"`
	JournalID   int64           `db:"journal_id"`
	TenantID    string          `db:"tenant_id"`
	LineNo      int             `db:"line_no"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
	CustomerID  *int64          `db:"customer_id"`
	SupplierID  *int64          `db:"supplier_id"`
	ProjectID   *int64          `db:"project_id"`
	EmployeeID  *int64          `db:"employee_id"`
}
