package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SourceRef identifies the business document a journal was generated from.
type SourceRef struct {
	Module string       `json:"module"`
	Type   DocumentType `json:"type"`
	ID     int64        `json:"id"`
}

// Dimensions are optional analysis tags carried on a journal line.
type Dimensions struct {
	CustomerID *int64 `json:"customerID,omitempty"`
	SupplierID *int64 `json:"supplierID,omitempty"`
	ProjectID  *int64 `json:"projectID,omitempty"`
	EmployeeID *int64 `json:"employeeID,omitempty"`
}

// Key returns a stable string form of the dimensions, used to bucket lines.
func (d Dimensions) Key() string {
	parts := make([]string, 0, 4)
	for _, p := range []*int64{d.CustomerID, d.SupplierID, d.ProjectID, d.EmployeeID} {
		if p == nil {
			parts = append(parts, "-")
			continue
		}
		parts = append(parts, strconv.FormatInt(*p, 10))
	}
	return strings.Join(parts, "/")
}

// JournalLine is one side of a journal entry. Exactly one of Debit and Credit is non-zero.
type JournalLine struct {
	LineID      int64           `json:"lineID"`
	JournalID   int64           `json:"journalID"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Dimensions
}

// JournalEntry is a balanced set of lines posted on one date.
type JournalEntry struct {
	JournalID    int64         `json:"journalID"`
	TenantID     string        `json:"tenantID"`
	EntryDate    time.Time     `json:"entryDate"`
	Reference    string        `json:"reference"`
	Description  string        `json:"description"`
	Source       *SourceRef    `json:"source,omitempty"`
	ReversesID   *int64        `json:"reversesID,omitempty"`
	ReversedByID *int64        `json:"reversedByID,omitempty"`
	Lines        []JournalLine `json:"lines"`
	AuditFields
}

func (j JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

func (j JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range j.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
