package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType names a kind of business document that can be posted to the ledger.
type DocumentType string

const (
	DocInvoice         DocumentType = "invoice"
	DocCreditNote      DocumentType = "credit_note"
	DocBill            DocumentType = "bill"
	DocVendorCredit    DocumentType = "vendor_credit"
	DocCustomerPayment DocumentType = "customer_payment"
	DocSupplierPayment DocumentType = "supplier_payment"
	DocPayrollRun      DocumentType = "payroll_run"
	DocDepreciationRun DocumentType = "depreciation_run"
	DocJournalReversal DocumentType = "journal_reversal"
)

// Label is the human form used in journal descriptions.
func (t DocumentType) Label() string {
	switch t {
	case DocInvoice:
		return "Invoice"
	case DocCreditNote:
		return "Credit note"
	case DocBill:
		return "Bill"
	case DocVendorCredit:
		return "Vendor credit"
	case DocCustomerPayment:
		return "Customer payment"
	case DocSupplierPayment:
		return "Supplier payment"
	case DocPayrollRun:
		return "Payroll run"
	case DocDepreciationRun:
		return "Depreciation run"
	default:
		return string(t)
	}
}

// UnpostableStatuses are trade document and payment statuses that never reach the ledger.
// Posting refuses them and the sub-ledger totals exclude them.
var UnpostableStatuses = []string{"draft", "void"}

// IsPostable reports whether a document in status may be posted.
func IsPostable(status string) bool {
	for _, s := range UnpostableStatuses {
		if strings.EqualFold(status, s) {
			return false
		}
	}
	return true
}

// Module is the sub-ledger a document type belongs to.
func (t DocumentType) Module() string {
	switch t {
	case DocInvoice, DocCreditNote, DocCustomerPayment:
		return "sales"
	case DocBill, DocVendorCredit, DocSupplierPayment:
		return "purchases"
	case DocPayrollRun:
		return "payroll"
	case DocDepreciationRun:
		return "assets"
	default:
		return "gl"
	}
}

// TradeDocument is an invoice, credit note, bill or vendor credit.
// CounterpartyID is the customer for sales documents and the supplier for purchase documents.
type TradeDocument struct {
	DocumentID     int64          `json:"documentID"`
	TenantID       string         `json:"tenantID"`
	Kind           DocumentType   `json:"kind"`
	Number         string         `json:"number"`
	DocumentDate   time.Time      `json:"documentDate"`
	Status         string         `json:"status"`
	CounterpartyID int64          `json:"counterpartyID"`
	ProjectID      *int64         `json:"projectID,omitempty"`
	JournalID      *int64         `json:"journalID,omitempty"`
	Lines          []DocumentLine `json:"lines"`
}

// DocumentLine is a priced line on a trade document. AccountID optionally overrides the
// default revenue or expense account. Stocked lines move inventory for ItemID.
type DocumentLine struct {
	LineID      int64           `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	AccountID   *int64          `json:"accountID,omitempty"`
	ItemID      *int64          `json:"itemID,omitempty"`
	Stocked     bool            `json:"stocked"`
}

// Payment is a customer receipt or a supplier payment. Only allocated amounts are posted.
type Payment struct {
	PaymentID      int64               `json:"paymentID"`
	TenantID       string              `json:"tenantID"`
	Kind           DocumentType        `json:"kind"`
	Number         string              `json:"number"`
	PaymentDate    time.Time           `json:"paymentDate"`
	Status         string              `json:"status"`
	CounterpartyID int64               `json:"counterpartyID"`
	BankAccountID  *int64              `json:"bankAccountID,omitempty"`
	Reference      string              `json:"reference"`
	JournalID      *int64              `json:"journalID,omitempty"`
	Allocations    []PaymentAllocation `json:"allocations"`
}

type PaymentAllocation struct {
	DocumentID     int64           `json:"documentID"`
	DocumentNumber string          `json:"documentNumber"`
	Amount         decimal.Decimal `json:"amount"`
}

// PayrollRun aggregates the payslips of one pay date.
type PayrollRun struct {
	RunID     int64     `json:"runID"`
	TenantID  string    `json:"tenantID"`
	Reference string    `json:"reference"`
	PayDate   time.Time `json:"payDate"`
	JournalID *int64    `json:"journalID,omitempty"`
	Payslips  []Payslip `json:"payslips"`
}

// Payslip holds one employee's stored payroll figures. NetPay is persisted, not derived.
type Payslip struct {
	EmployeeID      int64           `json:"employeeID"`
	Gross           decimal.Decimal `json:"gross"`
	PAYE            decimal.Decimal `json:"paye"`
	EmployeeUIF     decimal.Decimal `json:"employeeUIF"`
	EmployerUIF     decimal.Decimal `json:"employerUIF"`
	SDL             decimal.Decimal `json:"sdl"`
	Reimbursements  decimal.Decimal `json:"reimbursements"`
	OtherDeductions decimal.Decimal `json:"otherDeductions"`
	NetPay          decimal.Decimal `json:"netPay"`
}

// DepreciationRun is a batch of per-asset depreciation charges for one date.
type DepreciationRun struct {
	RunID     int64              `json:"runID"`
	TenantID  string             `json:"tenantID"`
	RunDate   time.Time          `json:"runDate"`
	Status    string             `json:"status"`
	JournalID *int64             `json:"journalID,omitempty"`
	Lines     []DepreciationLine `json:"lines"`
}

type DepreciationLine struct {
	AssetID              int64           `json:"assetID"`
	Amount               decimal.Decimal `json:"amount"`
	ExpenseAccountID     *int64          `json:"expenseAccountID,omitempty"`
	AccumulatedAccountID *int64          `json:"accumulatedAccountID,omitempty"`
}
