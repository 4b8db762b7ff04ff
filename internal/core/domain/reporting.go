package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account's cumulative activity. Balance is debit-positive.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// Ledger selects a control account / sub-ledger pair for reconciliation.
type Ledger string

const (
	LedgerAR Ledger = "AR"
	LedgerAP Ledger = "AP"
)

// TieOutResult compares a control account with its sub-ledger total.
type TieOutResult struct {
	Ledger          Ledger          `json:"ledger"`
	AccountCode     string          `json:"accountCode"`
	GLBalance       decimal.Decimal `json:"glBalance"`
	SubledgerTotal  decimal.Decimal `json:"subledgerTotal"`
	Difference      decimal.Decimal `json:"difference"`
	WithinTolerance bool            `json:"withinTolerance"`
}
