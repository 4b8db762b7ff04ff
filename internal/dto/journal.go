package dto

import (
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	CustomerID  *int64          `json:"customerID,omitempty"`
	SupplierID  *int64          `json:"supplierID,omitempty"`
	ProjectID   *int64          `json:"projectID,omitempty"`
	EmployeeID  *int64          `json:"employeeID,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID    int64                 `json:"journalID"`
	EntryDate    string                `json:"entryDate"`
	Reference    string                `json:"reference"`
	Description  string                `json:"description"`
	SourceModule string                `json:"sourceModule,omitempty"`
	SourceType   string                `json:"sourceType,omitempty"`
	SourceID     *int64                `json:"sourceID,omitempty"`
	ReversesID   *int64                `json:"reversesID,omitempty"`
	ReversedByID *int64                `json:"reversedByID,omitempty"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID:    j.JournalID,
		EntryDate:    j.EntryDate.Format(time.DateOnly),
		Reference:    j.Reference,
		Description:  j.Description,
		ReversesID:   j.ReversesID,
		ReversedByID: j.ReversedByID,
		TotalDebit:   j.TotalDebit(),
		TotalCredit:  j.TotalCredit(),
		CreatedAt:    j.CreatedAt,
		CreatedBy:    j.CreatedBy,
	}
	if j.Source != nil {
		id := j.Source.ID
		resp.SourceModule = j.Source.Module
		resp.SourceType = string(j.Source.Type)
		resp.SourceID = &id
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i, l := range j.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineNo:      l.LineNo,
				AccountCode: l.AccountCode,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Description: l.Description,
				CustomerID:  l.CustomerID,
				SupplierID:  l.SupplierID,
				ProjectID:   l.ProjectID,
				EmployeeID:  l.EmployeeID,
			}
		}
	}
	return resp
}

// ReverseJournalRequest is the body of a reversal. Date uses YYYY-MM-DD and defaults to
// the original entry date.
type ReverseJournalRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
	Date   *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ListJournalsParams defines parameters for listing journals with token-based pagination.
type ListJournalsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
