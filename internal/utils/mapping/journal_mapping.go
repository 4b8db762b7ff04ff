package mapping

import (
	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	"github.com/SscSPs/gl_backoffice/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are converted separately with ToModelJournalLine.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		JournalID:    d.JournalID,
		TenantID:     d.TenantID,
		EntryDate:    domain.DateOnly(d.EntryDate),
		Reference:    d.Reference,
		Description:  d.Description,
		ReversesID:   d.ReversesID,
		ReversedByID: d.ReversedByID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.Source != nil {
		module := d.Source.Module
		sourceType := string(d.Source.Type)
		sourceID := d.Source.ID
		m.SourceModule = &module
		m.SourceType = &sourceType
		m.SourceID = &sourceID
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:    m.JournalID,
		TenantID:     m.TenantID,
		EntryDate:    domain.DateOnly(m.EntryDate),
		Reference:    m.Reference,
		Description:  m.Description,
		ReversesID:   m.ReversesID,
		ReversedByID: m.ReversedByID,
		Lines:        make([]domain.JournalLine, len(lines)),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.SourceType != nil && m.SourceID != nil {
		d.Source = &domain.SourceRef{Type: domain.DocumentType(*m.SourceType), ID: *m.SourceID}
		if m.SourceModule != nil {
			d.Source.Module = *m.SourceModule
		}
	}
	for i, l := range lines {
		d.Lines[i] = ToDomainJournalLine(l)
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(tenantID string, d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		TenantID:    tenantID,
		LineNo:      d.LineNo,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		CustomerID:  d.CustomerID,
		SupplierID:  d.SupplierID,
		ProjectID:   d.ProjectID,
		EmployeeID:  d.EmployeeID,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		LineNo:      m.LineNo,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		Dimensions: domain.Dimensions{
			CustomerID: m.CustomerID,
			SupplierID: m.SupplierID,
			ProjectID:  m.ProjectID,
			EmployeeID: m.EmployeeID,
		},
	}
}
