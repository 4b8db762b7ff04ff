package dto

import "github.com/SscSPs/gl_backoffice/internal/core/domain"

// PostDocumentResponse is returned by every posting endpoint.
type PostDocumentResponse struct {
	DocumentType string          `json:"documentType"`
	DocumentID   int64           `json:"documentID"`
	Journal      JournalResponse `json:"journal"`
}

func ToPostDocumentResponse(docType domain.DocumentType, documentID int64, j *domain.JournalEntry) PostDocumentResponse {
	return PostDocumentResponse{
		DocumentType: string(docType),
		DocumentID:   documentID,
		Journal:      ToJournalResponse(j),
	}
}
