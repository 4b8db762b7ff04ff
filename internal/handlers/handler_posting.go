package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type postFunc func(ctx context.Context, tenantID, userID string, documentID int64) (*domain.JournalEntry, error)

// postingHandler exposes the posting engine, one route per document kind.
type postingHandler struct {
	postingService portssvc.PostingSvc
}

func newPostingHandler(ps portssvc.PostingSvc) *postingHandler {
	return &postingHandler{postingService: ps}
}

func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvc) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/invoices/:document_id", h.post(domain.DocInvoice, postingService.PostInvoice))
		postings.POST("/customer-payments/:document_id", h.post(domain.DocCustomerPayment, postingService.PostCustomerPayment))
		postings.POST("/credit-notes/:document_id", h.post(domain.DocCreditNote, postingService.PostCreditNote))
		postings.POST("/bills/:document_id", h.post(domain.DocBill, postingService.PostBill))
		postings.POST("/supplier-payments/:document_id", h.post(domain.DocSupplierPayment, postingService.PostSupplierPayment))
		postings.POST("/vendor-credits/:document_id", h.post(domain.DocVendorCredit, postingService.PostVendorCredit))
		postings.POST("/payroll-runs/:document_id", h.post(domain.DocPayrollRun, postingService.PostPayrollRun))
		postings.POST("/depreciation-runs/:document_id", h.post(domain.DocDepreciationRun, postingService.PostDepreciationRun))
	}
}

// post godoc
// @Summary Post a source document to the ledger
// @Description Builds the balanced journal for a document and stores it, replacing any journal the document was posted to before.
// @Tags postings
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param kind path string true "Document kind" Enums(invoices, customer-payments, credit-notes, bills, supplier-payments, vendor-credits, payroll-runs, depreciation-runs)
// @Param document_id path int true "Document ID"
// @Success 201 {object} dto.PostDocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or void document"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 409 {object} ErrorResponse "Locked period or insufficient stock"
// @Failure 422 {object} ErrorResponse "Empty document, incomplete configuration or unbalanced journal"
// @Failure 500 {object} ErrorResponse "Storage failure"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/postings/{kind}/{document_id} [post]
func (h *postingHandler) post(docType domain.DocumentType, fn postFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, userID, ok := requestScope(c)
		if !ok {
			return
		}
		documentID, ok := idParam(c, "document_id")
		if !ok {
			return
		}

		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("document_type", string(docType)),
			slog.Int64("document_id", documentID),
		)
		logger.Info("Received request to post document")

		journal, err := fn(c.Request.Context(), tenantID, userID, documentID)
		if err != nil {
			respondError(c, err, "post "+string(docType))
			return
		}

		logger.Info("Document posted", slog.Int64("journal_id", journal.JournalID))
		c.JSON(http.StatusCreated, dto.ToPostDocumentResponse(docType, documentID, journal))
	}
}
