package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type sequenceHandler struct {
	sequenceService portssvc.DocumentSequenceSvc
}

func registerSequenceRoutes(rg *gin.RouterGroup, sequenceService portssvc.DocumentSequenceSvc) {
	h := &sequenceHandler{sequenceService: sequenceService}
	rg.POST("/sequences/:doc_type/issue", h.issueNumber)
}

// issueNumber godoc
// @Summary Issue the next document number
// @Description Increments the counter for the document type and period and returns the formatted number. Numbers are never reused.
// @Tags sequences
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param doc_type path string true "Document type, e.g. invoice"
// @Param options body dto.IssueNumberRequest false "Prefix, padding and period key"
// @Success 200 {object} dto.IssueNumberResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to issue number"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/sequences/{doc_type}/issue [post]
func (h *sequenceHandler) issueNumber(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	docType := c.Param("doc_type")

	var req dto.IssueNumberRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	number, err := h.sequenceService.Issue(c.Request.Context(), tenantID, docType, req)
	if err != nil {
		respondError(c, err, "issue number")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Document number issued",
		slog.String("doc_type", docType), slog.String("number", number))
	c.JSON(http.StatusOK, dto.IssueNumberResponse{DocType: docType, Number: number})
}
