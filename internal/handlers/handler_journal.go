package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService  portssvc.JournalQuerySvc
	reversalService portssvc.ReversalSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalQuerySvc, rs portssvc.ReversalSvc) *journalHandler {
	return &journalHandler{
		journalService:  js,
		reversalService: rs,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalQuerySvc, reversalService portssvc.ReversalSvc) {
	h := newJournalHandler(journalService, reversalService)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.GET("/:journal_id", h.getJournal)
		journals.POST("/:journal_id/reverse", h.reverseJournal)
	}
}

// listJournals godoc
// @Summary List journals
// @Description Lists journals newest first, paginated with a continuation token
// @Tags journals
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list journals"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidation(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), tenantID, params)
	if err != nil {
		respondError(c, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves a journal with its lines
// @Tags journals
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param journal_id path int true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Invalid journal ID"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal not found"
// @Failure 500 {object} ErrorResponse "Failed to load journal"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journals/{journal_id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	journalID, ok := idParam(c, "journal_id")
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournal(c.Request.Context(), tenantID, journalID)
	if err != nil {
		respondError(c, err, "get journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// reverseJournal godoc
// @Summary Reverse a journal
// @Description Creates the mirror-image journal of an existing one and links the two
// @Tags journals
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param journal_id path int true "Journal ID"
// @Param reversal body dto.ReverseJournalRequest false "Reason and reversal date"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Journal not found"
// @Failure 409 {object} ErrorResponse "Locked period or already reversed"
// @Failure 500 {object} ErrorResponse "Failed to reverse journal"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journals/{journal_id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}
	journalID, ok := idParam(c, "journal_id")
	if !ok {
		return
	}

	var req dto.ReverseJournalRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.Int64("journal_id", journalID))
	logger.Info("Received request to reverse journal")

	reversal, err := h.reversalService.Reverse(c.Request.Context(), tenantID, userID, journalID, req)
	if err != nil {
		respondError(c, err, "reverse journal")
		return
	}

	logger.Info("Journal reversed", slog.Int64("reversal_id", reversal.JournalID))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(reversal))
}
