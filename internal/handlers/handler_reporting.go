package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reconciler portssvc.ReconcilerSvc
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReconcilerSvc) *reportingHandler {
	return &reportingHandler{
		reconciler: rs,
	}
}

// registerReportingRoutes registers report and reconciliation routes
func registerReportingRoutes(rg *gin.RouterGroup, reconciler portssvc.ReconcilerSvc) {
	h := newReportingHandler(reconciler)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.POST("/sum-accounts", h.sumAccounts)
	}

	reconciliationGroup := rg.Group("/reconciliation")
	{
		reconciliationGroup.GET("/tie-out", h.getTieOut)
		reconciliationGroup.GET("/sequence-gaps", h.getSequenceGaps)
	}
}

// asOfDate reads the optional asOf query parameter, defaulting to today.
func asOfDate(c *gin.Context) (time.Time, bool) {
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidation(c, "Invalid date format. Use YYYY-MM-DD")
		return time.Time{}, false
	}
	if params.AsOf == nil || params.AsOf.IsZero() {
		return domain.DateOnly(time.Now()), true
	}
	return domain.DateOnly(*params.AsOf), true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.TrialBalance
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	asOf, ok := asOfDate(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("asOf", asOf.Format(time.DateOnly)))
	logger.Info("Received request to generate trial balance report")

	tb, err := h.reconciler.TrialBalance(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondError(c, err, "generate trial balance")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(tb.Rows)), slog.Bool("balanced", tb.Balanced))
	c.JSON(http.StatusOK, tb)
}

// sumAccounts godoc
// @Summary Sum account balances
// @Description Returns the combined debit-positive balance of the given account codes
// @Tags reports
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param request body dto.SumAccountsRequest true "Account codes and optional date"
// @Success 200 {object} dto.SumAccountsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to sum accounts"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/sum-accounts [post]
func (h *reportingHandler) sumAccounts(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.SumAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body: "+err.Error())
		return
	}
	asOf := domain.DateOnly(time.Now())
	if req.AsOf != "" {
		parsed, err := time.Parse(time.DateOnly, req.AsOf)
		if err != nil {
			respondValidation(c, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	total, err := h.reconciler.SumAccounts(c.Request.Context(), tenantID, req.Codes, asOf)
	if err != nil {
		respondError(c, err, "sum accounts")
		return
	}
	c.JSON(http.StatusOK, dto.SumAccountsResponse{Codes: req.Codes, AsOf: asOf.Format(time.DateOnly), Total: total})
}

// getTieOut godoc
// @Summary Tie out control accounts
// @Description Compares the AR and AP control account balances with the open document totals
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {array} domain.TieOutResult
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 422 {object} ErrorResponse "Control accounts not configured"
// @Failure 500 {object} ErrorResponse "Failed to reconcile"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliation/tie-out [get]
func (h *reportingHandler) getTieOut(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	asOf, ok := asOfDate(c)
	if !ok {
		return
	}

	results, err := h.reconciler.TieOut(c.Request.Context(), tenantID, asOf)
	if err != nil {
		respondError(c, err, "tie out")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	for _, r := range results {
		if !r.WithinTolerance {
			logger.Warn("Control account does not tie out",
				slog.String("ledger", string(r.Ledger)),
				slog.String("difference", r.Difference.StringFixed(2)))
		}
	}
	c.JSON(http.StatusOK, results)
}

// getSequenceGaps godoc
// @Summary Report document number gaps
// @Description Lists numbers the counter issued that no saved document carries
// @Tags reconciliation
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param docType query string true "Document type"
// @Param periodKey query string false "Period key (YYYYMM)"
// @Success 200 {object} domain.SequenceGapReport
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reconciliation/sequence-gaps [get]
func (h *reportingHandler) getSequenceGaps(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.SequenceGapsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidation(c, "Invalid query parameters: "+err.Error())
		return
	}

	report, err := h.reconciler.SequenceGaps(c.Request.Context(), tenantID, params.DocType, params.PeriodKey)
	if err != nil {
		respondError(c, err, "sequence gaps")
		return
	}
	c.JSON(http.StatusOK, report)
}
