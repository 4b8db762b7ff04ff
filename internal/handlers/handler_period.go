package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles lock date queries and period locking.
type periodHandler struct {
	periodService portssvc.PeriodSvc
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvc) {
	h := &periodHandler{periodService: periodService}

	periods := rg.Group("/periods")
	{
		periods.GET("/locked", h.isLocked)
		periods.GET("/locks", h.listLocks)
		periods.POST("/locks", h.lockPeriod)
	}
}

// isLocked godoc
// @Summary Check whether a date is locked
// @Tags periods
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.IsLockedResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to read lock date"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods/locked [get]
func (h *periodHandler) isLocked(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.IsLockedParams
	if err := c.ShouldBindQuery(&params); err != nil || params.Date.IsZero() {
		respondValidation(c, "date is required in YYYY-MM-DD format")
		return
	}

	locked, err := h.periodService.IsLocked(c.Request.Context(), tenantID, params.Date)
	if err != nil {
		respondError(c, err, "check period lock")
		return
	}
	c.JSON(http.StatusOK, dto.IsLockedResponse{Date: params.Date.Format(time.DateOnly), Locked: locked})
}

// listLocks godoc
// @Summary List period locks
// @Tags periods
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {array} dto.PeriodLockResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list locks"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods/locks [get]
func (h *periodHandler) listLocks(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	locks, err := h.periodService.ListLocks(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "list period locks")
		return
	}

	resp := make([]dto.PeriodLockResponse, len(locks))
	for i, l := range locks {
		resp[i] = dto.ToPeriodLockResponse(l)
	}
	c.JSON(http.StatusOK, resp)
}

// lockPeriod godoc
// @Summary Lock a period
// @Description Locks every date on or before lockDate. Lock dates only move forward.
// @Tags periods
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param lock body dto.LockPeriodRequest true "Lock date and reason"
// @Success 201 {object} dto.PeriodLockResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to lock period"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/periods/locks [post]
func (h *periodHandler) lockPeriod(c *gin.Context) {
	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.LockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body: "+err.Error())
		return
	}

	lock, err := h.periodService.LockPeriod(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "lock period")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Period locked",
		slog.Int64("lock_id", lock.LockID), slog.String("lock_date", req.LockDate))
	c.JSON(http.StatusCreated, dto.ToPeriodLockResponse(*lock))
}
