package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/gl_backoffice/internal/apperrors"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps err to its status and kind. Client errors are logged as warnings.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status < http.StatusInternalServerError {
		logger.Warn("Request refused", slog.String("action", action), slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Error: apperrors.KindOf(err), Message: apperrors.MessageOf(err)})
}

func respondValidation(c *gin.Context, message string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", message))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: message})
}

// requestScope returns the tenant set by TenantScope and the user set by AuthMiddleware.
func requestScope(c *gin.Context) (tenantID, userID string, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Unauthorized"})
		return "", "", false
	}
	tenantID, ok = middleware.GetTenantIDFromContext(c)
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "Tenant ID required in path"})
		return "", "", false
	}
	return tenantID, userID, true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondValidation(c, fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}

// bindOptionalJSON binds a JSON body when one was sent. An empty body leaves obj untouched.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondValidation(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
