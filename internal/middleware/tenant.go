package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantScope validates the :tenant_id route parameter and adds it to the request
// context and logger. Every ledger query downstream is qualified by this id.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		tenantID := c.Param("tenant_id")
		if _, err := uuid.Parse(tenantID); err != nil {
			logger.Warn("Invalid tenant id in path", slog.String("tenant_id", tenantID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "Invalid tenant id"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = WithLogger(ctx, logger.With(slog.String("tenant_id", tenantID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
