package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler exposes account setting resolution.
type accountHandler struct {
	accountsMap portssvc.AccountsMapSvc
}

func registerAccountRoutes(rg *gin.RouterGroup, accountsMap portssvc.AccountsMapSvc) {
	h := &accountHandler{accountsMap: accountsMap}
	rg.GET("/accounts/resolve", h.resolveAccount)
}

// resolveAccount godoc
// @Summary Resolve an account setting
// @Description Resolves a tenant setting to an account code. Without a default, the configured default for the setting is used.
// @Tags accounts
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param setting query string true "Setting key, e.g. accounts_receivable_account"
// @Param default query string false "Fallback account code"
// @Success 200 {object} dto.ResolveAccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to resolve setting"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/accounts/resolve [get]
func (h *accountHandler) resolveAccount(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ResolveAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondValidation(c, "setting is required")
		return
	}

	var code string
	var err error
	if params.Default == "" {
		code, err = h.accountsMap.ResolveSetting(c.Request.Context(), tenantID, params.Setting)
	} else {
		code, err = h.accountsMap.Resolve(c.Request.Context(), tenantID, params.Setting, params.Default)
	}
	if err != nil {
		respondError(c, err, "resolve account setting")
		return
	}
	c.JSON(http.StatusOK, dto.ResolveAccountResponse{Setting: params.Setting, Code: code})
}
