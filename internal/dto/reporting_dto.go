package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AsOfParams is the common query for point-in-time reports. AsOf defaults to today.
type AsOfParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// SumAccountsRequest asks for the net debit balance of a set of account codes.
type SumAccountsRequest struct {
	Codes []string `json:"codes" binding:"required,min=1,dive,required"`
	AsOf  string   `json:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

type SumAccountsResponse struct {
	Codes []string        `json:"codes"`
	AsOf  string          `json:"asOf"`
	Total decimal.Decimal `json:"total"`
}
