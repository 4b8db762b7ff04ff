package dto

import (
	"time"

	"github.com/SscSPs/gl_backoffice/internal/core/domain"
)

// LockPeriodRequest locks every date on or before LockDate (YYYY-MM-DD).
type LockPeriodRequest struct {
	LockDate string `json:"lockDate" binding:"required,datetime=2006-01-02"`
	Reason   string `json:"reason" binding:"required,max=500"`
}

type PeriodLockResponse struct {
	LockID    int64     `json:"lockID"`
	LockDate  string    `json:"lockDate"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

func ToPeriodLockResponse(l domain.PeriodLock) PeriodLockResponse {
	return PeriodLockResponse{
		LockID:    l.LockID,
		LockDate:  l.LockDate.Format(time.DateOnly),
		Reason:    l.Reason,
		CreatedAt: l.CreatedAt,
		CreatedBy: l.CreatedBy,
	}
}

type IsLockedParams struct {
	Date time.Time `form:"date" binding:"required" time_format:"2006-01-02"`
}

type IsLockedResponse struct {
	Date   string `json:"date"`
	Locked bool   `json:"locked"`
}
