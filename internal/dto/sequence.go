package dto

// IssueNumberRequest configures one document number issue. Prefix may contain the
// {YYYY}, {YY}, {MM} and {PERIOD} placeholders, expanded from PeriodKey (YYYYMM).
type IssueNumberRequest struct {
	Prefix    string `json:"prefix" binding:"omitempty,max=32"`
	Pad       int    `json:"pad" binding:"omitempty,min=1,max=12"`
	PeriodKey string `json:"periodKey" binding:"omitempty,periodkey"`
}

type IssueNumberResponse struct {
	DocType string `json:"docType"`
	Number  string `json:"number"`
}

type SequenceGapsParams struct {
	DocType   string `form:"docType" binding:"required"`
	PeriodKey string `form:"periodKey" binding:"omitempty,periodkey"`
}
