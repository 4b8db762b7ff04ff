package dto

// ResolveAccountParams names a setting and the code to fall back to when it is empty.
type ResolveAccountParams struct {
	Setting string `form:"setting" binding:"required"`
	Default string `form:"default"`
}

type ResolveAccountResponse struct {
	Setting string `json:"setting"`
	Code    string `json:"code"`
}
