package domain

// SequenceKey scopes a document number counter.
type SequenceKey struct {
	TenantID  string
	DocType   string
	PeriodKey string
}

// SequenceCounter is the persisted state of a document number sequence.
type SequenceCounter struct {
	SequenceKey
	Prefix    string `json:"prefix"`
	Pad       int    `json:"pad"`
	LastValue int64  `json:"lastValue"`
}

// SequenceGapReport lists numbers the counter issued that no saved document carries.
type SequenceGapReport struct {
	DocType    string   `json:"docType"`
	PeriodKey  string   `json:"periodKey"`
	LastIssued int64    `json:"lastIssued"`
	Missing    []string `json:"missing"`
}
