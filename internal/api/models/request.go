package models

// AnalyzeRequest carries a record series inline or points at one to fetch.
// Exactly one of Records and SourceURL must be set.
type AnalyzeRequest struct {
	Records   []map[string]interface{} `json:"records,omitempty"`
	SourceURL string                   `json:"source_url,omitempty"`
	// PeriodsPerYear overrides the server cadence for this request (0 = server default).
	PeriodsPerYear int `json:"periods_per_year,omitempty"`
}

// QueryRequest asks a free-text question about an inline or remote series.
type QueryRequest struct {
	AnalyzeRequest
	Question string `json:"question" binding:"required"`
}

// DatasetParams selects a loaded dataset for GET endpoints.
type DatasetParams struct {
	Dataset string `form:"dataset"` // default: "default"
}

// DatasetQueryParams is a question about a loaded dataset.
type DatasetQueryParams struct {
	DatasetParams
	Q string `form:"q" binding:"required"`
}
