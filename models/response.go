package models

// ReportResponse is the JSON body returned in preview mode.
type ReportResponse struct {
	Success  bool         `json:"success"`
	Markdown string       `json:"markdown,omitempty"`
	Sources  []string     `json:"sources,omitempty"`
	Error    *ErrorDetail `json:"error,omitempty"`
}

// ReportResult is the terminal pipeline artifact: the synthesized markdown
// body plus the deduplicated set of source hostnames, in first-seen order.
type ReportResult struct {
	Markdown string
	Sources  []string
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
