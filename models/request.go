package models

// ReportRequest is the payload for POST /api/v1/report.
type ReportRequest struct {
	// URL is the seed URL the report is generated for. Required.
	// Crawling starts here; the bare domain drives the external search.
	URL string `json:"url" binding:"required"`
}
