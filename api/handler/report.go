package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitebrief/cache"
	"github.com/use-agent/sitebrief/models"
	"github.com/use-agent/sitebrief/report"
)

// Report returns a handler for POST /api/v1/report.
//
// Orchestration flow:
//  1. Parse & validate request.
//  2. Cache lookup by seed URL; on miss, Pipeline.Generate and store.
//  3. ?preview=true → 200 JSON {markdown, sources}.
//     Otherwise      → render PDF, 200 application/pdf attachment.
//
// Client-attributable failures (bad URL, content over the hard ceiling) map
// to 400; everything else is a 500 with the detail logged, not leaked.
// cc may be nil to disable caching.
func Report(p *report.Pipeline, r report.Renderer, cc *cache.Cache, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ReportResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		var result *models.ReportResult
		cacheKey := cache.Key(req.URL)
		if cc != nil {
			if cached, hit := cc.Get(cacheKey); hit {
				logger.Info("report served from cache", "url", req.URL)
				result = cached
			}
		}

		if result == nil {
			var err error
			result, err = p.Generate(c.Request.Context(), req.URL)
			if err != nil {
				respondError(c, err, logger)
				return
			}
			if cc != nil {
				cc.Set(cacheKey, result)
			}
		}

		preview, _ := strconv.ParseBool(c.Query("preview"))
		if preview {
			c.JSON(http.StatusOK, models.ReportResponse{
				Success:  true,
				Markdown: result.Markdown,
				Sources:  result.Sources,
			})
			return
		}

		pdfBytes, err := r.Render(result.Markdown)
		if err != nil {
			respondError(c, err, logger)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="report.pdf"`)
		c.Header("Content-Length", fmt.Sprintf("%d", len(pdfBytes)))
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}

// respondError maps a ReportError to the correct HTTP status code and writes
// a structured JSON error response. Server-side detail goes to the log only.
func respondError(c *gin.Context, err error, logger *slog.Logger) {
	reportErr, ok := err.(*models.ReportError)
	if !ok {
		reportErr = models.NewReportError(models.ErrCodeInternal, "internal error", err)
	}

	status := http.StatusInternalServerError
	if reportErr.IsClientError() {
		status = http.StatusBadRequest
	} else {
		logger.Error("report generation failed",
			"code", reportErr.Code, "error", err.Error())
	}

	c.JSON(status, models.ReportResponse{
		Success: false,
		Error:   reportErr.ToDetail(),
	})
}
