package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// reportRequest mirrors the sitebrief API request model.
type reportRequest struct {
	URL string `json:"url"`
}

// reportResponse mirrors the sitebrief API preview response model.
type reportResponse struct {
	Success  bool     `json:"success"`
	Markdown string   `json:"markdown"`
	Sources  []string `json:"sources"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("SITEBRIEF_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("SITEBRIEF_API_KEY")

	s := server.NewMCPServer(
		"sitebrief",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	generateReportTool := mcp.NewTool("generate_report",
		mcp.WithDescription("Generate a structured analytical report about a website. Crawls the site, gathers external search context, and synthesizes a Markdown report with sources."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The seed URL of the website to report on"),
		),
	)

	s.AddTool(generateReportTool, handleGenerateReport(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleGenerateReport(apiURL, apiKey string) server.ToolHandlerFunc {
	// Report generation covers a crawl plus an LLM call; allow plenty of time.
	client := &http.Client{Timeout: 300 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		body, err := json.Marshal(reportRequest{URL: url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		// preview=true returns the markdown directly instead of a PDF.
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			apiURL+"/api/v1/report?preview=true", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var reportResp reportResponse
		if err := json.Unmarshal(respBody, &reportResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !reportResp.Success {
			errMsg := "report generation failed"
			if reportResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", reportResp.Error.Code, reportResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(reportResp.Markdown), nil
	}
}
