package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeContentTooLarge = "CONTENT_TOO_LARGE"
	ErrCodeSearchFailure   = "SEARCH_FAILURE"
	ErrCodeRenderFailure   = "RENDER_FAILURE"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"

	// LLM-related error codes for the synthesizer call.
	ErrCodeLLMFailure     = "LLM_FAILURE"
	ErrCodeLLMAuthFailure = "LLM_AUTH_FAILURE"
	ErrCodeLLMRateLimited = "LLM_RATE_LIMITED"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ReportError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ReportError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError.
func NewReportError(code, message string, err error) *ReportError {
	return &ReportError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ReportError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// IsClientError reports whether the code maps to a 4xx response.
func (e *ReportError) IsClientError() bool {
	switch e.Code {
	case ErrCodeInvalidInput, ErrCodeContentTooLarge:
		return true
	}
	return false
}
