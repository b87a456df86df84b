// Package api provides the HTTP interface of the sheet search service.
package api

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-sheet-search/model"
)

// supportedExtensions lists the spreadsheet formats the loader can parse.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchRequest validates a search request body
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request_body", "Search request is required")
		return result
	}

	if strings.TrimSpace(req.Query) == "" {
		result.AddError("query", "Query is required and cannot be empty or whitespace-only")
	}

	return result
}

// ValidateUpload validates an uploaded workbook file
func ValidateUpload(header *multipart.FileHeader) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if header == nil {
		result.AddError("file", "A workbook file is required")
		return result
	}

	if header.Size == 0 {
		result.AddError("file", "Uploaded file is empty")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !supportedExtensions[ext] {
		result.AddError("file", "Unsupported file type '"+ext+"'; expected an Excel workbook (.xlsx, .xlsm, .xltx, .xltm)")
	}

	return result
}

// ValidateJobID validates a job ID path parameter
func ValidateJobID(jobID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if jobID == "" {
		result.AddError("jobId", "Job ID is required")
		return result
	}

	if strings.TrimSpace(jobID) != jobID {
		result.AddError("jobId", "Job ID cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateJobStatus validates an optional job status filter
func ValidateJobStatus(status string) (*model.JobStatus, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	if status == "" {
		return nil, result
	}

	s := model.JobStatus(status)
	switch s {
	case model.JobStatusPending, model.JobStatusRunning, model.JobStatusCompleted,
		model.JobStatusFailed, model.JobStatusCancelled:
		return &s, result
	default:
		result.AddError("status", "Unknown job status '"+status+"'")
		return nil, result
	}
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
