package api

import (
	"mime/multipart"
	"testing"

	"github.com/gcbaptista/go-sheet-search/model"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       *SearchRequest
		wantValid bool
	}{
		{name: "plain query", req: &SearchRequest{Query: "bolt"}, wantValid: true},
		{name: "identifier query", req: &SearchRequest{Query: "AB007"}, wantValid: true},
		{name: "padded query", req: &SearchRequest{Query: "  bolt  "}, wantValid: true},
		{name: "empty query", req: &SearchRequest{Query: ""}, wantValid: false},
		{name: "whitespace query", req: &SearchRequest{Query: " \t "}, wantValid: false},
		{name: "nil request", req: nil, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSearchRequest(tt.req)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("Expected valid=%v, got errors %v", tt.wantValid, result.Errors)
			}
		})
	}
}

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name      string
		header    *multipart.FileHeader
		wantValid bool
	}{
		{name: "xlsx", header: &multipart.FileHeader{Filename: "parts.xlsx", Size: 10}, wantValid: true},
		{name: "uppercase extension", header: &multipart.FileHeader{Filename: "PARTS.XLSX", Size: 10}, wantValid: true},
		{name: "macro workbook", header: &multipart.FileHeader{Filename: "parts.xlsm", Size: 10}, wantValid: true},
		{name: "csv", header: &multipart.FileHeader{Filename: "parts.csv", Size: 10}, wantValid: false},
		{name: "no extension", header: &multipart.FileHeader{Filename: "parts", Size: 10}, wantValid: false},
		{name: "empty file", header: &multipart.FileHeader{Filename: "parts.xlsx", Size: 0}, wantValid: false},
		{name: "missing", header: nil, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateUpload(tt.header)
			if result.HasErrors() == tt.wantValid {
				t.Errorf("Expected valid=%v, got errors %v", tt.wantValid, result.Errors)
			}
		})
	}
}

func TestValidateJobID(t *testing.T) {
	if ValidateJobID("abc").HasErrors() {
		t.Error("Expected job ID 'abc' to be valid")
	}
	if !ValidateJobID("").HasErrors() {
		t.Error("Expected empty job ID to be invalid")
	}
	if !ValidateJobID(" abc").HasErrors() {
		t.Error("Expected padded job ID to be invalid")
	}
}

func TestValidateJobStatus(t *testing.T) {
	status, result := ValidateJobStatus("")
	if status != nil || result.HasErrors() {
		t.Errorf("Expected no filter for empty status, got %v %v", status, result.Errors)
	}

	status, result = ValidateJobStatus("completed")
	if result.HasErrors() || status == nil || *status != model.JobStatusCompleted {
		t.Errorf("Expected completed filter, got %v %v", status, result.Errors)
	}

	status, result = ValidateJobStatus("done")
	if !result.HasErrors() || status != nil {
		t.Errorf("Expected unknown status to be rejected, got %v", status)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		512:      "512 B",
		1024:     "1.0 KiB",
		64 << 20: "64.0 MiB",
	}
	for n, want := range tests {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}
