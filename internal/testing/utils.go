// Package testing provides workbook fixtures and helpers for testing the search service.
package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gcbaptista/go-sheet-search/model"
	"github.com/gcbaptista/go-sheet-search/services"
)

// SheetSpec describes a sheet fixture: a header row followed by data rows.
type SheetSpec struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// PartsSheets returns a small inventory workbook with an identifier column.
func PartsSheets() []SheetSpec {
	return []SheetSpec{
		{
			Name:    "Parts",
			Columns: []string{"id", "name", "description"},
			Rows: [][]string{
				{"AB007", "Bolt", "steel hex bolt"},
				{"AB107", "Bolt Long", "long steel hex bolt"},
				{"CD007", "Nut", "brass nut for AB007"},
				{"EF200", "Washer", "flat rubber washer"},
			},
		},
		{
			Name:    "Suppliers",
			Columns: []string{"supplier", "city", "notes"},
			Rows: [][]string{
				{"Acme", "Porto", "ships bolts weekly"},
				{"Nutty Co", "Lisbon", "brass nuts and washers"},
			},
		},
		{
			Name:    "Empty",
			Columns: []string{"a"},
		},
	}
}

// NewWorkbook builds an in-memory workbook from sheet specs.
func NewWorkbook(t *testing.T, name string, specs ...SheetSpec) *model.Workbook {
	t.Helper()
	sheets := make([]*model.Sheet, len(specs))
	for i, spec := range specs {
		sheets[i] = model.NewSheet(spec.Name, spec.Columns, spec.Rows)
	}
	wb, err := model.NewWorkbook(name, sheets...)
	require.NoError(t, err, "Failed to build test workbook")
	return wb
}

// PartsWorkbook returns the parts fixture as a workbook.
func PartsWorkbook(t *testing.T) *model.Workbook {
	t.Helper()
	return NewWorkbook(t, "parts.xlsx", PartsSheets()...)
}

// XLSXBytes renders sheet specs as an xlsx file.
func XLSXBytes(t *testing.T, specs ...SheetSpec) []byte {
	t.Helper()
	require.NotEmpty(t, specs, "an xlsx file needs at least one sheet")

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			t.Logf("Failed to close test workbook: %v", err)
		}
	}()

	for i, spec := range specs {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", spec.Name))
		} else {
			_, err := f.NewSheet(spec.Name)
			require.NoError(t, err)
		}
		if len(spec.Columns) > 0 {
			require.NoError(t, f.SetSheetRow(spec.Name, "A1", toRow(spec.Columns)))
		}
		for r, row := range spec.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(spec.Name, cell, toRow(row)))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err, "Failed to write test workbook")
	return buf.Bytes()
}

func toRow(values []string) *[]interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return &row
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJob polls a job until it reaches a terminal status or times out
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			if job.IsTerminal() {
				return job
			}
			if opts.LogProgress && job.Progress != nil {
				t.Logf("Job %s progress: %d/%d - %s",
					jobID, job.Progress.Current, job.Progress.Total, job.Progress.Message)
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedWorkbook string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedWorkbook, job.WorkbookName, "Job workbook name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name           string
	Query          services.SearchQuery
	ExpectedTotal  int
	ExpectedCounts map[string]int
	ValidateFunc   func(t *testing.T, result *services.SearchResult)
}

// RunSearchTests runs a suite of search tests against a loaded session
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := searcher.Search(context.Background(), tt.Query)
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.ExpectedTotal, result.Keyword.Total, "Keyword total should match")
			for sheet, count := range tt.ExpectedCounts {
				assert.Equal(t, count, result.Keyword.Counts[sheet], fmt.Sprintf("Count for sheet %s", sheet))
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &result)
			}
		})
	}
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
