package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrNotLoaded is returned when a search runs before any workbook is loaded
	ErrNotLoaded = errors.New("no workbook loaded")

	// ErrInvalidQuery is returned when a query is empty or whitespace-only
	ErrInvalidQuery = errors.New("invalid query")

	// ErrWorkbookLoad is returned when a workbook cannot be parsed or indexed
	ErrWorkbookLoad = errors.New("workbook load failed")

	// ErrEmptyWorkbook is returned when a workbook has no sheets
	ErrEmptyWorkbook = errors.New("workbook has no sheets")

	// ErrSheetNotFound is returned when a sheet is not found
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotLoadedError represents a search attempted without a loaded workbook
type NotLoadedError struct {
	Operation string
}

func (e *NotLoadedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("cannot run %s: no workbook loaded", e.Operation)
	}
	return "no workbook loaded"
}

func (e *NotLoadedError) Is(target error) bool {
	return target == ErrNotLoaded
}

// NewNotLoadedError creates a new NotLoadedError
func NewNotLoadedError(operation string) *NotLoadedError {
	return &NotLoadedError{Operation: operation}
}

// InvalidQueryError represents a rejected query string with context
type InvalidQueryError struct {
	Query  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query '%s': %s", e.Query, e.Reason)
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewInvalidQueryError creates a new InvalidQueryError
func NewInvalidQueryError(query, reason string) *InvalidQueryError {
	return &InvalidQueryError{Query: query, Reason: reason}
}

// WorkbookLoadError wraps the cause of a failed workbook load
type WorkbookLoadError struct {
	WorkbookName string
	Err          error
}

func (e *WorkbookLoadError) Error() string {
	if e.WorkbookName != "" {
		return fmt.Sprintf("failed to load workbook '%s': %v", e.WorkbookName, e.Err)
	}
	return fmt.Sprintf("failed to load workbook: %v", e.Err)
}

func (e *WorkbookLoadError) Is(target error) bool {
	return target == ErrWorkbookLoad
}

func (e *WorkbookLoadError) Unwrap() error {
	return e.Err
}

// NewWorkbookLoadError creates a new WorkbookLoadError
func NewWorkbookLoadError(workbookName string, err error) *WorkbookLoadError {
	return &WorkbookLoadError{WorkbookName: workbookName, Err: err}
}

// SheetNotFoundError represents a sheet not found error with context
type SheetNotFoundError struct {
	SheetName string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet named '%s' not found", e.SheetName)
}

func (e *SheetNotFoundError) Is(target error) bool {
	return target == ErrSheetNotFound
}

// NewSheetNotFoundError creates a new SheetNotFoundError
func NewSheetNotFoundError(sheetName string) *SheetNotFoundError {
	return &SheetNotFoundError{SheetName: sheetName}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
