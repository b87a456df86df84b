package engine

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/gcbaptista/go-sheet-search/internal/jobs"
	"github.com/gcbaptista/go-sheet-search/internal/workbook"
	"github.com/gcbaptista/go-sheet-search/model"
)

// LoadAsync parses and loads an xlsx file in the background.
func (s *Session) LoadAsync(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("workbook '%s' is empty", name)
	}

	jobID := s.jobManager.CreateJob(model.JobTypeLoadWorkbook, name, map[string]string{
		"operation": "load_workbook",
		"bytes":     strconv.Itoa(len(data)),
	})

	err := s.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return s.executeLoadJob(ctx, name, data, job.ID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start load workbook job: %w", err)
	}

	return jobID, nil
}

// executeLoadJob executes the load workbook job.
func (s *Session) executeLoadJob(ctx context.Context, name string, data []byte, jobID string) error {
	s.jobManager.UpdateJobProgress(jobID, 0, 2, "Parsing workbook")
	wb, err := workbook.Read(bytes.NewReader(data), name)
	if err != nil {
		s.loadMu.Lock()
		defer s.loadMu.Unlock()
		return s.failLoad(err)
	}

	s.jobManager.UpdateJobProgress(jobID, 1, 2, fmt.Sprintf("Indexing %d sheets", len(wb.Sheets())))
	info, err := s.Load(ctx, wb)
	if err != nil {
		return err
	}

	s.jobManager.UpdateJobProgress(jobID, 2, 2, "Workbook loaded (load "+info.LoadID+")")
	return nil
}

// GetJob retrieves a job by ID
func (s *Session) GetJob(jobID string) (*model.Job, error) {
	return s.jobManager.GetJob(jobID)
}

// ListJobs lists jobs, optionally filtered by status
func (s *Session) ListJobs(status *model.JobStatus) []*model.Job {
	return s.jobManager.ListJobs(status)
}

// WaitForJob blocks until the job finishes or ctx is done.
func (s *Session) WaitForJob(ctx context.Context, jobID string) (*model.Job, error) {
	return s.jobManager.Wait(ctx, jobID)
}

// GetJobMetrics returns job performance metrics
func (s *Session) GetJobMetrics() jobs.MetricsSnapshot {
	return s.jobManager.GetMetrics()
}
