// Package jobs runs workbook loads in the background and tracks their status.
package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-sheet-search/internal/errors"
	"github.com/gcbaptista/go-sheet-search/model"
)

// Func is the body of a job. ctx is cancelled when the manager stops.
type Func func(ctx context.Context, job *model.Job) error

// Manager handles background job execution and tracking
type Manager struct {
	mu      sync.RWMutex
	jobs    map[string]*model.Job
	done    map[string]chan struct{} // closed when the job reaches a terminal status
	workers chan struct{}            // Limits concurrent jobs
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	metrics *Metrics
}

// NewManager creates a new job manager with specified worker count
func NewManager(maxWorkers int) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		jobs:    make(map[string]*model.Job),
		done:    make(map[string]chan struct{}),
		workers: make(chan struct{}, maxWorkers),
		ctx:     ctx,
		cancel:  cancel,
		metrics: NewMetrics(),
	}
}

// Start begins the job manager and starts background cleanup
func (m *Manager) Start() {
	log.Printf("Job manager started with %d max workers", cap(m.workers))
	go m.cleanupRoutine()
}

// Stop cancels running jobs and waits for them to return
func (m *Manager) Stop() {
	m.cancel()
	m.wg.Wait()
	log.Printf("Job manager stopped")
}

// CreateJob registers a pending job and returns its ID
func (m *Manager) CreateJob(jobType model.JobType, workbookName string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &model.Job{
		ID:           uuid.New().String(),
		Type:         jobType,
		Status:       model.JobStatusPending,
		WorkbookName: workbookName,
		CreatedAt:    time.Now(),
		Metadata:     metadata,
	}

	m.jobs[job.ID] = job
	m.done[job.ID] = make(chan struct{})
	m.metrics.RecordCreated(jobType)
	log.Printf("Created job %s (type: %s) for workbook '%s'", job.ID, job.Type, job.WorkbookName)
	return job.ID
}

// GetJob returns a copy of the job
func (m *Manager) GetJob(jobID string) (*model.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}
	return copyJob(job), nil
}

// ListJobs returns all jobs, newest first, optionally filtered by status
func (m *Manager) ListJobs(status *model.JobStatus) []*model.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*model.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if status == nil || job.Status == *status {
			result = append(result, copyJob(job))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// ExecuteJob runs a pending job in a goroutine once a worker slot is free
func (m *Manager) ExecuteJob(jobID string, fn Func) error {
	m.mu.Lock()
	job, exists := m.jobs[jobID]
	if !exists {
		m.mu.Unlock()
		return errors.NewJobNotFoundError(jobID)
	}
	if job.Status != model.JobStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("job with ID '%s' is not in pending status (current: %s)", jobID, job.Status)
	}
	m.metrics.RecordStatusChange(job.Status, model.JobStatusRunning)
	job.Status = model.JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	running := copyJob(job)
	m.mu.Unlock()

	if m.ctx.Err() != nil {
		m.finish(jobID, model.JobStatusCancelled, "job manager is shutting down", 0)
		return fmt.Errorf("job manager is shutting down")
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
		case <-m.ctx.Done():
			m.finish(jobID, model.JobStatusCancelled, "job manager is shutting down", 0)
			return
		}
		defer func() { <-m.workers }()

		startTime := time.Now()

		err := fn(m.ctx, running)
		executionTime := time.Since(startTime)

		switch {
		case err != nil && m.ctx.Err() != nil:
			m.finish(jobID, model.JobStatusCancelled, err.Error(), executionTime)
			log.Printf("Job %s cancelled after %v: %v", jobID, executionTime, err)
		case err != nil:
			m.finish(jobID, model.JobStatusFailed, err.Error(), executionTime)
			log.Printf("Job %s failed after %v: %v", jobID, executionTime, err)
		default:
			m.finish(jobID, model.JobStatusCompleted, "", executionTime)
			log.Printf("Job %s completed successfully in %v", jobID, executionTime)
		}
	}()

	return nil
}

// Wait blocks until the job finishes or ctx is done, then returns the job.
func (m *Manager) Wait(ctx context.Context, jobID string) (*model.Job, error) {
	m.mu.RLock()
	done, exists := m.done[jobID]
	m.mu.RUnlock()
	if !exists {
		return nil, errors.NewJobNotFoundError(jobID)
	}

	select {
	case <-done:
		return m.GetJob(jobID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// UpdateJobProgress updates the progress of a running job
func (m *Manager) UpdateJobProgress(jobID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists {
		return
	}
	if job.Progress == nil {
		job.Progress = &model.JobProgress{}
	}
	job.Progress.Current = current
	job.Progress.Total = total
	job.Progress.Message = message
}

// finish moves a job to a terminal status exactly once.
func (m *Manager) finish(jobID string, status model.JobStatus, errorMsg string, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[jobID]
	if !exists || job.IsTerminal() {
		return
	}

	m.metrics.RecordStatusChange(job.Status, status)
	job.Status = status
	job.Error = errorMsg
	now := time.Now()
	job.CompletedAt = &now

	switch status {
	case model.JobStatusCompleted:
		m.metrics.RecordCompleted(job.Type, executionTime)
	case model.JobStatusFailed:
		m.metrics.RecordFailed(job.Type)
	}
	close(m.done[jobID])
}

// cleanupRoutine periodically drops finished jobs
func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOldJobs(24 * time.Hour)
		case <-m.ctx.Done():
			return
		}
	}
}

// CleanupOldJobs removes finished jobs older than maxAge
func (m *Manager) CleanupOldJobs(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for jobID, job := range m.jobs {
		if job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(m.jobs, jobID)
			delete(m.done, jobID)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d old jobs", cleaned)
	}
}

// GetMetrics returns a snapshot of job metrics
func (m *Manager) GetMetrics() MetricsSnapshot {
	return m.metrics.Snapshot()
}

func copyJob(job *model.Job) *model.Job {
	jobCopy := *job
	if job.Progress != nil {
		progressCopy := *job.Progress
		jobCopy.Progress = &progressCopy
	}
	return &jobCopy
}
