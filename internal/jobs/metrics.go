package jobs

import (
	"sync"
	"time"

	"github.com/gcbaptista/go-sheet-search/model"
)

// maxSamplesPerType bounds the execution times kept per job type.
const maxSamplesPerType = 100

// MetricsSnapshot is a point-in-time copy of job metrics.
type MetricsSnapshot struct {
	JobsCreated          int64                     `json:"jobs_created"`
	JobsCompleted        int64                     `json:"jobs_completed"`
	JobsFailed           int64                     `json:"jobs_failed"`
	AverageExecutionTime time.Duration             `json:"average_execution_time_ns"`
	SuccessRate          float64                   `json:"success_rate"`
	ActiveJobs           int64                     `json:"active_jobs"`
	JobsByType           map[model.JobType]int64   `json:"jobs_by_type"`
	JobsByStatus         map[model.JobStatus]int64 `json:"jobs_by_status"`
	LastUpdated          time.Time                 `json:"last_updated"`
}

// Metrics tracks job counters and execution times.
type Metrics struct {
	mu             sync.RWMutex
	created        int64
	completed      int64
	failed         int64
	totalExecution time.Duration
	byType         map[model.JobType]int64
	byStatus       map[model.JobStatus]int64
	samples        map[model.JobType][]time.Duration
	lastUpdated    time.Time
}

// NewMetrics creates an empty metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		byType:      make(map[model.JobType]int64),
		byStatus:    make(map[model.JobStatus]int64),
		samples:     make(map[model.JobType][]time.Duration),
		lastUpdated: time.Now(),
	}
}

// RecordCreated counts a new pending job.
func (m *Metrics) RecordCreated(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created++
	m.byType[jobType]++
	m.byStatus[model.JobStatusPending]++
	m.lastUpdated = time.Now()
}

// RecordStatusChange moves one job between status counters.
func (m *Metrics) RecordStatusChange(oldStatus, newStatus model.JobStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" && m.byStatus[oldStatus] > 0 {
		m.byStatus[oldStatus]--
	}
	m.byStatus[newStatus]++
	m.lastUpdated = time.Now()
}

// RecordCompleted records a successful job and its duration.
func (m *Metrics) RecordCompleted(jobType model.JobType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.completed++
	m.totalExecution += executionTime

	samples := append(m.samples[jobType], executionTime)
	if len(samples) > maxSamplesPerType {
		samples = samples[1:]
	}
	m.samples[jobType] = samples
	m.lastUpdated = time.Now()
}

// RecordFailed records a failed job.
func (m *Metrics) RecordFailed(jobType model.JobType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failed++
	m.lastUpdated = time.Now()
}

// AverageExecutionTime returns the mean duration of recent jobs of a type.
func (m *Metrics) AverageExecutionTime(jobType model.JobType) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	samples := m.samples[jobType]
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

// Snapshot copies the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		JobsCreated:   m.created,
		JobsCompleted: m.completed,
		JobsFailed:    m.failed,
		SuccessRate:   1.0,
		ActiveJobs:    m.byStatus[model.JobStatusPending] + m.byStatus[model.JobStatusRunning],
		JobsByType:    make(map[model.JobType]int64, len(m.byType)),
		JobsByStatus:  make(map[model.JobStatus]int64, len(m.byStatus)),
		LastUpdated:   m.lastUpdated,
	}
	if m.completed > 0 {
		snapshot.AverageExecutionTime = m.totalExecution / time.Duration(m.completed)
	}
	if finished := m.completed + m.failed; finished > 0 {
		snapshot.SuccessRate = float64(m.completed) / float64(finished)
	}
	for k, v := range m.byType {
		snapshot.JobsByType[k] = v
	}
	for k, v := range m.byStatus {
		snapshot.JobsByStatus[k] = v
	}
	return snapshot
}
