package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-sheet-search/config"
	testutil "github.com/gcbaptista/go-sheet-search/internal/testing"
	"github.com/gcbaptista/go-sheet-search/model"
)

func TestSession_LoadAsync(t *testing.T) {
	session := newTestSession(t, config.DefaultSearchSettings())

	data := testutil.XLSXBytes(t, testutil.PartsSheets()...)
	jobID, err := session.LoadAsync("parts.xlsx", data)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	job, err := session.GetJob(jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobTypeLoadWorkbook, job.Type)

	job = testutil.WaitForJob(t, session, jobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeLoadWorkbook, "parts.xlsx")
	require.NotNil(t, job.Progress)
	assert.Equal(t, 100.0, job.Progress.GetProgressPercentage())

	assert.True(t, session.Loaded())
	sheets, err := session.Sheets()
	require.NoError(t, err)
	assert.Len(t, sheets, 3)

	metrics := session.GetJobMetrics()
	assert.Equal(t, int64(1), metrics.JobsCreated)
	assert.Equal(t, int64(1), metrics.JobsCompleted)

	completed := model.JobStatusCompleted
	assert.Len(t, session.ListJobs(&completed), 1)
}

func TestSession_LoadAsyncFailure(t *testing.T) {
	session := loadedSession(t)

	jobID, err := session.LoadAsync("broken.xlsx", []byte("not a workbook"))
	require.NoError(t, err)

	job := testutil.WaitForJob(t, session, jobID, testutil.DefaultJobPollingOptions())
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "broken.xlsx")
	assert.False(t, session.Loaded(), "a failed load leaves no workbook loaded")
}

func TestSession_LoadAsyncEmptyUpload(t *testing.T) {
	session := newTestSession(t, config.DefaultSearchSettings())

	_, err := session.LoadAsync("empty.xlsx", nil)
	assert.Error(t, err)
	assert.Empty(t, session.ListJobs(nil))
}
