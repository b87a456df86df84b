package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-sheet-search/internal/analytics"
	"github.com/gcbaptista/go-sheet-search/services"
)

// API holds dependencies for API handlers, primarily the search session.
type API struct {
	session        services.SessionManager
	analytics      *analytics.Service
	maxUploadBytes int64
}

// NewAPI creates a new API handler structure.
func NewAPI(session services.SessionManager, maxUploadBytes int64) *API {
	return &API{
		session:        session,
		analytics:      analytics.NewService(session),
		maxUploadBytes: maxUploadBytes,
	}
}

// SetupRoutes defines all the API routes for the sheet search service.
func SetupRoutes(router *gin.Engine, session services.SessionManager, maxUploadBytes int64) {
	apiHandler := NewAPI(session, maxUploadBytes)

	router.Use(RequestIDMiddleware(), CORSMiddleware())

	// Health check route
	router.GET("/healthz", apiHandler.HealthCheckHandler)

	// Analytics route
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Workbook routes
	loadRoutes := router.Group("/load", RequestSizeLimitMiddleware(maxUploadBytes))
	{
		loadRoutes.POST("", apiHandler.LoadHandler)            // Load a workbook and wait for indexing
		loadRoutes.POST("/async", apiHandler.LoadAsyncHandler) // Load a workbook in the background
	}
	router.GET("/sheets", apiHandler.ListSheetsHandler)

	// Search route
	router.POST("/search", apiHandler.SearchHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)               // List jobs, optionally by status
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"service":   "go-sheet-search",
		"loaded":    api.session.Loaded(),
		"timestamp": time.Now().Unix(),
	})
}

// GetAnalyticsHandler returns the search analytics dashboard
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}

// LoadHandler replaces the loaded workbook with the uploaded one.
// Request Body: multipart form with a "file" field
func (api *API) LoadHandler(c *gin.Context) {
	name, data, ok := api.readUpload(c)
	if !ok {
		return
	}

	info, err := api.session.LoadBytes(c.Request.Context(), name, data)
	if err != nil {
		SendSessionError(c, "load", err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// LoadAsyncHandler starts a background load of the uploaded workbook.
// Request Body: multipart form with a "file" field
func (api *API) LoadAsyncHandler(c *gin.Context) {
	name, data, ok := api.readUpload(c)
	if !ok {
		return
	}

	jobID, err := api.session.LoadAsync(name, data)
	if err != nil {
		SendJobExecutionError(c, "load workbook", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Workbook load started for '" + name + "'",
		"job_id":  jobID,
	})
}

// ListSheetsHandler describes the sheets of the loaded workbook
func (api *API) ListSheetsHandler(c *gin.Context) {
	sheets, err := api.session.Sheets()
	if err != nil {
		SendSessionError(c, "list sheets", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sheets": sheets,
		"total":  len(sheets),
	})
}

// readUpload reads the multipart "file" field. It writes an error response and
// returns false when the upload is missing, invalid or too large.
func (api *API) readUpload(c *gin.Context) (string, []byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			SendPayloadTooLargeError(c, api.maxUploadBytes)
			return "", nil, false
		}
		result := &ValidationResult{Valid: true}
		result.AddError("file", "A multipart 'file' field is required: "+err.Error())
		SendValidationError(c, result)
		return "", nil, false
	}

	if result := ValidateUpload(header); result.HasErrors() {
		SendValidationError(c, result)
		return "", nil, false
	}

	file, err := header.Open()
	if err != nil {
		SendInternalError(c, "read upload", err)
		return "", nil, false
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Warning: failed to close upload %s: %v", header.Filename, err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		SendInternalError(c, "read upload", err)
		return "", nil, false
	}

	return filepath.Base(header.Filename), data, true
}

func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large")
}
