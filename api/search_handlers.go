package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-sheet-search/internal/analytics"
	"github.com/gcbaptista/go-sheet-search/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query       string `json:"query"`
	RunSemantic *bool  `json:"run_semantic,omitempty"` // Optional: override the server default
}

// SearchHandler runs a keyword search and, optionally, a semantic search
// against the loaded workbook.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateSearchRequest(&req); result.HasErrors() {
		details := make([]ErrorDetail, len(result.Errors))
		for i, e := range result.Errors {
			details[i] = ErrorDetail{Field: e.Field, Message: e.Message, Code: "VALIDATION_ERROR"}
		}
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Query cannot be empty", details...)
		return
	}

	result, err := api.session.Search(c.Request.Context(), services.SearchQuery{
		Query:       req.Query,
		RunSemantic: req.RunSemantic,
	})
	if err != nil {
		SendSessionError(c, "search", err)
		return
	}

	api.analytics.TrackSearchEvent(analytics.EventFromResult(result, time.Since(startTime)))

	c.JSON(http.StatusOK, result)
}
