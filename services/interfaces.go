package services

import (
	"context"
	"time"

	"github.com/gcbaptista/go-sheet-search/internal/jobs"
	"github.com/gcbaptista/go-sheet-search/model"
)

// SearchQuery is a combined keyword and semantic search request.
type SearchQuery struct {
	Query       string `json:"query"`
	RunSemantic *bool  `json:"run_semantic,omitempty"` // Optional: defaults to the session setting
}

// RowMatch is a matching row rendered as a column-keyed record.
// Columns fixes the order record keys are written in.
type RowMatch struct {
	Index   int                    `json:"index"` // 0-based position in the source sheet
	Record  map[string]interface{} `json:"record"`
	Columns []string               `json:"-"`
}

// SemanticMatch is a ranked row with its cosine similarity to the query.
// It is written as a flat record led by SemanticScoreField.
type SemanticMatch struct {
	RowMatch
	Score float64 `json:"-"`
}

// KeywordResult is the keyword section of a search response.
type KeywordResult struct {
	Summary  string                `json:"summary"`
	Policy   string                `json:"policy"` // "exact" or "substring"
	Results  map[string][]RowMatch `json:"results"`
	Counts   map[string]int        `json:"counts"` // Matches per sheet before capping
	Total    int                   `json:"total"`
	Returned int                   `json:"returned"`
}

// SemanticResult is the semantic section of a search response.
type SemanticResult struct {
	Summary string                     `json:"summary"`
	TopK    int                        `json:"top_k"`
	Results map[string][]SemanticMatch `json:"results"`
}

// SearchResult combines both engines' output for one query.
type SearchResult struct {
	QueryID  string          `json:"query_id"` // unique UUID for this search query
	Query    string          `json:"query"`
	LoadID   string          `json:"load_id"` // load the results were computed against
	Keyword  KeywordResult   `json:"keyword"`
	Semantic *SemanticResult `json:"semantic"` // nil when semantic search was not requested
	Took     int64           `json:"took"`     // milliseconds
}

// SheetInfo describes a loaded sheet.
type SheetInfo struct {
	Name           string   `json:"name"`
	Columns        []string `json:"columns"`
	Rows           int      `json:"rows"`
	Indexed        bool     `json:"indexed"`         // false when the sheet has no semantic model
	IndexedRows    int      `json:"indexed_rows"`    // leading rows covered by the semantic model
	VocabularySize int      `json:"vocabulary_size"` // terms in the sheet's semantic model
}

// LoadInfo describes a successfully loaded workbook.
type LoadInfo struct {
	LoadID   string      `json:"load_id"`
	Workbook string      `json:"workbook"`
	Sheets   []SheetInfo `json:"sheets"`
	LoadedAt time.Time   `json:"loaded_at"`
	Took     int64       `json:"took"` // milliseconds
}

// Loader replaces the session's workbook
type Loader interface {
	Load(ctx context.Context, wb *model.Workbook) (LoadInfo, error)
	LoadBytes(ctx context.Context, name string, data []byte) (LoadInfo, error)
	LoadAsync(name string, data []byte) (string, error) // Returns job ID
}

// Searcher defines operations for querying the loaded workbook
type Searcher interface {
	Search(ctx context.Context, query SearchQuery) (SearchResult, error)
}

// SheetLister reports what is currently loaded
type SheetLister interface {
	Sheets() ([]SheetInfo, error)
	Loaded() bool
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
	GetJobMetrics() jobs.MetricsSnapshot
}

// SessionManager is everything the HTTP layer needs from a session.
type SessionManager interface {
	Loader
	Searcher
	SheetLister
	JobManager
}
