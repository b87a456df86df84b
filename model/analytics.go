package model

import "time"

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	Query         string        `json:"query"`
	Policy        string        `json:"policy"`   // "exact" or "substring"
	Semantic      bool          `json:"semantic"` // whether semantic ranking ran
	ResponseTime  time.Duration `json:"response_time"`
	KeywordTotal  int           `json:"keyword_total"`  // keyword matches before capping
	SemanticHits  int           `json:"semantic_hits"`  // semantic hits returned
	SheetsMatched []string      `json:"sheets_matched"` // sheets with at least one keyword match
	Timestamp     time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
	TrendChange string `json:"trend_change,omitempty"` // "up", "down", "stable"
}

// SheetUsage represents how often searches hit a sheet
type SheetUsage struct {
	SheetName   string `json:"sheet_name"`
	RowCount    int    `json:"row_count"`
	SearchCount int    `json:"search_count"` // searches with a keyword match in the sheet
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To25ms     int     `json:"bucket_0_25ms"`
	Bucket25To50ms    int     `json:"bucket_25_50ms"`
	Bucket50To100ms   int     `json:"bucket_50_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To25   float64 `json:"percentage_0_25"`
	Percentage25To50  float64 `json:"percentage_25_50"`
	Percentage50To100 float64 `json:"percentage_50_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// SearchTypeStats represents statistics for different search types
type SearchTypeStats struct {
	ExactMatch int `json:"exact_match"`
	Substring  int `json:"substring"`
	Semantic   int `json:"semantic"`
	NoResults  int `json:"no_results"`
}

// SearchPerformanceHourly represents hourly search performance data
type SearchPerformanceHourly struct {
	Hour            int   `json:"hour"`
	SearchCount     int   `json:"search_count"`
	AvgResponseTime int64 `json:"avg_response_time"` // in milliseconds
}

// SystemHealth represents system health metrics
type SystemHealth struct {
	MemoryUsage    float64 `json:"memory_usage_percent"`
	HeapAllocBytes uint64  `json:"heap_alloc_bytes"`
	Goroutines     int     `json:"goroutines"`
	WorkbookLoaded bool    `json:"workbook_loaded"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics
	TotalSearches         int     `json:"total_searches"`
	SearchesChangePercent float64 `json:"searches_change_percent"`
	AvgResponseTime       int64   `json:"avg_response_time"` // in milliseconds
	ResponseTimeChange    string  `json:"response_time_change"`
	LoadedSheets          int     `json:"loaded_sheets"`
	TotalRows             int     `json:"total_rows"`

	// Detailed analytics
	SearchPerformance24h     []SearchPerformanceHourly `json:"search_performance_24h"`
	PopularSearches          []PopularSearch           `json:"popular_searches"`
	SheetUsage               []SheetUsage              `json:"sheet_usage"`
	ResponseTimeDistribution ResponseTimeDistribution  `json:"response_time_distribution"`
	SearchTypes              SearchTypeStats           `json:"search_types"`
	SystemHealth             SystemHealth              `json:"system_health"`
}
