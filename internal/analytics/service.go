// Package analytics keeps an in-memory log of recent searches and summarizes it.
package analytics

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-sheet-search/model"
	"github.com/gcbaptista/go-sheet-search/services"
)

const (
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
	popularSearchSize = 5
)

// Service implements analytics tracking and reporting
type Service struct {
	mutex  sync.RWMutex
	events []model.SearchEvent
	sheets services.SheetLister
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService(sheets services.SheetLister) *Service {
	return &Service{
		events: make([]model.SearchEvent, 0),
		sheets: sheets,
		now:    time.Now,
	}
}

// EventFromResult builds a search event from a search response
func EventFromResult(result services.SearchResult, responseTime time.Duration) model.SearchEvent {
	event := model.SearchEvent{
		Query:        result.Query,
		Policy:       result.Keyword.Policy,
		Semantic:     result.Semantic != nil,
		ResponseTime: responseTime,
		KeywordTotal: result.Keyword.Total,
	}
	for name, count := range result.Keyword.Counts {
		if count > 0 {
			event.SheetsMatched = append(event.SheetsMatched, name)
		}
	}
	sort.Strings(event.SheetsMatched)
	if result.Semantic != nil {
		for _, hits := range result.Semantic.Results {
			event.SemanticHits += len(hits)
		}
	}
	return event
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	yesterday := now.Add(-24 * time.Hour)
	lastWeek := now.Add(-7 * 24 * time.Hour)

	// Filter events for different time periods
	last24hEvents := filterEventsByTimeRange(s.events, yesterday, now)
	prev24hEvents := filterEventsByTimeRange(s.events, yesterday.Add(-24*time.Hour), yesterday)
	lastWeekEvents := filterEventsByTimeRange(s.events, lastWeek, now)
	prevWeekEvents := filterEventsByTimeRange(s.events, lastWeek.Add(-7*24*time.Hour), lastWeek)

	sheets, err := s.sheets.Sheets()
	if err != nil {
		sheets = nil
	}
	totalRows := 0
	for _, sheet := range sheets {
		totalRows += sheet.Rows
	}

	return model.AnalyticsDashboard{
		TotalSearches:            len(last24hEvents),
		SearchesChangePercent:    calculateChangePercent(len(last24hEvents), len(prev24hEvents)),
		AvgResponseTime:          calculateAvgResponseTime(last24hEvents),
		ResponseTimeChange:       calculateResponseTimeChange(last24hEvents, prev24hEvents),
		LoadedSheets:             len(sheets),
		TotalRows:                totalRows,
		SearchPerformance24h:     getHourlyPerformance(last24hEvents),
		PopularSearches:          getPopularSearches(lastWeekEvents, prevWeekEvents),
		SheetUsage:               getSheetUsage(lastWeekEvents, sheets),
		ResponseTimeDistribution: getResponseTimeDistribution(last24hEvents),
		SearchTypes:              getSearchTypeStats(last24hEvents),
		SystemHealth:             s.getSystemHealth(),
	}
}

// filterEventsByTimeRange returns events in (start, end]
func filterEventsByTimeRange(events []model.SearchEvent, start, end time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(start) && !event.Timestamp.After(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Milliseconds()
}

// calculateResponseTimeChange calculates response time change trend
func calculateResponseTimeChange(current, previous []model.SearchEvent) string {
	currentAvg := calculateAvgResponseTime(current)
	previousAvg := calculateAvgResponseTime(previous)

	if previousAvg == 0 {
		return "stable"
	}

	change := float64(currentAvg-previousAvg) / float64(previousAvg)
	if change > 0.1 {
		return "up"
	} else if change < -0.1 {
		return "down"
	}
	return "stable"
}

// getHourlyPerformance returns hourly search performance for the last 24 hours
func getHourlyPerformance(events []model.SearchEvent) []model.SearchPerformanceHourly {
	hourlyData := make(map[int][]model.SearchEvent)

	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.SearchPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		events := hourlyData[hour]
		performance = append(performance, model.SearchPerformanceHourly{
			Hour:            hour,
			SearchCount:     len(events),
			AvgResponseTime: calculateAvgResponseTime(events),
		})
	}

	return performance
}

func countQueries(events []model.SearchEvent) map[string]int {
	counts := make(map[string]int)
	for _, event := range events {
		if event.Query != "" {
			counts[event.Query]++
		}
	}
	return counts
}

// getPopularSearches returns the most popular queries with their trend
// against the previous period
func getPopularSearches(current, previous []model.SearchEvent) []model.PopularSearch {
	queryCounts := countQueries(current)
	previousCounts := countQueries(previous)

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		trend := "stable"
		switch prev := previousCounts[query]; {
		case count > prev:
			trend = "up"
		case count < prev:
			trend = "down"
		}
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count, TrendChange: trend})
	}

	// Sort by count descending, then query
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > popularSearchSize {
		popular = popular[:popularSearchSize]
	}
	return popular
}

// getSheetUsage returns how many searches matched each loaded sheet
func getSheetUsage(events []model.SearchEvent, sheets []services.SheetInfo) []model.SheetUsage {
	sheetSearchCounts := make(map[string]int)
	for _, event := range events {
		for _, name := range event.SheetsMatched {
			sheetSearchCounts[name]++
		}
	}

	usage := make([]model.SheetUsage, 0, len(sheets))
	for _, sheet := range sheets {
		usage = append(usage, model.SheetUsage{
			SheetName:   sheet.Name,
			RowCount:    sheet.Rows,
			SearchCount: sheetSearchCounts[sheet.Name],
		})
	}
	return usage
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		ms := event.ResponseTime.Milliseconds()
		switch {
		case ms <= 25:
			dist.Bucket0To25ms++
		case ms <= 50:
			dist.Bucket25To50ms++
		case ms <= 100:
			dist.Bucket50To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	// Calculate percentages
	dist.Percentage0To25 = float64(dist.Bucket0To25ms) / float64(total) * 100
	dist.Percentage25To50 = float64(dist.Bucket25To50ms) / float64(total) * 100
	dist.Percentage50To100 = float64(dist.Bucket50To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100

	return dist
}

// getSearchTypeStats returns statistics for different search types
func getSearchTypeStats(events []model.SearchEvent) model.SearchTypeStats {
	stats := model.SearchTypeStats{}

	for _, event := range events {
		switch event.Policy {
		case "exact":
			stats.ExactMatch++
		case "substring":
			stats.Substring++
		}
		if event.Semantic {
			stats.Semantic++
		}
		if event.KeywordTotal == 0 {
			stats.NoResults++
		}
	}

	return stats
}

// getSystemHealth returns current system health metrics
func (s *Service) getSystemHealth() model.SystemHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	memoryUsage := 0.0
	if m.Sys > 0 {
		memoryUsage = float64(m.Alloc) / float64(m.Sys) * 100
	}

	return model.SystemHealth{
		MemoryUsage:    memoryUsage,
		HeapAllocBytes: m.HeapAlloc,
		Goroutines:     runtime.NumGoroutine(),
		WorkbookLoaded: s.sheets.Loaded(),
	}
}
