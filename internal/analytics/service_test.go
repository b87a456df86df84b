package analytics

import (
	"testing"
	"time"

	internalErrors "github.com/gcbaptista/go-sheet-search/internal/errors"
	"github.com/gcbaptista/go-sheet-search/model"
	"github.com/gcbaptista/go-sheet-search/services"
)

// MockSheetLister is a simple mock for testing
type MockSheetLister struct {
	sheets []services.SheetInfo
}

func (m *MockSheetLister) Sheets() ([]services.SheetInfo, error) {
	if m.sheets == nil {
		return nil, internalErrors.NewNotLoadedError("sheets")
	}
	return m.sheets, nil
}

func (m *MockSheetLister) Loaded() bool { return m.sheets != nil }

func newTestService(sheets []services.SheetInfo, now time.Time) *Service {
	service := NewService(&MockSheetLister{sheets: sheets})
	service.now = func() time.Time { return now }
	return service
}

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService(nil, now)

	service.TrackSearchEvent(model.SearchEvent{
		Query:        "AB007",
		Policy:       "exact",
		ResponseTime: 5 * time.Millisecond,
		KeywordTotal: 1,
	})

	if len(service.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(service.events))
	}
	if !service.events[0].Timestamp.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, service.events[0].Timestamp)
	}
	if service.events[0].Query != "AB007" {
		t.Errorf("Expected query AB007, got %s", service.events[0].Query)
	}
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newTestService([]services.SheetInfo{
		{Name: "Parts", Rows: 4},
		{Name: "Suppliers", Rows: 2},
	}, now)

	events := []model.SearchEvent{
		{Query: "bolt", Policy: "substring", Semantic: true, ResponseTime: 10 * time.Millisecond, KeywordTotal: 3, SheetsMatched: []string{"Parts", "Suppliers"}, Timestamp: now.Add(-1 * time.Hour)},
		{Query: "bolt", Policy: "substring", ResponseTime: 30 * time.Millisecond, KeywordTotal: 3, SheetsMatched: []string{"Parts", "Suppliers"}, Timestamp: now.Add(-2 * time.Hour)},
		{Query: "AB007", Policy: "exact", ResponseTime: 200 * time.Millisecond, KeywordTotal: 1, SheetsMatched: []string{"Parts"}, Timestamp: now.Add(-3 * time.Hour)},
		{Query: "zzz", Policy: "substring", ResponseTime: 60 * time.Millisecond, Timestamp: now.Add(-30 * time.Hour)},
	}
	for _, event := range events {
		service.TrackSearchEvent(event)
	}

	dashboard := service.GetDashboardData()

	if dashboard.TotalSearches != 3 {
		t.Errorf("Expected 3 searches in the last 24h, got %d", dashboard.TotalSearches)
	}
	if dashboard.SearchesChangePercent != 200.0 {
		t.Errorf("Expected +200%% change, got %v", dashboard.SearchesChangePercent)
	}
	if dashboard.AvgResponseTime != 80 {
		t.Errorf("Expected 80ms average, got %d", dashboard.AvgResponseTime)
	}
	if dashboard.LoadedSheets != 2 || dashboard.TotalRows != 6 {
		t.Errorf("Expected 2 sheets and 6 rows, got %d and %d", dashboard.LoadedSheets, dashboard.TotalRows)
	}
	if len(dashboard.SearchPerformance24h) != 24 {
		t.Errorf("Expected 24 hourly performance entries, got %d", len(dashboard.SearchPerformance24h))
	}

	if len(dashboard.PopularSearches) != 3 {
		t.Fatalf("Expected 3 popular searches, got %d", len(dashboard.PopularSearches))
	}
	if dashboard.PopularSearches[0].Query != "bolt" || dashboard.PopularSearches[0].SearchCount != 2 {
		t.Errorf("Expected 'bolt' x2 first, got %+v", dashboard.PopularSearches[0])
	}
	if dashboard.PopularSearches[1].Query != "AB007" {
		t.Errorf("Expected ties broken by query, got %+v", dashboard.PopularSearches[1])
	}

	if dashboard.SheetUsage[0].SheetName != "Parts" || dashboard.SheetUsage[0].SearchCount != 3 {
		t.Errorf("Unexpected Parts usage: %+v", dashboard.SheetUsage[0])
	}
	if dashboard.SheetUsage[1].SearchCount != 2 {
		t.Errorf("Unexpected Suppliers usage: %+v", dashboard.SheetUsage[1])
	}

	dist := dashboard.ResponseTimeDistribution
	if dist.Bucket0To25ms != 1 || dist.Bucket25To50ms != 1 || dist.Bucket100msPlus != 1 {
		t.Errorf("Unexpected response time distribution: %+v", dist)
	}

	types := dashboard.SearchTypes
	if types.ExactMatch != 1 || types.Substring != 2 || types.Semantic != 1 || types.NoResults != 0 {
		t.Errorf("Unexpected search types: %+v", types)
	}

	if !dashboard.SystemHealth.WorkbookLoaded {
		t.Error("Expected workbook to be reported as loaded")
	}
}

func TestAnalyticsService_NotLoaded(t *testing.T) {
	service := newTestService(nil, time.Now())

	dashboard := service.GetDashboardData()
	if dashboard.LoadedSheets != 0 || len(dashboard.SheetUsage) != 0 {
		t.Errorf("Expected no sheets, got %+v", dashboard.SheetUsage)
	}
	if dashboard.SystemHealth.WorkbookLoaded {
		t.Error("Expected workbook to be reported as not loaded")
	}
}

func TestAnalyticsService_KeepsLatestEvents(t *testing.T) {
	service := newTestService(nil, time.Now())

	for i := 0; i < maxEventsToKeep+10; i++ {
		service.TrackSearchEvent(model.SearchEvent{Query: "q"})
	}
	if len(service.events) != maxEventsToKeep {
		t.Errorf("Expected %d events, got %d", maxEventsToKeep, len(service.events))
	}
}

func TestEventFromResult(t *testing.T) {
	result := services.SearchResult{
		Query: "bolt",
		Keyword: services.KeywordResult{
			Policy: "substring",
			Counts: map[string]int{"Suppliers": 1, "Parts": 2, "Empty": 0},
			Total:  3,
		},
		Semantic: &services.SemanticResult{
			Results: map[string][]services.SemanticMatch{
				"Parts":     make([]services.SemanticMatch, 4),
				"Suppliers": make([]services.SemanticMatch, 2),
			},
		},
	}

	event := EventFromResult(result, 12*time.Millisecond)
	if event.KeywordTotal != 3 || event.SemanticHits != 6 || !event.Semantic {
		t.Errorf("Unexpected event: %+v", event)
	}
	if len(event.SheetsMatched) != 2 || event.SheetsMatched[0] != "Parts" || event.SheetsMatched[1] != "Suppliers" {
		t.Errorf("Expected matched sheets [Parts Suppliers], got %v", event.SheetsMatched)
	}
}
