package engine

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-sheet-search/internal/errors"
	"github.com/gcbaptista/go-sheet-search/internal/keyword"
	"github.com/gcbaptista/go-sheet-search/internal/semantic"
	"github.com/gcbaptista/go-sheet-search/model"
	"github.com/gcbaptista/go-sheet-search/services"
)

// KeywordSearch runs the keyword engine against the loaded workbook.
func (s *Session) KeywordSearch(query string) (keyword.Result, error) {
	snap, query, err := s.prepare("keyword search", query)
	if err != nil {
		return keyword.Result{}, err
	}
	return s.keywordSearch(snap, query), nil
}

// SemanticSearch ranks the rows of every indexed sheet. A non-positive topK
// uses the session setting.
func (s *Session) SemanticSearch(query string, topK int) (map[string][]semantic.Hit, error) {
	snap, query, err := s.prepare("semantic search", query)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = s.settings.TopKPerSheet
	}
	return snap.index.Search(query, topK), nil
}

// Search runs the keyword engine and, when requested, the semantic index
// against the same snapshot.
func (s *Session) Search(ctx context.Context, q services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	snap, query, err := s.prepare("search", q.Query)
	if err != nil {
		return services.SearchResult{}, err
	}

	runSemantic := s.settings.RunSemanticByDefault
	if q.RunSemantic != nil {
		runSemantic = *q.RunSemantic
	}

	kw := s.keywordSearch(snap, query)
	result := services.SearchResult{
		QueryID: uuid.New().String(),
		Query:   query,
		LoadID:  snap.loadID,
		Keyword: keywordResult(snap.workbook, kw),
	}

	if runSemantic {
		if err := ctx.Err(); err != nil {
			return services.SearchResult{}, err
		}
		topK := s.settings.TopKPerSheet
		hits := snap.index.Search(query, topK)
		result.Semantic = semanticResult(snap.workbook, hits, topK)
	}

	result.Took = time.Since(startTime).Milliseconds()
	log.Printf("Search '%s' (%s): %d keyword matches, semantic=%t, took %v",
		query, kw.Policy, kw.Total, runSemantic, time.Since(startTime))
	return result, nil
}

// prepare validates the query and pins the current snapshot.
func (s *Session) prepare(operation, query string) (*snapshot, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", errors.NewInvalidQueryError(query, "query cannot be empty")
	}
	snap := s.current.Load()
	if snap == nil {
		return nil, "", errors.NewNotLoadedError(operation)
	}
	return snap, query, nil
}

func (s *Session) keywordSearch(snap *snapshot, query string) keyword.Result {
	return keyword.Search(snap.workbook, query, keyword.Options{
		PerSheetCap: s.settings.PerSheetCap,
		TotalCap:    s.settings.TotalCap,
	})
}

func keywordResult(wb *model.Workbook, kw keyword.Result) services.KeywordResult {
	results := make(map[string][]services.RowMatch, len(kw.Results))
	for name, rows := range kw.Results {
		sheet, _ := wb.Sheet(name)
		matches := make([]services.RowMatch, len(rows))
		for i, row := range rows {
			matches[i] = services.RowMatch{Index: row.Index, Record: sheet.Record(row), Columns: sheet.Columns}
		}
		results[name] = matches
	}
	return services.KeywordResult{
		Summary:  kw.Summary(),
		Policy:   kw.Policy.String(),
		Results:  results,
		Counts:   kw.Counts,
		Total:    kw.Total,
		Returned: kw.Returned(),
	}
}

func semanticResult(wb *model.Workbook, hits map[string][]semantic.Hit, topK int) *services.SemanticResult {
	results := make(map[string][]services.SemanticMatch, len(hits))
	for name, sheetHits := range hits {
		sheet, _ := wb.Sheet(name)
		matches := make([]services.SemanticMatch, len(sheetHits))
		for i, hit := range sheetHits {
			matches[i] = services.SemanticMatch{
				RowMatch: services.RowMatch{Index: hit.Row.Index, Record: sheet.Record(hit.Row), Columns: sheet.Columns},
				Score:    hit.Score,
			}
		}
		results[name] = matches
	}
	return &services.SemanticResult{
		Summary: semantic.Summary(hits, topK),
		TopK:    topK,
		Results: results,
	}
}
