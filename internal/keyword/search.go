package keyword

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-sheet-search/config"
	"github.com/gcbaptista/go-sheet-search/model"
)

// Options bounds the size of a keyword result. Zero values take the defaults;
// a negative TotalCap disables the global cap.
type Options struct {
	PerSheetCap int
	TotalCap    int
}

func (o Options) withDefaults() Options {
	if o.PerSheetCap == 0 {
		o.PerSheetCap = config.DefaultPerSheetCap
	}
	if o.TotalCap == 0 {
		o.TotalCap = config.DefaultTotalCap
	}
	return o
}

// Result is the outcome of a keyword search.
type Result struct {
	Policy  Policy                 `json:"policy"`
	Results map[string][]model.Row `json:"results"` // Matching rows per sheet, capped
	Counts  map[string]int         `json:"counts"`  // Uncapped matches per sheet, every sheet present
	Total   int                    `json:"total"`   // Sum of Counts
}

// Returned counts the rows kept across all sheets after capping.
func (r Result) Returned() int {
	n := 0
	for _, rows := range r.Results {
		n += len(rows)
	}
	return n
}

// Summary renders the pre-cap totals, one line per sheet in name order.
func (r Result) Summary() string {
	names := make([]string, 0, len(r.Counts))
	for name := range r.Counts {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names)+1)
	lines = append(lines, fmt.Sprintf("Total keyword matches (pre-cap): %d", r.Total))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s: %d", name, r.Counts[name]))
	}
	return strings.Join(lines, "\n")
}

// sheetMatches holds the per-sheet outcome before the global cap.
type sheetMatches struct {
	name      string
	count     int
	candidate []model.Row
}

// Search scans every cell of every sheet for the query and caps the result.
// Sheets are scanned concurrently; output does not depend on scheduling.
func Search(wb *model.Workbook, query string, opts Options) Result {
	opts = opts.withDefaults()
	matcher := NewMatcher(query)

	sheets := wb.Sheets()
	matches := make([]sheetMatches, len(sheets))

	var g errgroup.Group
	for i, sheet := range sheets {
		g.Go(func() error {
			matches[i] = scanSheet(sheet, matcher, opts.PerSheetCap)
			return nil
		})
	}
	_ = g.Wait() // scanners never fail

	result := Result{
		Policy:  matcher.Policy(),
		Results: make(map[string][]model.Row),
		Counts:  make(map[string]int, len(sheets)),
	}
	for _, m := range matches {
		result.Counts[m.name] = m.count
		result.Total += m.count
		if m.count > 0 {
			result.Results[m.name] = m.candidate
		}
	}

	result.Results = applyTotalCap(result.Results, wb.SortedSheetNames(), opts.TotalCap)
	return result
}

// scanSheet counts every matching row and keeps the first perSheetCap of them.
func scanSheet(sheet *model.Sheet, matcher Matcher, perSheetCap int) sheetMatches {
	m := sheetMatches{name: sheet.Name}
	if sheet.IsEmpty() {
		return m
	}

	for i, matched := range matcher.Mask(sheet) {
		if !matched {
			continue
		}
		m.count++
		if len(m.candidate) < perSheetCap {
			m.candidate = append(m.candidate, sheet.Row(i))
		}
	}
	return m
}

// applyTotalCap trims candidates to totalCap rows, filling sheets in the
// given name order. The first sheet that does not fit contributes a prefix;
// sheets after the budget runs out are dropped.
func applyTotalCap(candidates map[string][]model.Row, names []string, totalCap int) map[string][]model.Row {
	if totalCap < 0 {
		return candidates
	}

	returned := 0
	for _, rows := range candidates {
		returned += len(rows)
	}
	if returned <= totalCap {
		return candidates
	}

	trimmed := make(map[string][]model.Row)
	remaining := totalCap
	for _, name := range names {
		if remaining <= 0 {
			break
		}
		rows, ok := candidates[name]
		if !ok {
			continue
		}
		if len(rows) <= remaining {
			trimmed[name] = rows
			remaining -= len(rows)
		} else {
			trimmed[name] = rows[:remaining]
			remaining = 0
		}
	}
	return trimmed
}
