// Package semantic ranks workbook rows by similarity to a query using a
// bag-of-words term-weighting model fitted separately for each sheet.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-sheet-search/config"
	"github.com/gcbaptista/go-sheet-search/model"
)

// RowSeparator joins cell values into the text document of a row.
const RowSeparator = " | "

// BuildOptions controls how an index is built.
type BuildOptions struct {
	PerSheetLimit int        // Leading rows indexed per sheet; 0 uses the default, negative indexes every row
	Vectorizer    Vectorizer // Defaults to a TF-IDF vectorizer with the default vocabulary cap
}

// SheetIndex holds the fitted model of one sheet and its weight matrix.
// Matrix[i] is the vector of Rows.Rows[i]; Rows is a prefix of the source sheet.
type SheetIndex struct {
	Rows   *model.Sheet
	Model  Model
	Matrix []Vector
}

// Hit is a row ranked by similarity to the query.
type Hit struct {
	Row   model.Row `json:"row"`
	Score float64   `json:"score"`
}

// SheetStats describes one indexed sheet.
type SheetStats struct {
	Sheet          string `json:"sheet"`
	Rows           int    `json:"rows"`
	VocabularySize int    `json:"vocabulary_size"`
}

// Index is an immutable set of per-sheet models. It is safe for concurrent
// searches; a new workbook gets a new Index.
type Index struct {
	sheets  map[string]*SheetIndex
	builtAt time.Time
}

// Build fits one model per sheet of the workbook. Sheets that yield no
// documents or no terms are left out of the index.
func Build(ctx context.Context, wb *model.Workbook, opts BuildOptions) (*Index, error) {
	limit := opts.PerSheetLimit
	if limit == 0 {
		limit = config.DefaultPerSheetLimit
	}
	vectorizer := opts.Vectorizer
	if vectorizer == nil {
		vectorizer = NewTFIDFVectorizer(config.DefaultMaxFeatures, false)
	}

	sheets := wb.Sheets()
	built := make([]*SheetIndex, len(sheets))

	g, ctx := errgroup.WithContext(ctx)
	for i, sheet := range sheets {
		g.Go(func() error {
			sheetIndex, err := buildSheet(ctx, sheet.Head(limit), vectorizer)
			if err != nil {
				if errors.Is(err, ErrEmptyVocabulary) {
					log.Printf("Warning: sheet '%s' has no indexable terms; skipping semantic index", sheet.Name)
					return nil
				}
				return fmt.Errorf("failed to index sheet '%s': %w", sheet.Name, err)
			}
			built[i] = sheetIndex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := &Index{sheets: make(map[string]*SheetIndex, len(sheets)), builtAt: time.Now()}
	for _, sheetIndex := range built {
		if sheetIndex != nil {
			index.sheets[sheetIndex.Rows.Name] = sheetIndex
		}
	}
	return index, nil
}

// buildSheet fits the model of a single (already truncated) sheet. It returns
// nil without error for a sheet with no rows.
func buildSheet(ctx context.Context, rows *model.Sheet, vectorizer Vectorizer) (*SheetIndex, error) {
	documents := RowTexts(rows)
	if len(documents) == 0 {
		return nil, nil
	}

	fitted, err := vectorizer.Fit(documents)
	if err != nil {
		return nil, err
	}

	matrix := make([]Vector, len(documents))
	for i, doc := range documents {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		matrix[i] = fitted.Transform(doc)
	}

	return &SheetIndex{Rows: rows, Model: fitted, Matrix: matrix}, nil
}

// RowTexts derives one document per row by joining its cells with RowSeparator.
func RowTexts(sheet *model.Sheet) []string {
	texts := make([]string, sheet.Len())
	for i := range texts {
		texts[i] = sheet.Text(i, RowSeparator)
	}
	return texts
}

// Search ranks the rows of every indexed sheet by similarity to the query and
// returns at most topK hits per sheet in descending score order. Ties keep
// row order. A non-positive topK uses the default.
func (ix *Index) Search(query string, topK int) map[string][]Hit {
	if topK <= 0 {
		topK = config.DefaultTopKPerSheet
	}

	names := ix.SheetNames()
	ranked := make([][]Hit, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			ranked[i] = ix.sheets[name].rank(query, topK)
			return nil
		})
	}
	_ = g.Wait() // ranking never fails

	out := make(map[string][]Hit, len(names))
	for i, name := range names {
		if len(ranked[i]) > 0 {
			out[name] = ranked[i]
		}
	}
	return out
}

// rank scores every row of the sheet against the query.
func (s *SheetIndex) rank(query string, topK int) []Hit {
	if len(s.Matrix) == 0 {
		return nil
	}

	queryVec := s.Model.Transform(query)
	hits := make([]Hit, len(s.Matrix))
	for i, rowVec := range s.Matrix {
		hits[i] = Hit{Row: s.Rows.Row(i), Score: s.Model.Similarity(rowVec, queryVec)}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits
}

// Sheet returns the index of a single sheet.
func (ix *Index) Sheet(name string) (*SheetIndex, bool) {
	if ix == nil {
		return nil, false
	}
	s, ok := ix.sheets[name]
	return s, ok
}

// SheetNames returns the indexed sheet names in lexicographic order.
func (ix *Index) SheetNames() []string {
	if ix == nil {
		return nil
	}
	names := make([]string, 0, len(ix.sheets))
	for name := range ix.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltAt returns when the index was built.
func (ix *Index) BuiltAt() time.Time {
	return ix.builtAt
}

// Stats describes every indexed sheet in name order.
func (ix *Index) Stats() []SheetStats {
	names := ix.SheetNames()
	stats := make([]SheetStats, 0, len(names))
	for _, name := range names {
		s := ix.sheets[name]
		stats = append(stats, SheetStats{
			Sheet:          name,
			Rows:           len(s.Matrix),
			VocabularySize: s.Model.VocabularySize(),
		})
	}
	return stats
}

// CountHits sums hits across sheets.
func CountHits(results map[string][]Hit) int {
	total := 0
	for _, hits := range results {
		total += len(hits)
	}
	return total
}

// Summary renders the number of hits returned for a search.
func Summary(results map[string][]Hit, topK int) string {
	return fmt.Sprintf("Semantic hits (top %d per sheet): %d", topK, CountHits(results))
}
