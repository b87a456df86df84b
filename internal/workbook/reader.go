// Package workbook converts xlsx files into the in-memory workbook model.
//
// The first row of every sheet is its header. Blank header cells become
// "Unnamed: <i>" and repeated names get a ".<n>" suffix so every column name is
// unique. Header names and cells are kept verbatim, surrounding whitespace
// included. Rows with no value at all are skipped and missing trailing cells
// become the empty string.
package workbook

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	internalErrors "github.com/gcbaptista/go-sheet-search/internal/errors"
	"github.com/gcbaptista/go-sheet-search/model"
)

// Open reads the workbook stored at path.
func Open(path string) (*model.Workbook, error) {
	name := filepath.Base(path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, internalErrors.NewWorkbookLoadError(name, err)
	}
	defer closeFile(f, name)

	return FromFile(f, name)
}

// Read parses a workbook from r, e.g. an uploaded file.
func Read(r io.Reader, name string) (*model.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, internalErrors.NewWorkbookLoadError(name, err)
	}
	defer closeFile(f, name)

	return FromFile(f, name)
}

// FromFile converts every sheet of an open excelize file, in workbook order.
func FromFile(f *excelize.File, name string) (*model.Workbook, error) {
	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, internalErrors.NewWorkbookLoadError(name, internalErrors.ErrEmptyWorkbook)
	}

	sheets := make([]*model.Sheet, 0, len(sheetNames))
	for _, sheetName := range sheetNames {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, internalErrors.NewWorkbookLoadError(name, fmt.Errorf("sheet '%s': %w", sheetName, err))
		}
		sheets = append(sheets, BuildSheet(sheetName, rows))
	}

	wb, err := model.NewWorkbook(name, sheets...)
	if err != nil {
		return nil, internalErrors.NewWorkbookLoadError(name, err)
	}
	return wb, nil
}

// BuildSheet turns raw rows, header first, into a sheet.
func BuildSheet(name string, raw [][]string) *model.Sheet {
	raw = dropBlankRows(raw)
	if len(raw) == 0 {
		return model.NewSheet(name, nil, nil)
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := HeaderNames(raw[0], width)
	return model.NewSheet(name, columns, raw[1:])
}

// HeaderNames derives unique column names for a header row padded to width.
func HeaderNames(header []string, width int) []string {
	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		col := ""
		if i < len(header) {
			col = header[i]
		}
		if col == "" {
			col = fmt.Sprintf("Unnamed: %d", i)
		}
		if _, dup := seen[col]; dup {
			base := col
			for n := seen[base] + 1; ; n++ {
				candidate := fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[candidate]; !taken {
					seen[base] = n
					col = candidate
					break
				}
			}
		}
		seen[col] = 0
		columns[i] = col
	}
	return columns
}

func dropBlankRows(raw [][]string) [][]string {
	kept := make([][]string, 0, len(raw))
	for _, row := range raw {
		for _, cell := range row {
			if cell != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}

func closeFile(f *excelize.File, name string) {
	if err := f.Close(); err != nil {
		log.Printf("Warning: failed to close workbook %s: %v", name, err)
	}
}
