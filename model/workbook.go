package model

import (
	"fmt"
	"sort"
	"strings"
)

// Sheet is a single tabular sheet of a workbook. Every cell is held as a string;
// rows are padded to the column count so a missing value is the empty string.
type Sheet struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewSheet builds a sheet, padding short rows and dropping cells past the last column.
func NewSheet(name string, columns []string, rows [][]string) *Sheet {
	normalized := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		normalized[i] = cells
	}
	return &Sheet{Name: name, Columns: columns, Rows: normalized}
}

// Len returns the number of rows in the sheet.
func (s *Sheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// IsEmpty reports whether the sheet has no rows or no columns.
func (s *Sheet) IsEmpty() bool {
	return s == nil || len(s.Rows) == 0 || len(s.Columns) == 0
}

// Row returns the i-th row of the sheet.
func (s *Sheet) Row(i int) Row {
	return Row{Index: i, Values: s.Rows[i]}
}

// Head returns a sheet holding at most n leading rows. A negative n returns the sheet unchanged.
func (s *Sheet) Head(n int) *Sheet {
	if n < 0 || n >= len(s.Rows) {
		return s
	}
	return &Sheet{Name: s.Name, Columns: s.Columns, Rows: s.Rows[:n]}
}

// Text joins the row's cell values with sep, preserving column order.
func (s *Sheet) Text(i int, sep string) string {
	return strings.Join(s.Rows[i], sep)
}

// Record converts a row into a column-keyed record.
func (s *Sheet) Record(row Row) map[string]interface{} {
	record := make(map[string]interface{}, len(s.Columns))
	for i, col := range s.Columns {
		if i < len(row.Values) {
			record[col] = row.Values[i]
		} else {
			record[col] = ""
		}
	}
	return record
}

// Row is a single sheet row. Index is its 0-based position in the source sheet.
type Row struct {
	Index  int      `json:"index"`
	Values []string `json:"values"`
}

// Workbook is an ordered collection of uniquely named sheets.
type Workbook struct {
	Name   string
	sheets []*Sheet
	byName map[string]*Sheet
}

// NewWorkbook creates a workbook from the given sheets, preserving their order.
// Sheet names must be unique.
func NewWorkbook(name string, sheets ...*Sheet) (*Workbook, error) {
	wb := &Workbook{
		Name:   name,
		sheets: make([]*Sheet, 0, len(sheets)),
		byName: make(map[string]*Sheet, len(sheets)),
	}
	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		if _, exists := wb.byName[sheet.Name]; exists {
			return nil, fmt.Errorf("duplicate sheet name '%s'", sheet.Name)
		}
		wb.sheets = append(wb.sheets, sheet)
		wb.byName[sheet.Name] = sheet
	}
	return wb, nil
}

// Sheets returns the sheets in workbook order.
func (w *Workbook) Sheets() []*Sheet {
	if w == nil {
		return nil
	}
	return w.sheets
}

// Sheet looks up a sheet by name.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	if w == nil {
		return nil, false
	}
	sheet, ok := w.byName[name]
	return sheet, ok
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets()))
	for _, sheet := range w.Sheets() {
		names = append(names, sheet.Name)
	}
	return names
}

// SortedSheetNames returns sheet names in lexicographic order.
func (w *Workbook) SortedSheetNames() []string {
	names := w.SheetNames()
	sort.Strings(names)
	return names
}

// IsEmpty reports whether the workbook is absent or has no sheets.
func (w *Workbook) IsEmpty() bool {
	return w == nil || len(w.sheets) == 0
}

// TotalRows counts rows across all sheets.
func (w *Workbook) TotalRows() int {
	total := 0
	for _, sheet := range w.Sheets() {
		total += sheet.Len()
	}
	return total
}
