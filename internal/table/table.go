// Package table holds raw per-year monitoring data as parsed from the
// published CSV files.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is an ordered set of column titles plus string-valued data rows.
// A cell is considered missing when it is empty after trimming whitespace.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses delimited data from r. The first headerLine records are
// preamble and are skipped; the next record supplies the column titles.
// maxRows limits the number of data rows read; maxRows <= 0 reads all.
func Read(r io.Reader, headerLine, maxRows int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // published files have ragged preamble rows

	for skipped := 0; skipped < headerLine; skipped++ {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("skip preamble line %d: %w", skipped, err)
		}
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	columns := make([]string, len(header))
	for i, title := range header {
		columns[i] = strings.TrimSpace(title)
	}

	t := &Table{Columns: columns}
	for {
		if maxRows > 0 && len(t.Rows) >= maxRows {
			break
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read data row %d: %w", len(t.Rows), err)
		}
		t.Rows = append(t.Rows, record)
	}

	return t, nil
}

// IsMissing reports whether a raw cell value counts as missing data.
func IsMissing(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

// ColumnIndex returns the position of the titled column, or -1.
func (t *Table) ColumnIndex(title string) int {
	for i, col := range t.Columns {
		if col == title {
			return i
		}
	}
	return -1
}

// cell returns the value at (row, col); short rows read as missing.
func (t *Table) cell(row, col int) string {
	if col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Distinct returns the distinct non-missing values of the titled column
// in order of first appearance. An unknown title yields nil.
func (t *Table) Distinct(title string) []string {
	idx := t.ColumnIndex(title)
	if idx < 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var values []string
	for row := range t.Rows {
		v := t.cell(row, idx)
		if IsMissing(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// HasMissing reports whether the titled column contains any missing cell.
func (t *Table) HasMissing(title string) bool {
	idx := t.ColumnIndex(title)
	if idx < 0 {
		return false
	}
	for row := range t.Rows {
		if IsMissing(t.cell(row, idx)) {
			return true
		}
	}
	return false
}

// FirstValue returns the first non-missing value of the titled column.
func (t *Table) FirstValue(title string) (string, bool) {
	idx := t.ColumnIndex(title)
	if idx < 0 {
		return "", false
	}
	for row := range t.Rows {
		if v := t.cell(row, idx); !IsMissing(v) {
			return v, true
		}
	}
	return "", false
}

// WriteCSV writes the table, header first, as comma-separated values.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		out := make([]string, len(t.Columns))
		for i := range t.Columns {
			if i < len(row) {
				out[i] = row[i]
			}
		}
		if err := writer.Write(out); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
