package summary

import (
	"encoding/csv"
	"io"
	"strconv"
)

// YearColumnTitle is the title of the summary column holding data years.
const YearColumnTitle = "Data Set (Year)"

// NoDataSentinel marks summary cells for years with no retrievable data.
const NoDataSentinel = "no data"

// PresenceTable records, per year, which measurement columns exist.
type PresenceTable struct {
	YearColumn string        `json:"year_column"`
	Columns    []string      `json:"columns"`
	Rows       []PresenceRow `json:"rows"`
}

// PresenceRow is one year's measurement presence record. NoData marks a
// year for which nothing could be retrieved at all.
type PresenceRow struct {
	Year   int             `json:"year"`
	NoData bool            `json:"no_data,omitempty"`
	Cells  map[string]bool `json:"cells"`
}

// NewPresenceTable builds an empty presence table with one row per year.
func NewPresenceTable(cols []string, years []int) *PresenceTable {
	t := &PresenceTable{
		YearColumn: YearColumnTitle,
		Columns:    append([]string(nil), cols...),
	}
	for _, year := range years {
		t.Rows = append(t.Rows, PresenceRow{Year: year, Cells: make(map[string]bool)})
	}
	return t
}

// MarkNoData flags a year as entirely missing.
func (t *PresenceTable) MarkNoData(row int) {
	t.Rows[row].NoData = true
}

// Set records presence for a column in one year's row, registering the
// column if the reference set did not include it.
func (t *PresenceTable) Set(row int, col string, present bool) {
	t.registerColumn(col)
	t.Rows[row].Cells[col] = present
}

// Finalize fills every untouched cell of retrievable years with false.
func (t *PresenceTable) Finalize() {
	for i := range t.Rows {
		if t.Rows[i].NoData {
			continue
		}
		for _, col := range t.Columns {
			if _, ok := t.Rows[i].Cells[col]; !ok {
				t.Rows[i].Cells[col] = false
			}
		}
	}
}

func (t *PresenceTable) registerColumn(col string) {
	for _, existing := range t.Columns {
		if existing == col {
			return
		}
	}
	t.Columns = append(t.Columns, col)
}

// WriteCSV writes the table with the year column first. Rows for years
// with no data carry the no-data sentinel in every cell.
func (t *PresenceTable) WriteCSV(w io.Writer) error {
	return writeSummaryCSV(w, t.YearColumn, t.Columns, len(t.Rows),
		func(row int) int { return t.Rows[row].Year },
		func(row int, col string) string {
			if t.Rows[row].NoData {
				return NoDataSentinel
			}
			return strconv.FormatBool(t.Rows[row].Cells[col])
		})
}

// CountTable records, per year, the number of distinct non-missing
// values observed in each metadata column. Used for plotting.
type CountTable struct {
	YearColumn string     `json:"year_column"`
	Columns    []string   `json:"columns"`
	Rows       []CountRow `json:"rows"`
}

// CountRow is one year's distinct-value counts.
type CountRow struct {
	Year  int                `json:"year"`
	Cells map[string]float64 `json:"cells"`
}

// NewCountTable builds an empty count table with one row per year.
func NewCountTable(cols []string, years []int) *CountTable {
	t := &CountTable{
		YearColumn: YearColumnTitle,
		Columns:    append([]string(nil), cols...),
	}
	for _, year := range years {
		t.Rows = append(t.Rows, CountRow{Year: year, Cells: make(map[string]float64)})
	}
	return t
}

// MarkNoData zeroes every column for a year with no retrievable data.
func (t *CountTable) MarkNoData(row int) {
	for _, col := range t.Columns {
		t.Rows[row].Cells[col] = 0.0
	}
}

// Set records a distinct-value count for a column in one year's row.
func (t *CountTable) Set(row int, col string, count float64) {
	t.registerColumn(col)
	t.Rows[row].Cells[col] = count
}

// Finalize fills every untouched cell with 0.0.
func (t *CountTable) Finalize() {
	for i := range t.Rows {
		for _, col := range t.Columns {
			if _, ok := t.Rows[i].Cells[col]; !ok {
				t.Rows[i].Cells[col] = 0.0
			}
		}
	}
}

func (t *CountTable) registerColumn(col string) {
	for _, existing := range t.Columns {
		if existing == col {
			return
		}
	}
	t.Columns = append(t.Columns, col)
}

// WriteCSV writes the table with the year column first.
func (t *CountTable) WriteCSV(w io.Writer) error {
	return writeSummaryCSV(w, t.YearColumn, t.Columns, len(t.Rows),
		func(row int) int { return t.Rows[row].Year },
		func(row int, col string) string {
			return strconv.FormatFloat(t.Rows[row].Cells[col], 'f', 1, 64)
		})
}

// DetailTable records, per year, a descriptive summary of each metadata
// column: the single value it holds, that value plus a missing-data
// note, or how many different values were observed.
type DetailTable struct {
	YearColumn string      `json:"year_column"`
	Columns    []string    `json:"columns"`
	Rows       []DetailRow `json:"rows"`
}

// DetailRow is one year's descriptive summaries.
type DetailRow struct {
	Year   int               `json:"year"`
	NoData bool              `json:"no_data,omitempty"`
	Cells  map[string]string `json:"cells"`
}

// NewDetailTable builds an empty detail table with one row per year.
func NewDetailTable(cols []string, years []int) *DetailTable {
	t := &DetailTable{
		YearColumn: YearColumnTitle,
		Columns:    append([]string(nil), cols...),
	}
	for _, year := range years {
		t.Rows = append(t.Rows, DetailRow{Year: year, Cells: make(map[string]string)})
	}
	return t
}

// MarkNoData fills every column of a year's row with the no-data sentinel.
func (t *DetailTable) MarkNoData(row int) {
	t.Rows[row].NoData = true
	for _, col := range t.Columns {
		t.Rows[row].Cells[col] = NoDataSentinel
	}
}

// Set records a descriptive summary for a column in one year's row.
func (t *DetailTable) Set(row int, col, detail string) {
	t.registerColumn(col)
	t.Rows[row].Cells[col] = detail
}

func (t *DetailTable) registerColumn(col string) {
	for _, existing := range t.Columns {
		if existing == col {
			return
		}
	}
	t.Columns = append(t.Columns, col)
}

// WriteCSV writes the table with the year column first. Cells for
// columns a year never carried stay empty.
func (t *DetailTable) WriteCSV(w io.Writer) error {
	return writeSummaryCSV(w, t.YearColumn, t.Columns, len(t.Rows),
		func(row int) int { return t.Rows[row].Year },
		func(row int, col string) string {
			return t.Rows[row].Cells[col]
		})
}

func writeSummaryCSV(w io.Writer, yearCol string, cols []string, rows int, year func(row int) int, cell func(row int, col string) string) error {
	writer := csv.NewWriter(w)
	header := append([]string{yearCol}, cols...)
	if err := writer.Write(header); err != nil {
		return err
	}
	for row := 0; row < rows; row++ {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(year(row)))
		for _, col := range cols {
			record = append(record, cell(row, col))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
