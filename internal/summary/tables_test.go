package summary

import (
	"bytes"
	"strings"
	"testing"
)

func TestPresenceTable_FinalizeFillsUntouchedCells(t *testing.T) {
	tab := NewPresenceTable([]string{"A", "B"}, []int{2020})
	tab.Set(0, "A", true)
	tab.Finalize()

	row := tab.Rows[0]
	if !row.Cells["A"] {
		t.Error("expected A=true")
	}
	if v, ok := row.Cells["B"]; !ok || v {
		t.Errorf("expected B finalized to false, got %v (ok=%v)", v, ok)
	}
}

func TestPresenceTable_NoDataRowsSkipFinalize(t *testing.T) {
	tab := NewPresenceTable([]string{"A"}, []int{2019, 2020})
	tab.MarkNoData(0)
	tab.Set(1, "A", true)
	tab.Finalize()

	if !tab.Rows[0].NoData {
		t.Error("expected row 0 flagged as no data")
	}
	if len(tab.Rows[0].Cells) != 0 {
		t.Errorf("expected no cells for missing year, got %v", tab.Rows[0].Cells)
	}
	if tab.Rows[0].Year != 2019 {
		t.Errorf("expected year 2019 preserved, got %d", tab.Rows[0].Year)
	}
}

func TestPresenceTable_SetRegistersNewColumn(t *testing.T) {
	tab := NewPresenceTable([]string{"A"}, []int{2019, 2020})
	tab.Set(1, "C", true)
	tab.Finalize()

	if len(tab.Columns) != 2 || tab.Columns[1] != "C" {
		t.Fatalf("expected column C registered, got %v", tab.Columns)
	}
	if v := tab.Rows[0].Cells["C"]; v {
		t.Error("expected C=false for the year that never carried it")
	}
}

func TestPresenceTable_WriteCSV(t *testing.T) {
	tab := NewPresenceTable([]string{"A", "B"}, []int{2019, 2020})
	tab.MarkNoData(0)
	tab.Set(1, "A", true)
	tab.Finalize()

	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	want := "Data Set (Year),A,B\n2019,no data,no data\n2020,true,false\n"
	if buf.String() != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestCountTable_MarkNoDataZeroesRow(t *testing.T) {
	tab := NewCountTable([]string{"A status", "B status"}, []int{2019})
	tab.MarkNoData(0)

	for _, col := range tab.Columns {
		if v := tab.Rows[0].Cells[col]; v != 0.0 {
			t.Errorf("expected %s=0.0, got %v", col, v)
		}
	}
	if tab.Rows[0].Year != 2019 {
		t.Errorf("expected year preserved, got %d", tab.Rows[0].Year)
	}
}

func TestCountTable_FinalizeFillsZero(t *testing.T) {
	tab := NewCountTable([]string{"A status", "B status"}, []int{2020})
	tab.Set(0, "A status", 2)
	tab.Finalize()

	if v := tab.Rows[0].Cells["B status"]; v != 0.0 {
		t.Errorf("expected untouched cell finalized to 0.0, got %v", v)
	}
}

func TestCountTable_WriteCSV(t *testing.T) {
	tab := NewCountTable([]string{"A status"}, []int{2020})
	tab.Set(0, "A status", 3)
	tab.Finalize()

	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	want := "Data Set (Year),A status\n2020,3.0\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestDetailTable_MarkNoDataUsesSentinel(t *testing.T) {
	tab := NewDetailTable([]string{"A status", "B status"}, []int{2019})
	tab.MarkNoData(0)

	for _, col := range tab.Columns {
		if v := tab.Rows[0].Cells[col]; v != NoDataSentinel {
			t.Errorf("expected %s=%q, got %q", col, NoDataSentinel, v)
		}
	}
}

func TestDetailTable_WriteCSV(t *testing.T) {
	tab := NewDetailTable([]string{"A status"}, []int{2019, 2020})
	tab.MarkNoData(0)
	tab.Set(1, "A status", "V")

	var buf bytes.Buffer
	if err := tab.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "2019,no data" {
		t.Errorf("expected sentinel row, got %q", lines[1])
	}
	if lines[2] != "2020,V" {
		t.Errorf("expected value row, got %q", lines[2])
	}
}
