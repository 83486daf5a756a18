package columns

import (
	"strings"
	"testing"
)

func TestSplit_PartitionsWithoutOverlap(t *testing.T) {
	cols := []string{"Date", "Time", "NO2", "NO2 status", "NO2 unit", "PM10", "PM10 status", "PM10 unit"}
	measurement, status, unit := Split(cols, Default())

	if got := len(measurement) + len(status) + len(unit); got != len(cols) {
		t.Fatalf("expected %d classified columns, got %d", len(cols), got)
	}

	seen := make(map[string]int)
	for _, list := range [][]string{measurement, status, unit} {
		for _, col := range list {
			seen[col]++
		}
	}
	for col, n := range seen {
		if n != 1 {
			t.Errorf("column %q classified %d times", col, n)
		}
	}
	for _, col := range cols {
		if seen[col] != 1 {
			t.Errorf("column %q missing from partition", col)
		}
	}
}

func TestSplit_PreservesOrder(t *testing.T) {
	cols := []string{"O3", "O3 status", "NO2", "NO2 status", "NO2 unit", "O3 unit"}
	measurement, status, unit := Split(cols, Default())

	wantMeasurement := []string{"O3", "NO2"}
	wantStatus := []string{"O3 status", "NO2 status"}
	wantUnit := []string{"NO2 unit", "O3 unit"}

	assertEqual(t, "measurement", measurement, wantMeasurement)
	assertEqual(t, "status", status, wantStatus)
	assertEqual(t, "unit", unit, wantUnit)
}

func TestSplit_BothMarkersClassifiesAsStatus(t *testing.T) {
	cols := []string{"NO2", "NO2 status unit"}
	_, status, unit := Split(cols, Default())

	if len(status) != 1 || status[0] != "NO2 status unit" {
		t.Fatalf("expected ambiguous column in status list, got %v", status)
	}
	if len(unit) != 0 {
		t.Fatalf("expected empty unit list, got %v", unit)
	}
}

func TestRename_MisnamedMetadataColumns(t *testing.T) {
	cols := []string{"NO2", "status", "unit"}
	got, err := Rename(cols, Default())
	if err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	want := []string{"NO2", "NO2 status", "NO2 unit"}
	assertEqual(t, "renamed", got, want)
}

func TestRename_AlreadyCorrectConventionUnchanged(t *testing.T) {
	cols := []string{"NO2", "NO2 status", "NO2 unit"}
	got, err := Rename(cols, Default())
	if err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	assertEqual(t, "renamed", got, cols)
}

func TestRename_NonMetadataColumnsIdempotent(t *testing.T) {
	cols := []string{"Date", "Time", "NO2", "PM10"}
	got, err := Rename(cols, Default())
	if err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	assertEqual(t, "renamed", got, cols)

	again, err := Rename(got, Default())
	if err != nil {
		t.Fatalf("second Rename error: %v", err)
	}
	assertEqual(t, "renamed twice", again, cols)
}

func TestRename_InterleavedLayout(t *testing.T) {
	cols := []string{"Date", "NO2", "status", "unit", "PM10", "status.1", "unit.1"}
	got, err := Rename(cols, Default())
	if err != nil {
		t.Fatalf("Rename error: %v", err)
	}
	want := []string{"Date", "NO2", "NO2 status", "NO2 unit", "PM10", "PM10 status", "PM10 unit"}
	assertEqual(t, "renamed", got, want)
}

func TestRename_OffsetOutOfRangeFailsLoudly(t *testing.T) {
	cases := []struct {
		name string
		cols []string
		conv Convention
	}{
		{
			name: "status offset before first column",
			cols: []string{"status", "NO2"},
			conv: Default(),
		},
		{
			name: "unit offset before first column",
			cols: []string{"NO2", "unit"},
			conv: Default(),
		},
		{
			name: "positive offset past last column",
			cols: []string{"NO2", "status"},
			conv: Convention{StatusMarker: "status", UnitMarker: "unit", StatusOffset: 1, UnitOffset: 2},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Rename(tc.cols, tc.conv)
			if err == nil {
				t.Fatal("expected error for out-of-range offset, got nil")
			}
			if !strings.Contains(err.Error(), "outside") {
				t.Errorf("error should name the layout violation, got: %v", err)
			}
		})
	}
}

func TestSplit_CustomMarkers(t *testing.T) {
	conv := Convention{StatusMarker: "flag", UnitMarker: "uom", StatusOffset: -1, UnitOffset: -2}
	cols := []string{"SO2", "SO2 flag", "SO2 uom"}
	measurement, status, unit := Split(cols, conv)

	assertEqual(t, "measurement", measurement, []string{"SO2"})
	assertEqual(t, "status", status, []string{"SO2 flag"})
	assertEqual(t, "unit", unit, []string{"SO2 uom"})
}

func assertEqual(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", label, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: expected %v, got %v", label, want, got)
		}
	}
}
