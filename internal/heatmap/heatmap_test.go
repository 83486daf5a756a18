package heatmap

import (
	"strings"
	"testing"

	"github.com/Simon-Lee-UK/air-pollution/internal/summary"
)

func TestPresence_RendersCellsAndLabels(t *testing.T) {
	tab := summary.NewPresenceTable([]string{"NO2", "PM10"}, []int{2020, 2019})
	tab.Set(0, "NO2", true)
	tab.MarkNoData(1)
	tab.Finalize()

	svg := string(Presence(tab, "Available Measurement Columns per Year"))

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("expected SVG document, got %q", svg[:20])
	}
	for _, want := range []string{"NO2", "PM10", "2019", "2020", "Available Measurement Columns per Year", "Data missing", "Data available"} {
		if !strings.Contains(svg, want) {
			t.Errorf("expected SVG to contain %q", want)
		}
	}

	// One available cell, three missing cells.
	if got := strings.Count(svg, colourSingle); got != 1+1 { // cell + legend swatch
		t.Errorf("expected exactly one available cell plus legend, found %d uses of %s", got, colourSingle)
	}
	if got := strings.Count(svg, colourMultiple); got != 0 {
		t.Errorf("presence heatmaps must not use the multiple-values colour, found %d", got)
	}
}

func TestCounts_ClipsAtTwo(t *testing.T) {
	tab := summary.NewCountTable([]string{"NO2 status"}, []int{2018, 2019, 2020})
	tab.Set(0, "NO2 status", 0)
	tab.Set(1, "NO2 status", 1)
	tab.Set(2, "NO2 status", 7)
	tab.Finalize()

	svg := string(Counts(tab, "Unique Status Column Values per Year"))

	for _, colour := range []string{colourMissing, colourSingle, colourMultiple} {
		if !strings.Contains(svg, colour) {
			t.Errorf("expected colour %s in rendered heatmap", colour)
		}
	}
	// 7 distinct values renders the same as any count above one.
	if got := strings.Count(svg, colourMultiple); got != 1+1 { // cell + legend swatch
		t.Errorf("expected single multiple-values cell plus legend, found %d", got)
	}
}

func TestCounts_YearsSortedAscending(t *testing.T) {
	tab := summary.NewCountTable([]string{"NO2 status"}, []int{2020, 2018})
	tab.Finalize()

	svg := string(Counts(tab, "title"))
	if strings.Index(svg, ">2018<") > strings.Index(svg, ">2020<") {
		t.Error("expected year axis sorted ascending")
	}
}
