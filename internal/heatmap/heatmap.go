// Package heatmap renders summary tables as SVG heatmaps: one cell per
// column/year combination, years along the x axis.
package heatmap

import (
	"bytes"
	"fmt"
	"html"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/Simon-Lee-UK/air-pollution/internal/summary"
)

// Colours illustrating missing vs available data, plus a third shade
// for cells holding more than one distinct value.
const (
	colourMissing  = "#2E332F"
	colourSingle   = "#93DF9D"
	colourMultiple = "#896EC4"
)

const (
	cellSize    = 40
	labelWidth  = 260
	labelHeight = 60
	titleHeight = 40
	legendWidth = 150
)

// Presence renders a measurement presence table: available columns per
// year in green, missing combinations (and missing years) in dark grey.
func Presence(t *summary.PresenceTable, title string) []byte {
	years, grid := presenceGrid(t)
	return render(grid, years, t.Columns, title, func(v float64) string {
		if v > 0 {
			return colourSingle
		}
		return colourMissing
	}, []legendEntry{
		{colourMissing, "Data missing"},
		{colourSingle, "Data available"},
	})
}

// Counts renders a distinct-value count table, clipping counts at two so
// cells read as: no data, a single consistent value, multiple values.
func Counts(t *summary.CountTable, title string) []byte {
	years, grid := countGrid(t)
	return render(grid, years, t.Columns, title, func(v float64) string {
		switch {
		case v <= 0:
			return colourMissing
		case v <= 1:
			return colourSingle
		default:
			return colourMultiple
		}
	}, []legendEntry{
		{colourMissing, "Data missing"},
		{colourSingle, "Single value"},
		{colourMultiple, "Multiple values"},
	})
}

// presenceGrid assembles a years x columns matrix (1 present, 0 absent)
// sorted by ascending year, then transposes it so rows are columns.
func presenceGrid(t *summary.PresenceTable) ([]int, mat.Matrix) {
	rows := sortedRowOrder(len(t.Rows), func(i int) int { return t.Rows[i].Year })
	years := make([]int, len(rows))
	grid := mat.NewDense(max(len(rows), 1), max(len(t.Columns), 1), nil)
	for gi, ri := range rows {
		years[gi] = t.Rows[ri].Year
		for ci, col := range t.Columns {
			if !t.Rows[ri].NoData && t.Rows[ri].Cells[col] {
				grid.Set(gi, ci, 1)
			}
		}
	}
	return years, grid.T()
}

// countGrid assembles a years x columns matrix of distinct-value counts
// clipped at two, sorted by ascending year, then transposed.
func countGrid(t *summary.CountTable) ([]int, mat.Matrix) {
	rows := sortedRowOrder(len(t.Rows), func(i int) int { return t.Rows[i].Year })
	years := make([]int, len(rows))
	grid := mat.NewDense(max(len(rows), 1), max(len(t.Columns), 1), nil)
	for gi, ri := range rows {
		years[gi] = t.Rows[ri].Year
		for ci, col := range t.Columns {
			v := t.Rows[ri].Cells[col]
			if v > 2 {
				v = 2
			}
			grid.Set(gi, ci, v)
		}
	}
	return years, grid.T()
}

func sortedRowOrder(n int, year func(i int) int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return year(order[a]) < year(order[b]) })
	return order
}

type legendEntry struct {
	colour string
	label  string
}

// render rasterizes a transposed grid (rows = data columns, columns =
// years) into a standalone SVG document.
func render(grid mat.Matrix, years []int, rowLabels []string, title string, colour func(float64) string, legend []legendEntry) []byte {
	nRows, nCols := grid.Dims()
	if len(rowLabels) == 0 || len(years) == 0 {
		nRows, nCols = len(rowLabels), len(years)
	}

	width := labelWidth + nCols*cellSize + legendWidth
	height := titleHeight + nRows*cellSize + labelHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" font-family="sans-serif">`+"\n", width, height)
	fmt.Fprintf(&buf, `<text x="%d" y="26" font-size="18" text-anchor="middle">%s</text>`+"\n", width/2, html.EscapeString(title))

	for r := 0; r < nRows; r++ {
		y := titleHeight + r*cellSize
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="13" text-anchor="end">%s</text>`+"\n",
			labelWidth-8, y+cellSize/2+4, html.EscapeString(rowLabels[r]))
		for c := 0; c < nCols; c++ {
			x := labelWidth + c*cellSize
			fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#FFFFFF"/>`+"\n",
				x, y, cellSize, cellSize, colour(grid.At(r, c)))
		}
	}

	for c, year := range years {
		x := labelWidth + c*cellSize + cellSize/2
		y := titleHeight + nRows*cellSize + 20
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="13" text-anchor="middle">%d</text>`+"\n", x, y, year)
	}

	for i, entry := range legend {
		x := labelWidth + nCols*cellSize + 20
		y := titleHeight + i*28
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="18" height="18" fill="%s"/>`+"\n", x, y, entry.colour)
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-size="13">%s</text>`+"\n", x+26, y+14, html.EscapeString(entry.label))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
