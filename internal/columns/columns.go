// Package columns classifies and renames the column titles of raw
// monitoring data. Published files interleave each measurement column
// with metadata columns whose titles only carry a marker substring
// ("status", "unit"); the measurement they belong to is implied by
// their position. Renaming makes that association explicit.
package columns

import (
	"fmt"
	"strings"
)

// Convention describes a site's column naming and layout convention.
// Offsets are relative positions from a metadata column to the
// measurement column it annotates.
type Convention struct {
	StatusMarker string
	UnitMarker   string
	StatusOffset int
	UnitOffset   int
}

// Default returns the convention used by uk-air.defra.gov.uk site files:
// a measurement column is followed directly by its status column, then
// its unit column.
func Default() Convention {
	return Convention{
		StatusMarker: "status",
		UnitMarker:   "unit",
		StatusOffset: -1,
		UnitOffset:   -2,
	}
}

// Split partitions column titles into measurement, status and unit
// lists. Input order is preserved and the lists are disjoint: a title
// containing both markers classifies as status.
func Split(cols []string, conv Convention) (measurement, status, unit []string) {
	for _, col := range cols {
		switch {
		case strings.Contains(col, conv.StatusMarker):
			status = append(status, col)
		case strings.Contains(col, conv.UnitMarker):
			unit = append(unit, col)
		default:
			measurement = append(measurement, col)
		}
	}
	return measurement, status, unit
}

// Rename returns a new title list in which every metadata column is
// retitled after the measurement column its offset points at, e.g.
// "status" at index 2 with StatusOffset -1 becomes "<title[1]> status".
// Titles without a marker are returned unchanged. An offset that lands
// outside the column list is a convention mismatch for this layout and
// returns an error rather than clamping.
func Rename(cols []string, conv Convention) ([]string, error) {
	out := make([]string, len(cols))
	for i, col := range cols {
		switch {
		case strings.Contains(col, conv.StatusMarker):
			target, err := offsetTitle(cols, i, conv.StatusOffset)
			if err != nil {
				return nil, fmt.Errorf("status column %q: %w", col, err)
			}
			out[i] = target + " " + conv.StatusMarker
		case strings.Contains(col, conv.UnitMarker):
			target, err := offsetTitle(cols, i, conv.UnitOffset)
			if err != nil {
				return nil, fmt.Errorf("unit column %q: %w", col, err)
			}
			out[i] = target + " " + conv.UnitMarker
		default:
			out[i] = col
		}
	}
	return out, nil
}

func offsetTitle(cols []string, idx, offset int) (string, error) {
	target := idx + offset
	if target < 0 || target >= len(cols) {
		return "", fmt.Errorf("offset %d from index %d points outside the %d-column layout", offset, idx, len(cols))
	}
	return cols[target], nil
}
