// Package summary builds cross-year summary tables for an air-quality
// monitoring site: which measurement columns exist in which years, and
// how consistent the accompanying status and unit metadata is.
package summary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Simon-Lee-UK/air-pollution/internal/aurn"
	"github.com/Simon-Lee-UK/air-pollution/internal/columns"
	"github.com/Simon-Lee-UK/air-pollution/internal/log"
	"github.com/Simon-Lee-UK/air-pollution/internal/table"
)

// ErrNoData signals that no year in the requested range yielded data.
var ErrNoData = errors.New("no retrievable data for any requested year")

// Fetcher retrieves one year of raw site data. Absence of a year is
// reported as aurn.ErrYearUnavailable.
type Fetcher interface {
	FetchYear(ctx context.Context, siteID string, year, maxRows int) (*table.Table, error)
	BaseURL() string
}

// Builder fetches per-year data sequentially and assembles the summary
// tables. Requests are paced with a fixed delay as a courtesy to the
// remote source; there is exactly one fetch attempt per year.
type Builder struct {
	fetcher Fetcher
	conv    columns.Convention

	// Delay is the pause inserted between successive requests.
	Delay time.Duration
	// PreviewRows is the number of data rows fetched by Preview.
	PreviewRows int
}

// NewBuilder constructs a Builder around a fetcher and column convention.
func NewBuilder(fetcher Fetcher, conv columns.Convention, delay time.Duration) *Builder {
	return &Builder{
		fetcher:     fetcher,
		conv:        conv,
		Delay:       delay,
		PreviewRows: 8,
	}
}

// YearData pairs a retrievable year with its full, renamed data table.
type YearData struct {
	Year  int
	Table *table.Table
}

// Result holds one summary run: the full data of every retrievable year
// in the originally requested order, plus the five summary tables.
type Result struct {
	SiteID string

	// Years contains only the years that yielded data, in request order.
	Years []YearData

	Measurements *PresenceTable
	StatusDetail *DetailTable
	UnitDetail   *DetailTable
	StatusCounts *CountTable
	UnitCounts   *CountTable
}

// Data returns the full table for a year, if it was retrievable.
func (r *Result) Data(year int) (*table.Table, bool) {
	for _, yd := range r.Years {
		if yd.Year == year {
			return yd.Table, true
		}
	}
	return nil, false
}

// ReferenceColumns resolves the canonical column set for a site: the
// renamed column titles of the most recent retrievable year. Years are
// probed newest-first with a minimal row count. When every year fails,
// the returned error names the queried range and URL template.
func (b *Builder) ReferenceColumns(ctx context.Context, siteID string, years []int) ([]string, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("no years requested for site %q", siteID)
	}

	sorted := append([]int(nil), years...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for i, year := range sorted {
		if i > 0 {
			b.pace(ctx)
		}
		ref, err := b.fetcher.FetchYear(ctx, siteID, year, 1)
		if errors.Is(err, aurn.ErrYearUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		renamed, err := columns.Rename(ref.Columns, b.conv)
		if err != nil {
			return nil, fmt.Errorf("reference year %d: %w", year, err)
		}
		log.Infof("reference columns for site %s taken from %d", siteID, year)
		return renamed, nil
	}

	last := sorted[len(sorted)-1]
	return nil, fmt.Errorf("%w: could not read data from %s for any years %d - %d", ErrNoData, b.fetcher.BaseURL(), last, sorted[0])
}

// Build fetches the full data for every requested year, in the order
// given, and fills the summary tables. A year that cannot be fetched is
// sentinel-marked and never blocks later years; an out-of-range offset
// in the column convention is a configuration error and aborts the run.
func (b *Builder) Build(ctx context.Context, siteID string, years []int) (*Result, error) {
	ref, err := b.ReferenceColumns(ctx, siteID, years)
	if err != nil {
		return nil, err
	}

	measurementCols, statusCols, unitCols := columns.Split(ref, b.conv)

	result := &Result{
		SiteID:       siteID,
		Measurements: NewPresenceTable(measurementCols, years),
		StatusDetail: NewDetailTable(statusCols, years),
		UnitDetail:   NewDetailTable(unitCols, years),
		StatusCounts: NewCountTable(statusCols, years),
		UnitCounts:   NewCountTable(unitCols, years),
	}

	for idx, year := range years {
		b.pace(ctx)

		single, err := b.fetcher.FetchYear(ctx, siteID, year, 0)
		if errors.Is(err, aurn.ErrYearUnavailable) {
			result.Measurements.MarkNoData(idx)
			result.StatusDetail.MarkNoData(idx)
			result.UnitDetail.MarkNoData(idx)
			result.StatusCounts.MarkNoData(idx)
			result.UnitCounts.MarkNoData(idx)
			continue
		}
		if err != nil {
			return nil, err
		}

		renamed, err := columns.Rename(single.Columns, b.conv)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		single.Columns = renamed

		yearMeasurements, yearStatus, yearUnits := columns.Split(single.Columns, b.conv)

		for _, col := range yearMeasurements {
			result.Measurements.Set(idx, col, true)
		}
		for _, col := range yearStatus {
			result.StatusDetail.Set(idx, col, describeColumn(single, col))
			result.StatusCounts.Set(idx, col, float64(len(single.Distinct(col))))
		}
		for _, col := range yearUnits {
			result.UnitDetail.Set(idx, col, describeColumn(single, col))
			result.UnitCounts.Set(idx, col, float64(len(single.Distinct(col))))
		}

		result.Years = append(result.Years, YearData{Year: year, Table: single})
		log.Infof("summarised %d rows for site %s year %d", len(single.Rows), siteID, year)
	}

	result.Measurements.Finalize()
	result.StatusCounts.Finalize()
	result.UnitCounts.Finalize()

	return result, nil
}

// describeColumn summarises the values of a metadata column: the single
// value it holds all year, that value with a note when missing cells
// also appear, or the number of different values observed.
func describeColumn(t *table.Table, col string) string {
	distinct := t.Distinct(col)
	if len(distinct) == 1 {
		if t.HasMissing(col) {
			return fmt.Sprintf("%s  (+ NaNs)", distinct[0])
		}
		return distinct[0]
	}
	return fmt.Sprintf("%d different values", len(distinct))
}

// PreviewResult holds a small sample of the most recent retrievable
// year plus the list of years that yielded data.
type PreviewResult struct {
	SiteID     string
	Sample     *table.Table
	SampleYear int
	ValidYears []int
}

// Preview probes every year between startYear and endYear (inclusive),
// newest first, with a small row limit. The sample comes from the first
// retrievable year; ValidYears lists every year that yielded data, in
// descending order. When no year succeeds, the error names the range
// and URL template.
func (b *Builder) Preview(ctx context.Context, siteID string, startYear, endYear int) (*PreviewResult, error) {
	if endYear < startYear {
		return nil, fmt.Errorf("end year %d precedes start year %d", endYear, startYear)
	}

	result := &PreviewResult{SiteID: siteID}
	for year := endYear; year >= startYear; year-- {
		if year != endYear {
			b.pace(ctx)
		}
		single, err := b.fetcher.FetchYear(ctx, siteID, year, b.PreviewRows)
		if errors.Is(err, aurn.ErrYearUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if result.Sample == nil {
			result.Sample = single
			result.SampleYear = year
		}
		result.ValidYears = append(result.ValidYears, year)
	}

	if result.Sample == nil {
		return nil, fmt.Errorf("%w: could not read data from %s for any years %d - %d", ErrNoData, b.fetcher.BaseURL(), startYear, endYear)
	}

	log.Infof("preview data for site %s sampled from %d", siteID, result.SampleYear)
	return result, nil
}

// pace sleeps for the configured delay, returning early on cancellation.
func (b *Builder) pace(ctx context.Context) {
	if b.Delay <= 0 {
		return
	}
	timer := time.NewTimer(b.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
