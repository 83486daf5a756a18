// Command inspector downloads every requested year of data for one
// monitoring site, builds the cross-year summary tables and writes them
// out as CSV files and SVG heatmaps.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Simon-Lee-UK/air-pollution/internal/aurn"
	"github.com/Simon-Lee-UK/air-pollution/internal/config"
	"github.com/Simon-Lee-UK/air-pollution/internal/heatmap"
	"github.com/Simon-Lee-UK/air-pollution/internal/log"
	"github.com/Simon-Lee-UK/air-pollution/internal/summary"
)

const (
	measurementTitle = "Available Measurement Columns per Year"
	statusTitle      = "Unique Status Column Values per Year"
	unitTitle        = "Unique Unit Column Values per Year"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("inspector failed: %v", err)
	}
	log.Sync()
}

func run() error {
	currentYear := time.Now().Year()

	var (
		siteID  string
		start   int
		end     int
		outDir  string
		withRaw bool
	)
	flag.StringVar(&siteID, "site", "", "site identifier, e.g. OX8")
	flag.IntVar(&end, "end", currentYear-1, "last year of interest")
	flag.IntVar(&start, "start", 0, "first year of interest (default: span ending at -end)")
	flag.StringVar(&outDir, "out", "output", "directory for summary tables and heatmaps")
	flag.BoolVar(&withRaw, "raw", false, "also write each retrievable year's full data table")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := log.Init(cfg.Debug); err != nil {
		return err
	}

	if siteID == "" {
		return fmt.Errorf("-site is required")
	}
	if start == 0 {
		start = end - (cfg.YearSpan - 1)
	}
	if end < start {
		return fmt.Errorf("end year %d precedes start year %d", end, start)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := aurn.NewClient(cfg.Source(), cfg.RequestTimeout)
	builder := summary.NewBuilder(client, cfg.Convention(), cfg.RequestDelay)
	builder.PreviewRows = cfg.PreviewRows

	years := make([]int, 0, end-start+1)
	for year := start; year <= end; year++ {
		years = append(years, year)
	}

	log.Infof("inspecting site %s for years %d - %d", siteID, start, end)
	result, err := builder.Build(ctx, siteID, years)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	files := map[string]func(w io.Writer) error{
		"measurement_summary.csv": result.Measurements.WriteCSV,
		"status_summary.csv":      result.StatusDetail.WriteCSV,
		"unit_summary.csv":        result.UnitDetail.WriteCSV,
		"status_counts.csv":       result.StatusCounts.WriteCSV,
		"unit_counts.csv":         result.UnitCounts.WriteCSV,
	}
	for name, write := range files {
		if err := writeFile(filepath.Join(outDir, name), write); err != nil {
			return err
		}
	}

	svgs := map[string][]byte{
		"measurement_summary.svg": heatmap.Presence(result.Measurements, measurementTitle),
		"status_summary.svg":      heatmap.Counts(result.StatusCounts, statusTitle),
		"unit_summary.svg":        heatmap.Counts(result.UnitCounts, unitTitle),
	}
	for name, data := range svgs {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
			return err
		}
	}

	if withRaw {
		rawDir := filepath.Join(outDir, "raw")
		if err := os.MkdirAll(rawDir, 0o755); err != nil {
			return err
		}
		for _, yd := range result.Years {
			name := fmt.Sprintf("%s_%d.csv", siteID, yd.Year)
			if err := writeFile(filepath.Join(rawDir, name), yd.Table.WriteCSV); err != nil {
				return err
			}
		}
	}

	log.Infof("wrote summaries for %d of %d years to %s", len(result.Years), len(years), outDir)
	return nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
