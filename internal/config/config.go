package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Simon-Lee-UK/air-pollution/internal/aurn"
	"github.com/Simon-Lee-UK/air-pollution/internal/columns"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultRequestDelay   = 750 * time.Millisecond
	defaultPreviewRows    = 8
	defaultYearSpan       = 5
	defaultPort           = 8080
)

// Config holds runtime configuration shared by the inspector CLI and
// the viewer API. The source and column convention live here so the
// fetcher, classifier and resolver always agree on them.
type Config struct {
	FixedURL   string
	Sep        string
	FileFormat string
	HeaderLine int

	StatusMarker string
	UnitMarker   string
	StatusOffset int
	UnitOffset   int

	RequestTimeout time.Duration
	RequestDelay   time.Duration
	PreviewRows    int

	// YearSpan is how many years back from the most recent complete
	// year are inspected when no explicit range is given.
	YearSpan int

	Port        int
	BearerToken string
	Debug       bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	source := aurn.DefaultSource()
	conv := columns.Default()

	cfg := Config{
		FixedURL:       source.FixedURL,
		Sep:            source.Sep,
		FileFormat:     source.FileFormat,
		HeaderLine:     source.HeaderLine,
		StatusMarker:   conv.StatusMarker,
		UnitMarker:     conv.UnitMarker,
		StatusOffset:   conv.StatusOffset,
		UnitOffset:     conv.UnitOffset,
		RequestTimeout: defaultRequestTimeout,
		RequestDelay:   defaultRequestDelay,
		PreviewRows:    defaultPreviewRows,
		YearSpan:       defaultYearSpan,
		Port:           defaultPort,
	}

	if v := strings.TrimSpace(os.Getenv("INSPECTOR_FIXED_URL")); v != "" {
		cfg.FixedURL = v
	}
	if v := os.Getenv("INSPECTOR_URL_SEPARATOR"); v != "" {
		cfg.Sep = v
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_FILE_FORMAT")); v != "" {
		cfg.FileFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_HEADER_LINE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("invalid INSPECTOR_HEADER_LINE: %s", v)
		}
		cfg.HeaderLine = n
	}

	if v := strings.TrimSpace(os.Getenv("INSPECTOR_STATUS_MARKER")); v != "" {
		cfg.StatusMarker = v
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_UNIT_MARKER")); v != "" {
		cfg.UnitMarker = v
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_STATUS_OFFSET")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INSPECTOR_STATUS_OFFSET: %s", v)
		}
		cfg.StatusOffset = n
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_UNIT_OFFSET")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INSPECTOR_UNIT_OFFSET: %s", v)
		}
		cfg.UnitOffset = n
	}

	if v := strings.TrimSpace(os.Getenv("INSPECTOR_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INSPECTOR_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_REQUEST_DELAY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid INSPECTOR_REQUEST_DELAY: %w", err)
		}
		cfg.RequestDelay = d
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_PREVIEW_ROWS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid INSPECTOR_PREVIEW_ROWS: %s", v)
		}
		cfg.PreviewRows = n
	}
	if v := strings.TrimSpace(os.Getenv("INSPECTOR_YEAR_SPAN")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid INSPECTOR_YEAR_SPAN: %s", v)
		}
		cfg.YearSpan = n
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
		cfg.Port = port
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	debug := strings.TrimSpace(os.Getenv("DEBUG"))
	cfg.Debug = debug == "1" || strings.EqualFold(debug, "true")

	return cfg, nil
}

// Source returns the publishing convention for the remote data files.
func (c Config) Source() aurn.Source {
	return aurn.Source{
		FixedURL:   c.FixedURL,
		Sep:        c.Sep,
		FileFormat: c.FileFormat,
		HeaderLine: c.HeaderLine,
	}
}

// Convention returns the column naming convention.
func (c Config) Convention() columns.Convention {
	return columns.Convention{
		StatusMarker: c.StatusMarker,
		UnitMarker:   c.UnitMarker,
		StatusOffset: c.StatusOffset,
		UnitOffset:   c.UnitOffset,
	}
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
