// Package aurn retrieves per-year site data files published at
// uk-air.defra.gov.uk.
package aurn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Simon-Lee-UK/air-pollution/internal/log"
	"github.com/Simon-Lee-UK/air-pollution/internal/table"
)

// ErrYearUnavailable signals that a year's data file could not be
// retrieved or parsed. Every fetch failure maps onto this error so
// callers can treat "no data this year" as a single recoverable outcome.
var ErrYearUnavailable = errors.New("year data unavailable")

// Source describes where and how per-year files are published.
type Source struct {
	FixedURL   string // consistent URL prefix the site id and year are appended to
	Sep        string // separator between site id and year in the file name
	FileFormat string // file extension of the published files
	HeaderLine int    // 0-based row index of the column title row
}

// DefaultSource returns the uk-air.defra.gov.uk publishing convention.
func DefaultSource() Source {
	return Source{
		FixedURL:   "https://uk-air.defra.gov.uk/data_files/site_data/",
		Sep:        "_",
		FileFormat: "csv",
		HeaderLine: 4,
	}
}

// URL builds the download URL for one site and year.
func (s Source) URL(siteID string, year int) string {
	return fmt.Sprintf("%s%s%s%d.%s", s.FixedURL, siteID, s.Sep, year, s.FileFormat)
}

// Client fetches and parses per-year site data files.
type Client struct {
	source Source
	http   *http.Client
}

// NewClient constructs a Client for the given source with a request timeout.
func NewClient(source Source, timeout time.Duration) *Client {
	return &Client{
		source: source,
		http:   &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the source's fixed URL prefix, for diagnostics.
func (c *Client) BaseURL() string {
	return c.source.FixedURL
}

// FetchYear downloads a single year of data for the site and parses it
// starting at the source's header row. maxRows > 0 limits the number of
// data rows read (enough to inspect headers cheaply). All failures are
// reported as ErrYearUnavailable after logging the failing URL; no other
// error kind crosses this boundary.
func (c *Client) FetchYear(ctx context.Context, siteID string, year, maxRows int) (*table.Table, error) {
	url := c.source.URL(siteID, year)

	t, err := c.fetch(ctx, url, maxRows)
	if err != nil {
		log.Warnf("could not read data from %s: %v; check the URL to ensure location code, year and file extension are all valid", url, err)
		return nil, fmt.Errorf("%w: %s", ErrYearUnavailable, url)
	}
	return t, nil
}

func (c *Client) fetch(ctx context.Context, url string, maxRows int) (*table.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request year data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	t, err := table.Read(resp.Body, c.source.HeaderLine, maxRows)
	if err != nil {
		return nil, fmt.Errorf("parse year data: %w", err)
	}
	return t, nil
}
