// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet reads the exported submission spreadsheet and classifies
// each row into add/update candidates for the canonical directory.
package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/scholar-directory/internal/httputil"
	"github.com/pdiddy/scholar-directory/pkg/types"
)

// sheetExportBase is the Google Sheets CSV export endpoint. Declared as a
// var so tests can substitute an httptest server.
var sheetExportBase = "https://docs.google.com/spreadsheets/d"

// Row is one spreadsheet row keyed by mangled header name.
type Row map[string]string

// Download fetches the configured sheet tab as CSV and writes it to
// cfg.CSVPath via a temporary file. The export endpoint rate-limits, so
// the request goes through the retry helper.
func Download(ctx context.Context, client *http.Client, cfg types.SheetConfig) error {
	url := fmt.Sprintf("%s/%s/export?format=csv&gid=%s", sheetExportBase, cfg.SheetID, cfg.GID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("sheet export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sheet export returned HTTP %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CSVPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(cfg.CSVPath), ".sheet-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing sheet export: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, cfg.CSVPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReadRows parses a sheet CSV export into header-keyed rows. A missing
// file or malformed CSV is a structural failure for the batch.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sheet CSV %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	header = mangleDupes(header)

	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// mangleDupes disambiguates repeated header names the way the spreadsheet
// tooling does: the second occurrence of "Name" becomes "Name.1", the
// third "Name.2", and so on. The submission form has two parallel column
// groups with mostly identical labels, so the update group is addressed
// through its ".1" names.
func mangleDupes(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, col := range header {
		n := seen[col]
		seen[col] = n + 1
		if n == 0 {
			out[i] = col
		} else {
			out[i] = fmt.Sprintf("%s.%d", col, n)
		}
	}
	return out
}
