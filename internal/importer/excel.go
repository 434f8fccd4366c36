// Package importer parses bulk site-configuration uploads from Excel
// spreadsheets.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/govidsearch/internal/models"
)

// Column indices for the site spreadsheet (0-based).
const (
	colSiteID      = 0 // Column A
	colName        = 1 // Column B
	colBaseURL     = 2 // Column C
	colEnabled     = 3 // Column D
	colTimeout     = 4 // Column E
	colSearchParam = 5 // Column F
	colPageParam   = 6 // Column G
	colActionParam = 7 // Column H

	headerRowIndex = 1 // Excel rows are 1-based, header is row 1
)

// SiteRow represents a parsed row from the Excel spreadsheet.
type SiteRow struct {
	Row         int // Excel row number (for error reporting)
	SiteID      string
	Name        string
	BaseURL     string
	Enabled     bool
	Timeout     int
	SearchParam string
	PageParam   string
	ActionParam string
}

// ImportError represents a validation error for a specific row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ParseExcelFile reads the first sheet and returns the valid rows plus
// per-row errors. Rows past the header that are entirely blank are skipped.
func ParseExcelFile(r io.Reader) ([]SiteRow, []ImportError) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, []ImportError{{Row: 0, Error: fmt.Sprintf("invalid Excel file: %v", err)}}
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, []ImportError{{Row: 0, Error: fmt.Sprintf("read sheet: %v", err)}}
	}

	var rows []SiteRow
	var importErrors []ImportError

	for i, raw := range rawRows {
		rowNum := i + 1
		if rowNum == headerRowIndex || isBlankRow(raw) {
			continue
		}

		row, parseErr := parseRow(rowNum, raw)
		if parseErr != "" {
			importErrors = append(importErrors, ImportError{Row: rowNum, Error: parseErr})
			continue
		}
		if validateErr := ValidateRow(row); validateErr != "" {
			importErrors = append(importErrors, ImportError{Row: rowNum, Error: validateErr})
			continue
		}
		rows = append(rows, row)
	}

	return rows, importErrors
}

// ValidateRow validates a single row and returns an error message or empty string.
func ValidateRow(row SiteRow) string {
	if strings.TrimSpace(row.SiteID) == "" {
		return "site_id is required"
	}
	if strings.TrimSpace(row.Name) == "" {
		return "name is required"
	}
	if strings.TrimSpace(row.BaseURL) == "" {
		return "base_url is required"
	}
	if !strings.HasPrefix(row.BaseURL, "http://") && !strings.HasPrefix(row.BaseURL, "https://") {
		return "base_url must start with http:// or https://"
	}
	if row.Timeout < 0 {
		return "timeout must be non-negative"
	}
	return ""
}

// ToSiteConfig converts a validated row into a site configuration with
// defaults applied for the optional columns.
func ToSiteConfig(row SiteRow) models.SiteConfig {
	site := models.SiteConfig{
		SiteID:      strings.TrimSpace(row.SiteID),
		Name:        strings.TrimSpace(row.Name),
		BaseURL:     strings.TrimSpace(row.BaseURL),
		Enabled:     row.Enabled,
		Timeout:     row.Timeout,
		SearchParam: strings.TrimSpace(row.SearchParam),
		PageParam:   strings.TrimSpace(row.PageParam),
		ActionParam: strings.TrimSpace(row.ActionParam),
	}
	site.ApplyDefaults()
	return site
}

func parseRow(rowNum int, raw []string) (SiteRow, string) {
	row := SiteRow{
		Row:         rowNum,
		SiteID:      cell(raw, colSiteID),
		Name:        cell(raw, colName),
		BaseURL:     cell(raw, colBaseURL),
		SearchParam: cell(raw, colSearchParam),
		PageParam:   cell(raw, colPageParam),
		ActionParam: cell(raw, colActionParam),
	}

	if v := cell(raw, colEnabled); v != "" {
		enabled, ok := parseBool(v)
		if !ok {
			return SiteRow{}, "enabled must be true/false/1/0/yes/no"
		}
		row.Enabled = enabled
	}

	if v := cell(raw, colTimeout); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil {
			return SiteRow{}, "timeout must be an integer number of seconds"
		}
		row.Timeout = timeout
	}

	return row, ""
}

func parseBool(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

func cell(raw []string, index int) string {
	if index >= len(raw) {
		return ""
	}
	return strings.TrimSpace(raw[index])
}

func isBlankRow(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
