// Package export renders batch extraction results as downloadable tables.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"imgtext/internal/domain"
)

// Format identifies an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns defines the header row shared by every format.
var columns = []string{
	"No.",
	"Image URL",
	"Success",
	"Outcome",
	"Reason",
	"Text",
}

// resultToRow converts one result to a row aligned with columns.
func resultToRow(i int, r *domain.ExtractionResult) []string {
	return []string{
		strconv.Itoa(i + 1),
		r.ImageURL,
		formatBool(r.Success),
		string(r.Outcome),
		r.Reason,
		r.Text,
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// Write renders results in the given format.
func Write(w io.Writer, format Format, results []domain.ExtractionResult, sheetName string) error {
	if len(results) == 0 {
		return domain.ErrEmptyExport
	}
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, results, sheetName)
	case FormatCSV:
		cw := NewCSVWriter(w)
		if err := cw.WriteBOM(); err != nil {
			return err
		}
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.WriteResults(results); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, format)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {label}_{YYYY-MM-DD}.{ext}. A label that sanitizes
// to nothing becomes "text_extraction".
func BuildFilename(label string, format Format, now time.Time) string {
	sanitized := SanitizeFilename(label)
	if sanitized == "" {
		sanitized = "text_extraction"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}
