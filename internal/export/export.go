// Package export renders a dashboard view as JSON, CSV, Excel or PDF.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"digital-presence/platform-backend/internal/dashboard"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an output format for a dashboard view
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatCSV, FormatExcel, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Options configures rendering. A zero GeneratedAt omits the timestamp.
type Options struct {
	Title       string
	GeneratedAt time.Time
}

// DefaultOptions returns default export options
func DefaultOptions() Options {
	return Options{Title: "Digital Presence Dashboard"}
}

// Write renders view to w in the given format.
func Write(w io.Writer, format Format, view dashboard.View, opts Options) error {
	if opts.Title == "" {
		opts.Title = DefaultOptions().Title
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, view)
	case FormatCSV:
		return writeCSV(w, view)
	case FormatExcel:
		return writeExcel(w, view, opts)
	case FormatPDF:
		return writePDF(w, view, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func writeJSON(w io.Writer, view dashboard.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}

func actionState(completed bool) string {
	if completed {
		return "done"
	}
	return "pending"
}
